package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"globalint/internal/diag"
	"globalint/internal/rules"
)

var rulesFormat string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules with their identifiers and titles",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(rulesFormat) {
		case "pretty", "":
			printRules(cmd)
			return nil
		case "json":
			return printRulesJSON(cmd)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", rulesFormat)
		}
	},
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "pretty", "output format (pretty|json)")
}

type rulePayload struct {
	ID        string   `json:"id"`
	Short     string   `json:"short"`
	Code      string   `json:"code"`
	Title     string   `json:"title"`
	Help      string   `json:"help"`
	Templates []string `json:"templates"`
}

func rulePayloads() []rulePayload {
	all := rules.All()
	out := make([]rulePayload, 0, len(all))
	for _, info := range all {
		p := rulePayload{ID: string(info.ID), Short: info.ID.Short(), Title: info.Title, Help: info.Help}
		if code, ok := diag.CodeForRule(string(info.ID)); ok {
			p.Code = code.ID()
		}
		for _, tpl := range info.Templates {
			p.Templates = append(p.Templates, string(tpl))
		}
		out = append(out, p)
	}
	return out
}

func printRules(cmd *cobra.Command) {
	bold := color.New(color.Bold)
	w := cmd.OutOrStdout()
	for _, p := range rulePayloads() {
		fmt.Fprintf(w, "%-4s %s  %s\n", p.Short, bold.Sprint(p.ID), p.Code)
		fmt.Fprintf(w, "     %s\n", p.Title)
		fmt.Fprintf(w, "     %s\n", p.Help)
	}
}

func printRulesJSON(cmd *cobra.Command) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rulePayloads())
}
