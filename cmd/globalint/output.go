package main

import (
	"cmp"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"globalint/internal/config"
	"globalint/internal/diag"
	"globalint/internal/diagfmt"
	"globalint/internal/driver"
	"globalint/internal/version"
)

type outputOptions struct {
	format    string
	pathMode  diagfmt.PathMode
	withNotes bool
}

// addOutputFlags registers the flags shared by check and check-model.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "output format (pretty|short|json|sarif, default from config)")
	cmd.Flags().String("lang", "", "message language (en|ru, default from config)")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().Bool("no-notes", false, "omit suggestion and call-site notes")
	cmd.Flags().String("path-mode", "auto", "how file paths are shown (auto|absolute|relative|basename)")
}

func readOutputFlags(cmd *cobra.Command, cfg *config.Config) (outputOptions, error) {
	var out outputOptions
	flags := readFlags(cmd.Flags())
	format := flags.String("format")
	pathStr := flags.String("path-mode")
	out.withNotes = !flags.Bool("no-notes")
	if err := flags.Err(); err != nil {
		return out, err
	}

	if format == "" {
		format = cfg.Output.Format
	}
	switch format = strings.ToLower(format); format {
	case "", "pretty":
		out.format = "pretty"
	case "short", "json", "sarif":
		out.format = format
	default:
		return out, fmt.Errorf("unknown format: %s", format)
	}
	var err error
	if out.pathMode, err = diagfmt.ParsePathMode(pathStr); err != nil {
		return out, err
	}

	// the config decides the color only when --color was left alone
	if !cmd.Root().PersistentFlags().Changed("color") && cfg.Output.Color != "" {
		if err := applyColorMode(cfg.Output.Color); err != nil {
			return out, err
		}
	}
	return out, nil
}

func driverOptions(cmd *cobra.Command, cfg *config.Config) (driver.Options, error) {
	global := readFlags(cmd.Root().PersistentFlags())
	local := readFlags(cmd.Flags())
	opts := driver.Options{
		Config:           cfg,
		Logger:           loggerFrom(cmd.Context()),
		MaxDiagnostics:   global.Int("max-diagnostics"),
		EnableTimings:    global.Bool("timings"),
		Lang:             local.String("lang"),
		IgnoreWarnings:   local.Bool("no-warnings"),
		WarningsAsErrors: local.Bool("warnings-as-errors"),
	}
	if err := cmp.Or(global.Err(), local.Err()); err != nil {
		return opts, err
	}
	if opts.IgnoreWarnings && opts.WarningsAsErrors {
		return opts, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	return opts, nil
}

// render writes the result in the chosen format and maps errors to exit status 1.
func render(cmd *cobra.Command, res *driver.Result, out outputOptions, kind, target string) error {
	w := cmd.OutOrStdout()
	timings := res.Timings(kind, target)

	var err error
	switch out.format {
	case "short":
		err = diagfmt.Short(w, res.Bag, res.FileSet, out.withNotes)
	case "json":
		opts := diagfmt.JSONOpts{IncludePositions: true, PathMode: out.pathMode, IncludeNotes: out.withNotes}
		if timings != nil {
			opts.Extra = map[string]any{"timings": timings}
		}
		err = diagfmt.JSON(w, res.Bag, res.FileSet, opts)
	case "sarif":
		err = diagfmt.Sarif(w, res.Bag, res.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "globalint",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	default:
		diagfmt.Pretty(w, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     !color.NoColor,
			Context:   0,
			PathMode:  out.pathMode,
			ShowNotes: out.withNotes,
		})
		printSummary(cmd, res)
	}
	if err != nil {
		return err
	}
	if timings != nil && out.format != "json" {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	if res.Bag.HasErrors() {
		return exitCode(1)
	}
	return nil
}

func printSummary(cmd *cobra.Command, res *driver.Result) {
	n := res.Bag.Len()
	if n == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no findings in %d file(s)\n", len(res.Files))
		return
	}
	counts := res.Bag.Counts()
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d finding(s) in %d file(s): %d error(s), %d warning(s)",
		n, len(res.Files), counts[diag.SevError], counts[diag.SevWarning])
	if d := res.Bag.Dropped(); d > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", %d more not shown", d)
	}
	fmt.Fprintln(cmd.OutOrStdout())
}
