package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"globalint/internal/version"
)

const versionTagline = "culture is a parameter, not an accident"

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show globalint build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Current()
		switch strings.ToLower(versionFormat) {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), info, versionShowFull)
			return nil
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(out io.Writer, info version.Info, full bool) {
	fmt.Fprintf(out, "globalint %s: %s\n", version.Colored(), versionTagline)
	if !full {
		return
	}
	fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
	fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	fmt.Fprintf(out, "go:     %s\n", info.GoVersion)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
