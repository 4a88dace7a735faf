package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"globalint/internal/config"
	"globalint/internal/driver"
	"globalint/internal/rules"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.cs|directory>",
	Short: "Analyse C# sources for culture-sensitive calls",
	Long: `Analyse a C# file, or every *.cs file within a directory, and report calls whose
result depends on the current culture. Settings are read from the nearest
globalint.toml; flags override them.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	addOutputFlags(checkCmd)
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0 = from config, then GOMAXPROCS)")
	checkCmd.Flags().String("rules", "", "comma-separated rules to run, e.g. R1,R3 (default all)")
	checkCmd.Flags().String("config", "", "path to globalint.toml (default: search upward from the target)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	checkCmd.Flags().String("export-model", "", "also write the symbol model as a snapshot (.msgpack|.json|.yaml)")
	checkCmd.Flags().Bool("export-content", false, "embed file contents in the exported snapshot")
}

// runCheck executes the "check" command: it loads the configuration, discovers
// sources, runs the analysis (with the progress view when enabled) and renders
// the diagnostics. Error-severity diagnostics yield exit status 1.
func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd.Context())
	target := args[0]

	cfg, err := loadConfig(cmd, target)
	if err != nil {
		return err
	}
	out, err := readOutputFlags(cmd, cfg)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}

	flags := readFlags(cmd.Flags())
	opts.Jobs = flags.Int("jobs")
	rulesStr := flags.String("rules")
	opts.ExportPath = flags.String("export-model")
	opts.ExportContent = flags.Bool("export-content")
	uiStr := flags.String("ui")
	if err := flags.Err(); err != nil {
		return err
	}
	if opts.Rules, err = parseRuleList(rulesStr); err != nil {
		return err
	}
	mode, err := parseSwitch("ui", uiStr)
	if err != nil {
		return err
	}

	files, err := driver.Discover(target, cfg)
	if err != nil {
		return err
	}
	opts.Logger.Debug("sources discovered", zap.String("target", target), zap.Int("files", len(files)))

	var res *driver.Result
	if useProgressView(mode, len(files)) {
		res, err = runCheckWithUI(cmd.Context(), "globalint check "+target, files, opts)
	} else {
		res, err = driver.Check(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}
	return render(cmd, res, out, "check", target)
}

// loadConfig reads --config or discovers globalint.toml from the target.
func loadConfig(cmd *cobra.Command, target string) (*config.Config, error) {
	path := ""
	if cmd.Flags().Lookup("config") != nil {
		flags := readFlags(cmd.Flags())
		if path = flags.String("config"); flags.Err() != nil {
			return nil, flags.Err()
		}
	}
	if path != "" {
		return config.Load(path)
	}
	if target == "" {
		target = "."
	}
	if st, err := os.Stat(target); err == nil && !st.IsDir() {
		target = filepath.Dir(target)
	}
	return config.Discover(target)
}

// parseRuleList accepts short or full rule ids separated by commas.
func parseRuleList(s string) ([]rules.ID, error) {
	var out []rules.ID
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, ok := rules.Parse(part)
		if !ok {
			return nil, fmt.Errorf("unknown rule %q (see `globalint rules`)", part)
		}
		out = append(out, id)
	}
	return out, nil
}
