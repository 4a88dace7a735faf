package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"globalint/internal/driver"
)

var checkModelCmd = &cobra.Command{
	Use:   "check-model [flags] <snapshot.msgpack|.json|.yaml>",
	Short: "Run the rules over a symbol model exported by a host",
	Long: `Run the rules over a snapshot of call sites, signatures and folded constants
written by a host that owns a full semantic model (or by check --export-model).`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckModel,
}

func init() {
	addOutputFlags(checkModelCmd)
	checkModelCmd.Flags().String("config", "", "path to globalint.toml (default: search upward from the working directory)")
}

func runCheckModel(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic(cmd.Context())
	path := args[0]

	cfg, err := loadConfig(cmd, "")
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
	res, err := driver.CheckModel(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("check-model: %w", err)
	}
	return render(cmd, res, out, "check-model", path)
}
