package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"globalint/internal/prof"
)

// setupProfiling starts the profilers requested by the persistent flags.
// The returned cleanup is safe to call multiple times.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := readFlags(cmd.Root().PersistentFlags())
	opts := prof.Options{
		CPU:   flags.String("cpu-profile"),
		Mem:   flags.String("mem-profile"),
		Trace: flags.String("runtime-trace"),
	}
	if err := flags.Err(); err != nil {
		return nil, err
	}
	if !opts.Enabled() {
		return func() {}, nil
	}

	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	cleaned := false
	return func() {
		if cleaned {
			return
		}
		cleaned = true
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write profiles: %v\n", err)
		}
	}, nil
}
