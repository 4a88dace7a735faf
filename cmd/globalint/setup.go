package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKey struct{}

var cleanups []func()

// setupCommand runs before every subcommand and installs the color mode,
// the logger, tracing and profiling.
func setupCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Context() == nil {
		cmd.SetContext(context.Background())
	}
	flags := readFlags(cmd.Root().PersistentFlags())
	colorMode := flags.String("color")
	levelStr := flags.String("log-level")
	if err := flags.Err(); err != nil {
		return err
	}
	if err := applyColorMode(colorMode); err != nil {
		return err
	}

	log, err := newLogger(levelStr)
	if err != nil {
		return err
	}
	cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, log))
	cleanups = append(cleanups, func() { _ = log.Sync() })

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)

	stopProfiles, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProfiles)
	return nil
}

// runCleanups releases what setupCommand acquired. It runs after Execute
// because post-run hooks are skipped when a command fails.
func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

func loggerFrom(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return log
	}
	return zap.NewNop()
}

// newLogger builds the operational logger; it writes to stderr so that
// stdout carries only diagnostics.
func newLogger(level string) (*zap.Logger, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" || level == "off" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	if !color.NoColor {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg.Build()
}

func applyColorMode(value string) error {
	mode, err := parseSwitch("color", value)
	if err != nil {
		return err
	}
	color.NoColor = !mode.resolve(func() bool {
		return os.Getenv("NO_COLOR") == "" && isTerminal(os.Stdout)
	})
	return nil
}
