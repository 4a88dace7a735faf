package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"globalint/internal/trace"
)

// setupTracing builds the tracer selected by the --trace flags and puts it
// into the command context.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags := readFlags(cmd.Root().PersistentFlags())
	traceOutput := flags.String("trace")
	levelStr := flags.String("trace-level")
	modeStr := flags.String("trace-mode")
	ringSize := flags.Int("trace-ring-size")
	heartbeatInterval := flags.Duration("trace-heartbeat")
	if err := flags.Err(); err != nil {
		return nil, err
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace without a level means phases
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	var heartbeat *trace.Heartbeat
	if heartbeatInterval > 0 {
		heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	}

	cleanup := func() {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}

// dumpTraceOnPanic writes the ring tracer contents to stderr and re-panics.
// Use as `defer dumpTraceOnPanic(ctx)` at the top of a command.
func dumpTraceOnPanic(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	for _, ring := range trace.Rings(trace.FromContext(ctx)) {
		fmt.Fprintln(os.Stderr, "--- trace (most recent events) ---")
		_ = ring.Dump(os.Stderr, trace.FormatText)
	}
	panic(r)
}
