package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"globalint/internal/driver"
	"globalint/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink(events)
		res, err := driver.Check(ctx, files, opts)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the view may quit early (q, ctrl+c); the analysis still sends until it closes the channel
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if outcome.err != nil {
		return nil, outcome.err
	}
	if uiErr != nil {
		loggerFrom(ctx).Debug("progress view failed", zap.Error(uiErr))
	}
	return outcome.result, nil
}
