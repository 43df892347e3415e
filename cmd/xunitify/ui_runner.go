package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"xunitify/internal/pipeline"
	"xunitify/internal/rewrite"
	"xunitify/internal/ui"
)

type runOutcome struct {
	report pipeline.Report
	err    error
}

// runWithUI runs the pipeline in the background and renders its events.
func runWithUI(ctx context.Context, title string, files []string, engine *rewrite.Engine, opts pipeline.Options) (pipeline.Report, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		opts.Progress = pipeline.ChannelSink{Ch: events}
		report, err := pipeline.New(nil, engine, opts).Run(ctx, files)
		outcomeCh <- runOutcome{report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог завершиться раньше: дочитываем события, чтобы конвейер не встал
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
