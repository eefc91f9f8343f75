package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bwqlint/internal/driver"
	"bwqlint/internal/ui"
)

type lintOutcome struct {
	reports []*driver.Report
	err     error
}

// runLintWithUI lints files while a progress view renders on stdout. The
// view exits once the driver closes the event stream.
func runLintWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]*driver.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = ui.ChannelSink(events)
		reports, err := driver.LintPaths(ctx, files, optsCopy)
		outcomeCh <- lintOutcome{reports: reports, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	final, uiErr := program.Run()
	if uiErr != nil || ui.Aborted(final) {
		// the view quit before the run finished; stop linting
		cancel()
	}
	// keep the driver unblocked until it closes the stream
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.reports, uiErr
	}
	return outcome.reports, outcome.err
}
