package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"a11ylens/internal/batch"
	"a11ylens/internal/refresh"
	"a11ylens/internal/ui"
)

type scanOutcome struct {
	results []batch.FileResult
	err     error
}

// runScanWithUI scans dir while a progress view follows the batch events.
func runScanWithUI(ctx context.Context, title, dir string, files []string, opts batch.Options) ([]batch.FileResult, error) {
	events := make(chan batch.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		opts.Events = events
		res, err := batch.ScanDir(ctx, dir, opts)
		outcomeCh <- scanOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// a view closed early abandons the remaining files
	cancel()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// runWatchWithUI runs the loop until ctx is done or the user quits the view.
func runWatchWithUI(ctx context.Context, title string, loop *refresh.Loop) error {
	events := make(chan refresh.CycleStats, 16)
	loop.Events = events

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()

	program := tea.NewProgram(ui.NewWatchModel(title, events), tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// quitting the view stops the loop
	cancel()
	loopErr := <-errCh
	if uiErr != nil {
		return uiErr
	}
	return ignoreCanceled(loopErr)
}
