package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"a11ylens/internal/dom"
	"a11ylens/internal/findfmt"
	"a11ylens/internal/overlay"
	"a11ylens/internal/refresh"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <snapshot>",
	Short: "Re-inspect a snapshot on a fixed period and keep its overlay current",
	Long: `Watch re-reads the snapshot file every interval, so a collector that keeps
rewriting it is followed as a live document. Every cycle re-renders the
overlay PNG from scratch.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("interval", refresh.DefaultInterval, "refresh period")
	watchCmd.Flags().String("png", "", "overlay output (default: <snapshot>.overlay.png)")
	watchCmd.Flags().String("ui", "auto", "live status view (auto|on|off)")
	addRuleFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !dom.IsSnapshotFile(path) {
		return fmt.Errorf("%s: %w", path, dom.ErrUnknownFormat)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	interval, err := s.cfg.IntervalDuration()
	if err != nil {
		return err
	}
	pngPath, err := cmd.Flags().GetString("png")
	if err != nil {
		return fmt.Errorf("failed to get png flag: %w", err)
	}
	if pngPath == "" {
		pngPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".overlay.png"
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	canvas, err := overlay.NewCanvas(s.viewport.Width, s.viewport.Height)
	if err != nil {
		return err
	}
	defer canvas.Close()

	loop := &refresh.Loop{
		Interval: interval,
		Source:   dom.FileSource{Path: path, Viewport: s.viewport},
		Surface:  canvas,
		Renderer: newRenderer(s),
		Options:  s.opts,
		Sink:     refresh.PNGSink{Path: pngPath},
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if shouldUseTUI(mode, s.quiet) {
		return runWatchWithUI(ctx, fmt.Sprintf("watching %s → %s", path, pngPath), loop)
	}

	if !s.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "watching %s every %s, overlay %s\n", path, interval, pngPath)
	}
	events := make(chan refresh.CycleStats, 16)
	loop.Events = events
	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()

	printer := cyclePrinter{out: cmd.OutOrStdout(), quiet: s.quiet, timings: s.timings, errOut: cmd.ErrOrStderr()}
	for st := range events {
		printer.print(st)
	}
	return ignoreCanceled(<-errCh)
}

// cyclePrinter logs cycles whose outcome differs from the previous one, so
// a steady document produces a single line.
type cyclePrinter struct {
	out, errOut io.Writer
	quiet       bool
	timings     bool
	last        string
}

func (p *cyclePrinter) print(st refresh.CycleStats) {
	var line string
	if st.Err != nil {
		line = "error: " + st.Err.Error()
	} else {
		line = findfmt.Tally(st.Result)
	}
	if p.timings {
		printPhaseTimings(p.errOut, st.Phases)
	}
	if line == p.last || (p.quiet && st.Err == nil) {
		return
	}
	p.last = line
	fmt.Fprintf(p.out, "[%s] #%d %s (%s)\n", st.Started.Format(time.TimeOnly), st.Seq, line, st.Duration.Round(time.Millisecond))
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
