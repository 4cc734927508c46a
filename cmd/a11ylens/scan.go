package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"a11ylens/internal/batch"
	"a11ylens/internal/dom"
	"a11ylens/internal/findfmt"
	"a11ylens/internal/inspect"
	"a11ylens/internal/observ"
	"a11ylens/internal/overlay"
	"a11ylens/internal/refresh"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] <snapshot|directory>",
	Short: "Inspect a snapshot, or every snapshot in a directory",
	Long: `Run one inspection cycle over a snapshot file (.json, .msgpack, .html)
or over all snapshot files within a directory, print the findings and
optionally render the overlay as PNG.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	scanCmd.Flags().String("png", "", "write the overlay of a single snapshot to this file")
	scanCmd.Flags().String("out-dir", "", "write one overlay PNG per snapshot into this directory (directory scans)")
	scanCmd.Flags().String("fail-on", "none", "exit with status 1 when a finding reaches this severity (none|info|warning|error)")
	scanCmd.Flags().Int("jobs", 0, "max parallel workers for directory scans (0=auto)")
	scanCmd.Flags().String("ui", "auto", "progress UI for directory scans (auto|on|off)")
	scanCmd.Flags().Bool("show-path", true, "list the reconstructed tab order (pretty)")
	scanCmd.Flags().Bool("show-links", false, "list label links (pretty)")
	scanCmd.Flags().Int("max", 0, "maximum number of findings in json output (0=all)")
	addRuleFlags(scanCmd)
}

// scanOutput carries the flags that shape printed results.
type scanOutput struct {
	format    findfmt.Format
	color     bool
	showPath  bool
	showLinks bool
	max       int
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	format, err := findfmt.ParseFormat(s.cfg.Output.Format)
	if err != nil {
		return err
	}
	out := scanOutput{format: format, color: s.color}
	if out.showPath, err = cmd.Flags().GetBool("show-path"); err != nil {
		return fmt.Errorf("failed to get show-path flag: %w", err)
	}
	if out.showLinks, err = cmd.Flags().GetBool("show-links"); err != nil {
		return fmt.Errorf("failed to get show-links flag: %w", err)
	}
	if out.max, err = cmd.Flags().GetInt("max"); err != nil {
		return fmt.Errorf("failed to get max flag: %w", err)
	}

	st, err := os.Stat(target)
	if err != nil {
		return err
	}
	if st.IsDir() {
		return scanDirectory(cmd, target, s, out)
	}
	return scanSnapshot(cmd, target, s, out)
}

func newRenderer(s *settings) *overlay.Renderer {
	r := overlay.NewRenderer()
	r.FontSize = s.cfg.Overlay.FontSize
	return r
}

func scanSnapshot(cmd *cobra.Command, path string, s *settings, out scanOutput) error {
	if !dom.IsSnapshotFile(path) {
		return fmt.Errorf("%s: %w", path, dom.ErrUnknownFormat)
	}
	pngPath, err := cmd.Flags().GetString("png")
	if err != nil {
		return fmt.Errorf("failed to get png flag: %w", err)
	}

	loop := &refresh.Loop{
		Source:   dom.FileSource{Path: path, Viewport: s.viewport},
		Renderer: newRenderer(s),
		Options:  s.opts,
	}
	if pngPath != "" {
		canvas, err := overlay.NewCanvas(s.viewport.Width, s.viewport.Height)
		if err != nil {
			return err
		}
		defer canvas.Close()
		loop.Surface = canvas
		loop.Sink = refresh.PNGSink{Path: pngPath}
	}

	stats := loop.RunCycle(cmd.Context())
	if stats.Err != nil {
		return stats.Err
	}

	stdout := cmd.OutOrStdout()
	if err := writeResult(stdout, path, stats.Result, out); err != nil {
		return err
	}
	if s.timings {
		printPhaseTimings(cmd.ErrOrStderr(), stats.Phases)
	}
	if pngPath != "" && !s.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "overlay written to %s\n", pngPath)
	}
	return checkFailOn(s, stats.Result)
}

func scanDirectory(cmd *cobra.Command, dir string, s *settings, out scanOutput) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	opts := batch.Options{
		Jobs:     jobs,
		Viewport: s.viewport,
		Inspect:  s.opts,
		FontSize: s.cfg.Overlay.FontSize,
		OutDir:   outDir,
	}

	var results []batch.FileResult
	// the progress view owns stdout, so it only runs for pretty output
	if out.format == findfmt.FormatPretty && shouldUseTUI(mode, s.quiet) {
		files, err := batch.ListSnapshots(dir)
		if err != nil {
			return err
		}
		results, err = runScanWithUI(cmd.Context(), "scanning "+dir, dir, files, opts)
		if err != nil {
			return err
		}
	} else {
		results, err = batch.ScanDir(cmd.Context(), dir, opts)
		if err != nil {
			return err
		}
	}
	if len(results) == 0 {
		if !s.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "no snapshot files in %s\n", dir)
		}
		return nil
	}

	if err := writeResults(cmd.OutOrStdout(), results, out); err != nil {
		return err
	}

	if s.timings {
		var total observ.Report
		for _, r := range results {
			total.Add(r.Stats.Phases)
		}
		printPhaseTimings(cmd.ErrOrStderr(), total)
	}

	failed := 0
	var threshold error
	for _, r := range results {
		if err := r.Err(); err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Rel, err)
			continue
		}
		if threshold == nil {
			threshold = checkFailOn(s, r.Result())
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d snapshots failed", failed, len(results))
	}
	return threshold
}

// writeResult prints one result in the selected format.
func writeResult(w io.Writer, source string, res *inspect.Result, out scanOutput) error {
	switch out.format {
	case findfmt.FormatShort:
		_, err := io.WriteString(w, findfmt.Short(res))
		return err
	case findfmt.FormatJSON:
		return findfmt.JSON(w, res, findfmt.JSONOpts{Source: source, Max: out.max, Indent: true})
	default:
		return findfmt.Pretty(w, res, findfmt.PrettyOpts{
			Color:     out.color,
			Title:     source,
			ShowPath:  out.showPath,
			ShowLinks: out.showLinks,
		})
	}
}

// writeResults prints a directory scan. JSON output is a single array so the
// stream stays one document.
func writeResults(w io.Writer, results []batch.FileResult, out scanOutput) error {
	if out.format == findfmt.FormatJSON {
		docs := make([]findfmt.Output, 0, len(results))
		for _, r := range results {
			if r.Result() == nil {
				continue
			}
			docs = append(docs, findfmt.BuildOutput(r.Result(), findfmt.JSONOpts{Source: r.Rel, Max: out.max}))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}
	for i, r := range results {
		if r.Result() == nil {
			continue
		}
		if out.format == findfmt.FormatShort {
			if _, err := fmt.Fprintf(w, "== %s\n", filepath.ToSlash(r.Rel)); err != nil {
				return err
			}
		} else if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeResult(w, r.Rel, r.Result(), out); err != nil {
			return err
		}
	}
	return nil
}

// checkFailOn turns a threshold hit into a silent exit status 1.
func checkFailOn(s *settings, res *inspect.Result) error {
	if !s.failOnOK || res == nil {
		return nil
	}
	if res.Findings.HasSeverity(s.failOn) {
		return exitError{code: 1}
	}
	return nil
}
