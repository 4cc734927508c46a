package batch

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"a11ylens/internal/dom"
	"a11ylens/internal/inspect"
	"a11ylens/internal/overlay"
	"a11ylens/internal/refresh"
)

// Status is the progress of one file.
type Status uint8

const (
	StatusQueued Status = iota
	StatusScanning
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusScanning:
		return "scanning"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	}
	return "queued"
}

// Event reports a status change of one file.
type Event struct {
	File     string
	Status   Status
	Findings int
}

// Options configures ScanDir.
type Options struct {
	Jobs     int // 0 - GOMAXPROCS
	Viewport dom.Viewport
	Inspect  inspect.Options
	FontSize float64
	// OutDir receives one PNG overlay per snapshot when set.
	OutDir string
	// Events receives progress; ScanDir does not close it.
	Events chan<- Event
}

// FileResult is the outcome for one snapshot file.
type FileResult struct {
	Path  string
	Rel   string // relative to the scanned directory
	PNG   string // rendered overlay, "" when not rendered
	Stats refresh.CycleStats
}

// Result returns the inspection result, nil when the file failed to load.
func (r FileResult) Result() *inspect.Result { return r.Stats.Result }

// Err returns the per-file error.
func (r FileResult) Err() error { return r.Stats.Err }

// ListSnapshots returns the loadable snapshot files under dir, sorted.
func ListSnapshots(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if dom.IsSnapshotFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ScanDir inspects every snapshot under dir in parallel. A file that fails
// to load or render is reported in its FileResult; only listing errors and
// cancellation fail the scan. Results follow the sorted path order.
func ScanDir(ctx context.Context, dir string, opts Options) ([]FileResult, error) {
	files, err := ListSnapshots(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	for _, f := range files {
		opts.emit(ctx, Event{File: f, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts.emit(gctx, Event{File: path, Status: StatusScanning})
			res, err := scanFile(gctx, dir, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			ev := Event{File: path, Status: StatusDone, Findings: res.Stats.Findings}
			if res.Err() != nil {
				ev.Status = StatusError
			}
			opts.emit(gctx, ev)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanFile(ctx context.Context, dir, path string, opts Options) (FileResult, error) {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = path
	}
	out := FileResult{Path: path, Rel: rel}

	loop := &refresh.Loop{
		Source:   dom.FileSource{Path: path, Viewport: opts.Viewport},
		Renderer: &overlay.Renderer{FontSize: opts.FontSize, LineWidth: 1},
		Options:  opts.Inspect,
	}
	if opts.OutDir != "" {
		canvas, err := overlay.NewCanvas(1, 1)
		if err != nil {
			return out, err
		}
		defer canvas.Close()
		out.PNG = OverlayPath(opts.OutDir, rel)
		loop.Surface = canvas
		loop.Sink = refresh.PNGSink{Path: out.PNG}
	}
	out.Stats = loop.RunCycle(ctx)
	if out.Stats.Err != nil {
		out.PNG = ""
	}
	return out, nil
}

// OverlayPath names the PNG for a snapshot. The source extension stays in
// the name, so page.html and page.json do not overwrite each other.
func OverlayPath(outDir, rel string) string {
	return filepath.Join(outDir, rel+".png")
}

func (o Options) emit(ctx context.Context, ev Event) {
	if o.Events == nil {
		return
	}
	select {
	case o.Events <- ev:
	case <-ctx.Done():
	}
}
