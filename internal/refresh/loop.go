package refresh

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"a11ylens/internal/dom"
	"a11ylens/internal/finding"
	"a11ylens/internal/inspect"
	"a11ylens/internal/observ"
	"a11ylens/internal/overlay"
	"a11ylens/internal/trace"
)

// DefaultInterval is the refresh period used when Loop.Interval is not set.
const DefaultInterval = 500 * time.Millisecond

// CycleStats summarises one cycle.
type CycleStats struct {
	Seq      uint64
	Started  time.Time
	Duration time.Duration
	Findings int
	Links    int
	Stops    int
	UseHints bool
	Counts   map[finding.Color]int
	Phases   observ.Report
	Result   *inspect.Result // nil when the cycle failed before inspection
	Err      error
}

// Loop re-inspects a document source on a fixed period.
type Loop struct {
	Interval time.Duration
	Source   dom.Source
	Surface  Frame
	Renderer *overlay.Renderer
	Options  inspect.Options
	Sink     Sink              // optional
	Events   chan<- CycleStats // optional; Run closes it on return

	seq uint64
}

// Run performs a cycle immediately and then one per tick until ctx is done.
// A failing cycle is reported through Events and does not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	if l.Events != nil {
		defer close(l.Events)
	}
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeRun, "watch", trace.ParentSpan(ctx))
	ctx = trace.WithParent(ctx, span.ID())
	defer func() { span.WithExtra("cycles", strconv.FormatUint(l.seq, 10)).End("") }()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.publish(ctx, l.RunCycle(ctx))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.publish(ctx, l.RunCycle(ctx))
		}
	}
}

func (l *Loop) publish(ctx context.Context, st CycleStats) {
	if l.Events == nil {
		return
	}
	select {
	case l.Events <- st:
	case <-ctx.Done():
	}
}

// RunCycle loads the document, sizes the surface to its viewport, inspects,
// renders and hands the frame to the sink.
func (l *Loop) RunCycle(ctx context.Context) (st CycleStats) {
	l.seq++
	st = CycleStats{Seq: l.seq, Started: time.Now()}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeCycle, "cycle", trace.ParentSpan(ctx))
	ctx = trace.WithParent(ctx, span.ID())
	timer := observ.NewTimer()
	phase := func(name string) func(note string) {
		idx := timer.Begin(name)
		ps := trace.Begin(tr, trace.ScopeCycle, name, span.ID())
		return func(note string) {
			timer.End(idx, note)
			ps.End(note)
		}
	}
	defer func() {
		st.Duration = time.Since(st.Started)
		st.Phases = timer.Report()
		detail := "ok"
		if st.Err != nil {
			detail = st.Err.Error()
		}
		span.WithExtra("seq", strconv.FormatUint(st.Seq, 10)).WithCount("findings", st.Findings).End(detail)
	}()

	done := phase("load")
	snap, err := l.Source.Snapshot(ctx)
	if err != nil {
		done("failed")
		st.Err = fmt.Errorf("failed to load snapshot: %w", err)
		return st
	}
	done(strconv.Itoa(snap.Len()) + " elements")

	if l.Surface != nil {
		w, h := frameSize(snap.Viewport)
		if err := l.Surface.Resize(w, h); err != nil {
			st.Err = fmt.Errorf("failed to resize overlay: %w", err)
			return st
		}
	}

	done = phase("inspect")
	res := inspect.Inspect(ctx, snap, l.Options)
	done("")
	st.fill(res)

	if l.Surface == nil {
		return st
	}
	done = phase("render")
	l.renderer().Render(l.Surface, res, snap.Viewport)
	done("")

	if l.Sink != nil {
		done = phase("sink")
		err := l.Sink.Write(ctx, l.Surface)
		done("")
		if err != nil {
			st.Err = err
		}
	}
	return st
}

func (l *Loop) renderer() *overlay.Renderer {
	if l.Renderer == nil {
		l.Renderer = overlay.NewRenderer()
	}
	return l.Renderer
}

func (st *CycleStats) fill(res *inspect.Result) {
	st.Result = res
	st.Findings = res.Findings.Len()
	st.Links = len(res.Links)
	st.Stops = res.Path.Len()
	st.UseHints = res.UseHints
	st.Counts = res.Findings.Counts()
}

// DefaultViewport sizes frames of snapshots that carry no viewport.
var DefaultViewport = dom.Viewport{Width: 1280, Height: 800}

func frameSize(vp dom.Viewport) (int, int) {
	w, h := vp.Width, vp.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultViewport.Width, DefaultViewport.Height
	}
	return w, h
}
