package inspect

import (
	"context"

	"a11ylens/internal/dom"
	"a11ylens/internal/finding"
	"a11ylens/internal/trace"
)

// Result is the diagnosis of one cycle.
type Result struct {
	Findings *finding.Bag
	Links    []Link
	Path     Path
	UseHints bool
}

// Segments returns the arrows of the tab path.
func (r *Result) Segments() []Segment {
	return r.Path.Segments(r.UseHints)
}

// Inspect runs every enabled rule over q and unions their outputs.
// Findings are sorted by document order.
func Inspect(ctx context.Context, q dom.Query, opts Options) *Result {
	tr := trace.FromContext(ctx)
	parent := trace.ParentSpan(ctx)

	res := &Result{
		Findings: finding.NewBag(0),
		Path:     Path{Origin: opts.Origin},
	}
	for _, rule := range rules {
		if opts.Skip[rule.Name] {
			continue
		}
		span := trace.Begin(tr, trace.ScopeRule, "rule:"+rule.Name, parent)
		out := rule.Run(q, opts)
		for _, f := range out.Findings {
			trace.Point(tr, trace.ScopeElement, f.Code.ID(), f.Target.String()+" "+f.Label, span.ID())
		}
		res.merge(out)
		span.WithCount("findings", len(out.Findings)).
			WithCount("links", len(out.Links)).
			WithCount("stops", out.Path.Len()).
			End("")
	}
	res.Findings.Sort()
	return res
}

func (r *Result) merge(out Output) {
	r.Findings.AddAll(out.Findings)
	r.Links = append(r.Links, out.Links...)
	if len(out.Path.Stops) > 0 {
		r.Path.Stops = append(r.Path.Stops, out.Path.Stops...)
	}
	r.UseHints = r.UseHints || out.UseHints
}
