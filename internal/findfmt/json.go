package findfmt

import (
	"encoding/json"
	"io"

	"a11ylens/internal/dom"
	"a11ylens/internal/inspect"
)

// FindingJSON is one finding in JSON output.
type FindingJSON struct {
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Severity string   `json:"severity"`
	Color    string   `json:"color"`
	Label    string   `json:"label"`
	Element  string   `json:"element"`
	Index    int      `json:"index"`
	Box      dom.Rect `json:"box"`
}

// LinkJSON is a label→field link.
type LinkJSON struct {
	From      string `json:"from"`
	FromIndex int    `json:"from_index"`
	To        string `json:"to"`
	ToIndex   int    `json:"to_index"`
}

// StopJSON is one tab stop in visiting order.
type StopJSON struct {
	Element string     `json:"element"`
	Index   int        `json:"index"`
	Hint    *int       `json:"tabindex,omitempty"`
	Suspect bool       `json:"suspect,omitempty"`
	Anchor  [2]float64 `json:"anchor"`
}

// Output is the root of the JSON document.
type Output struct {
	Source   string        `json:"source,omitempty"`
	Findings []FindingJSON `json:"findings"`
	Links    []LinkJSON    `json:"links"`
	Path     []StopJSON    `json:"path"`
	UseHints bool          `json:"use_hints"`
	Count    int           `json:"count"`
}

// BuildOutput assembles the JSON document without serialising it.
func BuildOutput(res *inspect.Result, opts JSONOpts) Output {
	out := Output{
		Source:   opts.Source,
		Findings: []FindingJSON{},
		Links:    []LinkJSON{},
		Path:     []StopJSON{},
	}
	if res == nil {
		return out
	}
	out.UseHints = res.UseHints
	out.Count = res.Findings.Len()

	items := res.Findings.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for _, f := range items {
		out.Findings = append(out.Findings, FindingJSON{
			Code:     f.Code.ID(),
			Title:    f.Code.Title(),
			Severity: f.Severity().String(),
			Color:    f.Color.String(),
			Label:    f.Label,
			Element:  f.Target.String(),
			Index:    f.Index(),
			Box:      f.Target.Box,
		})
	}
	for _, l := range res.Links {
		out.Links = append(out.Links, LinkJSON{
			From: l.From.String(), FromIndex: l.From.Index,
			To: l.To.String(), ToIndex: l.To.Index,
		})
	}
	for _, seg := range res.Segments() {
		st := StopJSON{
			Element: seg.Stop.Target.String(),
			Index:   seg.Stop.Index,
			Suspect: seg.Suspect(),
			Anchor:  [2]float64{seg.To.X, seg.To.Y},
		}
		if seg.Stop.Rank.Finite {
			v := seg.Stop.Rank.Value
			st.Hint = &v
		}
		out.Path = append(out.Path, st)
	}
	return out
}

// JSON writes the result as a JSON document.
func JSON(w io.Writer, res *inspect.Result, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(BuildOutput(res, opts))
}
