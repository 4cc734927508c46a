package findfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"a11ylens/internal/finding"
	"a11ylens/internal/inspect"
)

type palette struct {
	sev    map[finding.Severity]*color.Color
	code   *color.Color
	dim    *color.Color
	header *color.Color
	sus    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[finding.Severity]*color.Color{
			finding.SevError:   color.New(color.FgRed, color.Bold),
			finding.SevWarning: color.New(color.FgYellow, color.Bold),
			finding.SevInfo:    color.New(color.FgCyan),
		},
		code:   color.New(color.FgMagenta),
		dim:    color.New(color.Faint),
		header: color.New(color.Bold, color.Underline),
		sus:    color.New(color.FgRed),
	}
	all := []*color.Color{p.code, p.dim, p.header, p.sus}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty prints one line per finding:
//
//	<SEV> <CODE> <element> <label or title>
//
// then, on request, label links and the tab order. Findings are printed in
// bag order; Inspect leaves the bag sorted.
func Pretty(w io.Writer, res *inspect.Result, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	bw := &errWriter{w: w}

	if opts.Title != "" {
		bw.printf("%s\n", p.header.Sprint(opts.Title))
	}
	if res == nil {
		return bw.err
	}

	width := 0
	for _, f := range res.Findings.Items() {
		width = max(width, len(f.Target.String()))
	}
	for _, f := range res.Findings.Items() {
		sev := f.Severity()
		text := f.Label
		if text == "" {
			text = f.Code.Title()
		}
		bw.printf("%s %s %-*s  %s\n",
			p.sev[sev].Sprintf("%-7s", sev),
			p.code.Sprint(f.Code.ID()),
			width, f.Target.String(),
			text)
	}

	if opts.ShowLinks && len(res.Links) > 0 {
		bw.printf("%s\n", p.header.Sprint("label links"))
		for _, l := range res.Links {
			bw.printf("  %s → %s\n", l.From, l.To)
		}
	}

	if opts.ShowPath && res.Path.Len() > 0 {
		mode := "document order"
		if res.UseHints {
			mode = "tabindex"
		}
		bw.printf("%s %s\n", p.header.Sprint("tab order"), p.dim.Sprintf("(%s)", mode))
		for i, seg := range res.Segments() {
			hint := "no tabindex"
			if h := seg.Label; h != "" {
				hint = "tabindex=" + h
			}
			line := fmt.Sprintf("%3d. %s [%s]", i+1, seg.Stop.Target, hint)
			if seg.Suspect() {
				line += " " + p.sus.Sprint("?")
			}
			bw.printf("%s\n", line)
		}
	}

	bw.printf("%s\n", p.dim.Sprint(Tally(res)))
	return bw.err
}

// Tally summarises a result in one line.
func Tally(res *inspect.Result) string {
	counts := map[finding.Severity]int{}
	for _, f := range res.Findings.Items() {
		counts[f.Severity()]++
	}
	parts := []string{
		plural(res.Findings.Len(), "finding"),
		plural(counts[finding.SevError], "error"),
		plural(counts[finding.SevWarning], "warning"),
		plural(res.Path.Len(), "tab stop"),
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// errWriter keeps the first write error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
