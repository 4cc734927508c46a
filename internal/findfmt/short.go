package findfmt

import (
	"fmt"
	"strings"

	"a11ylens/internal/inspect"
)

// Short renders a result as stable plain text, one record per line:
//
//	F <index> <code> <color> <element> <label>
//	L <from-index> <to-index>
//	P <index> <rank> <color>
func Short(res *inspect.Result) string {
	if res == nil {
		return ""
	}
	var sb strings.Builder
	for _, f := range res.Findings.Items() {
		fmt.Fprintf(&sb, "F %d %s %s %s %q\n", f.Index(), f.Code.ID(), f.Color, f.Target, f.Label)
	}
	for _, l := range res.Links {
		fmt.Fprintf(&sb, "L %d %d\n", l.From.Index, l.To.Index)
	}
	for _, seg := range res.Segments() {
		fmt.Fprintf(&sb, "P %d %s %s\n", seg.Stop.Index, seg.Stop.Rank, seg.Color)
	}
	return sb.String()
}
