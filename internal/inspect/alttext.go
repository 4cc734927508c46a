package inspect

import (
	"a11ylens/internal/dom"
	"a11ylens/internal/finding"
)

// AltText flags images without an alt attribute (red) and, when
// opts.EmptyAlt is set, images whose alt is the empty string.
func AltText(q dom.Query, opts Options) Output {
	var rep finding.SliceReporter
	for _, img := range candidates(q, dom.Tag("img")) {
		alt, ok := img.Attr("alt")
		switch {
		case !ok:
			rep.Report(finding.AltMissing, finding.Red, img, "alt?")
		case alt == "" && opts.EmptyAlt != finding.NoColor:
			rep.Report(finding.AltEmpty, opts.EmptyAlt, img, `alt=""`)
		}
	}
	return Output{Findings: rep.Items}
}
