package inspect

import (
	"a11ylens/internal/dom"
	"a11ylens/internal/finding"
)

// AccessKeys marks every visible element carrying an accesskey.
func AccessKeys(q dom.Query, _ Options) Output {
	var rep finding.SliceReporter
	for _, e := range candidates(q, dom.HasAttr("accesskey")) {
		key, _ := e.Attr("accesskey")
		rep.Report(finding.AccessKey, finding.Silver, e, "K="+key)
	}
	return Output{Findings: rep.Items}
}
