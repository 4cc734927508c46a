package inspect

import (
	"strings"

	"a11ylens/internal/dom"
	"a11ylens/internal/finding"
)

// Labels checks label/field association in one pass over the document.
//
// A visible label whose for attribute names an element with a layout box
// becomes a Link, even when that element is visibility:hidden. A dangling reference is red, a missing one orange. Fields (except
// buttons and image inputs) need an id, and some label anywhere in the
// document must reference it.
func Labels(q dom.Query, _ Options) Output {
	var (
		rep   finding.SliceReporter
		links []Link
	)
	for _, label := range candidates(q, dom.Tag("label")) {
		ref := labelFor(label)
		if ref == "" {
			rep.Report(finding.LabelNoFor, finding.Orange, label, "for?")
			continue
		}
		if target := q.ByID(ref); target != nil && target.LayoutVisible {
			links = append(links, Link{From: label, To: target})
			continue
		}
		rep.Report(finding.LabelBrokenFor, finding.Red, label, "for "+ref+"?")
	}

	referenced := make(map[string]bool)
	for _, label := range q.All(dom.Tag("label")) {
		if ref := labelFor(label); ref != "" {
			referenced[ref] = true
		}
	}
	for _, field := range candidates(q, labelledField) {
		id := field.ID()
		switch {
		case id == "":
			rep.Report(finding.FieldNoID, finding.Yellow, field, "id?")
		case !referenced[id]:
			rep.Report(finding.FieldUnlabelled, finding.Orange, field, "label?")
		}
	}
	return Output{Findings: rep.Items, Links: links}
}

func labelFor(label *dom.Element) string {
	v, _ := label.Attr("for")
	return strings.TrimSpace(v)
}

// labelledField matches form fields that need a label.
func labelledField(e *dom.Element) bool {
	switch e.Tag {
	case "select", "textarea":
		return true
	case "input":
		typ, _ := e.Attr("type")
		switch dom.Fold(typ) {
		case "image", "button", "submit", "reset", "hidden":
			return false
		}
		return true
	}
	return false
}
