package finding

import "a11ylens/internal/dom"

// Finding is one diagnosed issue tied to one element.
type Finding struct {
	Code   Code
	Color  Color
	Label  string
	Target *dom.Element
}

// New builds a finding.
func New(code Code, color Color, target *dom.Element, label string) Finding {
	return Finding{Code: code, Color: color, Label: label, Target: target}
}

// Severity returns the tier derived from the colour.
func (f Finding) Severity() Severity {
	return SeverityOf(f.Color)
}

// Index returns the document index of the target, or -1.
func (f Finding) Index() int {
	if f.Target == nil {
		return -1
	}
	return f.Target.Index
}
