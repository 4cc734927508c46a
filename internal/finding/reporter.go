package finding

import "a11ylens/internal/dom"

// Reporter receives findings as rules produce them.
type Reporter interface {
	Report(code Code, color Color, target *dom.Element, label string)
}

// BagReporter writes into a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, color Color, target *dom.Element, label string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(New(code, color, target, label))
}

// SliceReporter appends to a slice; rules use it to build their output.
type SliceReporter struct{ Items []Finding }

func (r *SliceReporter) Report(code Code, color Color, target *dom.Element, label string) {
	r.Items = append(r.Items, New(code, color, target, label))
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Color, *dom.Element, string) {}
