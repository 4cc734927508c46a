package finding

import "sort"

// Bag collects the findings of one cycle.
type Bag struct {
	items []Finding
}

func NewBag(capacity int) *Bag {
	if capacity < 0 {
		capacity = 0
	}
	return &Bag{items: make([]Finding, 0, capacity)}
}

// Add appends a finding.
func (b *Bag) Add(f Finding) {
	b.items = append(b.items, f)
}

// AddAll appends findings in order.
func (b *Bag) AddAll(fs []Finding) {
	b.items = append(b.items, fs...)
}

func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Items returns the findings. The slice is the bag's own storage: do not modify it.
func (b *Bag) Items() []Finding {
	if b == nil {
		return nil
	}
	return b.items
}

// Sort orders findings by target index, code, label.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		fi, fj := b.items[i], b.items[j]
		if fi.Index() != fj.Index() {
			return fi.Index() < fj.Index()
		}
		if fi.Code != fj.Code {
			return fi.Code < fj.Code
		}
		return fi.Label < fj.Label
	})
}

// Count returns the number of findings tagged with c.
func (b *Bag) Count(c Color) int {
	n := 0
	for _, f := range b.Items() {
		if f.Color == c {
			n++
		}
	}
	return n
}

// Counts returns per-colour totals.
func (b *Bag) Counts() map[Color]int {
	out := make(map[Color]int)
	for _, f := range b.Items() {
		out[f.Color]++
	}
	return out
}

// HasSeverity reports whether any finding is at least sev.
func (b *Bag) HasSeverity(sev Severity) bool {
	for _, f := range b.Items() {
		if f.Severity() >= sev {
			return true
		}
	}
	return false
}

// Filter returns findings matching keep, preserving order.
func (b *Bag) Filter(keep func(Finding) bool) []Finding {
	var out []Finding
	for _, f := range b.Items() {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}
