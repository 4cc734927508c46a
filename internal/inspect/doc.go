// Package inspect classifies the elements of a document snapshot into
// accessibility findings and reconstructs the keyboard visiting order.
//
// Every rule is a pure function of a dom.Query and Options. Inspect runs the
// enabled rules in a fixed order and unions their outputs into a Result,
// which the overlay renderer and the text formatters consume.
//
// Nothing here fails: a missing target, an empty document or a degenerate
// box each become a finding or an omission.
package inspect
