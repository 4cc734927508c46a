// Package finding defines the diagnostic record produced by the inspection
// rules.
//
// # Data model
//
// Finding is the central record. It contains:
//
//   - Code – compact identifier from the fixed catalogue in codes.go.
//   - Color – the overlay tag the finding is drawn with; it doubles as the
//     severity tier (see Severity).
//   - Label – the short text drawn above the highlighted box.
//   - Target – the element the finding is about.
//
// Findings are values and are never mutated after a rule emits them. Several
// findings may target the same element.
//
// # Collecting
//
// Rules return plain slices; the inspector unions them into a Bag. Bag keeps
// emission order until Sort is called, which orders by document index, then
// code, then label, so textual output is deterministic.
//
// Package finding does no formatting or drawing. Text output lives in
// internal/findfmt and pixels in internal/overlay.
package finding
