package findfmt

import (
	"fmt"
	"strings"
)

// Format names a textual rendering of a Result.
type Format uint8

const (
	FormatPretty Format = iota
	FormatShort
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatShort:
		return "short"
	case FormatJSON:
		return "json"
	}
	return "pretty"
}

// ParseFormat accepts pretty|short|json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return FormatPretty, nil
	case "short":
		return FormatShort, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatPretty, fmt.Errorf("unsupported format %q (must be pretty, short or json)", s)
}

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color     bool
	Title     string // printed as a header when set, e.g. the snapshot path
	ShowPath  bool   // list the reconstructed tab order
	ShowLinks bool   // list label links
}

// JSONOpts configures JSON.
type JSONOpts struct {
	Source string
	Max    int // 0 - без ограничения
	Indent bool
}
