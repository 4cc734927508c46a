package finding

import (
	"fmt"
	"slices"
)

// Code identifies the rule outcome behind a finding.
type Code uint16

const (
	UnknownCode Code = 0

	// Alternative text
	AltMissing Code = 1001
	AltEmpty   Code = 1002

	// Labels
	LabelNoFor      Code = 2001
	LabelBrokenFor  Code = 2002
	FieldNoID       Code = 2101
	FieldUnlabelled Code = 2102

	// Keyboard order
	TabRemoved   Code = 3001
	TabUnordered Code = 3002

	// Access keys
	AccessKey Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:     "Unknown finding",
	AltMissing:      "Image without alternative text",
	AltEmpty:        "Image with empty alternative text",
	LabelNoFor:      "Label without for reference",
	LabelBrokenFor:  "Label refers to a missing or hidden field",
	FieldNoID:       "Field without id",
	FieldUnlabelled: "Field without label",
	TabRemoved:      "Element removed from keyboard order",
	TabUnordered:    "Element without explicit tab position",
	AccessKey:       "Access key",
}

// Rule returns the name of the rule that emits the code.
func (c Code) Rule() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return "alt"
	case ic >= 2000 && ic < 3000:
		return "labels"
	case ic >= 3000 && ic < 4000:
		return "taborder"
	case ic >= 4000 && ic < 5000:
		return "accesskey"
	}
	return "unknown"
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("ALT%04d", ic)
	case ic >= 2000 && ic < 2100:
		return fmt.Sprintf("LBL%04d", ic)
	case ic >= 2100 && ic < 3000:
		return fmt.Sprintf("FLD%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TAB%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("KEY%04d", ic)
	}
	return "A0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Codes lists every known code in ascending order.
func Codes() []Code {
	out := make([]Code, 0, len(codeDescription)-1)
	for c := range codeDescription {
		if c != UnknownCode {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}
