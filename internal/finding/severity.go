package finding

// Severity is the textual tier of a finding, derived from its colour.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity accepts info|warning|error.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "info", "INFO":
		return SevInfo, true
	case "warning", "WARNING":
		return SevWarning, true
	case "error", "ERROR":
		return SevError, true
	}
	return SevInfo, false
}

// SeverityOf maps an overlay colour to its tier.
func SeverityOf(c Color) Severity {
	switch c {
	case Red:
		return SevError
	case Orange, Yellow:
		return SevWarning
	default:
		return SevInfo
	}
}
