package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
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

// ParseSeverity converts a config string into a Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "info", "Info", "INFO":
		return SevInfo, true
	case "warning", "Warning", "WARNING":
		return SevWarning, true
	case "error", "Error", "ERROR":
		return SevError, true
	}
	return SevInfo, false
}
