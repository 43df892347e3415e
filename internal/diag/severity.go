package diag

// Severity ranks a diagnostic. Only SevError stops a file from being
// converted; rewrite notes are SevInfo.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]struct{ upper, tag string }{
	SevInfo:    {"INFO", "info"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s].upper
	}
	return "UNKNOWN"
}

// Tag is the lower-case name used in one-line listings.
func (s Severity) Tag() string {
	if int(s) < len(severityNames) {
		return severityNames[s].tag
	}
	return "unknown"
}

// Blocking reports whether the severity fails the file.
func (s Severity) Blocking() bool { return s >= SevError }
