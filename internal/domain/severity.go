package domain

import "strings"

// Severity is the impact level of a vulnerability.
type Severity string

const (
	// SeverityCritical represents immediate compromise (RCE, auth bypass).
	SeverityCritical Severity = "CRITICAL"
	// SeverityHigh represents significant impact requiring a prompt fix.
	SeverityHigh Severity = "HIGH"
	// SeverityMedium represents moderate impact.
	SeverityMedium Severity = "MEDIUM"
	// SeverityLow represents limited impact.
	SeverityLow Severity = "LOW"
	// SeverityInfo represents informational findings.
	SeverityInfo Severity = "INFO"
)

// IsValid reports whether s is a recognized severity level.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	}
	return false
}

// Rank returns the sort rank of the severity. Lower sorts first:
// CRITICAL=0, HIGH=1, MEDIUM=2, LOW=3, INFO=4, anything else=5.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	case SeverityInfo:
		return 4
	default:
		return 5
	}
}

func (s Severity) String() string { return string(s) }

// ParseSeverity normalizes an arbitrary string to a Severity value.
// The input is matched case-insensitively; unrecognized values are
// returned uppercased so they still compare and rank consistently.
func ParseSeverity(s string) Severity {
	return Severity(strings.ToUpper(strings.TrimSpace(s)))
}
