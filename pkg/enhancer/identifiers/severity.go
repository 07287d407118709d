// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors to enable proper
//              prioritization, monitoring, and alerting.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-16 v0.2.0: String-valued severities matching their wire form

package identifiers

// Severity represents the severity level of an error
type Severity string

const (
	// SeverityLow indicates a minor error that doesn't affect core functionality
	SeverityLow Severity = "low"

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium Severity = "medium"

	// SeverityHigh indicates a serious error that significantly impacts functionality
	SeverityHigh Severity = "high"

	// SeverityCritical indicates a critical error that makes the system unusable
	SeverityCritical Severity = "critical"
)

// Severities returns every valid severity, lowest first
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// String returns the string representation of the severity level
func (s Severity) String() string {
	return string(s)
}

// Level returns the numeric level of the severity (0-3), or -1 if unknown
func (s Severity) Level() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s.Level() >= SeverityHigh.Level()
}
