// File: interfaces.go
// Title: Core Validation Types
// Description: Defines ValidationResult and ValidationError, the structured
//              outcome of every validation primitive.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-25 v0.1.0: Initial validation interfaces implementation
// - 2026-10-16 v0.2.0: ValidationError implements error, results carry
//                      field and value at conversion time

package validation

import (
	"fmt"
	"strings"
)

// Standard validation error codes
const (
	CodeRequired = "VALIDATION_REQUIRED" // Value is empty or blank
	CodeFormat   = "VALIDATION_FORMAT"   // Invalid format (URL, IP)
	CodeRange    = "VALIDATION_RANGE"    // Numeric range validation
	CodeEnum     = "VALIDATION_ENUM"     // Value outside a fixed set
	CodeKeys     = "VALIDATION_KEYS"     // Map with invalid keys
	CodeNil      = "VALIDATION_NIL"      // Nil where a value is required
)

// ValidationResult represents the result of a validation operation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError is the error returned by every validated setter. It names
// the offending field and value, and for enum-constrained fields the full
// valid set in Expected.
type ValidationError struct {
	Code     string      `json:"code"`
	Field    string      `json:"field,omitempty"`
	Message  string      `json:"message"`
	Value    interface{} `json:"value,omitempty"`
	Expected interface{} `json:"expected,omitempty"`
}

// NewValidationResult creates a successful validation result
func NewValidationResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// NewValidationError creates a failed validation result with a single error
func NewValidationError(code, message string) ValidationResult {
	return ValidationResult{
		Valid: false,
		Errors: []ValidationError{
			{
				Code:    code,
				Message: message,
			},
		},
	}
}

// WithExpected attaches the expected value set to every error of a failed result
func (r ValidationResult) WithExpected(expected interface{}) ValidationResult {
	for i := range r.Errors {
		r.Errors[i].Expected = expected
	}
	return r
}

// FirstError returns the first validation error, or nil if validation passed
func (r ValidationResult) FirstError() *ValidationError {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// ErrorCodes returns all error codes
func (r ValidationResult) ErrorCodes() []string {
	codes := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		codes[i] = err.Code
	}
	return codes
}

// ToError converts a failed result into a *ValidationError for field and
// value. It returns nil when the result is valid.
func (r ValidationResult) ToError(field string, value interface{}) error {
	if r.Valid {
		return nil
	}

	verr := &ValidationError{
		Code:    CodeFormat,
		Field:   field,
		Message: "invalid value",
		Value:   value,
	}
	if first := r.FirstError(); first != nil {
		verr.Code = first.Code
		verr.Message = first.Message
		verr.Expected = first.Expected
	}
	return verr
}

// Error implements the error interface.
//
//	Invalid severity: 'urgent' must be one of [low medium high critical]
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("Invalid ")
	if e.Field != "" {
		b.WriteString(e.Field)
	} else {
		b.WriteString("value")
	}
	fmt.Fprintf(&b, ": '%v' %s", e.Value, e.Message)
	if e.Expected != nil {
		fmt.Fprintf(&b, " %v", e.Expected)
	}
	return b.String()
}

// String returns a debug representation of a validation error
func (e ValidationError) String() string {
	parts := []string{fmt.Sprintf("code:%s", e.Code)}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field:%s", e.Field))
	}
	parts = append(parts, fmt.Sprintf("message:%s", e.Message))
	if e.Expected != nil {
		parts = append(parts, fmt.Sprintf("expected:%v", e.Expected))
	}
	return fmt.Sprintf("ValidationError{%s}", strings.Join(parts, ", "))
}
