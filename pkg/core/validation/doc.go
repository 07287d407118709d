// Package validation provides the validation primitives used by every
// enhancer setter.
//
// Package: validation
// Title: errenhanced Validation Primitives
// Description: Each primitive returns a ValidationResult, the same shape as
//              a safeParse result: Valid reports success and Errors carries
//              the structured reasons. Setters turn a failed result into a
//              *ValidationError with ToError and return it unchanged to the
//              caller. The string, number, URL and IP rules are backed by
//              go-playground/validator.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-25 v0.1.0: Initial validation interfaces implementation
// - 2026-10-16 v0.2.0: Concrete primitives for enhancer setters
//
// Usage:
//
//	if r := validation.PositiveInt(code); !r.Valid {
//		return i, r.ToError("errorCode", code)
//	}
package validation
