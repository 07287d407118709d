// File: primitives.go
// Title: Validation Primitives
// Description: Reusable predicates used by enhancer setters: non-empty
//              string, positive integer, URL, IP, HTTP status code, enum
//              membership and keyed maps with valid keys.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial primitives on go-playground/validator

package validation

import (
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// engine returns the shared validator with the nonblank rule registered
func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

func check(value interface{}, tag, code, message string) ValidationResult {
	if err := engine().Var(value, tag); err != nil {
		return NewValidationError(code, message)
	}
	return NewValidationResult()
}

// String accepts any string, including the empty one
func String(s string) ValidationResult {
	return NewValidationResult()
}

// NonEmptyString rejects empty and whitespace-only strings
func NonEmptyString(s string) ValidationResult {
	return check(s, "nonblank", CodeRequired, "must be a non-empty string")
}

// PositiveInt rejects zero and negative integers
func PositiveInt(n int) ValidationResult {
	return check(n, "gt=0", CodeRange, "must be a positive integer")
}

// URL rejects strings that are not absolute URLs
func URL(s string) ValidationResult {
	return check(s, "required,url", CodeFormat, "is not a valid URL")
}

// IP rejects strings that are not IPv4 or IPv6 addresses
func IP(s string) ValidationResult {
	return check(s, "required,ip", CodeFormat, "is not a valid IP address")
}

// HTTPStatusCode rejects codes without a registered status text
func HTTPStatusCode(code int) ValidationResult {
	if http.StatusText(code) == "" {
		return NewValidationError(CodeEnum, "is not a registered HTTP status code")
	}
	return NewValidationResult()
}

// OneOf rejects values outside allowed. The failed result carries allowed
// as the expected set.
func OneOf[T comparable](value T, allowed []T) ValidationResult {
	if slices.Contains(allowed, value) {
		return NewValidationResult()
	}
	return NewValidationError(CodeEnum, "must be one of").WithExpected(allowed)
}

// KeyedObject rejects nil maps and maps with an empty or blank key
func KeyedObject[V any](m map[string]V) ValidationResult {
	if m == nil {
		return NewValidationError(CodeNil, "must not be nil")
	}
	return check(m, "dive,keys,nonblank,endkeys", CodeKeys, "all keys must be valid non-empty strings")
}

// NotNil rejects a nil interface value
func NotNil(v interface{}) ValidationResult {
	if v == nil {
		return NewValidationError(CodeNil, "must not be nil")
	}
	return NewValidationResult()
}
