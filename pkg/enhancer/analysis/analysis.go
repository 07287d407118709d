// File: analysis.go
// Title: Error Analysis Enhancer
// Description: Links an enhanced error to the original error it wraps and
//              exposes the original's parsed stack frames.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

// Package analysis provides the ErrorAnalysis enhancer and the parsed
// stack cache it shares across instances.
package analysis

import (
	"errors"
	"slices"

	"github.com/msto63/errenhanced/pkg/core/validation"
	"github.com/msto63/errenhanced/pkg/enhancer"
)

// Field names contributed by Analysis
const (
	FieldOriginalError = "_originalError"
	FieldParsedStack   = "_parsedStack"
)

// Stacker is implemented by errors that carry stack trace text
type Stacker interface {
	Stack() string
}

// StackText returns the stack text of the first error in err's chain that
// carries one, or "" if none does
func StackText(err error) string {
	var s Stacker
	if errors.As(err, &s) {
		return s.Stack()
	}
	return ""
}

// Option configures an Analysis
type Option func(*Analysis)

// WithStackCache sets the cache used to parse original errors
func WithStackCache(c *StackCache) Option {
	return func(a *Analysis) {
		if c != nil {
			a.cache = c
		}
	}
}

// Analysis holds the original error and its parsed stack
type Analysis struct {
	originalError error
	parsedStack   []StackFrame
	cache         *StackCache
}

// New creates an Analysis without an original error
func New(opts ...Option) *Analysis {
	a := &Analysis{
		parsedStack: []StackFrame{},
		cache:       DefaultStackCache(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OriginalError returns the original error, nil until set
func (a *Analysis) OriginalError() error {
	return a.originalError
}

// SetOriginalError stores err and parses its stack. An error without stack
// text leaves the frame list empty.
func (a *Analysis) SetOriginalError(err error) (*Analysis, error) {
	if r := validation.NotNil(err); !r.Valid {
		return a, r.ToError("originalError", err)
	}
	a.originalError = err
	a.parsedStack = a.cache.Frames(err)
	return a, nil
}

// ParsedStack returns a copy of the parsed frames
func (a *Analysis) ParsedStack() []StackFrame {
	return slices.Clone(a.parsedStack)
}

// Fields implements enhancer.Enhancer
func (a *Analysis) Fields() []enhancer.Field {
	return []enhancer.Field{
		{Name: FieldOriginalError, Value: a.originalError},
		{Name: FieldParsedStack, Value: a.parsedStack},
	}
}

// Clone implements enhancer.Enhancer. The original error and the cache are
// shared.
func (a *Analysis) Clone() enhancer.Enhancer {
	c := *a
	c.parsedStack = slices.Clone(a.parsedStack)
	return &c
}
