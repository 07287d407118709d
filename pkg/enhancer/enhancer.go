// File: enhancer.go
// Title: Enhancer Capability Contract
// Description: Defines the contract every capability module satisfies so
//              that it can be composed into an enhanced error. An enhancer
//              owns one concern's fields and exposes them in a fixed order
//              through Fields. Clone gives composition copy semantics: the
//              composite works on its own copy and the caller's instance is
//              left untouched.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

// Package enhancer defines the capability contract shared by all error
// enhancers and the composite that combines them.
package enhancer

// Field is one named value contributed by an enhancer
type Field struct {
	Name  string
	Value any
}

// Enhancer is a capability module that can be composed into an enhanced error
type Enhancer interface {
	// Fields returns the current field values in declaration order. It is
	// evaluated on every call, so later setter calls are reflected.
	Fields() []Field

	// Clone returns an independent copy of the enhancer state
	Clone() Enhancer
}

// Lookup returns the value of the named field and whether it exists
func Lookup(e Enhancer, name string) (any, bool) {
	for _, f := range e.Fields() {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Names returns the field names of e in order
func Names(e Enhancer) []string {
	fields := e.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
