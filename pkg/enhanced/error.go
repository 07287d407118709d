// File: error.go
// Title: Composite Enhanced Error
// Description: Implements the composite error that combines enhancers
//              into one value.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package enhanced

import (
	"slices"
	"strings"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/msto63/errenhanced/pkg/core/validation"
	"github.com/msto63/errenhanced/pkg/enhancer"
	"github.com/msto63/errenhanced/pkg/enhancer/analysis"
	"github.com/msto63/errenhanced/pkg/enhancer/appstate"
	"github.com/msto63/errenhanced/pkg/enhancer/httpstatus"
	"github.com/msto63/errenhanced/pkg/enhancer/identifiers"
	"github.com/msto63/errenhanced/pkg/enhancer/systemcontext"
	"github.com/msto63/errenhanced/pkg/enhancer/userinfo"
)

// Field names owned by the composite itself
const (
	FieldName    = "name"
	FieldMessage = "message"
	FieldStack   = "stack"
)

// DefaultName is used for composites created without a name
const DefaultName = "Error"

// Error is an error enriched by composed enhancers
type Error struct {
	*identifiers.Identifiers
	*httpstatus.HTTPStatus
	*systemcontext.SystemContext
	*userinfo.UserInfo
	*appstate.ApplicationState
	*analysis.Analysis

	name      string
	message   string
	stack     string
	enhancers []enhancer.Enhancer
	filtered  bool

	opts     Options
	mu       sync.Mutex
	snapshot *Object
}

// New composes enhancers into an error named name. Every enhancer is
// cloned, so the instances passed in are left untouched.
func New(name, message string, enhancers ...enhancer.Enhancer) *Error {
	return compose(DefaultOptions(), 3, name, message, enhancers)
}

// NewWithOptions is New with explicit options
func NewWithOptions(opts Options, name, message string, enhancers ...enhancer.Enhancer) *Error {
	return compose(opts, 3, name, message, enhancers)
}

func compose(opts Options, skip int, name, message string, enhancers []enhancer.Enhancer) *Error {
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}

	e := &Error{
		name:    name,
		message: message,
		stack:   captureStack(skip),
		opts:    opts.normalized(),
	}
	for _, en := range enhancers {
		if en == nil {
			continue
		}
		e.enhancers = append(e.enhancers, en.Clone())
	}
	e.bind()
	e.opts.Metrics.RecordComposition()

	return e
}

// bind points the embedded capabilities at the composed enhancers. When an
// enhancer type appears more than once, the last one is bound.
func (e *Error) bind() {
	e.Identifiers = nil
	e.HTTPStatus = nil
	e.SystemContext = nil
	e.UserInfo = nil
	e.ApplicationState = nil
	e.Analysis = nil

	for _, en := range e.enhancers {
		switch c := en.(type) {
		case *identifiers.Identifiers:
			e.Identifiers = c
		case *httpstatus.HTTPStatus:
			e.HTTPStatus = c
		case *systemcontext.SystemContext:
			e.SystemContext = c
		case *userinfo.UserInfo:
			e.UserInfo = c
		case *appstate.ApplicationState:
			e.ApplicationState = c
		case *analysis.Analysis:
			e.Analysis = c
		}
	}
}

// Capability returns the last composed enhancer of type T
func Capability[T enhancer.Enhancer](e *Error) (T, bool) {
	for i := len(e.enhancers) - 1; i >= 0; i-- {
		if c, ok := e.enhancers[i].(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}

// Error implements the error interface as "name: message"
func (e *Error) Error() string {
	if e.message == "" {
		return e.name
	}
	return e.name + ": " + e.message
}

// Unwrap returns the original error set through the Analysis capability
func (e *Error) Unwrap() error {
	if e.Analysis == nil {
		return nil
	}
	return e.Analysis.OriginalError()
}

// Name returns the error name
func (e *Error) Name() string {
	return e.name
}

// SetName sets the error name, which must not be blank
func (e *Error) SetName(name string) (*Error, error) {
	if r := validation.NonEmptyString(name); !r.Valid {
		return e, r.ToError("name", name)
	}
	e.name = name
	return e, nil
}

// Message returns the error message
func (e *Error) Message() string {
	return e.message
}

// SetMessage sets the error message. The empty string is allowed.
func (e *Error) SetMessage(message string) *Error {
	e.message = message
	return e
}

// Stack returns the stack captured when the error was composed
func (e *Error) Stack() string {
	return e.stack
}

// Enhancers returns the composed enhancers in composition order
func (e *Error) Enhancers() []enhancer.Enhancer {
	return slices.Clone(e.enhancers)
}

// Fields returns every field of the composite in emission order. On a
// filtered copy, unused fields are left out.
func (e *Error) Fields() []enhancer.Field {
	merged := orderedmap.New[string, any]()
	merged.Set(FieldName, e.name)
	merged.Set(FieldMessage, e.message)
	merged.Set(FieldStack, e.stack)

	for _, en := range e.enhancers {
		for _, f := range en.Fields() {
			merged.Set(f.Name, f.Value)
		}
	}

	fields := make([]enhancer.Field, 0, merged.Len())
	for pair := merged.Oldest(); pair != nil; pair = pair.Next() {
		if e.filtered && !isPreserved(pair.Key) && isUnused(pair.Value) {
			continue
		}
		fields = append(fields, enhancer.Field{Name: pair.Key, Value: pair.Value})
	}
	return fields
}

// Field returns the value of the named field and whether it is present
func (e *Error) Field(name string) (any, bool) {
	for _, f := range e.Fields() {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Clone returns an independent copy with cloned enhancers and no cached
// snapshot
func (e *Error) Clone() *Error {
	c := &Error{
		name:      e.name,
		message:   e.message,
		stack:     e.stack,
		enhancers: make([]enhancer.Enhancer, len(e.enhancers)),
		filtered:  e.filtered,
		opts:      e.opts,
	}
	for i, en := range e.enhancers {
		c.enhancers[i] = en.Clone()
	}
	c.bind()
	return c
}
