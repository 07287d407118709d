// File: filter.go
// Title: Unused Field Filtering
// Description: Produces copies of a composite that omit unset fields.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package enhanced

import (
	"reflect"

	"github.com/msto63/errenhanced/pkg/enhancer/analysis"
)

// isPreserved reports whether a field survives filtering even when empty
func isPreserved(name string) bool {
	switch name {
	case FieldName, FieldMessage, analysis.FieldOriginalError:
		return true
	}
	return false
}

// FilterUnused returns a copy whose field set omits fields holding nil,
// "", -1, an empty slice or an empty map. name, message and
// _originalError are always kept. The receiver is not modified and the
// copy keeps filtering after later mutation.
func (e *Error) FilterUnused() *Error {
	c := e.Clone()
	c.filtered = true
	return c
}

// Filtered reports whether the composite omits unused fields
func (e *Error) Filtered() bool {
	return e.filtered
}

// isUnused reports whether v is an unset sentinel. Errors and functions
// are never unused.
func isUnused(v any) bool {
	if v == nil {
		return true
	}
	if _, ok := v.(error); ok {
		return isNilPointer(reflect.ValueOf(v))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == -1
	case reflect.Float32, reflect.Float64:
		return rv.Float() == -1
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Func:
		return false
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isNilPointer(rv reflect.Value) bool {
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
