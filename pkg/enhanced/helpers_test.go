// File: helpers_test.go
// Title: Shared Test Helpers
// Description: Quiet options and a field-table enhancer used across the
//              composite tests.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package enhanced

import (
	"bytes"
	"slices"
	"testing"

	"github.com/msto63/errenhanced/pkg/core/log"
	"github.com/msto63/errenhanced/pkg/enhancer"
)

// staticEnhancer contributes a fixed list of fields
type staticEnhancer struct {
	fields []enhancer.Field
}

func (s *staticEnhancer) Fields() []enhancer.Field {
	return slices.Clone(s.fields)
}

func (s *staticEnhancer) Clone() enhancer.Enhancer {
	return &staticEnhancer{fields: slices.Clone(s.fields)}
}

func static(kv ...any) *staticEnhancer {
	s := &staticEnhancer{}
	for i := 0; i+1 < len(kv); i += 2 {
		s.fields = append(s.fields, enhancer.Field{Name: kv[i].(string), Value: kv[i+1]})
	}
	return s
}

func quietOptions() Options {
	return Options{Logger: log.Discard()}
}

// capturingOptions returns options whose logger writes text to the buffer
func capturingOptions(t *testing.T) (Options, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.NewWithConfig(log.Config{
		Level:  log.LevelDebug,
		Format: log.FormatText,
		Output: &buf,
		Name:   "test",
	})
	return Options{Logger: logger}, &buf
}

func fieldNames(e *Error) []string {
	fields := e.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
