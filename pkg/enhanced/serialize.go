// File: serialize.go
// Title: Serialization Wrapper
// Description: Shared error handling, logging and metrics for every
//              output format.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package enhanced

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/msto63/errenhanced/pkg/core/log"
)

// Output format names
const (
	FormatJSON = "JSON"
	FormatXML  = "XML"
	FormatCSV  = "CSV"
	FormatYAML = "YAML"
)

// Formats returns every supported output format
func Formats() []string {
	return []string{FormatJSON, FormatXML, FormatCSV, FormatYAML}
}

// SerializationError reports a failed rendering
type SerializationError struct {
	Format string
	Err    error
}

// Error implements the error interface
func (e *SerializationError) Error() string {
	return fmt.Sprintf("Failed to serialize to %s: %s", e.Format, e.Err.Error())
}

// Unwrap returns the underlying failure
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Serialize renders the composite in the named format, case-insensitive
func (e *Error) Serialize(format string) (string, error) {
	switch strings.ToUpper(format) {
	case FormatJSON:
		return e.ToJSON()
	case FormatXML:
		return e.ToXML()
	case FormatCSV:
		return e.ToCSV()
	case FormatYAML, "YML":
		return e.ToYAML()
	}
	return "", fmt.Errorf("unsupported format %q", format)
}

// serialize runs render against the snapshot. Failures, including
// panics, are logged and returned as *SerializationError.
func (e *Error) serialize(format string, render func(*Object) (string, error)) (out string, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%v", r)
		}
		if err != nil {
			e.opts.Logger.ErrorWithErr("Failed to serialize to "+format, err, log.Fields{
				"format": format,
				"name":   e.name,
			})
			err = &SerializationError{Format: format, Err: err}
		}
		e.opts.Metrics.RecordSerialization(strings.ToLower(format), err, time.Since(start))
	}()

	return render(e.Snapshot())
}

// scalarText formats a snapshot leaf
func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
