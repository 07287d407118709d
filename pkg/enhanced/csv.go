// File: csv.go
// Title: CSV Serializer
// Description: Renders the snapshot as a header row and a value row.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation
// - 2026-10-16 v0.1.1: Forced quoting applies to text cells only

package enhanced

import (
	"strings"
)

type csvOptions struct {
	delimiter string
	quoted    bool
}

// CSVOption configures ToCSV
type CSVOption func(*csvOptions)

// WithDelimiter sets the field delimiter. Empty values are ignored.
func WithDelimiter(delimiter string) CSVOption {
	return func(o *csvOptions) {
		if delimiter != "" {
			o.delimiter = delimiter
		}
	}
}

// WithQuotes forces quoting of headers and text values when true. Numbers
// and booleans are quoted only when their content requires it.
func WithQuotes(quoted bool) CSVOption {
	return func(o *csvOptions) {
		o.quoted = quoted
	}
}

// ToCSV renders the composite as two lines: field names and values.
// Nested values are written as JSON text and nil as an empty cell.
func (e *Error) ToCSV(opts ...CSVOption) (string, error) {
	o := csvOptions{delimiter: e.opts.CSVDelimiter, quoted: e.opts.CSVQuoted}
	for _, opt := range opts {
		opt(&o)
	}

	return e.serialize(FormatCSV, func(snap *Object) (string, error) {
		headers := make([]string, 0, snap.Len())
		values := make([]string, 0, snap.Len())
		for pair := snap.Oldest(); pair != nil; pair = pair.Next() {
			headers = append(headers, o.cell(pair.Key, o.quoted))

			switch v := pair.Value.(type) {
			case nil:
				values = append(values, "")
			case *Object, []any:
				data, err := marshalJSON(v)
				if err != nil {
					return "", err
				}
				values = append(values, o.cell(string(data), o.quoted))
			case string:
				values = append(values, o.cell(v, o.quoted))
			default:
				values = append(values, o.cell(scalarText(v), false))
			}
		}

		var b strings.Builder
		b.WriteString(strings.Join(headers, o.delimiter))
		b.WriteByte('\n')
		b.WriteString(strings.Join(values, o.delimiter))
		b.WriteByte('\n')
		return b.String(), nil
	})
}

// cell quotes s when forced or when it contains the delimiter, a quote,
// a line break or surrounding spaces
func (o csvOptions) cell(s string, force bool) string {
	needsQuotes := force ||
		strings.Contains(s, o.delimiter) ||
		strings.ContainsAny(s, "\"\r\n") ||
		strings.HasPrefix(s, " ") ||
		strings.HasSuffix(s, " ")
	if !needsQuotes {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
