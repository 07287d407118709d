// File: json.go
// Title: JSON Serializer
// Description: Renders the snapshot as compact JSON with optional
//              key/value replacers.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation
// - 2026-10-16 v0.1.1: Encode without HTML escaping

package enhanced

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/mailru/easyjson/jwriter"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Replacer transforms a value before it is encoded. key is the field name,
// or the decimal index inside arrays. Returning false drops an object
// field; a dropped array element becomes null.
type Replacer func(key string, value any) (any, bool)

// DropEmpty is the default replacer. It drops nil and empty strings.
func DropEmpty(_ string, value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	if s, ok := value.(string); ok && s == "" {
		return nil, false
	}
	return value, true
}

// KeepAll keeps every value
func KeepAll(_ string, value any) (any, bool) {
	return value, true
}

// ToJSON renders the composite as compact JSON. Without replacers
// DropEmpty is applied.
func (e *Error) ToJSON(replacers ...Replacer) (string, error) {
	if len(replacers) == 0 {
		replacers = []Replacer{DropEmpty}
	}
	return e.serialize(FormatJSON, func(snap *Object) (string, error) {
		data, err := marshalJSON(replace(snap, replacers))
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
}

func applyReplacers(replacers []Replacer, key string, value any) (any, bool) {
	for _, r := range replacers {
		var keep bool
		if value, keep = r(key, value); !keep {
			return nil, false
		}
	}
	return value, true
}

// replace builds a replaced copy, leaving the cached snapshot untouched
func replace(v any, replacers []Replacer) any {
	switch t := v.(type) {
	case *Object:
		out := orderedmap.New[string, any](t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			val, keep := applyReplacers(replacers, pair.Key, pair.Value)
			if !keep {
				continue
			}
			out.Set(pair.Key, replace(val, replacers))
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			val, keep := applyReplacers(replacers, strconv.Itoa(i), item)
			if !keep {
				continue
			}
			out[i] = replace(val, replacers)
		}
		return out
	}
	return v
}

// marshalJSON encodes a snapshot tree in field order. Unlike json.Marshal
// it leaves <, > and & unescaped.
func marshalJSON(v any) ([]byte, error) {
	w := jwriter.Writer{NoEscapeHTML: true}
	writeJSON(&w, v)
	return w.BuildBytes()
}

func writeJSON(w *jwriter.Writer, v any) {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			w.RawString("null")
			return
		}
		w.RawByte('{')
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if pair != t.Oldest() {
				w.RawByte(',')
			}
			w.String(pair.Key)
			w.RawByte(':')
			writeJSON(w, pair.Value)
		}
		w.RawByte('}')
	case []any:
		if t == nil {
			w.RawString("null")
			return
		}
		w.RawByte('[')
		for i, item := range t {
			if i > 0 {
				w.RawByte(',')
			}
			writeJSON(w, item)
		}
		w.RawByte(']')
	case nil:
		w.RawString("null")
	case string:
		w.String(t)
	case bool:
		w.Bool(t)
	case int64:
		w.Int64(t)
	default:
		w.Raw(encodeLeaf(v))
	}
}

// encodeLeaf encodes values the snapshot walker left opaque, such as
// replacer results and floats
func encodeLeaf(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
