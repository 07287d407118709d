// File: snapshot.go
// Title: Canonical Snapshot
// Description: Converts a composite into a plain ordered tree shared by
//              every serializer. Leaves are nil, bool, int64, uint64,
//              float64 and string; branches are []any and ordered maps.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package enhanced

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/msto63/errenhanced/pkg/core/config"
	"github.com/msto63/errenhanced/pkg/enhancer"
	"github.com/msto63/errenhanced/pkg/enhancer/analysis"
)

// Circular replaces a value that refers back to one of its ancestors
const Circular = "[Circular ~]"

// Object is a node of the canonical snapshot
type Object = orderedmap.OrderedMap[string, any]

// fielder is implemented by enhancers, composites and stack frames
type fielder interface {
	Fields() []enhancer.Field
}

// Snapshot returns the canonical tree of the composite. With the cached
// policy the same tree is returned until InvalidateSnapshot is called; the
// result must be treated as read-only.
func (e *Error) Snapshot() *Object {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.opts.Snapshot == config.SnapshotFresh {
		return e.buildSnapshot()
	}
	if e.snapshot == nil {
		e.snapshot = e.buildSnapshot()
	}
	return e.snapshot
}

// InvalidateSnapshot drops the cached snapshot so the next serialization
// reflects the current state
func (e *Error) InvalidateSnapshot() {
	e.mu.Lock()
	e.snapshot = nil
	e.mu.Unlock()
}

func (e *Error) buildSnapshot() *Object {
	w := newWalker()
	root := reflect.ValueOf(e)
	w.enter(root)
	obj := w.fields(e.Fields())
	w.leave(root)
	return obj
}

type visitKey struct {
	ptr uintptr
	typ reflect.Type
}

// walker tracks the references on the current path. A reference reached
// twice along different paths is rendered twice; only ancestors count as
// cycles.
type walker struct {
	path map[visitKey]struct{}
}

func newWalker() *walker {
	return &walker{path: make(map[visitKey]struct{})}
}

func refKey(rv reflect.Value) (visitKey, bool) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return visitKey{}, false
		}
		return visitKey{ptr: rv.Pointer(), typ: rv.Type()}, true
	}
	return visitKey{}, false
}

// enter reports false when rv is already on the path
func (w *walker) enter(rv reflect.Value) bool {
	k, ok := refKey(rv)
	if !ok {
		return true
	}
	if _, seen := w.path[k]; seen {
		return false
	}
	w.path[k] = struct{}{}
	return true
}

func (w *walker) leave(rv reflect.Value) {
	if k, ok := refKey(rv); ok {
		delete(w.path, k)
	}
}

func (w *walker) fields(fields []enhancer.Field) *Object {
	obj := orderedmap.New[string, any](len(fields))
	for _, f := range fields {
		obj.Set(f.Name, w.value(f.Value))
	}
	return obj
}

func (w *walker) value(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return nil
	}

	switch t := v.(type) {
	case *Object:
		return w.guard(rv, func() any { return w.object(t) })
	case *big.Int:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case time.Duration:
		return t.String()
	case []byte:
		if utf8.Valid(t) {
			return string(t)
		}
		return base64.StdEncoding.EncodeToString(t)
	case fielder:
		return w.guard(rv, func() any { return w.fields(t.Fields()) })
	case error:
		return w.guard(rv, func() any { return w.err(t) })
	}

	return w.reflectValue(rv)
}

// guard renders fn unless rv is already on the path
func (w *walker) guard(rv reflect.Value, fn func() any) any {
	if !w.enter(rv) {
		return Circular
	}
	defer w.leave(rv)
	return fn()
}

func (w *walker) object(o *Object) *Object {
	out := orderedmap.New[string, any](o.Len())
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, w.value(pair.Value))
	}
	return out
}

func (w *walker) err(err error) *Object {
	obj := orderedmap.New[string, any](3)
	obj.Set(FieldName, errorName(err))
	obj.Set(FieldMessage, err.Error())
	if stack := analysis.StackText(err); stack != "" {
		obj.Set(FieldStack, stack)
	}
	return obj
}

func errorName(err error) string {
	if n, ok := err.(interface{ Name() string }); ok {
		return n.Name()
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}

func (w *walker) reflectValue(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Interface:
		return w.value(rv.Elem().Interface())
	case reflect.Pointer:
		return w.guard(rv, func() any { return w.value(rv.Elem().Interface()) })
	case reflect.Slice:
		return w.guard(rv, func() any { return w.list(rv) })
	case reflect.Array:
		return w.list(rv)
	case reflect.Map:
		return w.guard(rv, func() any { return w.mapping(rv) })
	case reflect.Struct:
		return w.structure(rv)
	}
	// channels, functions and unsafe pointers have no data representation
	return nil
}

func (w *walker) list(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = w.value(rv.Index(i).Interface())
	}
	return out
}

func (w *walker) mapping(rv reflect.Value) *Object {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: fmt.Sprint(iter.Key().Interface()), val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	out := orderedmap.New[string, any](len(entries))
	for _, en := range entries {
		out.Set(en.key, w.value(en.val.Interface()))
	}
	return out
}

// structure maps exported fields in declaration order, honoring json tag
// names and "-"
func (w *walker) structure(rv reflect.Value) *Object {
	t := rv.Type()
	out := orderedmap.New[string, any](t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out.Set(name, w.value(rv.Field(i).Interface()))
	}
	return out
}
