// File: frame.go
// Title: Stack Frames and Go Trace Parsing
// Description: StackFrame and the parser for Go stack trace text as printed
//              by runtime/debug.Stack and by enhanced errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package analysis

import (
	"strconv"
	"strings"

	"github.com/msto63/errenhanced/pkg/enhancer"
)

// Unknown is the placeholder for frame parts that could not be read
const Unknown = "unknown"

// StackFrame is one parsed frame. Missing parts are "unknown" or -1.
type StackFrame struct {
	FunctionName string `json:"functionName"`
	FileName     string `json:"fileName"`
	LineNumber   int    `json:"lineNumber"`
	ColumnNumber int    `json:"columnNumber"`
	TypeName     string `json:"typeName"`
}

// Fields returns the frame as ordered fields for serialization
func (f StackFrame) Fields() []enhancer.Field {
	return []enhancer.Field{
		{Name: "functionName", Value: f.FunctionName},
		{Name: "fileName", Value: f.FileName},
		{Name: "lineNumber", Value: f.LineNumber},
		{Name: "columnNumber", Value: f.ColumnNumber},
		{Name: "typeName", Value: f.TypeName},
	}
}

// ParseFunc turns stack trace text into frames
type ParseFunc func(stack string) []StackFrame

// ParseGoStack parses Go stack trace text. Each frame is a function line
// followed by a tab-indented "file:line" line; goroutine headers are
// skipped. Go traces carry no column, so ColumnNumber is always -1.
//
//	goroutine 1 [running]:
//	github.com/acme/api/handler.(*Users).Get(0xc000010000)
//		/src/api/handler/users.go:42 +0x1d
func ParseGoStack(stack string) []StackFrame {
	var frames []StackFrame
	var current *StackFrame

	for _, line := range strings.Split(stack, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "goroutine ") {
			continue
		}

		if strings.HasPrefix(line, "\t") || strings.HasPrefix(line, " ") {
			if current == nil {
				continue
			}
			current.FileName, current.LineNumber = parseLocation(strings.TrimSpace(line))
			frames = append(frames, *current)
			current = nil
			continue
		}

		if current != nil {
			frames = append(frames, *current)
		}
		fn := functionName(line)
		current = &StackFrame{
			FunctionName: fn,
			FileName:     Unknown,
			LineNumber:   -1,
			ColumnNumber: -1,
			TypeName:     typeName(fn),
		}
	}

	if current != nil {
		frames = append(frames, *current)
	}
	return frames
}

// functionName strips the argument list and "created by" decorations
func functionName(line string) string {
	line = strings.TrimSpace(line)
	if rest, ok := strings.CutPrefix(line, "created by "); ok {
		line = rest
		if i := strings.Index(line, " in goroutine "); i >= 0 {
			line = line[:i]
		}
	}
	if strings.HasSuffix(line, ")") {
		if i := strings.LastIndex(line, "("); i > 0 {
			line = line[:i]
		}
	}
	if line == "" {
		return Unknown
	}
	return line
}

// typeName returns the package segment of a qualified function name:
// "github.com/acme/api/handler.(*Users).Get" -> "handler"
func typeName(fn string) string {
	if fn == Unknown {
		return Unknown
	}
	if i := strings.LastIndex(fn, "/"); i >= 0 {
		fn = fn[i+1:]
	}
	name, _, _ := strings.Cut(fn, ".")
	if name == "" {
		return Unknown
	}
	return name
}

// parseLocation splits "/path/file.go:42 +0x1d" into file and line
func parseLocation(loc string) (string, int) {
	if i := strings.Index(loc, " +0x"); i >= 0 {
		loc = loc[:i]
	}
	i := strings.LastIndex(loc, ":")
	if i <= 0 {
		if loc == "" {
			return Unknown, -1
		}
		return loc, -1
	}
	line, err := strconv.Atoi(loc[i+1:])
	if err != nil {
		return loc, -1
	}
	return loc[:i], line
}
