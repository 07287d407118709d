// File: stack.go
// Title: Stack Capture
// Description: Captures the composing call stack in Go trace text format.
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
	"runtime"
	"strings"
)

// MaxStackFrames limits the number of stack frames captured
const MaxStackFrames = 32

// captureStack renders the stack above skip frames as
//
//	pkg.Func()
//		/path/file.go:42
func captureStack(skip int) string {
	pcs := make([]uintptr, MaxStackFrames)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&b, "%s()\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return b.String()
}
