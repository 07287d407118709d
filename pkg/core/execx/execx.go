// ============================================================================
// errenhanced - Enhanced Error Composition
// ============================================================================
//
// Package:     execx
// Description: External command execution behind a replaceable interface
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrEmptyCommand is returned for blank command lines
var ErrEmptyCommand = errors.New("empty command")

// Executor runs a command line and returns its standard output
type Executor interface {
	Execute(ctx context.Context, command string) (string, error)
}

// ExecutorFunc adapts a function to the Executor interface
type ExecutorFunc func(ctx context.Context, command string) (string, error)

// Execute calls f
func (f ExecutorFunc) Execute(ctx context.Context, command string) (string, error) {
	return f(ctx, command)
}

// CommandError describes a command that could not be started or exited
// with a non-zero status
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q failed", e.Command)
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// options holds the configuration for command execution
type options struct {
	timeout time.Duration
	dir     string
	env     []string
}

// Option configures a ShellExecutor
type Option func(*options)

// WithTimeout bounds every command. Zero or negative durations are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithDir sets the working directory for commands
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithEnv replaces the inherited environment. Entries use KEY=VALUE form.
func WithEnv(env []string) Option {
	return func(o *options) {
		o.env = env
	}
}

// ShellExecutor runs commands directly with os/exec. The command line is
// split on whitespace; no shell is involved, so quoting and pipes are not
// interpreted.
type ShellExecutor struct {
	opts options
}

// NewShellExecutor creates an executor with a 30 second default timeout
func NewShellExecutor(opts ...Option) *ShellExecutor {
	o := options{timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	return &ShellExecutor{opts: o}
}

// Execute runs command and returns its trimmed standard output
func (s *ShellExecutor) Execute(ctx context.Context, command string) (string, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return "", ErrEmptyCommand
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = s.opts.dir
	if s.opts.env != nil {
		cmd.Env = s.opts.env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cerr := &CommandError{
			Command:  command,
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			cerr.Err = ctxErr
		}
		return "", cerr
	}

	return strings.TrimSpace(stdout.String()), nil
}
