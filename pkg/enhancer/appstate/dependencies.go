// File: dependencies.go
// Title: Dependency Discovery
// Description: Probes package managers in preference order, lists the
//              dependencies of the first one installed and caches the
//              result. Probe results are cached per package manager for the
//              life of the enhancer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package appstate

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/msto63/errenhanced/pkg/core/log"
)

// Phases reported by PhaseError
const (
	PhaseDetect = "detectPackageManager"
	PhaseFetch  = "fetchDependencies"
	PhaseParse  = "parseDependencies"
)

// PhaseError wraps a dependency discovery failure with the phase it
// happened in
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	msg := "Unknown error"
	if e.Err != nil && e.Err.Error() != "" {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("Failed during %s: %s", e.Phase, msg)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// resolver owns the package manager and dependency caches
type resolver struct {
	opts options

	mu        sync.Mutex
	installed map[string]bool
	deps      map[string]string
	cached    bool
	lastFetch time.Time
}

func newResolver(o options) *resolver {
	return &resolver{
		opts:      o,
		installed: map[string]bool{},
		deps:      map[string]string{},
	}
}

func (r *resolver) clone() *resolver {
	r.mu.Lock()
	defer r.mu.Unlock()

	return &resolver{
		opts:      r.opts,
		installed: maps.Clone(r.installed),
		deps:      maps.Clone(r.deps),
		cached:    r.cached,
		lastFetch: r.lastFetch,
	}
}

func (r *resolver) current() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.deps)
}

func (r *resolver) fetch(ctx context.Context) (deps map[string]string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.opts.now()
	if r.cached && now.Sub(r.lastFetch) < r.opts.cacheTTL {
		return maps.Clone(r.deps), nil
	}

	defer func() {
		r.opts.recorder.RecordDependencyFetch(err)
	}()

	manager, err := r.detect(ctx)
	if err != nil {
		return nil, r.fail(PhaseDetect, err)
	}
	if manager == nil {
		r.opts.logger.Debug("no package manager installed",
			log.Fields{"probed": r.opts.packageManagers})
		return map[string]string{}, nil
	}

	output, err := r.opts.executor.Execute(ctx, manager.listCommand)
	if err != nil {
		return nil, r.fail(PhaseFetch, err)
	}

	parsed, err := manager.parse(output)
	if err != nil {
		return nil, r.fail(PhaseParse, err)
	}

	r.deps = parsed
	r.cached = true
	r.lastFetch = now

	return maps.Clone(r.deps), nil
}

// detect returns the first installed package manager, or nil if none is
func (r *resolver) detect(ctx context.Context) (*packageManager, error) {
	for _, name := range r.opts.packageManagers {
		pm, known := packageManagers[name]
		if !known {
			r.opts.logger.Warn("unknown package manager skipped", log.Fields{"name": name})
			continue
		}

		installed, probed := r.installed[name]
		if !probed {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			_, execErr := r.opts.executor.Execute(ctx, pm.versionCommand)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			installed = execErr == nil
			r.installed[name] = installed
		}

		if installed {
			return &pm, nil
		}
	}
	return nil, nil
}

// fail logs the failure and wraps it with its phase
func (r *resolver) fail(phase string, err error) error {
	perr := &PhaseError{Phase: phase, Err: err}
	r.opts.logger.ErrorWithErr(perr.Error(), err, log.Fields{"phase": phase})
	return perr
}
