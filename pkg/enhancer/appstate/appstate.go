// File: appstate.go
// Title: Application State Enhancer
// Description: Runtime state of the application an error occurred in:
//              environment name, Go runtime version, configuration, the
//              environment variables at creation time, a free-form state
//              snapshot, the last ten events and the module dependencies.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

// Package appstate provides the ApplicationState enhancer.
package appstate

import (
	"context"
	"maps"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/msto63/errenhanced/pkg/core/execx"
	"github.com/msto63/errenhanced/pkg/core/log"
	"github.com/msto63/errenhanced/pkg/core/metrics"
	"github.com/msto63/errenhanced/pkg/core/validation"
	"github.com/msto63/errenhanced/pkg/enhancer"
)

// Field names contributed by ApplicationState
const (
	FieldEnvironment    = "_environment"
	FieldRuntimeVersion = "_runtimeVersion"
	FieldConfigurations = "_configurations"
	FieldEnvVars        = "_envVars"
	FieldStateSnapshot  = "_stateSnapshot"
	FieldEventHistory   = "_eventHistory"
	FieldDependencies   = "_dependencies"
)

// Well known environment names
const (
	EnvironmentDevelopment = "development"
	EnvironmentTesting     = "testing"
	EnvironmentStaging     = "staging"
	EnvironmentProduction  = "production"
	EnvironmentUnknown     = "unknown"
)

const (
	// EventHistoryCapacity is the number of events kept, oldest evicted first
	EventHistoryCapacity = 10

	// DefaultEnvironmentVariable names the variable the environment is read from
	DefaultEnvironmentVariable = "APP_ENV"

	// DefaultCacheTTL is how long discovered dependencies are served from cache
	DefaultCacheTTL = 5 * time.Minute
)

// DefaultPackageManagers is the probe order used when none is configured
var DefaultPackageManagers = []string{"go", "npm", "yarn", "pnpm"}

type options struct {
	executor        execx.Executor
	logger          *log.Logger
	recorder        *metrics.Recorder
	cacheTTL        time.Duration
	packageManagers []string
	now             func() time.Time
	envVariable     string
	captureEnvVars  bool
}

// Option configures an ApplicationState
type Option func(*options)

// WithExecutor sets the command executor used for dependency discovery
func WithExecutor(e execx.Executor) Option {
	return func(o *options) {
		if e != nil {
			o.executor = e
		}
	}
}

// WithLogger sets the logger that discovery failures are written to
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records dependency discovery outcomes
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithCacheTTL sets the dependency cache lifetime. Non-positive values are ignored.
func WithCacheTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.cacheTTL = d
		}
	}
}

// WithPackageManagers sets the package managers probed, in preference order
func WithPackageManagers(names ...string) Option {
	return func(o *options) {
		if len(names) > 0 {
			o.packageManagers = slices.Clone(names)
		}
	}
}

// WithClock replaces the wall clock used for cache expiry
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithEnvironmentVariable sets the variable the environment name is read from
func WithEnvironmentVariable(name string) Option {
	return func(o *options) {
		if strings.TrimSpace(name) != "" {
			o.envVariable = name
		}
	}
}

// WithoutEnvVars disables capturing the process environment
func WithoutEnvVars() Option {
	return func(o *options) {
		o.captureEnvVars = false
	}
}

// ApplicationState holds application runtime state
type ApplicationState struct {
	environment    string
	runtimeVersion string
	configurations map[string]any
	envVars        map[string]string
	stateSnapshot  map[string]any
	eventHistory   []string

	deps *resolver
}

// New captures the environment name, runtime version and, unless disabled,
// the process environment. Dependencies are discovered on demand by
// FetchDependencies.
func New(opts ...Option) *ApplicationState {
	o := options{
		executor:        execx.NewShellExecutor(),
		logger:          log.GetDefault(),
		cacheTTL:        DefaultCacheTTL,
		packageManagers: DefaultPackageManagers,
		now:             time.Now,
		envVariable:     DefaultEnvironmentVariable,
		captureEnvVars:  true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	environment := os.Getenv(o.envVariable)
	if strings.TrimSpace(environment) == "" {
		environment = EnvironmentUnknown
	}

	envVars := map[string]string{}
	if o.captureEnvVars {
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				envVars[k] = v
			}
		}
	}

	return &ApplicationState{
		environment:    environment,
		runtimeVersion: runtime.Version(),
		configurations: map[string]any{},
		envVars:        envVars,
		stateSnapshot:  map[string]any{},
		eventHistory:   []string{},
		deps:           newResolver(o),
	}
}

// Environment returns the environment name, "unknown" if not configured
func (a *ApplicationState) Environment() string {
	return a.environment
}

// SetEnvironment sets the environment name
func (a *ApplicationState) SetEnvironment(environment string) (*ApplicationState, error) {
	if r := validation.NonEmptyString(environment); !r.Valid {
		return a, r.ToError("environment", environment)
	}
	a.environment = environment
	return a, nil
}

// RuntimeVersion returns the Go runtime version
func (a *ApplicationState) RuntimeVersion() string {
	return a.runtimeVersion
}

// Configurations returns a shallow copy of the configuration map
func (a *ApplicationState) Configurations() map[string]any {
	return maps.Clone(a.configurations)
}

// SetConfigurations replaces the configuration map
func (a *ApplicationState) SetConfigurations(configs map[string]any) (*ApplicationState, error) {
	if r := validation.KeyedObject(configs); !r.Valid {
		return a, r.ToError("configurations", configs)
	}
	a.configurations = maps.Clone(configs)
	return a, nil
}

// EnvVars returns a copy of the captured environment variables
func (a *ApplicationState) EnvVars() map[string]string {
	return maps.Clone(a.envVars)
}

// StateSnapshot returns a shallow copy of the state snapshot
func (a *ApplicationState) StateSnapshot() map[string]any {
	return maps.Clone(a.stateSnapshot)
}

// SetStateSnapshot replaces the state snapshot
func (a *ApplicationState) SetStateSnapshot(snapshot map[string]any) (*ApplicationState, error) {
	if r := validation.KeyedObject(snapshot); !r.Valid {
		return a, r.ToError("stateSnapshot", snapshot)
	}
	a.stateSnapshot = maps.Clone(snapshot)
	return a, nil
}

// EventHistory returns a copy of the recorded events, oldest first
func (a *ApplicationState) EventHistory() []string {
	return slices.Clone(a.eventHistory)
}

// AddToEventHistory appends a non-blank event, evicting the oldest once
// more than EventHistoryCapacity events are held
func (a *ApplicationState) AddToEventHistory(event string) (*ApplicationState, error) {
	if r := validation.NonEmptyString(event); !r.Valid {
		return a, r.ToError("event", event)
	}
	a.eventHistory = append(a.eventHistory, event)
	if len(a.eventHistory) > EventHistoryCapacity {
		a.eventHistory = slices.Clone(a.eventHistory[len(a.eventHistory)-EventHistoryCapacity:])
	}
	return a, nil
}

// Dependencies returns the dependencies found by the last successful
// FetchDependencies call
func (a *ApplicationState) Dependencies() map[string]string {
	return a.deps.current()
}

// FetchDependencies discovers module dependencies through the first
// installed package manager. Results are cached for the configured TTL.
// When no package manager is installed the result is empty and nil.
func (a *ApplicationState) FetchDependencies(ctx context.Context) (map[string]string, error) {
	return a.deps.fetch(ctx)
}

// Fields implements enhancer.Enhancer
func (a *ApplicationState) Fields() []enhancer.Field {
	return []enhancer.Field{
		{Name: FieldEnvironment, Value: a.environment},
		{Name: FieldRuntimeVersion, Value: a.runtimeVersion},
		{Name: FieldConfigurations, Value: a.configurations},
		{Name: FieldEnvVars, Value: a.envVars},
		{Name: FieldStateSnapshot, Value: a.stateSnapshot},
		{Name: FieldEventHistory, Value: a.eventHistory},
		{Name: FieldDependencies, Value: a.deps.current()},
	}
}

// Clone implements enhancer.Enhancer. The clone gets its own copy of the
// package manager and dependency caches.
func (a *ApplicationState) Clone() enhancer.Enhancer {
	c := *a
	c.configurations = maps.Clone(a.configurations)
	c.envVars = maps.Clone(a.envVars)
	c.stateSnapshot = maps.Clone(a.stateSnapshot)
	c.eventHistory = slices.Clone(a.eventHistory)
	c.deps = a.deps.clone()
	return &c
}
