// File: factory.go
// Title: Configured Error Factory
// Description: Builds fully composed errors from typed settings, sharing
//              one logger, metrics recorder, stack cache and command
//              executor.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package enhanced

import (
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/msto63/errenhanced/pkg/core/config"
	"github.com/msto63/errenhanced/pkg/core/execx"
	"github.com/msto63/errenhanced/pkg/core/log"
	"github.com/msto63/errenhanced/pkg/core/metrics"
	"github.com/msto63/errenhanced/pkg/enhancer"
	"github.com/msto63/errenhanced/pkg/enhancer/analysis"
	"github.com/msto63/errenhanced/pkg/enhancer/appstate"
	"github.com/msto63/errenhanced/pkg/enhancer/httpstatus"
	"github.com/msto63/errenhanced/pkg/enhancer/identifiers"
	"github.com/msto63/errenhanced/pkg/enhancer/systemcontext"
	"github.com/msto63/errenhanced/pkg/enhancer/userinfo"
)

// WrappedName is the name given to errors created by Wrap
const WrappedName = "EnhancedError"

// ErrNilError is returned when Wrap is given a nil error
var ErrNilError = errors.New("cannot wrap a nil error")

// Factory creates composites with every built-in capability
type Factory struct {
	settings config.Settings
	logger   *log.Logger
	recorder *metrics.Recorder
	stacks   *analysis.StackCache
	executor execx.Executor
}

type factoryOptions struct {
	logger     *log.Logger
	executor   execx.Executor
	registerer prometheus.Registerer
}

// FactoryOption configures NewFactory
type FactoryOption func(*factoryOptions)

// WithLogger replaces the logger built from the log settings
func WithLogger(l *log.Logger) FactoryOption {
	return func(o *factoryOptions) {
		o.logger = l
	}
}

// WithExecutor replaces the shell executor used for dependency discovery
func WithExecutor(e execx.Executor) FactoryOption {
	return func(o *factoryOptions) {
		o.executor = e
	}
}

// WithRegisterer registers the factory metrics with reg
func WithRegisterer(reg prometheus.Registerer) FactoryOption {
	return func(o *factoryOptions) {
		o.registerer = reg
	}
}

// NewFactory validates settings and builds the shared infrastructure
func NewFactory(settings config.Settings, opts ...FactoryOption) (*Factory, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	var o factoryOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		level, err := log.ParseLevel(settings.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
		format, err := log.ParseFormat(settings.Log.Format)
		if err != nil {
			return nil, fmt.Errorf("log.format: %w", err)
		}
		logger = log.NewWithConfig(log.Config{
			Level:  level,
			Format: format,
			Output: os.Stderr,
			Name:   settings.Log.Name,
		})
	}

	recorder, err := metrics.NewRecorder(settings.Metrics.Namespace, o.registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics recorder: %w", err)
	}

	stacks, err := analysis.NewStackCache(settings.Analysis.StackCacheSize, nil, analysis.WithCacheMetrics(recorder))
	if err != nil {
		return nil, fmt.Errorf("failed to create stack cache: %w", err)
	}

	executor := o.executor
	if executor == nil {
		executor = execx.NewShellExecutor(execx.WithTimeout(settings.ApplicationState.CommandTimeout))
	}

	return &Factory{
		settings: settings,
		logger:   logger,
		recorder: recorder,
		stacks:   stacks,
		executor: executor,
	}, nil
}

// Settings returns the settings the factory was built from
func (f *Factory) Settings() config.Settings {
	return f.settings
}

// Logger returns the shared logger
func (f *Factory) Logger() *log.Logger {
	return f.logger
}

// Metrics returns the shared recorder
func (f *Factory) Metrics() *metrics.Recorder {
	return f.recorder
}

// Options returns the composite options derived from the settings
func (f *Factory) Options() Options {
	return OptionsFromSettings(f.settings, f.logger, f.recorder)
}

// Enhancers returns a fresh instance of every built-in capability
func (f *Factory) Enhancers() []enhancer.Enhancer {
	as := f.settings.ApplicationState
	appOpts := []appstate.Option{
		appstate.WithExecutor(f.executor),
		appstate.WithLogger(f.logger),
		appstate.WithMetrics(f.recorder),
		appstate.WithCacheTTL(as.DependencyCacheTTL),
		appstate.WithPackageManagers(as.PackageManagers...),
		appstate.WithEnvironmentVariable(as.EnvironmentVariable),
	}
	if !as.CaptureEnvVars {
		appOpts = append(appOpts, appstate.WithoutEnvVars())
	}

	return []enhancer.Enhancer{
		identifiers.New(),
		httpstatus.New(),
		systemcontext.New(),
		userinfo.New(),
		appstate.New(appOpts...),
		analysis.New(analysis.WithStackCache(f.stacks)),
	}
}

// New composes an error with every built-in capability
func (f *Factory) New(name, message string) *Error {
	return compose(f.Options(), 3, name, message, f.Enhancers())
}

// Wrap composes an error around err and records it as the original
// error. An empty message falls back to err's message.
func (f *Factory) Wrap(err error, message string) (*Error, error) {
	if err == nil {
		return nil, ErrNilError
	}
	if message == "" {
		message = err.Error()
	}

	e := compose(f.Options(), 3, WrappedName, message, f.Enhancers())
	if _, setErr := e.SetOriginalError(err); setErr != nil {
		return nil, setErr
	}
	return e, nil
}
