// File: settings.go
// Title: Typed errenhanced Settings
// Description: Collects every configuration key recognised by errenhanced
//              into a typed Settings value with defaults and validation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package config

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot policies for the serializer
const (
	SnapshotCached = "cached"
	SnapshotFresh  = "fresh"
)

// LogSettings configures the shared logger
type LogSettings struct {
	Level  string
	Format string
	Name   string
}

// SerializerSettings configures snapshot caching and output formats
type SerializerSettings struct {
	Snapshot     string
	CSVDelimiter string
	CSVQuoted    bool
	XMLIndent    string
}

// ApplicationStateSettings configures environment and dependency discovery
type ApplicationStateSettings struct {
	EnvironmentVariable string
	CaptureEnvVars      bool
	PackageManagers     []string
	DependencyCacheTTL  time.Duration
	CommandTimeout      time.Duration
}

// AnalysisSettings configures stack analysis
type AnalysisSettings struct {
	StackCacheSize int
}

// MetricsSettings configures the metrics recorder
type MetricsSettings struct {
	Namespace string
}

// Settings is the typed view of an errenhanced configuration
type Settings struct {
	Log              LogSettings
	Serializer       SerializerSettings
	ApplicationState ApplicationStateSettings
	Analysis         AnalysisSettings
	Metrics          MetricsSettings
}

// DefaultSettings returns the settings used when no configuration is given
func DefaultSettings() Settings {
	return Settings{
		Log: LogSettings{
			Level:  "warn",
			Format: "text",
			Name:   "errenhanced",
		},
		Serializer: SerializerSettings{
			Snapshot:     SnapshotCached,
			CSVDelimiter: ",",
			CSVQuoted:    true,
			XMLIndent:    "  ",
		},
		ApplicationState: ApplicationStateSettings{
			EnvironmentVariable: "APP_ENV",
			CaptureEnvVars:      true,
			PackageManagers:     []string{"go", "npm", "yarn", "pnpm"},
			DependencyCacheTTL:  5 * time.Minute,
			CommandTimeout:      30 * time.Second,
		},
		Analysis: AnalysisSettings{
			StackCacheSize: 1024,
		},
		Metrics: MetricsSettings{
			Namespace: "errenhanced",
		},
	}
}

// FromConfig reads Settings from cfg, falling back to DefaultSettings for
// every missing key
func FromConfig(cfg *Config) Settings {
	d := DefaultSettings()
	if cfg == nil {
		return d
	}

	return Settings{
		Log: LogSettings{
			Level:  cfg.GetString("log.level", d.Log.Level),
			Format: cfg.GetString("log.format", d.Log.Format),
			Name:   cfg.GetString("log.name", d.Log.Name),
		},
		Serializer: SerializerSettings{
			Snapshot:     strings.ToLower(cfg.GetString("serializer.snapshot", d.Serializer.Snapshot)),
			CSVDelimiter: cfg.GetString("serializer.csv_delimiter", d.Serializer.CSVDelimiter),
			CSVQuoted:    cfg.GetBool("serializer.csv_quoted", d.Serializer.CSVQuoted),
			XMLIndent:    cfg.GetString("serializer.xml_indent", d.Serializer.XMLIndent),
		},
		ApplicationState: ApplicationStateSettings{
			EnvironmentVariable: cfg.GetString("application_state.environment_variable", d.ApplicationState.EnvironmentVariable),
			CaptureEnvVars:      cfg.GetBool("application_state.capture_env_vars", d.ApplicationState.CaptureEnvVars),
			PackageManagers:     cfg.GetStringSlice("application_state.package_managers", d.ApplicationState.PackageManagers),
			DependencyCacheTTL:  cfg.GetDuration("application_state.dependency_cache_ttl", d.ApplicationState.DependencyCacheTTL),
			CommandTimeout:      cfg.GetDuration("application_state.command_timeout", d.ApplicationState.CommandTimeout),
		},
		Analysis: AnalysisSettings{
			StackCacheSize: cfg.GetInt("analysis.stack_cache_size", d.Analysis.StackCacheSize),
		},
		Metrics: MetricsSettings{
			Namespace: cfg.GetString("metrics.namespace", d.Metrics.Namespace),
		},
	}
}

// LoadSettings loads and validates Settings from path. An empty path
// yields the defaults with ERRENHANCED_* environment overrides applied.
func LoadSettings(path string) (Settings, error) {
	var cfg *Config
	if path == "" {
		cfg = New(EnvPrefix)
	} else {
		var err error
		cfg, err = LoadWithOptions(path, LoadOptions{Format: FormatAuto, EnvPrefix: EnvPrefix})
		if err != nil {
			return Settings{}, err
		}
	}

	s := FromConfig(cfg)
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate reports the first invalid setting
func (s Settings) Validate() error {
	switch s.Serializer.Snapshot {
	case SnapshotCached, SnapshotFresh:
	default:
		return fmt.Errorf("serializer.snapshot: unknown policy %q, want %q or %q",
			s.Serializer.Snapshot, SnapshotCached, SnapshotFresh)
	}
	if s.Serializer.CSVDelimiter == "" {
		return fmt.Errorf("serializer.csv_delimiter: must not be empty")
	}
	if strings.TrimSpace(s.ApplicationState.EnvironmentVariable) == "" {
		return fmt.Errorf("application_state.environment_variable: must not be empty")
	}
	if s.ApplicationState.DependencyCacheTTL <= 0 {
		return fmt.Errorf("application_state.dependency_cache_ttl: must be positive, got %s",
			s.ApplicationState.DependencyCacheTTL)
	}
	if s.ApplicationState.CommandTimeout <= 0 {
		return fmt.Errorf("application_state.command_timeout: must be positive, got %s",
			s.ApplicationState.CommandTimeout)
	}
	if s.Analysis.StackCacheSize <= 0 {
		return fmt.Errorf("analysis.stack_cache_size: must be positive, got %d", s.Analysis.StackCacheSize)
	}
	if strings.TrimSpace(s.Metrics.Namespace) == "" {
		return fmt.Errorf("metrics.namespace: must not be empty")
	}
	return nil
}
