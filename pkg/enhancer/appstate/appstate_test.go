package appstate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/errenhanced/pkg/core/execx"
	"github.com/msto63/errenhanced/pkg/core/log"
	"github.com/msto63/errenhanced/pkg/core/validation"
	"github.com/msto63/errenhanced/pkg/enhancer"
)

// fakeExecutor answers commands from a table and counts invocations
type fakeExecutor struct {
	mu      sync.Mutex
	outputs map[string]string
	errs    map[string]error
	calls   map[string]int
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		outputs: map[string]string{},
		errs:    map[string]error{},
		calls:   map[string]int{},
	}
}

func (f *fakeExecutor) Execute(_ context.Context, command string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[command]++
	if err, ok := f.errs[command]; ok {
		return "", err
	}
	if out, ok := f.outputs[command]; ok {
		return out, nil
	}
	return "", &execx.CommandError{Command: command, ExitCode: 127, Stderr: "not found"}
}

func (f *fakeExecutor) count(command string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[command]
}

func newQuiet(opts ...Option) *ApplicationState {
	return New(append([]Option{WithLogger(log.Discard())}, opts...)...)
}

func TestNewDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ERRENHANCED_PROBE", "present")

	a := newQuiet()
	assert.Equal(t, EnvironmentUnknown, a.Environment())
	assert.Equal(t, runtime.Version(), a.RuntimeVersion())
	assert.Empty(t, a.Configurations())
	assert.Empty(t, a.StateSnapshot())
	assert.Empty(t, a.EventHistory())
	assert.Empty(t, a.Dependencies())
	assert.Equal(t, "present", a.EnvVars()["ERRENHANCED_PROBE"])
}

func TestEnvironmentFromVariable(t *testing.T) {
	t.Setenv("DEPLOY_STAGE", EnvironmentStaging)

	a := newQuiet(WithEnvironmentVariable("DEPLOY_STAGE"))
	assert.Equal(t, EnvironmentStaging, a.Environment())
}

func TestWithoutEnvVars(t *testing.T) {
	t.Setenv("ERRENHANCED_PROBE", "present")
	a := newQuiet(WithoutEnvVars())
	assert.Empty(t, a.EnvVars())
}

func TestSetters(t *testing.T) {
	a := newQuiet()

	got, err := a.SetEnvironment(EnvironmentProduction)
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, EnvironmentProduction, a.Environment())

	configs := map[string]any{"apiEndpoint": "https://api.example.com"}
	got, err = a.SetConfigurations(configs)
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, configs, a.Configurations())

	snapshot := map[string]any{"queueDepth": 3}
	got, err = a.SetStateSnapshot(snapshot)
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, snapshot, a.StateSnapshot())
}

func TestSettersRejectInvalid(t *testing.T) {
	tests := []struct {
		name  string
		call  func(*ApplicationState) (*ApplicationState, error)
		field string
	}{
		{"blank environment", func(a *ApplicationState) (*ApplicationState, error) { return a.SetEnvironment(" ") }, "environment"},
		{"nil configurations", func(a *ApplicationState) (*ApplicationState, error) { return a.SetConfigurations(nil) }, "configurations"},
		{"nil snapshot", func(a *ApplicationState) (*ApplicationState, error) { return a.SetStateSnapshot(nil) }, "stateSnapshot"},
		{"blank event", func(a *ApplicationState) (*ApplicationState, error) { return a.AddToEventHistory("") }, "event"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newQuiet(WithoutEnvVars())
			before := a.Fields()

			got, err := tt.call(a)
			require.Error(t, err)
			assert.Same(t, a, got)
			assert.Equal(t, before, a.Fields())

			var verr *validation.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestEventHistoryRing(t *testing.T) {
	a := newQuiet()
	for i := 1; i <= 12; i++ {
		_, err := a.AddToEventHistory(fmt.Sprintf("event-%d", i))
		require.NoError(t, err)
	}

	history := a.EventHistory()
	require.Len(t, history, EventHistoryCapacity)
	assert.Equal(t, "event-3", history[0])
	assert.Equal(t, "event-12", history[9])
}

func TestFetchDependenciesGo(t *testing.T) {
	exe := newFakeExecutor()
	exe.outputs["go version"] = "go version go1.24.0 linux/amd64"
	exe.outputs["go list -m -json all"] = `{"Path":"github.com/msto63/errenhanced","Main":true}
{"Path":"github.com/google/uuid","Version":"v1.6.0"}
{"Path":"gopkg.in/yaml.v3","Version":"v3.0.1","Replace":{"Path":"gopkg.in/yaml.v3","Version":"v3.0.2"}}`

	a := newQuiet(WithExecutor(exe))
	deps, err := a.FetchDependencies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"github.com/google/uuid": "v1.6.0",
		"gopkg.in/yaml.v3":       "v3.0.2",
	}, deps)
	assert.Equal(t, deps, a.Dependencies())

	v, ok := enhancer.Lookup(a, FieldDependencies)
	require.True(t, ok)
	assert.Equal(t, deps, v)
}

func TestFetchDependenciesProbeOrder(t *testing.T) {
	exe := newFakeExecutor()
	exe.outputs["yarn --version"] = "1.22.19"
	exe.outputs["yarn list --json"] = `{"dependencies":{"left-pad":"1.3.0","react":{"version":"18.2.0"}}}`

	a := newQuiet(WithExecutor(exe), WithPackageManagers("npm", "yarn", "pnpm"))
	deps, err := a.FetchDependencies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"left-pad": "1.3.0", "react": "18.2.0"}, deps)

	assert.Equal(t, 1, exe.count("npm --version"))
	assert.Equal(t, 1, exe.count("yarn --version"))
	assert.Equal(t, 0, exe.count("pnpm --version"), "probing stops at the first installed manager")
}

func TestFetchDependenciesCache(t *testing.T) {
	exe := newFakeExecutor()
	exe.outputs["npm --version"] = "10.2.0"
	exe.outputs["npm list --json"] = `{"dependencies":{"zod":{"version":"3.22.4"}}}`

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	a := newQuiet(WithExecutor(exe), WithPackageManagers("npm"), WithClock(func() time.Time { return now }))

	_, err := a.FetchDependencies(context.Background())
	require.NoError(t, err)

	now = now.Add(4 * time.Minute)
	_, err = a.FetchDependencies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, exe.count("npm list --json"), "fresh cache is served")

	now = now.Add(2 * time.Minute)
	_, err = a.FetchDependencies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, exe.count("npm list --json"), "expired cache is refreshed")
	assert.Equal(t, 1, exe.count("npm --version"), "probe result is cached per manager")
}

func TestFetchDependenciesNoManager(t *testing.T) {
	exe := newFakeExecutor()
	a := newQuiet(WithExecutor(exe), WithPackageManagers("npm", "pnpm"))

	deps, err := a.FetchDependencies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, deps)

	_, err = a.FetchDependencies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, exe.count("npm --version"), "negative probes are cached too")
}

func TestFetchDependenciesFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeExecutor)
		phase string
	}{
		{
			name: "list command fails",
			setup: func(f *fakeExecutor) {
				f.outputs["npm --version"] = "10.0.0"
				f.errs["npm list --json"] = &execx.CommandError{Command: "npm list --json", ExitCode: 1, Stderr: "ELSPROBLEMS"}
			},
			phase: PhaseFetch,
		},
		{
			name: "malformed output",
			setup: func(f *fakeExecutor) {
				f.outputs["npm --version"] = "10.0.0"
				f.outputs["npm list --json"] = "{not json"
			},
			phase: PhaseParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exe := newFakeExecutor()
			tt.setup(exe)

			var buf bytes.Buffer
			logger := log.NewWithConfig(log.Config{Level: log.LevelWarn, Format: log.FormatText, Output: &buf})
			a := New(WithExecutor(exe), WithPackageManagers("npm"), WithLogger(logger))

			_, err := a.FetchDependencies(context.Background())
			require.Error(t, err)

			var perr *PhaseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.phase, perr.Phase)
			assert.True(t, strings.HasPrefix(err.Error(), "Failed during "+tt.phase+": "))
			assert.Contains(t, buf.String(), "Failed during "+tt.phase, "failure is logged before returning")
			assert.Empty(t, a.Dependencies())
		})
	}
}

func TestFetchDependenciesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newQuiet(WithExecutor(newFakeExecutor()), WithPackageManagers("npm"))
	_, err := a.FetchDependencies(ctx)

	var perr *PhaseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, PhaseDetect, perr.Phase)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPhaseErrorMessage(t *testing.T) {
	assert.Equal(t, "Failed during fetchDependencies: boom",
		(&PhaseError{Phase: PhaseFetch, Err: errors.New("boom")}).Error())
	assert.Equal(t, "Failed during parseDependencies: Unknown error",
		(&PhaseError{Phase: PhaseParse}).Error())
}

func TestParseNodeDependencies(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   map[string]string
	}{
		{"npm object", `{"name":"app","dependencies":{"a":{"version":"1.0.0"}}}`, map[string]string{"a": "1.0.0"}},
		{"string versions", `{"dependencies":{"b":"2.0.0"}}`, map[string]string{"b": "2.0.0"}},
		{"pnpm array", `[{"name":"app","dependencies":{"c":{"version":"3.0.0"}}}]`, map[string]string{"c": "3.0.0"}},
		{"missing dependencies", `{"name":"app"}`, map[string]string{}},
		{"empty array", `[]`, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNodeDependencies(tt.output)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseNodeDependencies("")
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	exe := newFakeExecutor()
	exe.outputs["npm --version"] = "10.0.0"
	exe.outputs["npm list --json"] = `{"dependencies":{"a":"1"}}`

	a := newQuiet(WithExecutor(exe), WithPackageManagers("npm"))
	_, _ = a.AddToEventHistory("boot")
	_, err := a.FetchDependencies(context.Background())
	require.NoError(t, err)

	c := a.Clone().(*ApplicationState)
	_, _ = c.AddToEventHistory("request")
	assert.Equal(t, []string{"boot"}, a.EventHistory())
	assert.Equal(t, a.Dependencies(), c.Dependencies())

	_, err = c.FetchDependencies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, exe.count("npm list --json"), "clone inherits the warm cache")
}

func TestFieldsOrder(t *testing.T) {
	assert.Equal(t, []string{
		FieldEnvironment, FieldRuntimeVersion, FieldConfigurations, FieldEnvVars,
		FieldStateSnapshot, FieldEventHistory, FieldDependencies,
	}, enhancer.Names(newQuiet()))
}
