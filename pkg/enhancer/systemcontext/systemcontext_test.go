package systemcontext

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/errenhanced/pkg/enhancer"
)

// stubProbes replaces the host probes for the duration of a test
func stubProbes(t *testing.T, host string, release string, up func() (int64, error)) {
	t.Helper()
	origHost, origRelease, origUptime := hostname, osRelease, uptime
	t.Cleanup(func() {
		hostname, osRelease, uptime = origHost, origRelease, origUptime
	})

	hostname = func() (string, error) { return host, nil }
	osRelease = func() (string, error) { return release, nil }
	uptime = up
}

func TestNewCapturesHostFacts(t *testing.T) {
	stubProbes(t, "build-01", "6.1.0", func() (int64, error) { return 3600, nil })

	s := New()
	assert.Equal(t, "build-01", s.Hostname())
	assert.Equal(t, runtime.GOARCH, s.CPUArch())
	assert.Equal(t, runtime.GOOS, s.OSType())
	assert.Equal(t, "6.1.0", s.OSRelease())
	assert.Equal(t, int64(3600), s.SystemUptime())
}

func TestNewWithFailingProbes(t *testing.T) {
	stubProbes(t, "", "", func() (int64, error) { return 0, errors.New("no sysinfo") })
	hostname = func() (string, error) { return "", errors.New("no hostname") }

	s := New()
	assert.Empty(t, s.Hostname())
	assert.Equal(t, int64(-1), s.SystemUptime())
}

func TestRefreshSystemInfoUpdatesUptimeOnly(t *testing.T) {
	current := int64(100)
	stubProbes(t, "host-a", "5.0", func() (int64, error) { return current, nil })

	s := New()
	require.Equal(t, int64(100), s.SystemUptime())

	current = 160
	hostname = func() (string, error) { return "host-b", nil }

	got := s.RefreshSystemInfo()
	assert.Same(t, s, got)
	assert.Equal(t, int64(160), s.SystemUptime())
	assert.Equal(t, "host-a", s.Hostname(), "hostname is a snapshot")
}

func TestRefreshKeepsPreviousUptimeOnFailure(t *testing.T) {
	stubProbes(t, "h", "r", func() (int64, error) { return 42, nil })
	s := New()

	uptime = func() (int64, error) { return 0, errors.New("gone") }
	s.RefreshSystemInfo()
	assert.Equal(t, int64(42), s.SystemUptime())
}

func TestRealProbes(t *testing.T) {
	s := New()
	assert.Equal(t, runtime.GOOS, s.OSType())
	if runtime.GOOS == "linux" {
		assert.GreaterOrEqual(t, s.SystemUptime(), int64(0))
		assert.NotEmpty(t, s.OSRelease())
	}
}

func TestFieldsAndClone(t *testing.T) {
	stubProbes(t, "h", "r", func() (int64, error) { return 1, nil })
	s := New()

	assert.Equal(t, []string{FieldHostname, FieldCPUArch, FieldOSType, FieldOSRelease, FieldSystemUptime},
		enhancer.Names(s))

	c := s.Clone().(*SystemContext)
	c.systemUptime = 99
	assert.Equal(t, int64(1), s.SystemUptime())
}
