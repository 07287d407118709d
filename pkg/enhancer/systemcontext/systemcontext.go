// File: systemcontext.go
// Title: System Context Enhancer
// Description: Host facts captured when the enhancer is created: hostname,
//              CPU architecture, OS type and release, and system uptime.
//              Only the uptime can be refreshed afterwards.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

// Package systemcontext provides the SystemContext enhancer.
package systemcontext

import (
	"os"
	"runtime"

	"github.com/msto63/errenhanced/pkg/enhancer"
)

// Field names contributed by SystemContext
const (
	FieldHostname     = "_hostname"
	FieldCPUArch      = "_cpuArch"
	FieldOSType       = "_osType"
	FieldOSRelease    = "_osRelease"
	FieldSystemUptime = "_systemUptime"
)

// probes for host facts; replaced in tests
var (
	hostname  = os.Hostname
	osRelease = kernelRelease
	uptime    = systemUptime
)

// SystemContext holds host facts
type SystemContext struct {
	hostname     string
	cpuArch      string
	osType       string
	osRelease    string
	systemUptime int64
}

// New captures the current host facts. Facts that cannot be read are left
// empty, or -1 for the uptime.
func New() *SystemContext {
	s := &SystemContext{
		cpuArch:      runtime.GOARCH,
		osType:       runtime.GOOS,
		systemUptime: -1,
	}
	if h, err := hostname(); err == nil {
		s.hostname = h
	}
	if r, err := osRelease(); err == nil {
		s.osRelease = r
	}
	s.RefreshSystemInfo()
	return s
}

// Hostname returns the host name
func (s *SystemContext) Hostname() string {
	return s.hostname
}

// CPUArch returns the CPU architecture (GOARCH)
func (s *SystemContext) CPUArch() string {
	return s.cpuArch
}

// OSType returns the operating system (GOOS)
func (s *SystemContext) OSType() string {
	return s.osType
}

// OSRelease returns the kernel release
func (s *SystemContext) OSRelease() string {
	return s.osRelease
}

// SystemUptime returns the system uptime in seconds, -1 if unavailable
func (s *SystemContext) SystemUptime() int64 {
	return s.systemUptime
}

// RefreshSystemInfo re-reads the system uptime. A failed read keeps the
// previous value.
func (s *SystemContext) RefreshSystemInfo() *SystemContext {
	if u, err := uptime(); err == nil {
		s.systemUptime = u
	}
	return s
}

// Fields implements enhancer.Enhancer
func (s *SystemContext) Fields() []enhancer.Field {
	return []enhancer.Field{
		{Name: FieldHostname, Value: s.hostname},
		{Name: FieldCPUArch, Value: s.cpuArch},
		{Name: FieldOSType, Value: s.osType},
		{Name: FieldOSRelease, Value: s.osRelease},
		{Name: FieldSystemUptime, Value: s.systemUptime},
	}
}

// Clone implements enhancer.Enhancer
func (s *SystemContext) Clone() enhancer.Enhancer {
	c := *s
	return &c
}
