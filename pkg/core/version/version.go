// ============================================================================
// errenhanced - Enhanced Error Composition
// ============================================================================
//
// Package:     version
// Description: Central version management for the library and its CLI
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version constants for errenhanced components
const (
	// Library version
	Library = "1.0.0"

	// Component versions
	CLI        = "1.0.0"
	Serializer = "1.0.0"
	Enhancers  = "1.0.0"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "cli":
		return CLI
	case "serializer":
		return Serializer
	case "enhancers":
		return Enhancers
	default:
		return Library
	}
}

// Info describes the running binary
type Info struct {
	Version   string
	GoVersion string
	Platform  string
	Revision  string
}

// Get returns build information for the running binary. Revision is empty
// when the binary was built without VCS stamping.
func Get() Info {
	info := Info{
		Version:   Library,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				info.Revision = s.Value
			}
		}
	}
	return info
}

// String renders the info on one line
func (i Info) String() string {
	s := fmt.Sprintf("errenhanced %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
	if i.Revision != "" {
		s += " rev " + i.Revision
	}
	return s
}
