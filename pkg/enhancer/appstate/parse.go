// File: parse.go
// Title: Package Manager Output Parsers
// Description: Commands and output parsers for the supported package
//              managers. Go modules are read from the JSON stream of
//              "go list -m -json all"; npm, yarn and pnpm report a
//              "dependencies" object whose values are either a version
//              string or an object with a version.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-16
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-16 v0.1.0: Initial implementation

package appstate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type packageManager struct {
	versionCommand string
	listCommand    string
	parse          func(output string) (map[string]string, error)
}

var packageManagers = map[string]packageManager{
	"go": {
		versionCommand: "go version",
		listCommand:    "go list -m -json all",
		parse:          parseGoModules,
	},
	"npm": {
		versionCommand: "npm --version",
		listCommand:    "npm list --json",
		parse:          parseNodeDependencies,
	},
	"yarn": {
		versionCommand: "yarn --version",
		listCommand:    "yarn list --json",
		parse:          parseNodeDependencies,
	},
	"pnpm": {
		versionCommand: "pnpm --version",
		listCommand:    "pnpm list --json",
		parse:          parseNodeDependencies,
	},
}

// SupportedPackageManagers lists the package managers that can be probed
func SupportedPackageManagers() []string {
	return []string{"go", "npm", "yarn", "pnpm"}
}

type goModule struct {
	Path    string
	Version string
	Main    bool
	Replace *goModule
}

// parseGoModules reads the concatenated module objects printed by go list.
// The main module is skipped; replaced modules report the replacement version.
func parseGoModules(output string) (map[string]string, error) {
	deps := map[string]string{}
	dec := json.NewDecoder(strings.NewReader(output))
	for {
		var m goModule
		if err := dec.Decode(&m); err != nil {
			if errors.Is(err, io.EOF) {
				return deps, nil
			}
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		if m.Main || m.Path == "" {
			continue
		}
		version := m.Version
		if m.Replace != nil && m.Replace.Version != "" {
			version = m.Replace.Version
		}
		deps[m.Path] = version
	}
}

type nodeListing struct {
	Dependencies map[string]json.RawMessage `json:"dependencies"`
}

// parseNodeDependencies extracts the top level dependencies object. pnpm
// prints an array of projects; the first project is used.
func parseNodeDependencies(output string) (map[string]string, error) {
	data := bytes.TrimSpace([]byte(output))

	var listing nodeListing
	if len(data) > 0 && data[0] == '[' {
		var projects []nodeListing
		if err := json.Unmarshal(data, &projects); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		if len(projects) > 0 {
			listing = projects[0]
		}
	} else if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	deps := make(map[string]string, len(listing.Dependencies))
	for name, raw := range listing.Dependencies {
		var version string
		if err := json.Unmarshal(raw, &version); err == nil {
			deps[name] = version
			continue
		}
		var entry struct {
			Version string `json:"version"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("dependency %s: %w", name, err)
		}
		deps[name] = entry.Version
	}
	return deps, nil
}
