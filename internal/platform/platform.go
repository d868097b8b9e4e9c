// Package platform describes where UCSF Chimera lives on each supported OS.
package platform

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/insilichem/pychimera/internal/envset"
	"github.com/insilichem/pychimera/internal/messages"
)

// Supported platform names, matching runtime.GOOS.
const (
	Linux   = "linux"
	Darwin  = "darwin"
	Windows = "windows"
)

// Platform holds the discovery and layout conventions for one OS.
type Platform struct {
	// Name is the GOOS value this description applies to.
	Name string
	// Binary is the Chimera executable name looked up on PATH.
	Binary string
	// Prefix is the glob matched under each location to find install roots.
	Prefix string
	// Locations are the conventional parent directories of an installation.
	Locations []string
	// ListSeparator joins search-path variables.
	ListSeparator string
}

// ForOS returns the Platform for goos. Windows locations come from env.
func ForOS(goos string, env *envset.Env) (Platform, error) {
	switch goos {
	case Linux:
		return Platform{
			Name:          Linux,
			Binary:        "chimera",
			Prefix:        "UCSF-Chimera*",
			Locations:     expandAll("/opt", "~/.local"),
			ListSeparator: ":",
		}, nil
	case Darwin:
		return Platform{
			Name:          Darwin,
			Binary:        "chimera",
			Prefix:        filepath.Join("Chimera*", "Contents", "Resources"),
			Locations:     expandAll("/Applications", "~/.local", "~/Desktop"),
			ListSeparator: ":",
		}, nil
	case Windows:
		var locations []string
		for _, key := range []string{"PROGRAMFILES", "PROGRAMFILES(X86)", "PROGRAMW6432"} {
			if dir := env.Get(key); dir != "" {
				locations = append(locations, dir)
			}
		}
		return Platform{
			Name:          Windows,
			Binary:        "chimera.exe",
			Prefix:        "Chimera*",
			Locations:     locations,
			ListSeparator: ";",
		}, nil
	default:
		return Platform{}, fmt.Errorf(messages.LocateUnsupportedPlatform, goos, messages.LocateInstructions)
	}
}

// BundledInterpreter returns the interpreter shipped inside root, or "" when
// the platform runs Chimera under the caller's own interpreter.
func (p Platform) BundledInterpreter(root string) string {
	if p.Name == Darwin {
		return filepath.Join(root, "bin", "python2.7")
	}
	return ""
}

// expandAll expands a leading ~ in each path. Paths that cannot be expanded are dropped.
func expandAll(paths ...string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		expanded, err := homedir.Expand(p)
		if err != nil {
			continue
		}
		out = append(out, expanded)
	}
	return out
}
