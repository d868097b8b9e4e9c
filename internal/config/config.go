// Package config loads the optional pychimera config file.
package config

import (
	"fmt"
	"strings"

	"github.com/insilichem/pychimera/internal/messages"
)

// Config is the parsed config.toml.
type Config struct {
	Chimera  ChimeraConfig  `toml:"chimera"`
	Python   PythonConfig   `toml:"python"`
	Notebook NotebookConfig `toml:"notebook"`
	Env      EnvConfig      `toml:"env"`
}

// ChimeraConfig controls installation discovery.
type ChimeraConfig struct {
	// Dir pins the installation root. CHIMERADIR takes precedence.
	Dir string `toml:"dir"`
	// Locations are extra directories searched after the platform defaults.
	Locations []string `toml:"locations"`
}

// PythonConfig selects the interpreter.
type PythonConfig struct {
	// Interpreter is a name looked up on PATH or a path. Nil leaves discovery automatic.
	Interpreter *string `toml:"interpreter"`
}

// NotebookConfig customizes notebook mode.
type NotebookConfig struct {
	UntitledName string `toml:"untitled_name"`
}

// EnvConfig points at an env file applied before the patch.
type EnvConfig struct {
	File string `toml:"file"`
}

// Validate ensures the config is consistent.
func (c *Config) Validate(path string) error {
	if c.Python.Interpreter != nil && strings.TrimSpace(*c.Python.Interpreter) == "" {
		return fmt.Errorf(messages.ConfigInvalidFmt, path, fmt.Errorf(messages.ConfigInterpreterEmpty))
	}
	for i, loc := range c.Chimera.Locations {
		if strings.TrimSpace(loc) == "" {
			return fmt.Errorf(messages.ConfigInvalidFmt, path, fmt.Errorf(messages.ConfigLocationEmptyFmt, i))
		}
	}
	return nil
}

// Interpreter returns the configured interpreter or "".
func (c *Config) Interpreter() string {
	if c == nil || c.Python.Interpreter == nil {
		return ""
	}
	return strings.TrimSpace(*c.Python.Interpreter)
}
