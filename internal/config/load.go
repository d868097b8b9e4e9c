package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/insilichem/pychimera/internal/envfile"
	"github.com/insilichem/pychimera/internal/messages"
)

// ErrConfigValidation wraps validation failures, as opposed to TOML syntax
// or filesystem errors.
var ErrConfigValidation = errors.New("config validation failed")

// Load reads the config at p. A missing file at the default location yields
// an empty Config.
func Load(p Paths) (*Config, error) {
	data, err := os.ReadFile(p.ConfigPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !p.Explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf(messages.ConfigReadFailedFmt, p.ConfigPath, err)
	}
	return ParseConfig(data, p.ConfigPath)
}

// ParseConfig parses and validates config TOML data. source is used in error messages.
func ParseConfig(data []byte, source string) (*Config, error) {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: "+messages.ConfigInvalidFmt, ErrConfigValidation, source, errors.New(strict.String()))
		}
		return nil, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return &cfg, nil
}

// ResolveDir returns chimera.dir expanded and anchored, or "" when unset.
func (c *Config) ResolveDir(p Paths) (string, error) {
	if c == nil || c.Chimera.Dir == "" {
		return "", nil
	}
	dir, err := p.resolveRelative(c.Chimera.Dir)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveDirFmt, err)
	}
	return dir, nil
}

// LoadEnvFile reads env.file when configured and returns its contents.
func (c *Config) LoadEnvFile(p Paths) (envfile.File, error) {
	if c == nil || c.Env.File == "" {
		return envfile.File{}, nil
	}
	path, err := p.resolveRelative(c.Env.File)
	if err != nil {
		return envfile.File{}, fmt.Errorf(messages.ConfigEnvFileFailedFmt, c.Env.File, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return envfile.File{}, fmt.Errorf(messages.ConfigEnvFileFailedFmt, path, err)
	}
	file, err := envfile.Parse(string(data))
	if err != nil {
		return envfile.File{}, fmt.Errorf(messages.ConfigEnvFileInvalidFmt, path, err)
	}
	return file, nil
}

// ResolveLocations returns chimera.locations with ~ expanded and relative
// patterns anchored at the config file's directory.
func (c *Config) ResolveLocations(p Paths) ([]string, error) {
	if c == nil {
		return nil, nil
	}
	locations := make([]string, 0, len(c.Chimera.Locations))
	for _, loc := range c.Chimera.Locations {
		resolved, err := p.resolveRelative(loc)
		if err != nil {
			return nil, fmt.Errorf(messages.ConfigResolveDirFmt, err)
		}
		locations = append(locations, resolved)
	}
	return locations, nil
}
