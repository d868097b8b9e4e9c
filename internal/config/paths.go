package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/insilichem/pychimera/internal/envset"
	"github.com/insilichem/pychimera/internal/messages"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "PYCHIMERA_CONFIG"

var userConfigDir = os.UserConfigDir

// Paths holds the resolved config location.
type Paths struct {
	ConfigPath string
	// Explicit is true when the path came from a flag or PYCHIMERA_CONFIG,
	// which makes a missing file an error.
	Explicit bool
}

// ResolvePaths picks the config file from flag, then PYCHIMERA_CONFIG, then
// the user config directory.
func ResolvePaths(flag string, env *envset.Env) (Paths, error) {
	if flag = strings.TrimSpace(flag); flag != "" {
		return explicitPaths(flag)
	}
	if fromEnv := strings.TrimSpace(env.Get(EnvConfigPath)); fromEnv != "" {
		return explicitPaths(fromEnv)
	}
	base, err := userConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf(messages.ConfigResolveDirFmt, err)
	}
	return Paths{ConfigPath: filepath.Join(base, "pychimera", "config.toml")}, nil
}

func explicitPaths(path string) (Paths, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Paths{}, fmt.Errorf(messages.ConfigResolveDirFmt, err)
	}
	return Paths{ConfigPath: expanded, Explicit: true}, nil
}

// resolveRelative expands ~ and anchors relative paths at the config file's directory.
func (p Paths) resolveRelative(path string) (string, error) {
	expanded, err := homedir.Expand(strings.TrimSpace(path))
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return expanded, nil
	}
	return filepath.Join(filepath.Dir(p.ConfigPath), expanded), nil
}
