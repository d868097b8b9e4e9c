// Package patch computes the environment Chimera's embedded interpreter expects.
//
// Apply is pure: it rewrites an envset.Env and never touches the process
// environment. The relaunch package hands the result to the next process image.
package patch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/insilichem/pychimera/internal/envset"
	"github.com/insilichem/pychimera/internal/messages"
	"github.com/insilichem/pychimera/internal/platform"
)

const (
	// EnvRoot holds the chosen installation root and marks the patch as done.
	EnvRoot = "CHIMERA"
	// PreservePrefix prefixes the saved value of every variable the patch overwrites.
	PreservePrefix = "CHIMERA_"
)

// Options tunes the patch.
type Options struct {
	// NoGUI is true for headless runs.
	NoGUI bool
	// SysPath is the target interpreter's own sys.path.
	SysPath []string
}

// Install is the layout of an installation root.
type Install struct {
	Root string
}

// LibDir returns <root>/lib.
func (i Install) LibDir() string { return filepath.Join(i.Root, "lib") }

// ShareDir returns <root>/share.
func (i Install) ShareDir() string { return filepath.Join(i.Root, "share") }

// BinDir returns <root>/bin.
func (i Install) BinDir() string { return filepath.Join(i.Root, "bin") }

// Apply rewrites env for the installation at root on plat.
func Apply(env *envset.Env, root string, plat platform.Platform, opts Options) error {
	if strings.TrimSpace(root) == "" {
		return fmt.Errorf(messages.PatchEmptyRoot)
	}
	inst := Install{Root: root}
	lib := inst.LibDir()

	env.Set(EnvRoot, root)

	// Tcl/Tk for gui mode
	replace(env, "TCL_LIBRARY", filepath.Join(lib, "tcl8.6"))
	replace(env, "TCLLIBPATH", "{"+lib+"}")
	remove(env, "TK_LIBRARY")
	remove(env, "TIX_LIBRARY")
	replace(env, "PYTHONNOUSERSITE", "1")

	switch plat.Name {
	case platform.Linux:
		patchLinux(env, inst, plat, opts)
	case platform.Darwin:
		patchDarwin(env, inst, plat, opts)
	case platform.Windows:
		patchWindows(env, inst, plat, opts)
	default:
		return fmt.Errorf(messages.LocateUnsupportedPlatform, plat.Name, messages.LocateInstructions)
	}
	return nil
}

// Preserved returns the name under which the previous value of key is saved.
func Preserved(key string) string {
	return PreservePrefix + key
}

func patchLinux(env *envset.Env, inst Install, plat platform.Platform, opts Options) {
	lib := inst.LibDir()
	py := filepath.Join(lib, "python2.7")

	env.Set("TERM", "xterm-256color")

	paths := []string{inst.ShareDir(), inst.BinDir()}
	if opts.NoGUI {
		paths = append(paths, opts.SysPath...)
	}
	paths = append(paths,
		lib,
		filepath.Join(py, "site-packages", "suds_jurko-0.6-py2.7.egg"),
		filepath.Join(lib, "python27.zip"),
		py,
		filepath.Join(py, "plat-linux2"),
		filepath.Join(py, "lib-tk"),
		filepath.Join(py, "lib-old"),
		filepath.Join(py, "lib-dynload"),
		filepath.Join(py, "site-packages"),
	)
	env.Set("PYTHONPATH", joinList(plat, paths))

	prependList(env, plat, "LD_LIBRARY_PATH", lib)
}

func patchDarwin(env *envset.Env, inst Install, plat platform.Platform, opts Options) {
	lib := inst.LibDir()
	py := filepath.Join(lib, "python2.7")

	env.Set("TERM", "xterm-256color")
	env.Set("FONTCONFIG_FILE", "/usr/X11/lib/X11/fonts/fonts.conf")

	paths := []string{
		inst.ShareDir(),
		inst.BinDir(),
		filepath.Join(lib, "python27.zip"),
		py,
		filepath.Join(py, "plat-darwin"),
		filepath.Join(py, "plat-mac"),
		filepath.Join(py, "plat-mac", "lib-scriptpackages"),
		filepath.Join(py, "lib-tk"),
		filepath.Join(py, "lib-old"),
		filepath.Join(py, "lib-dynload"),
		filepath.Join(py, "site-packages"),
	}
	paths = append(paths, opts.SysPath...)
	env.Set("PYTHONPATH", joinList(plat, paths))

	prependList(env, plat, "DYLD_FALLBACK_LIBRARY_PATH", lib)
	prependList(env, plat, "DYLD_FRAMEWORK_PATH", filepath.Join(inst.Root, "frameworks"))
}

func patchWindows(env *envset.Env, inst Install, plat platform.Platform, opts Options) {
	bin := inst.BinDir()
	pylib := filepath.Join(bin, "lib")
	site := filepath.Join(pylib, "site-packages")

	dirs := []string{bin, filepath.Join(bin, "DLLs"), pylib}
	if env.Preserve("PATH", Preserved("PATH")) {
		dirs = append(dirs, env.Get("PATH"))
	}
	env.Set("PATH", strings.Join(dirs, plat.ListSeparator))

	paths := []string{inst.ShareDir(), bin}
	if opts.NoGUI {
		paths = append(paths, opts.SysPath...)
	}
	paths = append(paths,
		filepath.Join(site, "setuptools-3.1-py2.7.egg"),
		filepath.Join(site, "suds_jurko-0.6-py2.7.egg"),
		filepath.Join(bin, "DLLs"),
		filepath.Join(bin, "libs"),
		pylib,
		filepath.Join(pylib, "lib-tk"),
		filepath.Join(pylib, "plat-win"),
		site,
		filepath.Join(site, "PIL"),
		inst.Root,
	)
	env.Set("PYTHONPATH", joinList(plat, paths))
}

// replace saves the current value of key, then sets it to value.
func replace(env *envset.Env, key string, value string) {
	env.Preserve(key, Preserved(key))
	env.Set(key, value)
}

// remove saves the current value of key, then unsets it.
func remove(env *envset.Env, key string) {
	if env.Preserve(key, Preserved(key)) {
		env.Unset(key)
	}
}

// prependList puts dir in front of the search list in key, saving the old list.
func prependList(env *envset.Env, plat platform.Platform, key string, dir string) {
	old, ok := env.Lookup(key)
	if !ok {
		env.Set(key, dir)
		return
	}
	env.Set(Preserved(key), old)
	env.Set(key, joinList(plat, []string{dir, old}))
}

func joinList(plat platform.Platform, paths []string) string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, plat.ListSeparator)
}
