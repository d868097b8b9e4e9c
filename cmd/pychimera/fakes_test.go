package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/insilichem/pychimera/internal/envset"
	"github.com/insilichem/pychimera/internal/testutil"
)

type execCall struct {
	path string
	args []string
	env  []string
}

// fakeRelaunch records process replacements instead of performing them.
type fakeRelaunch struct {
	env        []string
	executable string
	calls      []execCall
	execErr    error
}

func (s *fakeRelaunch) Getenv(key string) string {
	return envset.FromEnviron(s.env).Get(key)
}

func (s *fakeRelaunch) LookupEnv(key string) (string, bool) {
	return envset.FromEnviron(s.env).Lookup(key)
}

func (s *fakeRelaunch) Environ() []string {
	return append([]string(nil), s.env...)
}

func (s *fakeRelaunch) Executable() (string, error) {
	return s.executable, nil
}

func (s *fakeRelaunch) ExecBinary(path string, args []string, env []string, _ func(int)) error {
	s.calls = append(s.calls, execCall{path: path, args: args, env: env})
	return s.execErr
}

// fakeLocate finds no chimera on PATH and globs nothing unless told otherwise.
type fakeLocate struct {
	globs map[string][]string
}

func (fakeLocate) LookPath(string) (string, error) {
	return "", errors.New("executable file not found in $PATH")
}

func (fakeLocate) Output(context.Context, string, ...string) ([]byte, error) {
	return nil, errors.New("not mocked")
}

func (s fakeLocate) Glob(pattern string) ([]string, error) {
	return s.globs[pattern], nil
}

func (fakeLocate) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// fakeInterp puts python2.7 on PATH and answers sys.path queries.
type fakeInterp struct {
	sysPath string
	err     error
}

func (fakeInterp) LookPath(file string) (string, error) {
	if file == "python2.7" {
		return "/usr/bin/python2.7", nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (fakeInterp) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (s fakeInterp) Output(context.Context, string, ...string) ([]byte, error) {
	return []byte(s.sysPath), s.err
}

type fakeChooser struct {
	pick       func(candidates []string, preferred string) (string, error)
	candidates []string
}

func (c *fakeChooser) Pick(candidates []string, preferred string) (string, error) {
	c.candidates = candidates
	return c.pick(candidates, preferred)
}

// harness swaps the OS seams for fakes for the duration of a test.
type harness struct {
	relaunch *fakeRelaunch
	locate   fakeLocate
	interp   fakeInterp
	terminal bool
	chooser  *fakeChooser
}

func newHarness(t *testing.T, env ...string) *harness {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, nil, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	h := &harness{
		relaunch: &fakeRelaunch{
			env:        append([]string{"PATH=/usr/bin", "PYCHIMERA_CONFIG=" + configPath}, env...),
			executable: "/usr/local/bin/pychimera",
		},
		interp: fakeInterp{sysPath: "/usr/lib/python2.7\n"},
	}

	origLocate, origInterp, origRelaunch := locateSystem, interpSystem, relaunchSystem
	origTerminal, origChooser, origGOOS, origColor := stdinIsTerminal, newChooser, goos, stdoutColor
	origNoColor := color.NoColor
	t.Cleanup(func() {
		locateSystem, interpSystem, relaunchSystem = origLocate, origInterp, origRelaunch
		stdinIsTerminal, newChooser, goos, stdoutColor = origTerminal, origChooser, origGOOS, origColor
		color.NoColor = origNoColor
	})
	color.NoColor = true
	locateSystem = &h.locate
	interpSystem = &h.interp
	relaunchSystem = h.relaunch
	stdinIsTerminal = func() bool { return h.terminal }
	newChooser = func() chooser {
		if h.chooser == nil {
			t.Fatal("unexpected chooser")
		}
		return h.chooser
	}
	goos = "linux"
	stdoutColor = func(io.Writer) bool { return false }
	return h
}

// run invokes runMain and returns stdout, stderr and the exit code (-1 when exit was not called).
func (h *harness) run(args ...string) (string, string, int) {
	var stdout, stderr strings.Builder
	code := -1
	runMain(append([]string{"pychimera"}, args...), &stdout, &stderr, func(c int) { code = c })
	return stdout.String(), stderr.String(), code
}

// patchedEnv returns the environment of a relaunched process for an installation at root.
func patchedEnv(root string) []string {
	return []string{
		"CHIMERA=" + root,
		"PYTHONPATH=" + filepath.Join(root, "share") + ":" + filepath.Join(root, "bin"),
	}
}

func newInstall(t *testing.T) string {
	t.Helper()
	return testutil.MakeInstall(t, t.TempDir(), "UCSF-Chimera64-1.16")
}

type bootstrapPayload struct {
	Mode         string   `json:"mode"`
	Target       string   `json:"target"`
	Args         []string `json:"args"`
	NotebookName string   `json:"notebook_name"`
}

var payloadPattern = regexp.MustCompile(`b64decode\('([A-Za-z0-9+/=]+)'\)`)

func decodeBootstrap(t *testing.T, source string) bootstrapPayload {
	t.Helper()
	match := payloadPattern.FindStringSubmatch(source)
	if len(match) != 2 {
		t.Fatalf("payload not found in bootstrap source")
	}
	raw, err := base64.StdEncoding.DecodeString(match[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	var p bootstrapPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return p
}

func writeText(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func copyFile(src string, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o755)
}

func copyDir(src string, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}
