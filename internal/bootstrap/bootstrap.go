// Package bootstrap renders the Python program that initializes Chimera
// inside the interpreter and then runs the selected mode.
package bootstrap

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/insilichem/pychimera/internal/envset"
	"github.com/insilichem/pychimera/internal/messages"
	"github.com/insilichem/pychimera/internal/mode"
	"github.com/insilichem/pychimera/internal/platform"
)

const (
	// EnvEnabled is set once chimeraInit ran in a process tree.
	EnvEnabled = "CHIMERA_ENABLED"
	// EnvInspect keeps the interpreter interactive after the bootstrap finishes.
	EnvInspect = "PYTHONINSPECT"
)

// DefaultNotebookName is the untitled notebook name used by notebook mode.
const DefaultNotebookName = "Untitled PyChimera Notebook"

// ErrInitFailed reports that chimeraInit cannot be imported.
var ErrInitFailed = errors.New(messages.InitNotLoadable)

//go:embed python/bootstrap.py.tmpl
var bootstrapSource string

var bootstrapTemplate = template.Must(template.New("bootstrap").Parse(bootstrapSource))

var statFn = os.Stat

// Enabled reports whether Chimera was already initialized for env.
func Enabled(env *envset.Env) bool {
	return env.Get(EnvEnabled) != ""
}

// Initializer verifies chimeraInit can be imported before the interpreter starts.
type Initializer struct {
	Platform platform.Platform
}

// Check returns nil when Chimera is already enabled for env or chimeraInit
// is importable from its PYTHONPATH.
func (i Initializer) Check(env *envset.Env) error {
	if Enabled(env) {
		return nil
	}
	_, err := FindInitModule(env, i.Platform)
	return err
}

// FindInitModule returns the PYTHONPATH entry providing chimeraInit.
// It returns ErrInitFailed when no entry does.
func FindInitModule(env *envset.Env, plat platform.Platform) (string, error) {
	raw := env.Get("PYTHONPATH")
	var searched []string
	for _, dir := range strings.Split(raw, plat.ListSeparator) {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		searched = append(searched, dir)
		for _, name := range []string{"chimeraInit.py", "chimeraInit.pyc", filepath.Join("chimeraInit", "__init__.py")} {
			if _, err := statFn(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
	}
	return "", fmt.Errorf(messages.InitNotLoadableFmt, ErrInitFailed, strings.Join(searched, "\n  "))
}

// Program describes one interpreter run.
type Program struct {
	Plan    mode.Plan
	Verbose bool
	// NotebookName overrides DefaultNotebookName.
	NotebookName string
}

type payload struct {
	Mode         string   `json:"mode"`
	Target       string   `json:"target"`
	Args         []string `json:"args"`
	NotebookName string   `json:"notebook_name"`
}

type templateData struct {
	Payload string
	Init    bool
	Verbose string
	NoGUI   string
}

// Render returns the Python source for p. Initialization is left out when
// env shows Chimera already enabled or the mode defers it to the notebook.
func Render(p Program, env *envset.Env) (string, error) {
	name := p.NotebookName
	if strings.TrimSpace(name) == "" {
		name = DefaultNotebookName
	}
	args := p.Plan.Args
	if args == nil {
		args = []string{}
	}
	raw, err := json.Marshal(payload{
		Mode:         p.Plan.Mode.String(),
		Target:       p.Plan.Target,
		Args:         args,
		NotebookName: name,
	})
	if err != nil {
		return "", fmt.Errorf(messages.InitRenderFailedFmt, err)
	}

	data := templateData{
		Payload: base64.StdEncoding.EncodeToString(raw),
		Init:    p.Plan.InitializesChimera() && !Enabled(env),
		Verbose: pyBool(p.Verbose),
		NoGUI:   pyBool(p.Plan.Headless()),
	}
	var out bytes.Buffer
	if err := bootstrapTemplate.Execute(&out, data); err != nil {
		return "", fmt.Errorf(messages.InitRenderFailedFmt, err)
	}
	return out.String(), nil
}

// Environ returns the environment the interpreter runs p with. env is
// returned as is unless the plan keeps an interactive shell.
func Environ(p Program, env *envset.Env) *envset.Env {
	if !p.Plan.Inspect {
		return env
	}
	out := env.Clone()
	out.Set(EnvInspect, "1")
	return out
}

// Command returns the interpreter argv running source.
func Command(python string, source string) []string {
	return []string{python, "-c", source}
}

func pyBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
