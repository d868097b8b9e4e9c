package bootstrap

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insilichem/pychimera/internal/envset"
	"github.com/insilichem/pychimera/internal/mode"
	"github.com/insilichem/pychimera/internal/platform"
	"github.com/insilichem/pychimera/internal/testutil"
)

var linux = platform.Platform{Name: platform.Linux, ListSeparator: ":"}

var payloadPattern = regexp.MustCompile(`b64decode\('([A-Za-z0-9+/=]+)'\)`)

func decodePayload(t *testing.T, source string) payload {
	t.Helper()
	match := payloadPattern.FindStringSubmatch(source)
	require.Len(t, match, 2, "payload not found in bootstrap")
	raw, err := base64.StdEncoding.DecodeString(match[1])
	require.NoError(t, err)
	var p payload
	require.NoError(t, json.Unmarshal(raw, &p))
	return p
}

func TestFindInitModule(t *testing.T) {
	root := testutil.MakeInstall(t, t.TempDir(), "chimera")
	share := filepath.Join(root, "share")
	env := envset.FromEnviron([]string{"PYTHONPATH=/nowhere::" + share})

	dir, err := FindInitModule(env, linux)
	require.NoError(t, err)
	assert.Equal(t, share, dir)
}

func TestFindInitModuleMissing(t *testing.T) {
	empty := t.TempDir()
	env := envset.FromEnviron([]string{"PYTHONPATH=" + empty})

	_, err := FindInitModule(env, linux)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInitFailed))
	assert.Contains(t, err.Error(), "Chimera could not be loaded!")
	assert.Contains(t, err.Error(), empty)
}

func TestRenderScriptWithInit(t *testing.T) {
	plan := mode.Plan{Mode: mode.Script, Target: "run.py", Args: []string{"--n", "3"}}
	source, err := Render(Program{Plan: plan, Verbose: true}, envset.FromEnviron(nil))
	require.NoError(t, err)

	assert.Contains(t, source, "enable_chimera(verbose=True, nogui=True)")
	p := decodePayload(t, source)
	assert.Equal(t, "script", p.Mode)
	assert.Equal(t, "run.py", p.Target)
	assert.Equal(t, []string{"--n", "3"}, p.Args)
	assert.Equal(t, DefaultNotebookName, p.NotebookName)
}

func TestRenderSkipsInitWhenEnabled(t *testing.T) {
	env := envset.FromEnviron([]string{EnvEnabled + "=1"})
	source, err := Render(Program{Plan: mode.Plan{Mode: mode.Interactive}}, env)
	require.NoError(t, err)
	assert.NotContains(t, source, "enable_chimera(verbose=")
	assert.Contains(t, source, "patch_sys_version()\n\nif _mode")
}

func TestRenderNotebookDefersInit(t *testing.T) {
	plan := mode.Plan{Mode: mode.Notebook, Args: []string{"--port=9999"}}
	source, err := Render(Program{Plan: plan, NotebookName: "Scratch"}, envset.FromEnviron(nil))
	require.NoError(t, err)
	assert.NotContains(t, source, "enable_chimera(verbose=")

	p := decodePayload(t, source)
	assert.Equal(t, "notebook", p.Mode)
	assert.Equal(t, "Scratch", p.NotebookName)
	assert.Equal(t, []string{"--port=9999"}, p.Args)
}

func TestRenderGUIInitializesWithInterface(t *testing.T) {
	source, err := Render(Program{Plan: mode.Plan{Mode: mode.GUI}}, envset.FromEnviron(nil))
	require.NoError(t, err)
	assert.Contains(t, source, "enable_chimera(verbose=False, nogui=False)")
}

func TestRenderEscapesTargets(t *testing.T) {
	code := "print('it''s')\nimport os; os.system(\"x\")"
	source, err := Render(Program{Plan: mode.Plan{Mode: mode.String, Target: code}}, envset.FromEnviron(nil))
	require.NoError(t, err)
	assert.NotContains(t, source, code)
	assert.Equal(t, code, decodePayload(t, source).Target)
	assert.Equal(t, []string{}, decodePayload(t, source).Args)
}

func TestCommand(t *testing.T) {
	argv := Command("/usr/bin/python2.7", "pass")
	assert.Equal(t, []string{"/usr/bin/python2.7", "-c", "pass"}, argv)
}

func TestEnvironInspect(t *testing.T) {
	env := envset.FromEnviron([]string{"CHIMERA=/opt/chimera"})

	kept := Environ(Program{Plan: mode.Plan{Mode: mode.Interactive, Inspect: true}}, env)
	assert.Equal(t, "1", kept.Get(EnvInspect))
	assert.False(t, env.Has(EnvInspect))

	done := Environ(Program{Plan: mode.Plan{Mode: mode.Script, Target: "run.py"}}, env)
	assert.False(t, done.Has(EnvInspect))
}

func TestEmbeddedProgramKeepsPython2Syntax(t *testing.T) {
	assert.NotContains(t, bootstrapSource, "__future__")
	assert.Equal(t, 2, strings.Count(bootstrapSource, "dont_inherit=True"))
	assert.Equal(t, strings.Count(bootstrapSource, "exec(compile("), strings.Count(bootstrapSource, "dont_inherit=True"))
}

func TestRenderPatchesVersionParser(t *testing.T) {
	source, err := Render(Program{Plan: mode.Plan{Mode: mode.Script, Target: "run.py"}}, envset.FromEnviron(nil))
	require.NoError(t, err)
	assert.Contains(t, source, `platform._sys_version_parser = re.compile(`)
	assert.Contains(t, source, `(?:\|[^|]*\|)?`)
}

func TestEmbeddedProgramCoversEveryMode(t *testing.T) {
	for _, m := range []mode.Mode{mode.Module, mode.String, mode.Script, mode.Stdin, mode.IPython, mode.Notebook} {
		if !strings.Contains(bootstrapSource, "'"+m.String()+"'") {
			t.Fatalf("bootstrap does not handle mode %s", m)
		}
	}
}

func TestInitializerCheck(t *testing.T) {
	checker := Initializer{Platform: linux}

	enabled := envset.FromEnviron([]string{EnvEnabled + "=1", "PYTHONPATH=/nowhere"})
	assert.NoError(t, checker.Check(enabled))

	missing := envset.FromEnviron([]string{"PYTHONPATH=/nowhere"})
	assert.ErrorIs(t, checker.Check(missing), ErrInitFailed)

	root := testutil.MakeInstall(t, t.TempDir(), "chimera")
	present := envset.FromEnviron([]string{"PYTHONPATH=" + filepath.Join(root, "share")})
	assert.NoError(t, checker.Check(present))
}
