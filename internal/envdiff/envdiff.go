// Package envdiff renders the environment patch as a unified diff.
package envdiff

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/insilichem/pychimera/internal/envset"
)

// Labels for the two sides of the diff.
const (
	BeforeName = "environ"
	AfterName  = "environ+chimera"
)

// Render returns the unified diff between the sorted KEY=VALUE listings of
// before and after. It returns "" when nothing changed.
func Render(before *envset.Env, after *envset.Env) string {
	diff := udiff.Unified(BeforeName, AfterName, listing(before), listing(after))
	return ensureTrailingNewline(diff)
}

// Colorize paints added lines green, removed lines red and hunk headers cyan.
func Colorize(diff string) string {
	if diff == "" {
		return ""
	}
	added := color.New(color.FgGreen).SprintFunc()
	removed := color.New(color.FgRed).SprintFunc()
	hunk := color.New(color.FgCyan).SprintFunc()

	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = color.New(color.Bold).Sprint(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunk(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = added(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removed(line)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func listing(env *envset.Env) string {
	if env == nil {
		return ""
	}
	var b strings.Builder
	for _, key := range env.Keys() {
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(strings.ReplaceAll(env.Get(key), "\n", `\n`))
		b.WriteByte('\n')
	}
	return b.String()
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
