// Package picker lets the user choose among several Chimera installations.
package picker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/insilichem/pychimera/internal/messages"
	"github.com/insilichem/pychimera/internal/terminal"
)

// ErrCancelled is returned when the user dismisses the prompt.
var ErrCancelled = errors.New(messages.PickerCancelled)

// HuhPicker renders the choice with charmbracelet/huh on stderr, keeping
// stdout clean for --path and --print-env.
type HuhPicker struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// New creates a HuhPicker using the default terminal check.
func New() *HuhPicker {
	return &HuhPicker{isTerminal: terminal.IsInteractive}
}

// Pick returns one of candidates. preferred is highlighted first when it is
// among them. A single candidate is returned without prompting.
func (p *HuhPicker) Pick(candidates []string, preferred string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", nil
	case 1:
		return candidates[0], nil
	}
	checker := p.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return "", fmt.Errorf(messages.PickerNotInteractive)
	}

	choice := candidates[0]
	opts := make([]huh.Option[string], len(candidates))
	for i, c := range candidates {
		opts[i] = huh.NewOption(label(c), c)
		if c == preferred {
			choice = c
		}
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(messages.PickerTitle).
			Options(opts...).
			Value(&choice),
	))
	form.WithKeyMap(keyMap())
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithFilter(interruptFilter),
	)

	if err := runFormFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", err
	}
	return choice, nil
}

// label shows the installation directory name first, since roots often share a long prefix.
func label(root string) string {
	name := filepath.Base(root)
	if strings.Contains(strings.ToLower(name), "headless") {
		name += " (headless)"
	}
	return fmt.Sprintf("%s  %s", name, root)
}

func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)
	return km
}

// interruptFilter turns SIGINT into a graceful quit so the renderer clears the prompt.
func interruptFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.InterruptMsg); ok {
		return tea.QuitMsg{}
	}
	return msg
}
