package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var errPromptCancelled = errors.New("cancelled")

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// promptModel asks for the directory to analyze.
type promptModel struct {
	input     textinput.Model
	fallback  string
	done      bool
	cancelled bool
}

func newPromptModel(fallback string) promptModel {
	ti := textinput.New()
	ti.Placeholder = fallback
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Width = 60
	ti.Focus()

	return promptModel{input: ti, fallback: fallback}
}

// Init starts the cursor blinking.
func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses.
func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n%s\n",
		promptStyle.Render("Enter the directory path to analyze:"),
		m.input.View(),
		hintStyle.Render("enter to confirm, esc to cancel"),
	)
}

// Path returns the entered path, or the fallback when nothing was typed.
func (m promptModel) Path() string {
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		return v
	}
	return m.fallback
}

// promptPath runs the prompt on the given streams.
func promptPath(in io.Reader, out io.Writer, fallback string) (string, error) {
	p := tea.NewProgram(newPromptModel(fallback), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}

	m, ok := final.(promptModel)
	if !ok || m.cancelled {
		return "", errPromptCancelled
	}
	return m.Path(), nil
}
