// Package tui provides the terminal confirmation view for detected text.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// ConfirmModel is the Bubble Tea model for a single accept/reject decision.
type ConfirmModel struct {
	keymap   KeyMap
	text     string
	width    int
	accepted bool
	answered bool
}

// NewConfirmModel creates the model for the given detected text.
func NewConfirmModel(text string) ConfirmModel {
	return ConfirmModel{
		keymap: DefaultKeyMap(),
		text:   text,
	}
}

// Accepted reports the user's decision once the program has finished.
func (m ConfirmModel) Accepted() bool { return m.answered && m.accepted }

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Accept):
			m.accepted = true
			m.answered = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Reject), key.Matches(msg, m.keymap.Quit):
			m.answered = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	if m.answered {
		return ""
	}

	box := boxStyle
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Copy detected text to clipboard?"),
		box.Render(m.text),
		helpStyle.Render(fmt.Sprintf("%s · %s",
			m.keymap.Accept.Help().Key+" "+m.keymap.Accept.Help().Desc,
			m.keymap.Reject.Help().Key+" "+m.keymap.Reject.Help().Desc)),
	)
}

// Confirmer runs the confirmation view as a Bubble Tea program. It satisfies
// service.Confirmer.
type Confirmer struct{}

// NewConfirmer creates a TUI-backed confirmer.
func NewConfirmer() *Confirmer {
	return &Confirmer{}
}

// Confirm shows the detected text and blocks until the user accepts or
// rejects it. Rejection returns (false, nil).
func (c *Confirmer) Confirm(ctx context.Context, text string) (bool, error) {
	program := tea.NewProgram(NewConfirmModel(text), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation view failed: %w", err)
	}

	m, ok := final.(ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Accepted(), nil
}
