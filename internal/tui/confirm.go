package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmModel struct {
	prompt  string
	yes     bool
	decided bool
}

func (m *confirmModel) Init() tea.Cmd { return nil }

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.yes, m.decided = true, true
		return m, tea.Quit
	case "n", "N", "esc", "q", "ctrl+c":
		m.yes, m.decided = false, true
		return m, tea.Quit
	case "left", "right", "h", "l", "tab":
		m.yes = !m.yes
	case "enter":
		m.decided = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *confirmModel) View() string {
	yes, no := buttonStyle.Render(" Yes "), activeButtonStyle.Render(" No ")
	if m.yes {
		yes, no = dangerButtonStyle.Render(" Yes "), buttonStyle.Render(" No ")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Left, yes, "  ", no)
	help := helpStyle.Render("y/n | Left/Right choose | Enter confirm")
	return lipgloss.JoinVertical(lipgloss.Left, headerStyle.Render(m.prompt), buttons, help)
}

var (
	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("252"))

	activeButtonStyle = buttonStyle.Copy().
				Background(lipgloss.Color("178")).
				Foreground(lipgloss.Color("0")).
				Bold(true)

	dangerButtonStyle = buttonStyle.Copy().
				Background(lipgloss.Color("161")).
				Foreground(lipgloss.Color("230")).
				Bold(true)
)

// Confirm asks a yes/no question. The default answer is no.
func Confirm(prompt string) (bool, error) {
	finalModel, err := runProgram(&confirmModel{prompt: prompt})
	if err != nil {
		return false, err
	}

	typed, ok := finalModel.(*confirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected program result")
	}
	return typed.decided && typed.yes, nil
}
