package tui

import "github.com/charmbracelet/lipgloss"

// Panel button colors follow the device deployment (Concierge red).
var (
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#D43B52")).
			Padding(0, 3).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D43B52")).
			Padding(1, 2).
			Width(60)

	optionStyle = lipgloss.NewStyle().
			Padding(0, 2)

	selectedOptionStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Reverse(true).
				Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	alertTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))
)
