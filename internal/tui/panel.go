// Package tui is the console stand-in for the room device's touch panel:
// the Request Help button, the email input, the confirmation prompts, and
// alert messages rendered in a terminal. It exists so the whole workflow can
// be exercised without a device on the network.
package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jshacar-hms/requesthelp/internal/ui"
)

// viewMode is what the panel is currently showing.
type viewMode int

const (
	modeIdle viewMode = iota
	modeTextInput
	modeChoice
)

// Prompt display messages, posted into the program by the Prompter.
type showTextInputMsg struct {
	correlationID string
	title         string
	text          string
}

type showChoiceMsg struct {
	correlationID string
	title         string
	text          string
	choices       []ui.Choice
}

type showMessageMsg struct {
	title    string
	text     string
	duration time.Duration
}

type clearMessageMsg struct{}

// Prompter implements ui.Prompter by posting display messages into a
// running Bubble Tea program. The program is attached after construction
// because the panel model and the workflow engine reference each other.
type Prompter struct {
	program *tea.Program
}

// SetProgram attaches the running program. Must be called before the first
// prompt can arrive, i.e. before the panel accepts input.
func (p *Prompter) SetProgram(program *tea.Program) {
	p.program = program
}

func (p *Prompter) ShowTextInput(correlationID, title, text string) error {
	p.program.Send(showTextInputMsg{correlationID: correlationID, title: title, text: text})
	return nil
}

func (p *Prompter) ShowChoice(correlationID, title, text string, choices []ui.Choice) error {
	p.program.Send(showChoiceMsg{correlationID: correlationID, title: title, text: text, choices: choices})
	return nil
}

func (p *Prompter) ShowMessage(title, text string, duration time.Duration) error {
	p.program.Send(showMessageMsg{title: title, text: text, duration: duration})
	return nil
}

// Model is the console panel. It shows one prompt at a time; the workflow
// engine owns all request state and the panel only relays responses tagged
// with the prompt's correlation ID.
type Model struct {
	trigger   func()
	responder ui.Responder

	width  int
	height int

	mode          viewMode
	correlationID string
	promptTitle   string
	promptText    string

	input textinput.Model

	choices   []ui.Choice
	choiceIdx int

	alertTitle string
	alertText  string

	roomName string
}

// NewModel creates the panel model. trigger is invoked when the Request
// Help button is pressed; responses go to responder.
func NewModel(roomName string, trigger func(), responder ui.Responder) Model {
	ti := textinput.New()
	ti.Placeholder = "name@example.com"
	ti.Prompt = "❯ "
	ti.CharLimit = 0
	ti.Width = 40

	return Model{
		trigger:   trigger,
		responder: responder,
		mode:      modeIdle,
		input:     ti,
		roomName:  roomName,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case showTextInputMsg:
		m.mode = modeTextInput
		m.correlationID = msg.correlationID
		m.promptTitle = msg.title
		m.promptText = msg.text
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case showChoiceMsg:
		m.mode = modeChoice
		m.correlationID = msg.correlationID
		m.promptTitle = msg.title
		m.promptText = msg.text
		m.choices = msg.choices
		m.choiceIdx = 0
		return m, nil

	case showMessageMsg:
		m.alertTitle = msg.title
		m.alertText = msg.text
		if msg.duration > 0 {
			return m, tea.Tick(msg.duration, func(time.Time) tea.Msg {
				return clearMessageMsg{}
			})
		}
		return m, nil

	case clearMessageMsg:
		m.alertTitle = ""
		m.alertText = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeIdle:
		switch msg.String() {
		case "enter", " ":
			// Any dismissed alert clears on the next press.
			m.alertTitle = ""
			m.alertText = ""
			m.trigger()
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case modeTextInput:
		switch msg.String() {
		case "enter":
			id, value := m.correlationID, m.input.Value()
			m.mode = modeIdle
			m.input.Blur()
			m.responder.SubmitText(id, value)
			return m, nil
		case "esc":
			// Walking away from the panel: no response is ever sent and
			// the request simply waits, same as on the device.
			m.mode = modeIdle
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modeChoice:
		switch msg.String() {
		case "left", "shift+tab":
			if m.choiceIdx > 0 {
				m.choiceIdx--
			}
		case "right", "tab":
			if m.choiceIdx < len(m.choices)-1 {
				m.choiceIdx++
			}
		case "enter":
			id, idx := m.correlationID, m.choiceIdx
			m.mode = modeIdle
			m.responder.SelectChoice(id, idx)
		default:
			// Number keys select an option directly, device-style.
			if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(m.choices) {
				id := m.correlationID
				m.mode = modeIdle
				m.responder.SelectChoice(id, n-1)
			}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	var body string

	switch m.mode {
	case modeIdle:
		body = m.viewIdle()
	case modeTextInput:
		body = modalStyle.Render(
			titleStyle.Render(m.promptTitle) + "\n\n" +
				m.promptText + "\n\n" +
				m.input.View() + "\n\n" +
				hintStyle.Render("enter submit • esc dismiss"),
		)
	case modeChoice:
		body = modalStyle.Render(
			titleStyle.Render(m.promptTitle) + "\n\n" +
				m.promptText + "\n\n" +
				m.viewChoices() + "\n\n" +
				hintStyle.Render("←/→ move • enter select"),
		)
	}

	if m.alertTitle != "" || m.alertText != "" {
		body += "\n\n" + alertTitleStyle.Render(m.alertTitle) + " " + m.alertText
	}

	if m.width == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) viewIdle() string {
	header := titleStyle.Render(m.roomName)
	button := buttonStyle.Render("Request Help")
	hint := hintStyle.Render("enter press button • q quit")
	return header + "\n\n" + button + "\n\n" + hint
}

func (m Model) viewChoices() string {
	var out string
	for i, c := range m.choices {
		style := optionStyle
		if i == m.choiceIdx {
			style = selectedOptionStyle
		}
		if i > 0 {
			out += "  "
		}
		out += style.Render(c.Label)
	}
	return out
}
