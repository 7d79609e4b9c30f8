package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nutrikit/nutriplan/internal/planner"
)

// Screen represents the different screens in the application
type Screen string

const (
	ScreenForm    Screen = "form"
	ScreenResult  Screen = "result"
	ScreenFailure Screen = "failure"
)

// appKeyMap defines the global keybindings handled by the coordinator
type appKeyMap struct {
	Quit    key.Binding
	Edit    key.Binding
	Retry   key.Binding
	NewPlan key.Binding
}

var appKeys = appKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit form"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	NewPlan: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new plan"),
	),
}

// AppModel is the top-level coordinator. It owns the current screen and
// routes messages to the form; the result and failure screens are rendered
// from state the form produced.
type AppModel struct {
	CurrentScreen Screen
	Form          FormModel

	Result *planner.PlanResult
	Err    error

	Keys   appKeyMap
	Width  int
	Height int
}

// NewAppModel creates the application starting on the form screen.
func NewAppModel(client *planner.Client, defaults map[string]string) AppModel {
	return AppModel{
		CurrentScreen: ScreenForm,
		Form:          NewFormModel(client, defaults),
		Keys:          appKeys,
		Width:         80,
		Height:        24,
	}
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return m.Form.Init()
}

// Update handles all application messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		var cmd tea.Cmd
		m.Form, cmd = m.Form.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.CurrentScreen {
		case ScreenResult:
			return m.handleResultKey(msg)
		case ScreenFailure:
			return m.handleFailureKey(msg)
		case ScreenForm:
			if key.Matches(msg, m.Form.Keys.Quit) && msg.String() == "esc" {
				return m, tea.Quit
			}
		}
	}

	// Everything else belongs to the form, including async submission
	// outcomes that may arrive while another screen is showing.
	var cmd tea.Cmd
	m.Form, cmd = m.Form.Update(msg)
	return m.collectFormOutcome(), cmd
}

// collectFormOutcome transitions to the result or failure screen when the
// form has a finished submission to hand over.
func (m AppModel) collectFormOutcome() AppModel {
	if m.Form.Result != nil {
		m.Result = m.Form.Result
		m.Err = nil
		m.Form.Result = nil
		m.CurrentScreen = ScreenResult
		return m
	}
	if m.Form.SubmitErr != nil {
		m.Err = m.Form.SubmitErr
		m.Form.SubmitErr = nil
		m.CurrentScreen = ScreenFailure
		return m
	}
	return m
}

// handleResultKey handles keys on the result screen.
func (m AppModel) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Edit):
		// Back to the form with every value intact
		m.CurrentScreen = ScreenForm
		return m, nil

	case key.Matches(msg, m.Keys.NewPlan):
		m.Form = NewFormModel(m.Form.Client, nil)
		m.Result = nil
		m.CurrentScreen = ScreenForm
		return m, m.Form.Init()
	}
	return m, nil
}

// handleFailureKey handles keys on the failure screen.
func (m AppModel) handleFailureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Edit):
		// Back to the form with the entered values intact
		m.CurrentScreen = ScreenForm
		return m, nil

	case key.Matches(msg, m.Keys.Retry):
		// Re-run the same request without re-entering anything
		var cmd tea.Cmd
		m.Form, cmd = m.Form.startSubmission()
		m.Err = nil
		m.CurrentScreen = ScreenForm
		return m, cmd
	}
	return m, nil
}

// View renders the current screen
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenResult:
		return m.viewResult()
	case ScreenFailure:
		return m.viewFailure()
	default:
		return m.Form.View()
	}
}

// Run starts the full-screen planner application.
func Run(client *planner.Client, defaults map[string]string) error {
	p := tea.NewProgram(NewAppModel(client, defaults), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
