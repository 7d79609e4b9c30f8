package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nutrikit/nutriplan/internal/form"
	"github.com/nutrikit/nutriplan/internal/logging"
	"github.com/nutrikit/nutriplan/internal/planner"
	"github.com/nutrikit/nutriplan/internal/preview"
)

// Timing constants for the form screen.
const (
	// AutoAdvanceDelay is how long a completed section stays in view before
	// the next section is brought in automatically. The timer is never
	// cancelled; when it fires it re-checks the live form state and does
	// nothing if the state no longer qualifies.
	AutoAdvanceDelay = 500 * time.Millisecond

	// SubmitRecoveryTimeout is how long a submission may stay pending before
	// the submit action is re-enabled. The in-flight request is NOT cancelled;
	// a late response still lands.
	SubmitRecoveryTimeout = 20 * time.Second
)

// autoAdvanceMsg fires AutoAdvanceDelay after an input completed a section.
type autoAdvanceMsg struct{}

// submitRecoveryMsg fires SubmitRecoveryTimeout after a submission started.
type submitRecoveryMsg struct{}

// planResponseMsg carries the outcome of an asynchronous plan submission.
type planResponseMsg struct {
	result *planner.PlanResult
	err    error
}

// formKeyMap defines keybindings for the form screen
type formKeyMap struct {
	NextField   key.Binding
	PrevField   key.Binding
	NextChoice  key.Binding
	PrevChoice  key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	Submit      key.Binding
	Quit        key.Binding
}

var formKeys = formKeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab", "down", "enter"),
		key.WithHelp("tab/↓", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab/↑", "previous field"),
	),
	NextChoice: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next option"),
	),
	PrevChoice: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "previous option"),
	),
	NextSection: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next section"),
	),
	PrevSection: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous section"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "create plan"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// ShortHelp returns keybindings to show in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.NextChoice, k.NextSection, k.Submit, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField},
		{k.NextChoice, k.PrevChoice},
		{k.NextSection, k.PrevSection},
		{k.Submit, k.Quit},
	}
}

// FormModel is the intake form screen: three sections of fields, live
// previews, validation annotations and the submission state machine.
type FormModel struct {
	Registry    *form.Registry
	Values      form.Values
	FieldErrors form.Errors

	Section int // Active section index
	Cursor  int // Field index within the active section

	Inputs  map[form.FieldID]textinput.Model // Number fields
	Choices map[form.FieldID]int             // Choice fields: selected option index, -1 when unset

	Client  *planner.Client
	Request *planner.PlanRequest // Last submitted request (kept for retry)

	Submitting bool
	Result     *planner.PlanResult // Set on success; consumed by the app coordinator
	SubmitErr  error               // Set on failure; consumed by the app coordinator

	Spinner spinner.Model
	Keys    formKeyMap
	Help    help.Model

	Width  int
	Height int
}

// NewFormModel creates the form screen. Prefill defaults are keyed by form
// field name and applied only where they match a registered field (choice
// prefills must name a declared option).
func NewFormModel(client *planner.Client, defaults map[string]string) FormModel {
	registry := form.DefaultRegistry()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := FormModel{
		Registry:    registry,
		Values:      form.Values{},
		FieldErrors: form.Errors{},
		Inputs:      make(map[form.FieldID]textinput.Model),
		Choices:     make(map[form.FieldID]int),
		Client:      client,
		Spinner:     s,
		Keys:        formKeys,
		Help:        help.New(),
		Width:       80,
		Height:      24,
	}

	for _, id := range registry.FieldIDs() {
		spec, _ := registry.Lookup(id)
		switch spec.Kind {
		case form.KindNumber:
			ti := textinput.New()
			ti.Placeholder = spec.Placeholder
			ti.CharLimit = 8
			ti.Width = 12
			ti.Prompt = ""
			m.Inputs[id] = ti
		case form.KindChoice:
			m.Choices[id] = -1
		}
	}

	for name, value := range defaults {
		id := form.FieldID(name)
		spec, ok := registry.Lookup(id)
		if !ok {
			continue
		}
		switch spec.Kind {
		case form.KindNumber:
			ti := m.Inputs[id]
			ti.SetValue(value)
			m.Inputs[id] = ti
			m.Values[id] = value
		case form.KindChoice:
			for i, opt := range spec.Options {
				if opt.Value == value {
					m.Choices[id] = i
					m.Values[id] = value
					break
				}
			}
		}
	}

	return m.focusCursor()
}

// Init starts the cursor blink for the focused input
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// sectionFields returns the field IDs of the active section.
func (m FormModel) sectionFields() []form.FieldID {
	return m.Registry.Sections[m.Section].Fields
}

// focusedField returns the field the cursor is on.
func (m FormModel) focusedField() form.FieldID {
	return m.sectionFields()[m.Cursor]
}

// focusCursor moves textinput focus to the cursor position, blurring all
// other inputs.
func (m FormModel) focusCursor() FormModel {
	focused := m.focusedField()
	for id, ti := range m.Inputs {
		if id == focused {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.Inputs[id] = ti
	}
	return m
}

// gotoSection switches the active section and moves the cursor to its first
// field.
func (m FormModel) gotoSection(idx int) FormModel {
	if idx < 0 || idx >= len(m.Registry.Sections) {
		return m
	}
	m.Section = idx
	m.Cursor = 0
	return m.focusCursor()
}

// nextField advances the cursor, crossing into the next section after the
// last field.
func (m FormModel) nextField() FormModel {
	if m.Cursor < len(m.sectionFields())-1 {
		m.Cursor++
		return m.focusCursor()
	}
	if m.Section < len(m.Registry.Sections)-1 {
		return m.gotoSection(m.Section + 1)
	}
	return m
}

// prevField moves the cursor back, crossing into the previous section before
// the first field.
func (m FormModel) prevField() FormModel {
	if m.Cursor > 0 {
		m.Cursor--
		return m.focusCursor()
	}
	if m.Section > 0 {
		m.Section--
		m.Cursor = len(m.sectionFields()) - 1
		return m.focusCursor()
	}
	return m
}

// gotoFirstError moves the cursor to the first annotated field in section
// order, so validation failures are immediately in view.
func (m FormModel) gotoFirstError() FormModel {
	for si, section := range m.Registry.Sections {
		for fi, id := range section.Fields {
			if m.FieldErrors[id] != "" {
				m.Section = si
				m.Cursor = fi
				return m.focusCursor()
			}
		}
	}
	return m
}

// setValue records a field edit and, when the edit completes the active
// section, schedules the auto-advance timer. The timer is not cancelled on
// later edits; it re-checks the live state when it fires.
func (m FormModel) setValue(id form.FieldID, value string) (FormModel, tea.Cmd) {
	m.Values[id] = value

	if m.Section < len(m.Registry.Sections)-1 && m.Registry.SectionFilled(m.Values, m.Section) {
		return m, tea.Tick(AutoAdvanceDelay, func(time.Time) tea.Msg {
			return autoAdvanceMsg{}
		})
	}
	return m, nil
}

// cycleChoice moves the selection of a choice field by delta, wrapping around
// the option list.
func (m FormModel) cycleChoice(id form.FieldID, delta int) (FormModel, tea.Cmd) {
	spec, ok := m.Registry.Lookup(id)
	if !ok || len(spec.Options) == 0 {
		return m, nil
	}

	idx := m.Choices[id]
	if idx < 0 {
		// First interaction selects the first or last option
		if delta > 0 {
			idx = 0
		} else {
			idx = len(spec.Options) - 1
		}
	} else {
		idx = (idx + delta + len(spec.Options)) % len(spec.Options)
	}

	m.Choices[id] = idx
	return m.setValue(id, spec.Options[idx].Value)
}

// submit runs both validation tiers and, when they pass, starts the
// asynchronous submission with its recovery timer. Each pass replaces ALL
// previous field annotations, so re-validating the same state is idempotent.
func (m FormModel) submit() (FormModel, tea.Cmd) {
	if m.Submitting {
		return m, nil
	}

	// Tier 1: declared per-field constraints
	errs := m.Registry.CheckConstraints(m.Values)
	if len(errs) > 0 {
		m.FieldErrors = errs
		return m.gotoFirstError(), nil
	}

	// Tier 2: cross-field rules (goal consistency, ranges)
	errs, ok := m.Registry.Validate(m.Values)
	m.FieldErrors = errs
	if !ok {
		return m.gotoFirstError(), nil
	}

	request, err := planner.RequestFromValues(m.Values)
	if err != nil {
		m.SubmitErr = err
		return m, nil
	}

	m.Request = request
	return m.startSubmission()
}

// startSubmission arms the submitting state for m.Request: spinner, the
// async request and the recovery timer.
func (m FormModel) startSubmission() (FormModel, tea.Cmd) {
	if m.Request == nil {
		return m, nil
	}

	m.Submitting = true
	m.Result = nil
	m.SubmitErr = nil

	return m, tea.Batch(
		m.Spinner.Tick,
		submitPlanCmd(m.Client, m.Request),
		tea.Tick(SubmitRecoveryTimeout, func(time.Time) tea.Msg {
			return submitRecoveryMsg{}
		}),
	)
}

// submitPlanCmd performs the plan submission asynchronously
func submitPlanCmd(client *planner.Client, request *planner.PlanRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := client.SubmitPlan(request)
		return planResponseMsg{result: result, err: err}
	}
}

// Update handles messages for the form screen
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case autoAdvanceMsg:
		// Evaluate against the LIVE state: the section shown now, not the
		// one that scheduled the timer.
		if !m.Submitting &&
			m.Section < len(m.Registry.Sections)-1 &&
			m.Registry.SectionFilled(m.Values, m.Section) {
			m = m.gotoSection(m.Section + 1)
		}
		return m, nil

	case submitRecoveryMsg:
		if m.Submitting {
			m.Submitting = false
			logging.Warn("Plan request still pending after recovery timeout; submit re-enabled",
				zap.Duration("timeout", SubmitRecoveryTimeout))
		}
		return m, nil

	case planResponseMsg:
		// A late response after recovery re-enabled submit still lands.
		m.Submitting = false
		if msg.err != nil {
			m.SubmitErr = msg.err
		} else {
			m.Result = msg.result
		}
		return m, nil

	case spinner.TickMsg:
		if !m.Submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes a key press: navigation keys first, everything else to the
// focused number input.
func (m FormModel) handleKey(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	if m.Submitting {
		// Editing is locked while a submission is pending. Recovery (or a
		// response) unlocks it.
		return m, nil
	}

	focused := m.focusedField()
	spec, _ := m.Registry.Lookup(focused)

	switch {
	case key.Matches(msg, m.Keys.Submit):
		return m.submit()

	case key.Matches(msg, m.Keys.NextSection):
		return m.gotoSection(m.Section + 1), nil

	case key.Matches(msg, m.Keys.PrevSection):
		return m.gotoSection(m.Section - 1), nil

	case key.Matches(msg, m.Keys.NextField):
		// Enter on the very last field submits
		if msg.String() == "enter" &&
			m.Section == len(m.Registry.Sections)-1 &&
			m.Cursor == len(m.sectionFields())-1 {
			return m.submit()
		}
		return m.nextField(), nil

	case key.Matches(msg, m.Keys.PrevField):
		return m.prevField(), nil

	case spec.Kind == form.KindChoice && key.Matches(msg, m.Keys.NextChoice):
		return m.cycleChoice(focused, +1)

	case spec.Kind == form.KindChoice && key.Matches(msg, m.Keys.PrevChoice):
		return m.cycleChoice(focused, -1)
	}

	// Forward anything else to the focused number input
	if spec.Kind == form.KindNumber {
		ti := m.Inputs[focused]
		before := ti.Value()
		ti, cmd := ti.Update(msg)
		m.Inputs[focused] = ti
		if ti.Value() != before {
			var advanceCmd tea.Cmd
			m, advanceCmd = m.setValue(focused, ti.Value())
			return m, tea.Batch(cmd, advanceCmd)
		}
		return m, cmd
	}

	return m, nil
}

// renderDots renders the section indicator: one dot per section, the active
// one filled and labelled.
func (m FormModel) renderDots() string {
	parts := make([]string, 0, len(m.Registry.Sections))
	for i, section := range m.Registry.Sections {
		if i == m.Section {
			parts = append(parts, ActiveDotStyle.Render("● "+section.Title))
		} else {
			parts = append(parts, InactiveDotStyle.Render("○ "+section.Title))
		}
	}
	return strings.Join(parts, "   ")
}

// renderField renders one field row: label, widget, optional preview line and
// optional error annotation.
func (m FormModel) renderField(id form.FieldID, focused bool) string {
	spec, ok := m.Registry.Lookup(id)
	if !ok {
		return ""
	}

	labelStyle := FieldLabelStyle
	marker := "  "
	if focused {
		labelStyle = FocusedFieldLabelStyle
		marker = "❯ "
	}
	label := labelStyle.Render(fmt.Sprintf("%-18s", spec.Label))

	var widget string
	switch spec.Kind {
	case form.KindNumber:
		widget = m.Inputs[id].View()
		if spec.Unit != "" {
			widget += " " + InactiveDotStyle.Render(spec.Unit)
		}
	case form.KindChoice:
		widget = m.renderChoice(spec, m.Choices[id], focused)
	}

	line := marker + label + widget

	var extra []string
	if p := m.previewFor(id); p != "" {
		extra = append(extra, "    "+p)
	}
	if errMsg := m.FieldErrors[id]; errMsg != "" {
		extra = append(extra, "    "+FieldErrorStyle.Render("✗ "+errMsg))
	}

	if len(extra) == 0 {
		return line
	}
	return line + "\n" + strings.Join(extra, "\n")
}

// renderChoice renders a choice field's options inline with the selected one
// highlighted.
func (m FormModel) renderChoice(spec *form.Spec, selected int, focused bool) string {
	parts := make([]string, 0, len(spec.Options))
	for i, opt := range spec.Options {
		switch {
		case i == selected && focused:
			parts = append(parts, ActiveDotStyle.Render("(●) "+opt.Label))
		case i == selected:
			parts = append(parts, FieldLabelStyle.Render("(●) "+opt.Label))
		default:
			parts = append(parts, InactiveDotStyle.Render("( ) "+opt.Label))
		}
	}
	return strings.Join(parts, "  ")
}

// previewFor returns the live preview line attached to a field, or "".
// The BMR estimate renders under the height field; the projected weight
// change renders under the duration field.
func (m FormModel) previewFor(id form.FieldID) string {
	switch id {
	case form.FieldHeight:
		age, okAge := m.Values.Number(form.FieldAge)
		weight, okWeight := m.Values.Number(form.FieldCurrentWeight)
		height, okHeight := m.Values.Number(form.FieldHeight)
		if !okAge || !okWeight || !okHeight {
			return ""
		}
		bmr, ok := preview.BMR(age, weight, height, m.Values.Get(form.FieldGender))
		if !ok {
			return ""
		}
		return PreviewStyle.Render(preview.FormatBMR(bmr))

	case form.FieldDuration:
		current, okCurrent := m.Values.Number(form.FieldCurrentWeight)
		target, okTarget := m.Values.Number(form.FieldTargetWeight)
		duration, okDuration := m.Values.Number(form.FieldDuration)
		if !okCurrent || !okTarget || !okDuration {
			return ""
		}
		change, ok := preview.WeightChangeFor(current, target, duration)
		if !ok {
			return ""
		}
		line := PreviewStyle.Render(change.Summary())
		if warning := change.Warning(); warning != "" {
			line += "\n    " + PreviewWarningStyle.Render("⚠ "+warning)
		}
		return line
	}
	return ""
}

// View renders the form screen
func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Create your nutrition plan"))
	b.WriteString("\n")
	b.WriteString(m.renderDots())
	b.WriteString("\n\n")

	section := m.Registry.Sections[m.Section]
	b.WriteString(SectionTitleStyle.Render(section.Title))
	b.WriteString("\n\n")

	for i, id := range section.Fields {
		b.WriteString(m.renderField(id, i == m.Cursor && !m.Submitting))
		b.WriteString("\n")
	}

	if m.Submitting {
		b.WriteString("\n")
		b.WriteString(m.Spinner.View())
		b.WriteString(" Creating your plan...")
		b.WriteString("\n")
	}

	helpText := "tab/↓: next • shift+tab/↑: prev • ←/→: choose • [ ]: section • ctrl+s: create plan • esc: quit"
	if m.Submitting {
		helpText = "Submitting... • esc: quit"
	}

	return RenderApplicationContainer(
		lipgloss.NewStyle().Padding(1, 2).Render(b.String()),
		helpText,
		m.Width,
		m.Height,
	)
}
