package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nutrikit/nutriplan/internal/form"
	"github.com/nutrikit/nutriplan/internal/planner"
)

func testFormModel() FormModel {
	return NewFormModel(planner.NewClient("http://127.0.0.1:1"), nil)
}

// fillValid fills every field with values that pass both validation tiers.
func fillValid(m FormModel) FormModel {
	set := map[form.FieldID]string{
		form.FieldAge:            "30",
		form.FieldGender:         "male",
		form.FieldHeight:         "175",
		form.FieldCurrentWeight:  "80",
		form.FieldTargetWeight:   "75",
		form.FieldDuration:       "60",
		form.FieldGoal:           "lose",
		form.FieldActivityLevel:  "walking",
		form.FieldWorkoutType:    "home_workout",
		form.FieldCookingRecipes: "yes",
	}
	for id, value := range set {
		m.Values[id] = value
	}
	return m
}

func TestNewFormModelPrefill(t *testing.T) {
	m := NewFormModel(planner.NewClient("http://127.0.0.1:1"), map[string]string{
		"age":            "28",
		"gender":         "female",
		"activity_level": "walking",
		"gobbledygook":   "ignored",  // unknown field
		"goal":           "sideways", // not a declared option
	})

	if got := m.Values.Get(form.FieldAge); got != "28" {
		t.Errorf("prefilled age = %q, want 28", got)
	}
	if got := m.Inputs[form.FieldAge].Value(); got != "28" {
		t.Errorf("age input value = %q, want 28", got)
	}
	if got := m.Values.Get(form.FieldGender); got != "female" {
		t.Errorf("prefilled gender = %q, want female", got)
	}
	if m.Choices[form.FieldGender] != 1 {
		t.Errorf("gender choice index = %d, want 1", m.Choices[form.FieldGender])
	}
	if m.Values.Filled(form.FieldGoal) {
		t.Error("invalid choice prefill should be ignored")
	}
}

func TestSetValueSchedulesAutoAdvance(t *testing.T) {
	m := testFormModel()

	// Partially filled section: no timer
	m, cmd := m.setValue(form.FieldAge, "30")
	if cmd != nil {
		t.Error("incomplete section should not schedule auto-advance")
	}

	// Completing the first section schedules the timer
	m.Values[form.FieldGender] = "male"
	m, cmd = m.setValue(form.FieldHeight, "175")
	if cmd == nil {
		t.Error("completing a section should schedule auto-advance")
	}
}

func TestSetValueWhitespaceDoesNotCount(t *testing.T) {
	m := testFormModel()
	m.Values[form.FieldAge] = "30"
	m.Values[form.FieldGender] = "male"

	// Whitespace-only is not "filled"
	m, cmd := m.setValue(form.FieldHeight, "   ")
	if cmd != nil {
		t.Error("whitespace-only value should not complete the section")
	}
	_ = m
}

func TestAutoAdvanceReadsLiveState(t *testing.T) {
	t.Run("advances when still filled", func(t *testing.T) {
		m := testFormModel()
		m.Values[form.FieldAge] = "30"
		m.Values[form.FieldGender] = "male"
		m.Values[form.FieldHeight] = "175"

		m, _ = m.Update(autoAdvanceMsg{})
		if m.Section != 1 {
			t.Errorf("Section = %d, want 1", m.Section)
		}
	})

	t.Run("no-op when a field was cleared before firing", func(t *testing.T) {
		m := testFormModel()
		m.Values[form.FieldAge] = "30"
		m.Values[form.FieldGender] = "male"
		m.Values[form.FieldHeight] = "  " // cleared after the timer was scheduled

		m, _ = m.Update(autoAdvanceMsg{})
		if m.Section != 0 {
			t.Errorf("Section = %d, want 0 (live state no longer qualifies)", m.Section)
		}
	})

	t.Run("stale timer on a new section is a no-op", func(t *testing.T) {
		m := testFormModel()
		m.Values[form.FieldAge] = "30"
		m.Values[form.FieldGender] = "male"
		m.Values[form.FieldHeight] = "175"
		m = m.gotoSection(1) // user advanced manually before the timer fired

		m, _ = m.Update(autoAdvanceMsg{})
		if m.Section != 1 {
			t.Errorf("Section = %d, want 1 (section 1 is not filled)", m.Section)
		}
	})

	t.Run("never advances past the last section", func(t *testing.T) {
		m := fillValid(testFormModel())
		m = m.gotoSection(2)

		m, _ = m.Update(autoAdvanceMsg{})
		if m.Section != 2 {
			t.Errorf("Section = %d, want 2", m.Section)
		}
	})
}

func TestSubmitConstraintErrors(t *testing.T) {
	m := testFormModel()

	m, cmd := m.submit()
	if cmd != nil {
		t.Error("invalid submit should not produce a command")
	}
	if m.Submitting {
		t.Error("invalid submit should not enter the submitting state")
	}
	if len(m.FieldErrors) == 0 {
		t.Fatal("empty form should produce required-field errors")
	}
	if m.FieldErrors[form.FieldAge] != "This field is required" {
		t.Errorf("age error = %q, want required message", m.FieldErrors[form.FieldAge])
	}
	if m.Section != 0 || m.Cursor != 0 {
		t.Errorf("cursor should land on the first error, got section %d cursor %d", m.Section, m.Cursor)
	}
}

func TestSubmitValidationErrorsReplace(t *testing.T) {
	m := fillValid(testFormModel())
	m.Values[form.FieldTargetWeight] = "90" // lose goal but target above current

	m, _ = m.submit()
	if m.Submitting {
		t.Fatal("inconsistent goal should block submission")
	}
	if m.FieldErrors[form.FieldTargetWeight] == "" {
		t.Fatal("target weight should be annotated")
	}

	// Fix the target, break the duration: a fresh pass replaces ALL
	// annotations, so the old target error must disappear.
	m.Values[form.FieldTargetWeight] = "75"
	m.Values[form.FieldDuration] = "500"

	m, _ = m.submit()
	if m.FieldErrors[form.FieldTargetWeight] != "" {
		t.Errorf("stale target error survived a re-validation: %q", m.FieldErrors[form.FieldTargetWeight])
	}
	if !strings.HasPrefix(m.FieldErrors[form.FieldDuration], "Must be at most") {
		t.Errorf("duration error = %q, want range message", m.FieldErrors[form.FieldDuration])
	}
}

func TestSubmitStartsSubmission(t *testing.T) {
	m := fillValid(testFormModel())

	m, cmd := m.submit()
	if !m.Submitting {
		t.Error("valid submit should enter the submitting state")
	}
	if cmd == nil {
		t.Error("valid submit should produce the submission command batch")
	}
	if m.Request == nil {
		t.Fatal("valid submit should record the request for retry")
	}
	if m.Request.Goal != "lose" || m.Request.Duration != 60 {
		t.Errorf("request = %+v, want goal lose over 60 days", m.Request)
	}
	if len(m.FieldErrors) != 0 {
		t.Errorf("valid submit left annotations: %v", m.FieldErrors)
	}
}

func TestSubmitLockedWhileSubmitting(t *testing.T) {
	m := fillValid(testFormModel())
	m, _ = m.submit()

	m2, cmd := m.submit()
	if cmd != nil {
		t.Error("submit while pending should be a no-op")
	}
	if !m2.Submitting {
		t.Error("pending submission should survive a repeated submit")
	}
}

func TestSubmitRecoveryReenables(t *testing.T) {
	m := fillValid(testFormModel())
	m, _ = m.submit()

	m, _ = m.Update(submitRecoveryMsg{})
	if m.Submitting {
		t.Error("recovery timer should re-enable submit")
	}

	// The request was not cancelled: a late response still lands.
	result := &planner.PlanResult{DailyCalories: 1800}
	m, _ = m.Update(planResponseMsg{result: result})
	if m.Result == nil || m.Result.DailyCalories != 1800 {
		t.Error("late response after recovery should still produce the result")
	}
}

func TestSubmitRecoveryIgnoredWhenIdle(t *testing.T) {
	m := testFormModel()
	m, _ = m.Update(submitRecoveryMsg{})
	if m.Submitting {
		t.Error("recovery on an idle form should change nothing")
	}
}

func TestPlanResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := fillValid(testFormModel())
		m, _ = m.submit()

		m, _ = m.Update(planResponseMsg{result: &planner.PlanResult{DailyCalories: 2000}})
		if m.Submitting {
			t.Error("response should end the submitting state")
		}
		if m.Result == nil {
			t.Fatal("successful response should set the result")
		}
		if m.SubmitErr != nil {
			t.Errorf("unexpected submit error: %v", m.SubmitErr)
		}
	})

	t.Run("failure", func(t *testing.T) {
		m := fillValid(testFormModel())
		m, _ = m.submit()

		m, _ = m.Update(planResponseMsg{err: planner.NewHTTPError(503, "unavailable")})
		if m.Submitting {
			t.Error("response should end the submitting state")
		}
		if m.SubmitErr == nil {
			t.Fatal("failed response should set the submit error")
		}
		if m.Result != nil {
			t.Error("failed response should not set a result")
		}
	})
}

func TestCycleChoice(t *testing.T) {
	m := testFormModel()

	// First interaction selects the first option going forward
	m, _ = m.cycleChoice(form.FieldGender, +1)
	if got := m.Values.Get(form.FieldGender); got != "male" {
		t.Errorf("first cycle = %q, want male", got)
	}

	// ...and wraps from the last option back to the first
	m, _ = m.cycleChoice(form.FieldGender, +1)
	m, _ = m.cycleChoice(form.FieldGender, +1)
	m, _ = m.cycleChoice(form.FieldGender, +1)
	if got := m.Values.Get(form.FieldGender); got != "male" {
		t.Errorf("wrapped cycle = %q, want male", got)
	}

	// Backwards from unset selects the last option
	m2 := testFormModel()
	m2, _ = m2.cycleChoice(form.FieldGoal, -1)
	if got := m2.Values.Get(form.FieldGoal); got != "maintain" {
		t.Errorf("backwards first cycle = %q, want maintain", got)
	}
}

func TestNavigationCrossesSections(t *testing.T) {
	m := testFormModel()

	// Walk past the end of section 0
	for i := 0; i < 3; i++ {
		m = m.nextField()
	}
	if m.Section != 1 || m.Cursor != 0 {
		t.Errorf("after walking past section 0: section %d cursor %d, want 1/0", m.Section, m.Cursor)
	}

	// And back again
	m = m.prevField()
	if m.Section != 0 || m.Cursor != 2 {
		t.Errorf("after walking back: section %d cursor %d, want 0/2", m.Section, m.Cursor)
	}
}

func TestKeysLockedWhileSubmitting(t *testing.T) {
	m := fillValid(testFormModel())
	m, _ = m.submit()

	before := m.Values.Get(form.FieldAge)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})
	if got := m.Values.Get(form.FieldAge); got != before {
		t.Errorf("editing while submitting changed age from %q to %q", before, got)
	}
}

func TestPreviewLines(t *testing.T) {
	m := testFormModel()

	// No preview until the inputs parse
	if got := m.previewFor(form.FieldHeight); got != "" {
		t.Errorf("BMR preview with empty form = %q, want empty", got)
	}

	m.Values[form.FieldAge] = "30"
	m.Values[form.FieldGender] = "male"
	m.Values[form.FieldHeight] = "175"
	m.Values[form.FieldCurrentWeight] = "70"
	if got := m.previewFor(form.FieldHeight); !strings.Contains(got, "1649") {
		t.Errorf("BMR preview = %q, want it to contain 1649", got)
	}

	// Gender "other" has no estimate; the preview is simply absent
	m.Values[form.FieldGender] = "other"
	if got := m.previewFor(form.FieldHeight); got != "" {
		t.Errorf("BMR preview for gender other = %q, want empty", got)
	}

	m.Values[form.FieldTargetWeight] = "65"
	m.Values[form.FieldDuration] = "70"
	got := m.previewFor(form.FieldDuration)
	if !strings.Contains(got, "-5.0 kg") {
		t.Errorf("weight change preview = %q, want it to contain -5.0 kg", got)
	}
	if strings.Contains(got, "aggressive") {
		t.Errorf("0.5 kg/week should not warn, got %q", got)
	}

	// Ten days for five kilos is over the advisory rate
	m.Values[form.FieldDuration] = "10"
	if got := m.previewFor(form.FieldDuration); !strings.Contains(got, "aggressive") {
		t.Errorf("3.5 kg/week should warn, got %q", got)
	}
}

func TestFormViewRenders(t *testing.T) {
	m := fillValid(testFormModel())
	view := m.View()

	if !strings.Contains(view, "About you") {
		t.Error("view should show the active section title")
	}
	if !strings.Contains(view, AppName) {
		t.Error("view should include the application header")
	}
}
