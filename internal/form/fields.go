package form

import (
	"math"
	"strconv"
	"strings"
)

// FieldID identifies a form field. The value is the exact key posted to the
// backend, so renaming a constant here is a wire-format change.
type FieldID string

const (
	FieldAge            FieldID = "age"
	FieldGender         FieldID = "gender"
	FieldHeight         FieldID = "height"
	FieldCurrentWeight  FieldID = "current_weight"
	FieldTargetWeight   FieldID = "target_weight"
	FieldDuration       FieldID = "duration"
	FieldGoal           FieldID = "goal"
	FieldActivityLevel  FieldID = "activity_level"
	FieldWorkoutType    FieldID = "workout_type"
	FieldCookingRecipes FieldID = "cooking_recipes"
)

// Kind is the input kind of a field.
type Kind int

const (
	// KindNumber accepts a decimal number, optionally range-constrained.
	KindNumber Kind = iota
	// KindChoice accepts exactly one of the declared options.
	KindChoice
)

// Spec declares one field: its kind, whether it is required, and its
// constraints. Constraints declared here form the first validation tier;
// cross-field rules live in Validate.
type Spec struct {
	ID          FieldID
	Label       string
	Kind        Kind
	Required    bool
	Min         float64
	Max         float64
	HasMin      bool
	HasMax      bool
	Options     []Option
	Unit        string
	Placeholder string
}

// Option is one selectable value of a choice field. Value is what gets
// posted; Label is what gets displayed.
type Option struct {
	Value string
	Label string
}

// HasOption reports whether value is one of the declared options.
func (s *Spec) HasOption(value string) bool {
	for _, o := range s.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Section is an ordered group of fields presented together. Section order
// defines navigation order.
type Section struct {
	Title  string
	Fields []FieldID
}

// Registry holds the resolved field set and section layout. It is built once
// at construction; lookups of unknown fields report absence rather than
// failing, so a feature tied to a missing field degrades to a no-op.
type Registry struct {
	Sections []Section
	specs    map[FieldID]*Spec
	order    []FieldID
}

// NewRegistry builds a registry from the given sections and specs. Specs not
// referenced by any section are still resolvable by Lookup.
func NewRegistry(sections []Section, specs []Spec) *Registry {
	r := &Registry{
		Sections: sections,
		specs:    make(map[FieldID]*Spec, len(specs)),
		order:    make([]FieldID, 0, len(specs)),
	}
	for i := range specs {
		s := specs[i]
		r.specs[s.ID] = &s
		r.order = append(r.order, s.ID)
	}
	return r
}

// DefaultRegistry returns the planner intake form: three sections covering
// identity, goal, and lifestyle.
func DefaultRegistry() *Registry {
	return NewRegistry(
		[]Section{
			{Title: "About you", Fields: []FieldID{FieldAge, FieldGender, FieldHeight}},
			{Title: "Your goal", Fields: []FieldID{FieldCurrentWeight, FieldTargetWeight, FieldDuration, FieldGoal}},
			{Title: "Lifestyle", Fields: []FieldID{FieldActivityLevel, FieldWorkoutType, FieldCookingRecipes}},
		},
		[]Spec{
			{
				ID: FieldAge, Label: "Age", Kind: KindNumber, Required: true,
				Min: 10, Max: 100, HasMin: true, HasMax: true,
				Unit: "years", Placeholder: "30",
			},
			{
				ID: FieldGender, Label: "Gender", Kind: KindChoice, Required: true,
				Options: []Option{
					{Value: "male", Label: "Male"},
					{Value: "female", Label: "Female"},
					{Value: "other", Label: "Other"},
				},
			},
			{
				ID: FieldHeight, Label: "Height", Kind: KindNumber, Required: true,
				Min: 100, Max: 250, HasMin: true, HasMax: true,
				Unit: "cm", Placeholder: "175",
			},
			{
				ID: FieldCurrentWeight, Label: "Current weight", Kind: KindNumber, Required: true,
				Min: 30, Max: 300, HasMin: true, HasMax: true,
				Unit: "kg", Placeholder: "75",
			},
			{
				ID: FieldTargetWeight, Label: "Target weight", Kind: KindNumber, Required: true,
				Min: 30, Max: 300, HasMin: true, HasMax: true,
				Unit: "kg", Placeholder: "70",
			},
			{
				ID: FieldDuration, Label: "Duration", Kind: KindNumber, Required: true,
				Min: 7, Max: 365, HasMin: true, HasMax: true,
				Unit: "days", Placeholder: "60",
			},
			{
				ID: FieldGoal, Label: "Goal", Kind: KindChoice, Required: true,
				Options: []Option{
					{Value: "lose", Label: "Lose weight"},
					{Value: "gain", Label: "Gain weight"},
					{Value: "maintain", Label: "Maintain weight"},
				},
			},
			{
				ID: FieldActivityLevel, Label: "Activity level", Kind: KindChoice, Required: true,
				Options: []Option{
					{Value: "sitting", Label: "Mostly sitting"},
					{Value: "walking", Label: "Regular walking"},
					{Value: "riding", Label: "Cycling / light sport"},
					{Value: "active", Label: "Active most days"},
					{Value: "very_active", Label: "Very active"},
				},
			},
			{
				ID: FieldWorkoutType, Label: "Workout preference", Kind: KindChoice, Required: true,
				Options: []Option{
					{Value: "gym_diet", Label: "Gym and diet"},
					{Value: "home_workout", Label: "Home workouts"},
					{Value: "none", Label: "Diet only"},
				},
			},
			{
				ID: FieldCookingRecipes, Label: "Include recipes", Kind: KindChoice, Required: true,
				Options: []Option{
					{Value: "yes", Label: "Yes"},
					{Value: "no", Label: "No"},
				},
			},
		},
	)
}

// Lookup returns the spec for id. The second return is false when the field
// is not part of this registry.
func (r *Registry) Lookup(id FieldID) (*Spec, bool) {
	s, ok := r.specs[id]
	return s, ok
}

// FieldIDs returns all registered field IDs in declaration order.
func (r *Registry) FieldIDs() []FieldID {
	out := make([]FieldID, len(r.order))
	copy(out, r.order)
	return out
}

// Values holds the raw text of every field as entered by the user.
type Values map[FieldID]string

// Get returns the trimmed value of a field.
func (v Values) Get(id FieldID) string {
	return strings.TrimSpace(v[id])
}

// Filled reports whether the field holds a non-empty value after trimming.
// Filled is deliberately weaker than valid: it is the test used for section
// auto-advance.
func (v Values) Filled(id FieldID) bool {
	return v.Get(id) != ""
}

// Number parses the field as a finite decimal number. Empty or unparsable
// values report absence, never zero.
func (v Values) Number(id FieldID) (float64, bool) {
	raw := v.Get(id)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// SectionFilled reports whether every required field of the section holds a
// non-empty trimmed value. Validity is not checked here.
func (r *Registry) SectionFilled(v Values, sectionIdx int) bool {
	if sectionIdx < 0 || sectionIdx >= len(r.Sections) {
		return false
	}
	for _, id := range r.Sections[sectionIdx].Fields {
		spec, ok := r.specs[id]
		if !ok || !spec.Required {
			continue
		}
		if !v.Filled(id) {
			return false
		}
	}
	return true
}
