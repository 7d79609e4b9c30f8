package form

import (
	"strings"
	"testing"
)

func completeValues() Values {
	return Values{
		FieldAge:            "30",
		FieldGender:         "male",
		FieldHeight:         "175",
		FieldCurrentWeight:  "75",
		FieldTargetWeight:   "70",
		FieldDuration:       "60",
		FieldGoal:           "lose",
		FieldActivityLevel:  "walking",
		FieldWorkoutType:    "gym_diet",
		FieldCookingRecipes: "yes",
	}
}

func TestCheckConstraints(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name      string
		mutate    func(Values)
		wantField FieldID
		wantMsg   string
	}{
		{
			name:   "complete form passes",
			mutate: func(v Values) {},
		},
		{
			name:      "missing required field",
			mutate:    func(v Values) { delete(v, FieldAge) },
			wantField: FieldAge,
			wantMsg:   "This field is required",
		},
		{
			name:      "whitespace only counts as missing",
			mutate:    func(v Values) { v[FieldHeight] = "   " },
			wantField: FieldHeight,
			wantMsg:   "This field is required",
		},
		{
			name:      "non-numeric number field",
			mutate:    func(v Values) { v[FieldCurrentWeight] = "heavy" },
			wantField: FieldCurrentWeight,
			wantMsg:   "Enter a valid number",
		},
		{
			name:      "undeclared choice option",
			mutate:    func(v Values) { v[FieldGoal] = "bulk" },
			wantField: FieldGoal,
			wantMsg:   "Choose one of the listed options",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := completeValues()
			tt.mutate(v)
			errs := r.CheckConstraints(v)

			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("CheckConstraints() = %v, want no errors", errs)
				}
				return
			}
			if got := errs[tt.wantField]; got != tt.wantMsg {
				t.Errorf("errs[%s] = %q, want %q", tt.wantField, got, tt.wantMsg)
			}
		})
	}
}

func TestValidateGoalConsistency(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name    string
		current string
		target  string
		goal    string
		wantOK  bool
	}{
		{"lose below current", "75", "70", "lose", true},
		{"lose above current", "75", "80", "lose", false},
		{"lose equal to current fails", "75", "75", "lose", false},
		{"gain above current", "60", "65", "gain", true},
		{"gain below current", "60", "55", "gain", false},
		{"gain equal to current fails", "60", "60", "gain", false},
		{"maintain within band", "70", "71.5", "maintain", true},
		{"maintain exactly 2 kg apart passes", "70", "72", "maintain", true},
		{"maintain beyond band", "70", "73", "maintain", false},
		{"maintain beyond band downward", "70", "67", "maintain", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := completeValues()
			v[FieldCurrentWeight] = tt.current
			v[FieldTargetWeight] = tt.target
			v[FieldGoal] = tt.goal

			errs, ok := r.Validate(v)
			if ok != tt.wantOK {
				t.Fatalf("Validate() ok = %v, want %v (errs: %v)", ok, tt.wantOK, errs)
			}
			if !ok {
				if _, annotated := errs[FieldTargetWeight]; !annotated {
					t.Errorf("goal inconsistency not annotated on target weight: %v", errs)
				}
			}
		})
	}
}

func TestValidateSkipsGoalCheckWithoutWeights(t *testing.T) {
	r := DefaultRegistry()
	v := completeValues()
	v[FieldCurrentWeight] = "" // absent, never treated as zero
	v[FieldTargetWeight] = "80"
	v[FieldGoal] = "lose"

	errs, ok := r.Validate(v)
	if !ok {
		t.Errorf("Validate() failed with absent current weight: %v", errs)
	}
}

func TestValidateRanges(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name    string
		field   FieldID
		value   string
		wantOK  bool
		wantMsg string
	}{
		{"age below minimum", FieldAge, "8", false, "Must be at least 10 years"},
		{"age at minimum passes", FieldAge, "10", true, ""},
		{"age at maximum passes", FieldAge, "100", true, ""},
		{"age above maximum", FieldAge, "101", false, "Must be at most 100 years"},
		{"height below minimum", FieldHeight, "90", false, "Must be at least 100 cm"},
		{"duration below minimum", FieldDuration, "3", false, "Must be at least 7 days"},
		{"duration above maximum", FieldDuration, "400", false, "Must be at most 365 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := completeValues()
			v[tt.field] = tt.value

			errs, ok := r.Validate(v)
			if ok != tt.wantOK {
				t.Fatalf("Validate() ok = %v, want %v (errs: %v)", ok, tt.wantOK, errs)
			}
			if !tt.wantOK {
				if got := errs[tt.field]; got != tt.wantMsg {
					t.Errorf("errs[%s] = %q, want %q", tt.field, got, tt.wantMsg)
				}
			}
		})
	}
}

func TestValidateAccumulatesAcrossFields(t *testing.T) {
	r := DefaultRegistry()
	v := completeValues()
	v[FieldAge] = "8"           // below minimum
	v[FieldDuration] = "3"      // below minimum
	v[FieldTargetWeight] = "80" // lose goal but target above current

	errs, ok := r.Validate(v)
	if ok {
		t.Fatal("Validate() ok = true, want false")
	}
	for _, id := range []FieldID{FieldAge, FieldDuration, FieldTargetWeight} {
		if _, present := errs[id]; !present {
			t.Errorf("field %s not annotated; all checks should run: %v", id, errs)
		}
	}
}

func TestValidateLastCheckWinsPerField(t *testing.T) {
	r := DefaultRegistry()
	v := completeValues()
	// Target weight both contradicts the lose goal and exceeds the declared
	// maximum; the range check runs later and its message must win.
	v[FieldCurrentWeight] = "75"
	v[FieldTargetWeight] = "500"
	v[FieldGoal] = "lose"

	errs, ok := r.Validate(v)
	if ok {
		t.Fatal("Validate() ok = true, want false")
	}
	got := errs[FieldTargetWeight]
	if !strings.HasPrefix(got, "Must be at most") {
		t.Errorf("errs[target_weight] = %q, want range message to overwrite goal message", got)
	}
}

func TestValidateReturnsFreshMap(t *testing.T) {
	r := DefaultRegistry()
	v := completeValues()
	v[FieldAge] = "8"

	first, _ := r.Validate(v)
	if len(first) != 1 {
		t.Fatalf("first pass errs = %v, want exactly one", first)
	}

	v[FieldAge] = "30"
	second, ok := r.Validate(v)
	if !ok || len(second) != 0 {
		t.Errorf("second pass errs = %v, want none after correction", second)
	}
}
