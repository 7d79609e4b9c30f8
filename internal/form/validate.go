package form

import (
	"fmt"
	"math"
	"strconv"
)

// Errors maps a field to its current error message. At most one message per
// field: a later check overwrites an earlier one.
type Errors map[FieldID]string

// CheckConstraints runs the first validation tier: the per-field constraints
// declared in each Spec. Required fields must be non-empty after trimming,
// number fields must parse to a finite number, and choice fields must hold a
// declared option. Range checks belong to the second tier.
func (r *Registry) CheckConstraints(v Values) Errors {
	errs := make(Errors)
	for _, id := range r.order {
		spec := r.specs[id]
		raw := v.Get(id)

		if raw == "" {
			if spec.Required {
				errs[id] = "This field is required"
			}
			continue
		}

		switch spec.Kind {
		case KindNumber:
			if _, ok := v.Number(id); !ok {
				errs[id] = "Enter a valid number"
			}
		case KindChoice:
			if !spec.HasOption(raw) {
				errs[id] = "Choose one of the listed options"
			}
		}
	}
	return errs
}

// Validate runs the second validation tier over values that already passed
// CheckConstraints. All checks run without short-circuiting; when several
// checks annotate the same field, the last one wins. The returned map is
// always freshly built, so applying it replaces every prior annotation.
func (r *Registry) Validate(v Values) (Errors, bool) {
	errs := make(Errors)

	r.checkGoalConsistency(v, errs)
	r.checkRanges(v, errs)

	return errs, len(errs) == 0
}

// checkGoalConsistency verifies that the target weight agrees with the stated
// goal. Weights that do not parse are treated as absent and the check is
// skipped; failures annotate the target weight field.
func (r *Registry) checkGoalConsistency(v Values, errs Errors) {
	if _, ok := r.specs[FieldGoal]; !ok {
		return
	}
	if _, ok := r.specs[FieldTargetWeight]; !ok {
		return
	}

	current, okCur := v.Number(FieldCurrentWeight)
	target, okTgt := v.Number(FieldTargetWeight)
	goal := v.Get(FieldGoal)
	if !okCur || !okTgt || goal == "" {
		return
	}

	switch goal {
	case "lose":
		if target >= current {
			errs[FieldTargetWeight] = "Target weight must be below current weight to lose weight"
		}
	case "gain":
		if target <= current {
			errs[FieldTargetWeight] = "Target weight must be above current weight to gain weight"
		}
	case "maintain":
		if math.Abs(target-current) > 2 {
			errs[FieldTargetWeight] = "Target weight should stay within 2 kg of current weight to maintain"
		}
	}
}

// checkRanges verifies every required number field against its declared
// bounds. Runs after the goal check so a range violation on the same field
// overwrites the goal message.
func (r *Registry) checkRanges(v Values, errs Errors) {
	for _, id := range r.order {
		spec := r.specs[id]
		if spec.Kind != KindNumber || !spec.Required {
			continue
		}
		n, ok := v.Number(id)
		if !ok {
			continue
		}
		if spec.HasMin && n < spec.Min {
			errs[id] = fmt.Sprintf("Must be at least %s", formatBound(spec.Min, spec.Unit))
		}
		if spec.HasMax && n > spec.Max {
			errs[id] = fmt.Sprintf("Must be at most %s", formatBound(spec.Max, spec.Unit))
		}
	}
}

func formatBound(bound float64, unit string) string {
	s := strconv.FormatFloat(bound, 'f', -1, 64)
	if unit != "" {
		return s + " " + unit
	}
	return s
}
