// Package preview computes the client-side advisory estimates shown while the
// intake form is being filled in: the projected weight change over the plan
// duration and the Mifflin-St Jeor basal metabolic rate. These are previews
// only; the backend computes the authoritative plan.
package preview

import (
	"fmt"
	"math"
)

// AggressiveWeeklyRate is the weekly rate (kg/week) above which the weight
// change preview carries an advisory warning. The warning never blocks
// submission.
const AggressiveWeeklyRate = 1.0

// WeightChange describes the projected change from current to target weight
// over the plan duration.
type WeightChange struct {
	Total      float64 // kg, signed (negative = loss)
	Weekly     float64 // kg per week, signed
	Aggressive bool    // |Weekly| exceeds AggressiveWeeklyRate
}

// WeightChangeFor computes the projected weight change. It returns false when
// any input is not a finite number or the duration is not positive; in that
// case no preview should be shown.
func WeightChangeFor(currentKg, targetKg, durationDays float64) (WeightChange, bool) {
	if !isFinite(currentKg) || !isFinite(targetKg) || !isFinite(durationDays) || durationDays <= 0 {
		return WeightChange{}, false
	}

	total := targetKg - currentKg
	weekly := total / durationDays * 7

	return WeightChange{
		Total:      total,
		Weekly:     weekly,
		Aggressive: math.Abs(weekly) > AggressiveWeeklyRate,
	}, true
}

// Summary renders the change as shown next to the duration field, e.g.
// "-5.0 kg (-0.58 kg/week)".
func (w WeightChange) Summary() string {
	return fmt.Sprintf("%+.1f kg (%+.2f kg/week)", w.Total, w.Weekly)
}

// Warning returns the advisory message for aggressive rates, or "" when the
// rate is within the recommended bound.
func (w WeightChange) Warning() string {
	if !w.Aggressive {
		return ""
	}
	return "More than 1 kg/week is aggressive; consider a longer duration"
}

// BMR computes the Mifflin-St Jeor basal metabolic rate in calories/day,
// rounded to the nearest integer. Only "male" and "female" are recognized;
// any other gender returns false and no preview is shown (this is not an
// input error).
func BMR(ageYears, weightKg, heightCm float64, gender string) (int, bool) {
	if !isFinite(ageYears) || !isFinite(weightKg) || !isFinite(heightCm) {
		return 0, false
	}

	base := 10*weightKg + 6.25*heightCm - 5*ageYears
	switch gender {
	case "male":
		return int(math.Round(base + 5)), true
	case "female":
		return int(math.Round(base - 161)), true
	default:
		return 0, false
	}
}

// FormatBMR renders the BMR preview line shown under the height field.
func FormatBMR(calories int) string {
	return fmt.Sprintf("Estimated BMR: %d calories/day", calories)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
