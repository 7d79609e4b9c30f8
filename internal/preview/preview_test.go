package preview

import (
	"math"
	"testing"
)

func TestWeightChangeFor(t *testing.T) {
	tests := []struct {
		name       string
		current    float64
		target     float64
		duration   float64
		wantOK     bool
		wantTotal  float64
		wantWeekly float64
		aggressive bool
	}{
		{
			name:       "moderate loss",
			current:    75,
			target:     70,
			duration:   60,
			wantOK:     true,
			wantTotal:  -5,
			wantWeekly: -5.0 / 60 * 7,
			aggressive: false,
		},
		{
			name:       "aggressive loss",
			current:    75,
			target:     70,
			duration:   30,
			wantOK:     true,
			wantTotal:  -5,
			wantWeekly: -5.0 / 30 * 7,
			aggressive: true,
		},
		{
			name:       "gain",
			current:    60,
			target:     65,
			duration:   70,
			wantOK:     true,
			wantTotal:  5,
			wantWeekly: 0.5,
			aggressive: false,
		},
		{
			name:       "no change",
			current:    70,
			target:     70,
			duration:   30,
			wantOK:     true,
			wantTotal:  0,
			wantWeekly: 0,
			aggressive: false,
		},
		{
			name:       "weekly rate exactly at bound is not aggressive",
			current:    70,
			target:     69,
			duration:   7,
			wantOK:     true,
			wantTotal:  -1,
			wantWeekly: -1,
			aggressive: false,
		},
		{
			name:     "zero duration",
			current:  75,
			target:   70,
			duration: 0,
			wantOK:   false,
		},
		{
			name:     "negative duration",
			current:  75,
			target:   70,
			duration: -5,
			wantOK:   false,
		},
		{
			name:     "non-finite current",
			current:  math.NaN(),
			target:   70,
			duration: 30,
			wantOK:   false,
		},
		{
			name:     "infinite target",
			current:  75,
			target:   math.Inf(1),
			duration: 30,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WeightChangeFor(tt.current, tt.target, tt.duration)
			if ok != tt.wantOK {
				t.Fatalf("WeightChangeFor() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(got.Total-tt.wantTotal) > 1e-9 {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}
			if math.Abs(got.Weekly-tt.wantWeekly) > 1e-9 {
				t.Errorf("Weekly = %v, want %v", got.Weekly, tt.wantWeekly)
			}
			if got.Aggressive != tt.aggressive {
				t.Errorf("Aggressive = %v, want %v", got.Aggressive, tt.aggressive)
			}
		})
	}
}

func TestWeightChangeSummary(t *testing.T) {
	tests := []struct {
		name   string
		change WeightChange
		want   string
	}{
		{
			name:   "loss",
			change: WeightChange{Total: -5, Weekly: -5.0 / 30 * 7},
			want:   "-5.0 kg (-1.17 kg/week)",
		},
		{
			name:   "gain carries explicit plus sign",
			change: WeightChange{Total: 5, Weekly: 0.5},
			want:   "+5.0 kg (+0.50 kg/week)",
		},
		{
			name:   "zero",
			change: WeightChange{Total: 0, Weekly: 0},
			want:   "+0.0 kg (+0.00 kg/week)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.change.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWeightChangeWarning(t *testing.T) {
	if w := (WeightChange{Weekly: -0.5}).Warning(); w != "" {
		t.Errorf("Warning() = %q, want empty for moderate rate", w)
	}
	if w := (WeightChange{Weekly: -1.2, Aggressive: true}).Warning(); w == "" {
		t.Error("Warning() empty, want advisory for aggressive rate")
	}
}

func TestBMR(t *testing.T) {
	tests := []struct {
		name   string
		age    float64
		weight float64
		height float64
		gender string
		want   int
		wantOK bool
	}{
		{
			name:   "male",
			age:    30,
			weight: 70,
			height: 175,
			gender: "male",
			want:   1649, // 700 + 1093.75 - 150 + 5 = 1648.75
			wantOK: true,
		},
		{
			name:   "female",
			age:    30,
			weight: 70,
			height: 175,
			gender: "female",
			want:   1483, // 700 + 1093.75 - 150 - 161 = 1482.75
			wantOK: true,
		},
		{
			name:   "other gender has no formula",
			age:    30,
			weight: 70,
			height: 175,
			gender: "other",
			wantOK: false,
		},
		{
			name:   "empty gender",
			age:    30,
			weight: 70,
			height: 175,
			gender: "",
			wantOK: false,
		},
		{
			name:   "non-finite weight",
			age:    30,
			weight: math.NaN(),
			height: 175,
			gender: "male",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BMR(tt.age, tt.weight, tt.height, tt.gender)
			if ok != tt.wantOK {
				t.Fatalf("BMR() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("BMR() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatBMR(t *testing.T) {
	if got := FormatBMR(1649); got != "Estimated BMR: 1649 calories/day" {
		t.Errorf("FormatBMR() = %q", got)
	}
}
