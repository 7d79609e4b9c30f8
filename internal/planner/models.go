package planner

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nutrikit/nutriplan/internal/form"
)

// PlanRequest holds the values submitted to the backend to compute a plan.
// Field names map one-to-one onto the form keys the backend reads.
type PlanRequest struct {
	Age            int     // Maps to age
	Gender         string  // Maps to gender
	Height         float64 // Maps to height (cm)
	CurrentWeight  float64 // Maps to current_weight (kg)
	TargetWeight   float64 // Maps to target_weight (kg)
	Duration       int     // Maps to duration (days)
	Goal           string  // Maps to goal
	ActivityLevel  string  // Maps to activity_level
	WorkoutType    string  // Maps to workout_type
	CookingRecipes bool    // Maps to cooking_recipes ("yes"/"no")
}

// RequestFromValues builds a PlanRequest from validated form values. Values
// are expected to have passed both validation tiers; a number that still
// fails to parse is reported as a validation error.
func RequestFromValues(v form.Values) (*PlanRequest, error) {
	age, ok := v.Number(form.FieldAge)
	if !ok {
		return nil, NewValidationError("age is not a number")
	}
	height, ok := v.Number(form.FieldHeight)
	if !ok {
		return nil, NewValidationError("height is not a number")
	}
	current, ok := v.Number(form.FieldCurrentWeight)
	if !ok {
		return nil, NewValidationError("current weight is not a number")
	}
	target, ok := v.Number(form.FieldTargetWeight)
	if !ok {
		return nil, NewValidationError("target weight is not a number")
	}
	duration, ok := v.Number(form.FieldDuration)
	if !ok {
		return nil, NewValidationError("duration is not a number")
	}

	return &PlanRequest{
		Age:            int(age),
		Gender:         v.Get(form.FieldGender),
		Height:         height,
		CurrentWeight:  current,
		TargetWeight:   target,
		Duration:       int(duration),
		Goal:           v.Get(form.FieldGoal),
		ActivityLevel:  v.Get(form.FieldActivityLevel),
		WorkoutType:    v.Get(form.FieldWorkoutType),
		CookingRecipes: v.Get(form.FieldCookingRecipes) == "yes",
	}, nil
}

// ToFormData converts the request to URL-encoded form data for POST requests.
func (r *PlanRequest) ToFormData() url.Values {
	data := url.Values{}
	data.Set(string(form.FieldAge), strconv.Itoa(r.Age))
	data.Set(string(form.FieldGender), r.Gender)
	data.Set(string(form.FieldHeight), formatNumber(r.Height))
	data.Set(string(form.FieldCurrentWeight), formatNumber(r.CurrentWeight))
	data.Set(string(form.FieldTargetWeight), formatNumber(r.TargetWeight))
	data.Set(string(form.FieldDuration), strconv.Itoa(r.Duration))
	data.Set(string(form.FieldGoal), r.Goal)
	data.Set(string(form.FieldActivityLevel), r.ActivityLevel)
	data.Set(string(form.FieldWorkoutType), r.WorkoutType)

	if r.CookingRecipes {
		data.Set(string(form.FieldCookingRecipes), "yes")
	} else {
		data.Set(string(form.FieldCookingRecipes), "no")
	}

	return data
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// PlanResult is the plan document returned by the backend for a submitted
// request.
type PlanResult struct {
	DailyCalories int      `json:"daily_calories"` // Daily calorie target
	BMR           int      `json:"bmr"`            // Basal metabolic rate
	TDEE          int      `json:"tdee"`           // Total daily energy expenditure
	Macros        Macros   `json:"macros"`
	MealPlan      MealPlan `json:"meal_plan"`
	Recipes       []Recipe `json:"recipes"`
	UserData      UserData `json:"user_data"`
}

// Macros is the daily macronutrient breakdown in grams.
type Macros struct {
	Protein int `json:"protein"`
	Fat     int `json:"fat"`
	Carbs   int `json:"carbs"`
}

// MealPlan splits the daily calorie target across the day's meals.
type MealPlan struct {
	Breakfast Meal `json:"breakfast"`
	Lunch     Meal `json:"lunch"`
	Dinner    Meal `json:"dinner"`
	Snacks    Meal `json:"snacks"`
}

// Meal is one meal slot of the plan.
type Meal struct {
	Calories   int    `json:"calories"`
	Suggestion string `json:"suggestion"`
}

// Recipe is one recommended recipe. Time and serving fields are free-form
// text; the backend substitutes "N/A" when its recipe data lacks a value.
type Recipe struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	PrepTime    string   `json:"prep_time"`
	CookTime    string   `json:"cook_time"`
	Servings    string   `json:"servings"`
}

// UserData echoes back the goal parameters the plan was computed from.
type UserData struct {
	Goal         string  `json:"goal"`
	Duration     int     `json:"duration"`
	WeightChange float64 `json:"weight_change"`
}

// ExtractJSON pulls the first complete JSON object out of a response body.
//
// HTML-mode backends render the plan document inside a results page, so the
// body can carry markup before and after the JSON. This finds the first '{'
// and its matching '}' (brace depth, string-aware) and returns that slice.
func ExtractJSON(data []byte) ([]byte, error) {
	// Find the first '{' to locate JSON start
	start := -1
	for i, b := range data {
		if b == '{' {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	// Find the matching closing '}' by tracking brace depth
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(data); i++ {
		b := data[i]

		// Handle string escaping
		if escaped {
			escaped = false
			continue
		}
		if b == '\\' {
			escaped = true
			continue
		}

		// Track string boundaries (braces inside strings don't count)
		if b == '"' {
			inString = !inString
			continue
		}

		if !inString {
			if b == '{' {
				depth++
			} else if b == '}' {
				depth--
				if depth == 0 {
					// Found the end of the JSON object
					return data[start : i+1], nil
				}
			}
		}
	}

	return nil, fmt.Errorf("unclosed JSON object in response")
}

// ParsePlanResult parses a plan result from raw response data. It tolerates
// bodies where the JSON document is embedded in surrounding markup.
func ParsePlanResult(data []byte) (*PlanResult, error) {
	cleanData, err := ExtractJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to locate plan document: %w", err)
	}

	var result PlanResult
	if err := json.Unmarshal(cleanData, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan result: %w", err)
	}

	return &result, nil
}

// String returns a human-readable summary of the plan.
func (p *PlanResult) String() string {
	return fmt.Sprintf("Plan: %d calories/day (BMR %d, TDEE %d)\n"+
		"  Macros: %dg protein / %dg fat / %dg carbs\n"+
		"  Goal: %s over %d days (%+.1f kg)",
		p.DailyCalories, p.BMR, p.TDEE,
		p.Macros.Protein, p.Macros.Fat, p.Macros.Carbs,
		p.UserData.Goal, p.UserData.Duration, p.UserData.WeightChange)
}

// Summary returns a one-line description of a recipe for list rendering.
func (r *Recipe) Summary() string {
	desc := r.Description
	if len(desc) > 60 {
		desc = desc[:57] + "..."
	}
	return strings.TrimSpace(r.Title + " - " + desc)
}
