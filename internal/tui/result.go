package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/nutrikit/nutriplan/internal/planner"
)

// macroBarWidth is the width of the macro breakdown bars on the result screen.
const macroBarWidth = 30

// viewResult renders the plan returned by the backend.
func (m AppModel) viewResult() string {
	if m.Result == nil {
		return m.Form.View()
	}

	var b strings.Builder
	result := m.Result

	b.WriteString(RenderTitle("Your nutrition plan"))
	b.WriteString("\n")

	b.WriteString(SuccessBoxStyle.Render(fmt.Sprintf("Daily target: %d calories", result.DailyCalories)))
	b.WriteString("\n")
	b.WriteString(InactiveDotStyle.Render(fmt.Sprintf("BMR %d · TDEE %d calories/day", result.BMR, result.TDEE)))
	b.WriteString("\n\n")

	b.WriteString(SectionTitleStyle.Render("Macros"))
	b.WriteString("\n")
	b.WriteString(renderMacros(result.Macros))
	b.WriteString("\n")

	b.WriteString(SectionTitleStyle.Render("Meal plan"))
	b.WriteString("\n")
	b.WriteString(renderMealPlan(result.MealPlan))
	b.WriteString("\n")

	if len(result.Recipes) > 0 {
		b.WriteString(SectionTitleStyle.Render("Recipes"))
		b.WriteString("\n")
		b.WriteString(renderRecipes(result.Recipes))
		b.WriteString("\n")
	}

	b.WriteString(InactiveDotStyle.Render(fmt.Sprintf(
		"Goal: %s over %d days (%+.1f kg)",
		result.UserData.Goal, result.UserData.Duration, result.UserData.WeightChange)))

	return RenderApplicationContainer(
		lipgloss.NewStyle().Padding(1, 2).Render(b.String()),
		"e: edit form • n: new plan • q: quit",
		m.Width,
		m.Height,
	)
}

// renderMacros renders the macronutrient breakdown with one bar per macro,
// scaled by each macro's share of total grams.
func renderMacros(macros planner.Macros) string {
	total := macros.Protein + macros.Fat + macros.Carbs
	if total <= 0 {
		return InactiveDotStyle.Render("  (no macro breakdown)")
	}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = macroBarWidth

	row := func(name string, grams int) string {
		return fmt.Sprintf("  %-8s %3dg  %s",
			name, grams, bar.ViewAs(float64(grams)/float64(total)))
	}

	return strings.Join([]string{
		row("Protein", macros.Protein),
		row("Fat", macros.Fat),
		row("Carbs", macros.Carbs),
	}, "\n") + "\n"
}

// renderMealPlan renders the meal slots in day order.
func renderMealPlan(plan planner.MealPlan) string {
	row := func(name string, meal planner.Meal) string {
		line := fmt.Sprintf("  %-10s %4d cal", name, meal.Calories)
		if meal.Suggestion != "" {
			line += "  " + InactiveDotStyle.Render(meal.Suggestion)
		}
		return line
	}

	return strings.Join([]string{
		row("Breakfast", plan.Breakfast),
		row("Lunch", plan.Lunch),
		row("Dinner", plan.Dinner),
		row("Snacks", plan.Snacks),
	}, "\n") + "\n"
}

// renderRecipes renders the recommended recipe list.
func renderRecipes(recipes []planner.Recipe) string {
	var b strings.Builder
	for i := range recipes {
		r := &recipes[i]
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, r.Summary()))
		b.WriteString(InactiveDotStyle.Render(fmt.Sprintf(
			"     prep %s · cook %s · serves %s", r.PrepTime, r.CookTime, r.Servings)))
		b.WriteString("\n")
	}
	return b.String()
}

// viewFailure renders the submission failure screen with a short message and
// a troubleshooting hint.
func (m AppModel) viewFailure() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Plan request failed"))
	b.WriteString("\n")

	b.WriteString(ErrorBoxStyle.Render("✗ " + planner.GetShortErrorMessage(m.Err)))
	b.WriteString("\n\n")

	if hint := planner.GetTroubleshootingHint(m.Err); hint != "" {
		b.WriteString(WarningBoxStyle.Render(hint))
		b.WriteString("\n\n")
	}

	b.WriteString(InactiveDotStyle.Render("Your entered values are kept; nothing needs to be re-typed."))

	return RenderApplicationContainer(
		lipgloss.NewStyle().Padding(1, 2).Render(b.String()),
		"r: retry • e: edit form • q: quit",
		m.Width,
		m.Height,
	)
}
