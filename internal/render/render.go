package render

import (
	"fmt"
	"strings"

	"github.com/yungbote/gymcoach/internal/domain/foodscan"
	"github.com/yungbote/gymcoach/internal/domain/meal"
	"github.com/yungbote/gymcoach/internal/domain/workout"
)

// TextFormatter renders plans as plain text for terminals and chat apps.
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// MealPlan renders the four meals in serving order followed by daily totals.
func (f *TextFormatter) MealPlan(p meal.Plan) string {
	var sb strings.Builder
	sb.WriteString("MEAL PLAN\n")
	for _, slot := range meal.Slots {
		m, _ := p.Meal(slot.Key)
		sb.WriteString("\n")
		sb.WriteString(f.meal(slot, *m))
	}
	sb.WriteString("\n")
	sb.WriteString(f.totals(meal.Totals(p)))
	return sb.String()
}

func (f *TextFormatter) meal(slot meal.Slot, m meal.Meal) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s): %s\n", slot.Label, slot.Time, m.Name)
	if m.Description != "" {
		fmt.Fprintf(&sb, "  %s\n", m.Description)
	}
	fmt.Fprintf(&sb, "  %s kcal | P %sg | C %sg | F %sg\n",
		number(m.Calories), number(m.Protein), number(m.Carbs), number(m.Fat))
	if m.Rationale != "" {
		fmt.Fprintf(&sb, "  Why: %s\n", m.Rationale)
	}
	for i, step := range m.PreparationSteps {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, step)
	}
	return sb.String()
}

func (f *TextFormatter) totals(t meal.Macros) string {
	pct := t.Percentages()
	return fmt.Sprintf("Daily total: %s kcal\nProtein %sg (%s%%) | Carbs %sg (%s%%) | Fat %sg (%s%%)\n",
		number(t.Calories),
		number(t.Protein), number(pct.Protein),
		number(t.Carbs), number(pct.Carbs),
		number(t.Fat), number(pct.Fat))
}

// WorkoutPlan renders each day with its three sections.
func (f *TextFormatter) WorkoutPlan(p workout.Plan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "WORKOUT PLAN (%d days, %d exercises)\n", len(p.Days), p.ExerciseCount())
	for _, d := range p.Days {
		sb.WriteString("\n")
		sb.WriteString(f.day(d))
	}
	return sb.String()
}

func (f *TextFormatter) day(d workout.Day) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", d.Day, d.Focus)
	for _, ns := range d.Sections() {
		sec := ns.Section
		fmt.Fprintf(&sb, "  %s", ns.Label)
		if sec.Duration != "" {
			fmt.Fprintf(&sb, " (%s)", sec.Duration)
		}
		sb.WriteString("\n")
		if sec.Motto != "" {
			fmt.Fprintf(&sb, "    \"%s\"\n", sec.Motto)
		}
		for _, ex := range sec.Exercises {
			fmt.Fprintf(&sb, "    - %s", ex.Name)
			if ex.Sets > 0 || ex.Reps != "" {
				fmt.Fprintf(&sb, ": %d x %s", ex.Sets, ex.Reps)
			}
			if ex.Rest != "" {
				fmt.Fprintf(&sb, ", rest %s", ex.Rest)
			}
			sb.WriteString("\n")
			if ex.Instructions != "" {
				fmt.Fprintf(&sb, "      %s\n", ex.Instructions)
			}
		}
		if sec.VideoURL != "" {
			fmt.Fprintf(&sb, "    Video: %s\n", sec.VideoURL)
		}
	}
	return sb.String()
}

// FoodAnalysis renders a scan result.
func (f *TextFormatter) FoodAnalysis(a foodscan.Analysis) string {
	var sb strings.Builder
	sb.WriteString("FOOD ANALYSIS\n")
	if len(a.FoodItems) > 0 {
		fmt.Fprintf(&sb, "Detected: %s\n", strings.Join(a.FoodItems, ", "))
	}
	sb.WriteString(f.totals(a.Nutrition.Macros()))
	list(&sb, "Health benefits", a.HealthBenefits)
	list(&sb, "Concerns", a.Concerns)
	return sb.String()
}

func list(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(sb, "  - %s\n", it)
	}
}

// number prints whole values without decimals and others with one.
func number(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
