package meal

import "math"

type Meal struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Calories         float64  `json:"calories"`
	Protein          float64  `json:"protein"`
	Carbs            float64  `json:"carbs"`
	Fat              float64  `json:"fat"`
	Rationale        string   `json:"rationale"`
	PreparationSteps []string `json:"preparation_steps"`
}

// Plan always carries all four meals.
type Plan struct {
	Breakfast Meal `json:"breakfast"`
	Lunch     Meal `json:"lunch"`
	Snack     Meal `json:"snack"`
	Dinner    Meal `json:"dinner"`
}

// Slot names a meal's position in the day.
type Slot struct {
	Key   string
	Label string
	Time  string
}

// Slots lists the four meal keys in serving order.
var Slots = []Slot{
	{Key: "breakfast", Label: "Breakfast", Time: "7:00 AM"},
	{Key: "lunch", Label: "Lunch", Time: "12:30 PM"},
	{Key: "snack", Label: "Snack", Time: "3:30 PM"},
	{Key: "dinner", Label: "Dinner", Time: "7:00 PM"},
}

// Keys returns the required meal keys in serving order.
func Keys() []string {
	out := make([]string, len(Slots))
	for i, s := range Slots {
		out[i] = s.Key
	}
	return out
}

// Meal returns the meal stored under key.
func (p *Plan) Meal(key string) (*Meal, bool) {
	switch key {
	case "breakfast":
		return &p.Breakfast, true
	case "lunch":
		return &p.Lunch, true
	case "snack":
		return &p.Snack, true
	case "dinner":
		return &p.Dinner, true
	}
	return nil, false
}

// Meals returns the four meals in serving order.
func (p Plan) Meals() []Meal {
	return []Meal{p.Breakfast, p.Lunch, p.Snack, p.Dinner}
}

func (m Meal) Clone() Meal {
	out := m
	out.PreparationSteps = append([]string{}, m.PreparationSteps...)
	return out
}

func (p Plan) Clone() Plan {
	return Plan{
		Breakfast: p.Breakfast.Clone(),
		Lunch:     p.Lunch.Clone(),
		Snack:     p.Snack.Clone(),
		Dinner:    p.Dinner.Clone(),
	}
}

// Macros is a calorie and macro-gram aggregate.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Percentages is each macro's share of total macro grams.
type Percentages struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// SumMeals adds up any number of meals. Non-finite values count as zero.
func SumMeals(meals []Meal) Macros {
	var t Macros
	for _, m := range meals {
		t.Calories += finite(m.Calories)
		t.Protein += finite(m.Protein)
		t.Carbs += finite(m.Carbs)
		t.Fat += finite(m.Fat)
	}
	return t
}

func Totals(p Plan) Macros {
	return SumMeals(p.Meals())
}

// MacroPercent divides grams by the sum of all three macro gram totals, not by
// calories. A zero denominator yields 0.
func MacroPercent(grams float64, totals Macros) float64 {
	denom := finite(totals.Protein) + finite(totals.Carbs) + finite(totals.Fat)
	if denom <= 0 {
		return 0
	}
	return finite(grams) / denom * 100
}

func (m Macros) Percentages() Percentages {
	return Percentages{
		Protein: MacroPercent(m.Protein, m),
		Carbs:   MacroPercent(m.Carbs, m),
		Fat:     MacroPercent(m.Fat, m),
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
