package foodscan

import "github.com/yungbote/gymcoach/internal/domain/meal"

type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type Analysis struct {
	FoodItems      []string  `json:"food_items"`
	Nutrition      Nutrition `json:"nutrition"`
	HealthBenefits []string  `json:"health_benefits"`
	Concerns       []string  `json:"concerns"`
}

// Result pairs an analysis with the preview of the scanned image.
type Result struct {
	Image    string   `json:"image"`
	Filename string   `json:"filename,omitempty"`
	Analysis Analysis `json:"analysis"`
}

func (n Nutrition) Macros() meal.Macros {
	return meal.Macros{Calories: n.Calories, Protein: n.Protein, Carbs: n.Carbs, Fat: n.Fat}
}

func (a Analysis) Percentages() meal.Percentages {
	return a.Nutrition.Macros().Percentages()
}

func (a Analysis) Clone() Analysis {
	out := a
	out.FoodItems = append([]string{}, a.FoodItems...)
	out.HealthBenefits = append([]string{}, a.HealthBenefits...)
	out.Concerns = append([]string{}, a.Concerns...)
	return out
}

func (r Result) Clone() Result {
	out := r
	out.Analysis = r.Analysis.Clone()
	return out
}
