package normalization

import "github.com/yungbote/gymcoach/internal/domain/foodscan"

// FoodAnalysis trusts the backend's layout and only coerces types.
func FoodAnalysis(payload any) (foodscan.Analysis, error) {
	if payload == nil {
		return foodscan.Analysis{}, missing("analysis")
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return foodscan.Analysis{}, notObject("analysis")
	}
	nutrition, _ := obj["nutrition"].(map[string]any)
	return foodscan.Analysis{
		FoodItems: StringList(obj["food_items"]),
		Nutrition: foodscan.Nutrition{
			Calories: NonNegative(nutrition["calories"]),
			Protein:  NonNegative(nutrition["protein"]),
			Carbs:    NonNegative(nutrition["carbs"]),
			Fat:      NonNegative(nutrition["fat"]),
		},
		HealthBenefits: StringList(obj["health_benefits"]),
		Concerns:       StringList(obj["concerns"]),
	}, nil
}
