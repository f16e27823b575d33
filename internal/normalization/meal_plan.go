package normalization

import "github.com/yungbote/gymcoach/internal/domain/meal"

// mealFields lists every key a meal must carry, in report order.
var mealFields = []string{"name", "description", "calories", "protein", "carbs", "fat", "rationale", "preparation_steps"}

// MealPlan builds the canonical four-meal plan. A meal key that is missing or
// not an object, or any meal field that is missing or null, fails the whole
// plan. Present nutrition numbers and preparation steps are coerced.
func MealPlan(payload any) (meal.Plan, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return meal.Plan{}, notObject("meal_plan")
	}
	var plan meal.Plan
	for _, key := range meal.Keys() {
		raw, present := obj[key]
		if !present || raw == nil {
			return meal.Plan{}, missing(key)
		}
		m, err := normalizeMeal(key, raw)
		if err != nil {
			return meal.Plan{}, err
		}
		dst, _ := plan.Meal(key)
		*dst = m
	}
	return plan, nil
}

func normalizeMeal(key string, raw any) (meal.Meal, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return meal.Meal{}, notObject(key)
	}
	for _, f := range mealFields {
		if v, present := obj[f]; !present || v == nil {
			return meal.Meal{}, missing(key + "." + f)
		}
	}
	name, _ := Text(obj["name"])
	description, _ := Text(obj["description"])
	rationale, _ := Text(obj["rationale"])
	return meal.Meal{
		Name:             name,
		Description:      description,
		Calories:         NonNegative(obj["calories"]),
		Protein:          NonNegative(obj["protein"]),
		Carbs:            NonNegative(obj["carbs"]),
		Fat:              NonNegative(obj["fat"]),
		Rationale:        rationale,
		PreparationSteps: StringList(obj["preparation_steps"]),
	}, nil
}
