package gateway

import (
	"context"

	"github.com/yungbote/gymcoach/internal/domain/meal"
	"github.com/yungbote/gymcoach/internal/domain/profile"
	"github.com/yungbote/gymcoach/internal/normalization"
)

// GenerateMealPlan requests a four-meal plan for p. It never touches a store.
func (c *Client) GenerateMealPlan(ctx context.Context, p *profile.UserProfile) (meal.Plan, error) {
	body, err := requestProfile(p)
	if err != nil {
		return meal.Plan{}, err
	}
	var plan meal.Plan
	err = c.doJSON(ctx, OpMealPlan, PathMealPlanner, body, func(obj map[string]any) error {
		env, err := unwrap(OpMealPlan, obj, "meal_plan")
		if err != nil {
			return err
		}
		out, err := normalization.MealPlan(env.Payload)
		if err != nil {
			return schemaErr(OpMealPlan, err)
		}
		plan = out
		return nil
	})
	if err != nil {
		return meal.Plan{}, err
	}
	return plan, nil
}

func requestProfile(p *profile.UserProfile) (profile.UserProfile, error) {
	if p == nil {
		return profile.UserProfile{}, &InvalidInputError{Field: "profile", Reason: "Please complete your profile first"}
	}
	body := p.Normalized()
	if err := body.Validate(); err != nil {
		return profile.UserProfile{}, &InvalidInputError{Field: "profile", Reason: err.Error()}
	}
	return body, nil
}
