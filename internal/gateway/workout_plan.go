package gateway

import (
	"context"

	"github.com/yungbote/gymcoach/internal/domain/profile"
	"github.com/yungbote/gymcoach/internal/domain/workout"
	"github.com/yungbote/gymcoach/internal/normalization"
)

func (c *Client) GenerateWorkoutPlan(ctx context.Context, p *profile.UserProfile) (workout.Plan, error) {
	body, err := requestProfile(p)
	if err != nil {
		return workout.Plan{}, err
	}
	var plan workout.Plan
	err = c.doJSON(ctx, OpWorkoutPlan, PathWorkoutPlanner, body, func(obj map[string]any) error {
		env, err := unwrap(OpWorkoutPlan, obj, "workout_plan")
		if err != nil {
			return err
		}
		// Flat bodies carry the list under workout_plan too.
		payload := env.Payload
		if env.Shape == normalization.ShapeFlat {
			payload = obj["workout_plan"]
		}
		if payload == nil {
			return &SchemaError{Op: OpWorkoutPlan, Path: "workout_plan", Reason: "missing required field"}
		}
		out, err := normalization.WorkoutPlan(payload)
		if err != nil {
			return schemaErr(OpWorkoutPlan, err)
		}
		plan = out
		return nil
	})
	if err != nil {
		return workout.Plan{}, err
	}
	return plan, nil
}
