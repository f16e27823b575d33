package normalization

import (
	"fmt"

	"github.com/yungbote/gymcoach/internal/domain/workout"
)

var dayRequiredFields = []string{"day", "focus", "warm_up", "main_routine", "cool_down"}

// WorkoutPlan accepts either the day list itself or an object carrying it under
// "workout_plan" (nested at most once). Every day is checked before any is
// kept: one malformed day rejects the plan.
func WorkoutPlan(payload any) (workout.Plan, error) {
	list, err := workoutDays(payload)
	if err != nil {
		return workout.Plan{}, err
	}
	if len(list) == 0 {
		return workout.Plan{}, &FieldError{Path: "workout_plan", Reason: "expected at least one day"}
	}
	days := make([]workout.Day, 0, len(list))
	for i, raw := range list {
		d, err := normalizeDay(fmt.Sprintf("workout_plan[%d]", i), raw)
		if err != nil {
			return workout.Plan{}, err
		}
		days = append(days, d)
	}
	return workout.Plan{Days: days}, nil
}

func workoutDays(payload any) ([]any, error) {
	v := payload
	for depth := 0; depth < 2; depth++ {
		obj, ok := v.(map[string]any)
		if !ok {
			break
		}
		inner, present := obj["workout_plan"]
		if !present || inner == nil {
			return nil, missing("workout_plan")
		}
		v = inner
	}
	list, ok := v.([]any)
	if !ok {
		return nil, notList("workout_plan")
	}
	return list, nil
}

func normalizeDay(path string, raw any) (workout.Day, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return workout.Day{}, notObject(path)
	}
	for _, f := range dayRequiredFields {
		if v, present := obj[f]; !present || v == nil {
			return workout.Day{}, missing(path + "." + f)
		}
	}
	warm, err := normalizeSection(path+".warm_up", obj["warm_up"])
	if err != nil {
		return workout.Day{}, err
	}
	main, err := normalizeSection(path+".main_routine", obj["main_routine"])
	if err != nil {
		return workout.Day{}, err
	}
	cool, err := normalizeSection(path+".cool_down", obj["cool_down"])
	if err != nil {
		return workout.Day{}, err
	}
	return workout.Day{
		Day:         OptionalText(obj["day"]),
		Focus:       OptionalText(obj["focus"]),
		WarmUp:      warm,
		MainRoutine: main,
		CoolDown:    cool,
	}, nil
}

func normalizeSection(path string, raw any) (workout.Section, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return workout.Section{}, notObject(path)
	}
	exercises := []workout.Exercise{}
	if rawList, present := obj["exercises"]; present && rawList != nil {
		list, ok := rawList.([]any)
		if !ok {
			return workout.Section{}, notList(path + ".exercises")
		}
		for i, item := range list {
			ex, ok := item.(map[string]any)
			if !ok {
				return workout.Section{}, notObject(fmt.Sprintf("%s.exercises[%d]", path, i))
			}
			exercises = append(exercises, workout.Exercise{
				Name:         OptionalText(ex["name"]),
				Sets:         Int(ex["sets"]),
				Reps:         OptionalText(ex["reps"]),
				Rest:         OptionalText(ex["rest"]),
				Instructions: OptionalText(ex["instructions"]),
			})
		}
	}
	return workout.Section{
		Motto:     OptionalText(obj["motto"]),
		Exercises: exercises,
		Duration:  OptionalText(obj["duration"]),
		VideoURL:  OptionalText(obj["video_url"]),
	}, nil
}
