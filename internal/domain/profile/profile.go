package profile

import (
	"sort"
	"strings"
)

type Goal string

const (
	GoalBuildMuscle  Goal = "Build muscle"
	GoalLoseWeight   Goal = "Lose weight"
	GoalEatHealthier Goal = "Eat healthier"
)

func (g Goal) Valid() bool {
	switch g {
	case GoalBuildMuscle, GoalLoseWeight, GoalEatHealthier:
		return true
	}
	return false
}

type EatingStyle string

const (
	EatingVegan      EatingStyle = "Vegan"
	EatingKeto       EatingStyle = "Keto"
	EatingPaleo      EatingStyle = "Paleo"
	EatingVegetarian EatingStyle = "Vegetarian"
	EatingBalanced   EatingStyle = "Balanced"
	EatingNone       EatingStyle = "None"
)

func (s EatingStyle) Valid() bool {
	switch s {
	case EatingVegan, EatingKeto, EatingPaleo, EatingVegetarian, EatingBalanced, EatingNone:
		return true
	}
	return false
}

// Consumption is shared by caffeine and sugar intake.
type Consumption string

const (
	ConsumptionNone         Consumption = "None"
	ConsumptionOccasionally Consumption = "Occasionally"
	ConsumptionRegularly    Consumption = "Regularly"
)

func (c Consumption) Valid() bool {
	switch c {
	case ConsumptionNone, ConsumptionOccasionally, ConsumptionRegularly:
		return true
	}
	return false
}

// UserProfile is the request body of every generation call. It is replaced
// wholesale, never patched.
type UserProfile struct {
	PrimaryGoal         Goal        `json:"primary_goal" yaml:"primary_goal"`
	WeightKg            float64     `json:"weight_kg" yaml:"weight_kg"`
	HeightCm            float64     `json:"height_cm" yaml:"height_cm"`
	IsMeatEater         bool        `json:"is_meat_eater" yaml:"is_meat_eater"`
	IsLactoseIntolerant bool        `json:"is_lactose_intolerant" yaml:"is_lactose_intolerant"`
	Allergies           []string    `json:"allergies" yaml:"allergies"`
	EatingStyle         EatingStyle `json:"eating_style" yaml:"eating_style"`
	CaffeineConsumption Consumption `json:"caffeine_consumption" yaml:"caffeine_consumption"`
	SugarConsumption    Consumption `json:"sugar_consumption" yaml:"sugar_consumption"`
}

// FieldErrors maps a JSON field name to a user-facing message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "profile is valid"
	}
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

// Validate returns FieldErrors when any field is missing or out of range.
func (p *UserProfile) Validate() error {
	if p == nil {
		return FieldErrors{"profile": "profile is required"}
	}
	errs := FieldErrors{}
	if !p.PrimaryGoal.Valid() {
		errs["primary_goal"] = "please choose your primary goal"
	}
	if !(p.WeightKg > 0) {
		errs["weight_kg"] = "please enter a valid weight"
	}
	if !(p.HeightCm > 0) {
		errs["height_cm"] = "please enter a valid height"
	}
	if !p.EatingStyle.Valid() {
		errs["eating_style"] = "please choose an eating style"
	}
	if !p.CaffeineConsumption.Valid() {
		errs["caffeine_consumption"] = "please choose caffeine consumption"
	}
	if !p.SugarConsumption.Valid() {
		errs["sugar_consumption"] = "please choose sugar consumption"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Clone returns a copy that shares no slices with p.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.Allergies = append([]string{}, p.Allergies...)
	return out
}

// Normalized trims and de-duplicates allergies, keeping first-seen order.
func (p UserProfile) Normalized() UserProfile {
	out := p
	out.Allergies = normalizeAllergies(p.Allergies)
	return out
}

func normalizeAllergies(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, a := range in {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
