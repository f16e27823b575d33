package profile

import "strings"

// Draft is the editable form state. Nothing downstream reads a Draft; Build
// produces the immutable UserProfile.
type Draft struct {
	PrimaryGoal         Goal        `json:"primary_goal"`
	WeightKg            float64     `json:"weight_kg"`
	HeightCm            float64     `json:"height_cm"`
	IsMeatEater         bool        `json:"is_meat_eater"`
	IsLactoseIntolerant bool        `json:"is_lactose_intolerant"`
	Allergies           []string    `json:"allergies"`
	EatingStyle         EatingStyle `json:"eating_style"`
	CaffeineConsumption Consumption `json:"caffeine_consumption"`
	SugarConsumption    Consumption `json:"sugar_consumption"`
}

// DraftFrom seeds a form from an existing profile.
func DraftFrom(p UserProfile) Draft {
	return Draft{
		PrimaryGoal:         p.PrimaryGoal,
		WeightKg:            p.WeightKg,
		HeightCm:            p.HeightCm,
		IsMeatEater:         p.IsMeatEater,
		IsLactoseIntolerant: p.IsLactoseIntolerant,
		Allergies:           append([]string{}, p.Allergies...),
		EatingStyle:         p.EatingStyle,
		CaffeineConsumption: p.CaffeineConsumption,
		SugarConsumption:    p.SugarConsumption,
	}
}

// AddAllergy appends a trimmed allergy unless it is empty or already listed.
// It reports whether the list changed.
func (d *Draft) AddAllergy(a string) bool {
	a = strings.TrimSpace(a)
	if a == "" {
		return false
	}
	for _, existing := range d.Allergies {
		if existing == a {
			return false
		}
	}
	d.Allergies = append(d.Allergies, a)
	return true
}

func (d *Draft) RemoveAllergy(a string) {
	out := make([]string, 0, len(d.Allergies))
	for _, existing := range d.Allergies {
		if existing != a {
			out = append(out, existing)
		}
	}
	d.Allergies = out
}

func (d Draft) Build() (UserProfile, error) {
	p := UserProfile{
		PrimaryGoal:         d.PrimaryGoal,
		WeightKg:            d.WeightKg,
		HeightCm:            d.HeightCm,
		IsMeatEater:         d.IsMeatEater,
		IsLactoseIntolerant: d.IsLactoseIntolerant,
		Allergies:           normalizeAllergies(d.Allergies),
		EatingStyle:         d.EatingStyle,
		CaffeineConsumption: d.CaffeineConsumption,
		SugarConsumption:    d.SugarConsumption,
	}
	if err := p.Validate(); err != nil {
		return UserProfile{}, err
	}
	return p, nil
}
