package profile

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func validDraft() Draft {
	return Draft{
		PrimaryGoal:         GoalLoseWeight,
		WeightKg:            70,
		HeightCm:            175,
		EatingStyle:         EatingVegan,
		CaffeineConsumption: ConsumptionNone,
		SugarConsumption:    ConsumptionOccasionally,
	}
}

func TestDraftAllergiesKeepOrderAndSuppressDuplicates(t *testing.T) {
	d := validDraft()
	if !d.AddAllergy("  peanuts ") {
		t.Fatalf("expected peanuts to be added")
	}
	if d.AddAllergy("peanuts") {
		t.Fatalf("duplicate should be ignored")
	}
	if d.AddAllergy("   ") {
		t.Fatalf("blank should be ignored")
	}
	d.AddAllergy("shellfish")
	d.AddAllergy("gluten")
	d.RemoveAllergy("shellfish")

	want := []string{"peanuts", "gluten"}
	if !reflect.DeepEqual(d.Allergies, want) {
		t.Fatalf("allergies=%v want=%v", d.Allergies, want)
	}
}

func TestRemoveAllergyLeavesCopiesAlone(t *testing.T) {
	d := validDraft()
	d.AddAllergy("peanuts")
	d.AddAllergy("shellfish")
	d.AddAllergy("gluten")
	saved := d

	d.RemoveAllergy("peanuts")
	if want := []string{"peanuts", "shellfish", "gluten"}; !reflect.DeepEqual(saved.Allergies, want) {
		t.Fatalf("copy changed: %v", saved.Allergies)
	}
	if want := []string{"shellfish", "gluten"}; !reflect.DeepEqual(d.Allergies, want) {
		t.Fatalf("allergies=%v", d.Allergies)
	}
}

func TestDraftBuildValid(t *testing.T) {
	d := validDraft()
	d.Allergies = []string{"peanuts", " peanuts", ""}
	p, err := d.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(p.Allergies, []string{"peanuts"}) {
		t.Fatalf("allergies=%v", p.Allergies)
	}
}

func TestDraftBuildReportsEveryInvalidField(t *testing.T) {
	_, err := Draft{WeightKg: -1}.Build()
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %T", err)
	}
	for _, field := range []string{"primary_goal", "weight_kg", "height_cm", "eating_style", "caffeine_consumption", "sugar_consumption"} {
		if _, ok := fe[field]; !ok {
			t.Fatalf("missing error for %s: %v", field, fe)
		}
	}
}

func TestValidateNilProfile(t *testing.T) {
	var p *UserProfile
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for nil profile")
	}
}

func TestProfileJSONMatchesBackendContract(t *testing.T) {
	p, err := validDraft().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["primary_goal"] != "Lose weight" {
		t.Fatalf("primary_goal=%v", m["primary_goal"])
	}
	if _, ok := m["allergies"].([]any); !ok {
		t.Fatalf("allergies must serialize as a list, got %T", m["allergies"])
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	p := UserProfile{Allergies: []string{"soy"}}
	c := p.Clone()
	c.Allergies[0] = "milk"
	if p.Allergies[0] != "soy" {
		t.Fatalf("clone aliased allergies")
	}
}
