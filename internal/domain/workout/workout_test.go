package workout

import "testing"

func TestPlanCloneIsDeep(t *testing.T) {
	p := Plan{Days: []Day{{
		Day:         "Monday",
		Focus:       "Upper body",
		MainRoutine: Section{Exercises: []Exercise{{Name: "Push-up", Sets: 3, Reps: "8-12"}}},
	}}}
	c := p.Clone()
	c.Days[0].MainRoutine.Exercises[0].Name = "Dip"
	c.Days[0].Focus = "Legs"
	if p.Days[0].MainRoutine.Exercises[0].Name != "Push-up" {
		t.Fatalf("clone aliased exercises")
	}
	if p.Days[0].Focus != "Upper body" {
		t.Fatalf("clone aliased day")
	}
}

func TestSectionsOrderAndCount(t *testing.T) {
	d := Day{
		WarmUp:      Section{Exercises: []Exercise{{Name: "Jumping jacks"}}},
		MainRoutine: Section{Exercises: []Exercise{{Name: "Squat"}, {Name: "Lunge"}}},
	}
	secs := d.Sections()
	if len(secs) != 3 || secs[0].Key != "warm_up" || secs[2].Key != "cool_down" {
		t.Fatalf("unexpected sections: %+v", secs)
	}
	if got := (Plan{Days: []Day{d, d}}).ExerciseCount(); got != 6 {
		t.Fatalf("count=%d", got)
	}
}
