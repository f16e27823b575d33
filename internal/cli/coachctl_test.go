package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/yungbote/gymcoach/internal/domain/foodscan"
	"github.com/yungbote/gymcoach/internal/domain/meal"
	"github.com/yungbote/gymcoach/internal/domain/profile"
	"github.com/yungbote/gymcoach/internal/domain/workout"
	"github.com/yungbote/gymcoach/internal/gateway"
)

type fakeGateway struct {
	mealErr    error
	workoutErr error
	calls      int32
	lastText   string
	lastUpload gateway.Upload
}

func (f *fakeGateway) GenerateMealPlan(ctx context.Context, p *profile.UserProfile) (meal.Plan, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.mealErr != nil {
		return meal.Plan{}, f.mealErr
	}
	return meal.Plan{
		Breakfast: meal.Meal{Name: "Oats", Calories: 400, Protein: 20, Carbs: 60, Fat: 10},
		Lunch:     meal.Meal{Name: "Bowl", Calories: 600},
		Snack:     meal.Meal{Name: "Nuts", Calories: 200},
		Dinner:    meal.Meal{Name: "Fish", Calories: 700},
	}, nil
}

func (f *fakeGateway) GenerateWorkoutPlan(ctx context.Context, p *profile.UserProfile) (workout.Plan, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.workoutErr != nil {
		return workout.Plan{}, f.workoutErr
	}
	return workout.Plan{Days: []workout.Day{{Day: "Monday", Focus: "Legs"}}}, nil
}

func (f *fakeGateway) ScanFood(ctx context.Context, u gateway.Upload, c gateway.Constraints) (foodscan.Analysis, error) {
	atomic.AddInt32(&f.calls, 1)
	f.lastUpload = u
	return foodscan.Analysis{FoodItems: []string{"apple"}, Nutrition: foodscan.Nutrition{Calories: 95}}, nil
}

func (f *fakeGateway) SendMessage(ctx context.Context, text string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	f.lastText = text
	return "Stay hydrated.", nil
}

func (f *fakeGateway) Constraints() gateway.Constraints { return gateway.DefaultConstraints() }

const profileYAML = `primary_goal: Build muscle
weight_kg: 82
height_cm: 181
is_meat_eater: true
allergies: [peanuts, " peanuts "]
eating_style: Balanced
caffeine_consumption: Regularly
sugar_consumption: Occasionally
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func run(gw Gateway, args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	cmd := &Command{Gateway: gw, Stdout: &out, Stderr: &errOut}
	code = cmd.Run(context.Background(), args)
	return code, out.String(), errOut.String()
}

func TestLoadProfileYAMLAndJSON(t *testing.T) {
	p, err := LoadProfile(writeFile(t, "p.yaml", profileYAML))
	if err != nil {
		t.Fatalf("LoadProfile yaml: %v", err)
	}
	if p.PrimaryGoal != profile.GoalBuildMuscle || len(p.Allergies) != 1 {
		t.Fatalf("profile=%+v", p)
	}

	js := `{"primary_goal":"Lose weight","weight_kg":60,"height_cm":165,"eating_style":"Vegan","caffeine_consumption":"None","sugar_consumption":"None","allergies":[]}`
	if _, err := LoadProfile(writeFile(t, "p.json", js)); err != nil {
		t.Fatalf("LoadProfile json: %v", err)
	}

	if _, err := LoadProfile(writeFile(t, "bad.yaml", "weight_kg: 70\n")); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestMealCommandRendersTotals(t *testing.T) {
	gw := &fakeGateway{}
	code, out, errOut := run(gw, "-profile", writeFile(t, "p.yaml", profileYAML), "meal")
	if code != 0 {
		t.Fatalf("code=%d stderr=%s", code, errOut)
	}
	if !strings.Contains(out, "Oats") || !strings.Contains(out, "1900") {
		t.Fatalf("out=%s", out)
	}
}

func TestPlanCommandRunsBoth(t *testing.T) {
	gw := &fakeGateway{}
	code, out, _ := run(gw, "-profile", writeFile(t, "p.yaml", profileYAML), "plan")
	if code != 0 || gw.calls != 2 {
		t.Fatalf("code=%d calls=%d", code, gw.calls)
	}
	if !strings.Contains(out, "Oats") || !strings.Contains(out, "Monday") {
		t.Fatalf("out=%s", out)
	}
}

func TestPlanCommandReportsFailure(t *testing.T) {
	gw := &fakeGateway{workoutErr: &gateway.NetworkError{Op: gateway.OpWorkoutPlan, StatusCode: 503, Status: "Service Unavailable"}}
	code, out, errOut := run(gw, "-profile", writeFile(t, "p.yaml", profileYAML), "plan")
	if code != 1 || out != "" {
		t.Fatalf("code=%d out=%q", code, out)
	}
	if !strings.Contains(errOut, gateway.GenericFailure) || !strings.Contains(errOut, "network") {
		t.Fatalf("stderr=%s", errOut)
	}
}

func TestScanAndChat(t *testing.T) {
	gw := &fakeGateway{}
	img := writeFile(t, "lunch.jpg", "\xff\xd8\xff\xe0fake")
	if code, out, errOut := run(gw, "scan", img); code != 0 || !strings.Contains(out, "apple") {
		t.Fatalf("scan code=%d out=%s err=%s", code, out, errOut)
	}
	if gw.lastUpload.Filename != "lunch.jpg" {
		t.Fatalf("filename=%q", gw.lastUpload.Filename)
	}

	if code, out, _ := run(gw, "chat", "how", "many", "sets?"); code != 0 || !strings.Contains(out, "hydrated") {
		t.Fatalf("chat code=%d out=%s", code, out)
	}
	if gw.lastText != "how many sets?" {
		t.Fatalf("text=%q", gw.lastText)
	}
}

func TestUsageErrors(t *testing.T) {
	gw := &fakeGateway{}
	if code, _, _ := run(gw); code != 2 {
		t.Fatalf("no command code=%d", code)
	}
	if code, _, errOut := run(gw, "dance"); code != 2 || !strings.Contains(errOut, "unknown command") {
		t.Fatalf("unknown command code=%d err=%s", code, errOut)
	}
	if code, _, _ := run(gw, "scan"); code != 2 {
		t.Fatalf("scan without file code=%d", code)
	}
	if gw.calls != 0 {
		t.Fatalf("calls=%d", gw.calls)
	}
}

func TestDescribe(t *testing.T) {
	if got := describe(&gateway.InvalidInputError{Field: "message", Reason: "message is empty"}); got != "message is empty" {
		t.Fatalf("got=%q", got)
	}
	if got := describe(errors.New("boom")); !strings.HasPrefix(got, gateway.GenericFailure) {
		t.Fatalf("got=%q", got)
	}
}
