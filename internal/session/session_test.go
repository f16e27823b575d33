package session

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/gymcoach/internal/domain/chat"
	"github.com/yungbote/gymcoach/internal/domain/foodscan"
	"github.com/yungbote/gymcoach/internal/domain/meal"
	"github.com/yungbote/gymcoach/internal/domain/profile"
	"github.com/yungbote/gymcoach/internal/domain/workout"
	"github.com/yungbote/gymcoach/internal/gateway"
)

type fakeGateway struct {
	mealPlan    meal.Plan
	workoutPlan workout.Plan
	analysis    foodscan.Analysis
	reply       string
	err         error
	calls       int32
}

func (f *fakeGateway) GenerateMealPlan(ctx context.Context, p *profile.UserProfile) (meal.Plan, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.mealPlan, f.err
}

func (f *fakeGateway) GenerateWorkoutPlan(ctx context.Context, p *profile.UserProfile) (workout.Plan, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.workoutPlan, f.err
}

func (f *fakeGateway) ScanFood(ctx context.Context, u gateway.Upload, c gateway.Constraints) (foodscan.Analysis, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.analysis, f.err
}

func (f *fakeGateway) SendMessage(ctx context.Context, text string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.reply, f.err
}

func validDraft() profile.Draft {
	return profile.Draft{
		PrimaryGoal:         profile.GoalBuildMuscle,
		WeightKg:            80,
		HeightCm:            180,
		EatingStyle:         profile.EatingBalanced,
		CaffeineConsumption: profile.ConsumptionNone,
		SugarConsumption:    profile.ConsumptionNone,
	}
}

func TestGenerateRequiresProfile(t *testing.T) {
	gw := &fakeGateway{}
	s := New(gw, nil, Options{})
	if _, err := s.GenerateMealPlan(context.Background()); !IsProfileRequired(err) {
		t.Fatalf("err=%v", err)
	}
	if _, err := s.GenerateWorkoutPlan(context.Background()); !IsProfileRequired(err) {
		t.Fatalf("err=%v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("calls=%d", gw.calls)
	}
}

func TestGenerateMealPlanSuccessAndFailure(t *testing.T) {
	gw := &fakeGateway{mealPlan: meal.Plan{Dinner: meal.Meal{Name: "Stew", Calories: 600}}}
	s := New(gw, nil, Options{})
	if _, err := s.SaveProfile(validDraft()); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	if _, err := s.GenerateMealPlan(context.Background()); err != nil {
		t.Fatalf("GenerateMealPlan: %v", err)
	}
	st := s.MealPlan.Get()
	if !st.HasValue || st.Loading || st.Value.Dinner.Name != "Stew" {
		t.Fatalf("state=%+v", st)
	}

	gw.err = &gateway.RejectedError{Op: gateway.OpMealPlan, Message: "quota"}
	if _, err := s.RetryMealPlan(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	st = s.MealPlan.Get()
	if st.Error != gateway.GenericFailure || st.Loading {
		t.Fatalf("state=%+v", st)
	}
	if st.Value.Dinner.Name != "Stew" {
		t.Fatalf("previous plan should survive a failed retry")
	}
}

func TestGenerateWorkoutPlanFailureStoresNothing(t *testing.T) {
	gw := &fakeGateway{err: &gateway.SchemaError{Op: gateway.OpWorkoutPlan, Path: "workout_plan[0].cool_down"}}
	s := New(gw, nil, Options{})
	if _, err := s.SaveProfile(validDraft()); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if _, err := s.GenerateWorkoutPlan(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := s.WorkoutPlan.Value(); ok {
		t.Fatalf("nothing should be stored")
	}
}

func TestSendChat(t *testing.T) {
	gw := &fakeGateway{reply: "Drink water."}
	s := New(gw, nil, Options{})

	if _, ok := s.SendChat(context.Background(), "   "); ok {
		t.Fatalf("blank input should be ignored")
	}
	if n := len(s.Chat.Messages()); n != 1 {
		t.Fatalf("len=%d", n)
	}

	reply, ok := s.SendChat(context.Background(), "  thirsty?  ")
	if !ok || reply.Message != "Drink water." || reply.IsUser {
		t.Fatalf("reply=%+v", reply)
	}
	msgs := s.Chat.Messages()
	if len(msgs) != 3 || msgs[1].Message != "thirsty?" || !msgs[1].IsUser {
		t.Fatalf("msgs=%+v", msgs)
	}

	gw.err = errors.New("down")
	reply, _ = s.SendChat(context.Background(), "again")
	if reply.Message != chat.Apology {
		t.Fatalf("reply=%q", reply.Message)
	}
	if s.Chat.Loading() {
		t.Fatalf("loading left on")
	}
}

func TestScanFood(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("png: %v", err)
	}
	gw := &fakeGateway{analysis: foodscan.Analysis{FoodItems: []string{"apple"}, Nutrition: foodscan.Nutrition{Calories: 95}}}
	s := New(gw, nil, Options{PreviewSize: 64})

	res, err := s.ScanFood(context.Background(), gateway.Upload{Filename: "apple.png", Data: buf.Bytes()})
	if err != nil {
		t.Fatalf("ScanFood: %v", err)
	}
	if !strings.HasPrefix(res.Image, "data:image/png;base64,") || res.Analysis.FoodItems[0] != "apple" {
		t.Fatalf("result=%+v", res.Analysis)
	}
	if v, ok := s.FoodScan.Value(); !ok || v.Filename != "apple.png" {
		t.Fatalf("stored=%+v", v)
	}

	calls := gw.calls
	_, err = s.ScanFood(context.Background(), gateway.Upload{Filename: "a.txt", ContentType: "text/plain", Data: []byte("x")})
	var ie *gateway.InvalidInputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if gw.calls != calls {
		t.Fatalf("gateway called for invalid upload")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(&fakeGateway{}, nil, Options{})
	s := r.Create()
	got, err := r.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get: %v", err)
	}
	if _, err := r.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
	r.Create()
	if n := r.Prune(time.Now().Add(time.Minute)); n != 2 || r.Len() != 0 {
		t.Fatalf("pruned=%d len=%d", n, r.Len())
	}
	if r.Delete(s.ID) {
		t.Fatalf("delete after prune should report false")
	}
}

func TestRegistryPruneKeepsRecentlyUsed(t *testing.T) {
	r := NewRegistry(&fakeGateway{}, nil, Options{})
	active := r.Create()
	idle := r.Create()
	old := time.Now().Add(-2 * time.Hour)
	active.Touch(old)
	idle.Touch(old)

	if _, err := r.Get(active.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n := r.Prune(time.Now().Add(-time.Hour)); n != 1 {
		t.Fatalf("pruned=%d", n)
	}
	if _, err := r.Get(active.ID); err != nil {
		t.Fatalf("recently used session pruned: %v", err)
	}
	if _, err := r.Get(idle.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("idle session kept: %v", err)
	}
}
