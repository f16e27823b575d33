package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/gymcoach/internal/domain/chat"
	"github.com/yungbote/gymcoach/internal/domain/foodscan"
	"github.com/yungbote/gymcoach/internal/domain/meal"
	"github.com/yungbote/gymcoach/internal/domain/profile"
	"github.com/yungbote/gymcoach/internal/domain/workout"
	"github.com/yungbote/gymcoach/internal/gateway"
	"github.com/yungbote/gymcoach/internal/observability"
	"github.com/yungbote/gymcoach/internal/platform/logger"
	"github.com/yungbote/gymcoach/internal/preview"
	"github.com/yungbote/gymcoach/internal/store"
)

// Gateway is the backend surface a session drives. *gateway.Client
// implements it.
type Gateway interface {
	GenerateMealPlan(ctx context.Context, p *profile.UserProfile) (meal.Plan, error)
	GenerateWorkoutPlan(ctx context.Context, p *profile.UserProfile) (workout.Plan, error)
	ScanFood(ctx context.Context, u gateway.Upload, c gateway.Constraints) (foodscan.Analysis, error)
	SendMessage(ctx context.Context, text string) (string, error)
}

// ErrProfileRequired is returned by generation calls made before a profile
// was saved.
var ErrProfileRequired = &gateway.InvalidInputError{Field: "profile", Reason: "Please complete your profile first"}

// Session owns one user's stores. Nothing is shared between sessions.
type Session struct {
	ID        string
	CreatedAt time.Time

	Profile     *store.ProfileStore
	MealPlan    *store.Slot[meal.Plan]
	WorkoutPlan *store.Slot[workout.Plan]
	FoodScan    *store.Slot[foodscan.Result]
	Chat        *store.ChatLog

	gw          Gateway
	constraints gateway.Constraints
	previewSize int
	log         *logger.Logger

	lastSeen atomic.Int64
}

type Options struct {
	Constraints gateway.Constraints
	PreviewSize int
}

func New(gw Gateway, log *logger.Logger, opts Options) *Session {
	if log == nil {
		log = logger.Nop()
	}
	id := uuid.NewString()
	now := time.Now()
	s := &Session{
		ID:          id,
		CreatedAt:   now,
		Profile:     store.NewProfileStore(),
		MealPlan:    store.NewSlot(meal.Plan.Clone),
		WorkoutPlan: store.NewSlot(workout.Plan.Clone),
		FoodScan:    store.NewSlot(foodscan.Result.Clone),
		Chat:        store.NewChatLog(),
		gw:          gw,
		constraints: opts.Constraints,
		previewSize: opts.PreviewSize,
		log:         log.With("session_id", id),
	}
	s.Touch(now)
	return s
}

// Touch records t as the session's last use.
func (s *Session) Touch(t time.Time) {
	s.lastSeen.Store(t.UnixNano())
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// SaveProfile validates the draft and replaces the profile wholesale.
func (s *Session) SaveProfile(d profile.Draft) (profile.UserProfile, error) {
	p, err := d.Build()
	if err != nil {
		return profile.UserProfile{}, err
	}
	if err := s.Profile.Set(p); err != nil {
		return profile.UserProfile{}, err
	}
	s.log.Info("profile saved", "goal", p.PrimaryGoal, "eating_style", p.EatingStyle)
	return p, nil
}

func (s *Session) GenerateMealPlan(ctx context.Context) (meal.Plan, error) {
	p := s.Profile.Get()
	if p == nil {
		return meal.Plan{}, ErrProfileRequired
	}
	s.MealPlan.Begin()
	plan, err := s.gw.GenerateMealPlan(ctx, p)
	if err != nil {
		s.MealPlan.Fail(gateway.UserMessage(err))
		s.log.Warn("meal plan generation failed", "kind", gateway.Kind(err), "error", err)
		return meal.Plan{}, err
	}
	s.MealPlan.Succeed(plan)
	return plan, nil
}

// RetryMealPlan re-issues the same call.
func (s *Session) RetryMealPlan(ctx context.Context) (meal.Plan, error) {
	return s.GenerateMealPlan(ctx)
}

func (s *Session) GenerateWorkoutPlan(ctx context.Context) (workout.Plan, error) {
	p := s.Profile.Get()
	if p == nil {
		return workout.Plan{}, ErrProfileRequired
	}
	s.WorkoutPlan.Begin()
	plan, err := s.gw.GenerateWorkoutPlan(ctx, p)
	if err != nil {
		s.WorkoutPlan.Fail(gateway.UserMessage(err))
		s.log.Warn("workout plan generation failed", "kind", gateway.Kind(err), "error", err)
		return workout.Plan{}, err
	}
	s.WorkoutPlan.Succeed(plan)
	return plan, nil
}

func (s *Session) RetryWorkoutPlan(ctx context.Context) (workout.Plan, error) {
	return s.GenerateWorkoutPlan(ctx)
}

// ScanFood checks the upload locally, sends it, and stores the analysis with
// a preview of the image. Input errors do not touch the store.
func (s *Session) ScanFood(ctx context.Context, u gateway.Upload) (foodscan.Result, error) {
	if _, err := s.constraints.Check(u); err != nil {
		return foodscan.Result{}, err
	}
	s.FoodScan.Begin()
	analysis, err := s.gw.ScanFood(ctx, u, s.constraints)
	if err != nil {
		s.FoodScan.Fail(gateway.UserMessage(err))
		s.log.Warn("food scan failed", "kind", gateway.Kind(err), "error", err)
		return foodscan.Result{}, err
	}

	res := foodscan.Result{Filename: u.Filename, Analysis: analysis}
	caption := fmt.Sprintf("%.0f kcal", analysis.Nutrition.Calories)
	if img, perr := preview.Thumbnail(u.Data, preview.Options{Size: s.previewSize, Caption: caption}); perr == nil {
		res.Image = img
	} else {
		// Formats the decoders do not know still get an analysis; the view
		// falls back to the raw bytes.
		s.log.Debug("preview failed", "error", perr)
		res.Image = preview.DataURL(u.MediaType(), u.Data)
	}
	s.FoodScan.Succeed(res)
	return res, nil
}

// SendChat appends the trimmed user message and the coach's reply. Any
// failure becomes an apology message rather than an error state. Blank input
// is ignored and reports ok=false.
func (s *Session) SendChat(ctx context.Context, text string) (reply chat.Message, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return chat.Message{}, false
	}
	s.Chat.Append(text, true)
	observability.Current().IncChatMessage(true)
	s.Chat.SetLoading(true)
	defer s.Chat.SetLoading(false)

	answer, err := s.gw.SendMessage(ctx, text)
	observability.Current().IncChatMessage(false)
	if err != nil {
		s.log.Warn("chat failed", "kind", gateway.Kind(err), "error", err)
		return s.Chat.Append(chat.Apology, false), true
	}
	return s.Chat.Append(answer, false), true
}

// Reset clears every store.
func (s *Session) Reset() {
	s.Profile.Clear()
	s.MealPlan.Clear()
	s.WorkoutPlan.Clear()
	s.FoodScan.Clear()
	s.Chat.Clear()
}

// IsProfileRequired reports whether err is ErrProfileRequired.
func IsProfileRequired(err error) bool {
	return errors.Is(err, ErrProfileRequired)
}
