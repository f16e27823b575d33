package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yungbote/gymcoach/internal/domain/foodscan"
	"github.com/yungbote/gymcoach/internal/domain/meal"
	"github.com/yungbote/gymcoach/internal/domain/profile"
	"github.com/yungbote/gymcoach/internal/domain/workout"
	"github.com/yungbote/gymcoach/internal/gateway"
	"github.com/yungbote/gymcoach/internal/session"
)

type fakeAPI struct {
	mu      sync.Mutex
	sent    []string
	fileURL string
	updates chan tgbotapi.Update
	stopped bool
}

func (f *fakeAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m.Text)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) GetFileDirectURL(fileID string) (string, error) {
	return f.fileURL + "/" + fileID, nil
}

func (f *fakeAPI) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

type fakeGateway struct {
	scanned gateway.Upload
	text    string
}

func (g *fakeGateway) GenerateMealPlan(ctx context.Context, p *profile.UserProfile) (meal.Plan, error) {
	return meal.Plan{Breakfast: meal.Meal{Name: "Oats", Calories: 350}}, nil
}

func (g *fakeGateway) GenerateWorkoutPlan(ctx context.Context, p *profile.UserProfile) (workout.Plan, error) {
	return workout.Plan{Days: []workout.Day{{Day: "Monday", Focus: "Push"}}}, nil
}

func (g *fakeGateway) ScanFood(ctx context.Context, u gateway.Upload, c gateway.Constraints) (foodscan.Analysis, error) {
	g.scanned = u
	return foodscan.Analysis{FoodItems: []string{"banana"}, Nutrition: foodscan.Nutrition{Calories: 105}}, nil
}

func (g *fakeGateway) SendMessage(ctx context.Context, text string) (string, error) {
	g.text = text
	return "Rest well.", nil
}

func command(chatID int64, text string) *tgbotapi.Message {
	cmd := strings.SplitN(text, " ", 2)[0]
	return &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}
}

func newBot(api *fakeAPI, gw *fakeGateway) (*Bot, *session.Registry) {
	reg := session.NewRegistry(gw, nil, session.Options{Constraints: gateway.DefaultConstraints(), PreviewSize: 64})
	return New(api, reg, nil, Options{}), reg
}

const profileArgs = `primary_goal: Build muscle
weight_kg: 80
height_cm: 180
eating_style: Balanced
caffeine_consumption: None
sugar_consumption: Occasionally`

func TestMealRequiresProfileThenWorks(t *testing.T) {
	api := &fakeAPI{}
	bot, reg := newBot(api, &fakeGateway{})
	ctx := context.Background()

	bot.Handle(ctx, command(7, "/meal"))
	if got := api.last(); got != "Please complete your profile first" {
		t.Fatalf("reply=%q", got)
	}

	bot.Handle(ctx, command(7, "/profile "+profileArgs))
	if got := api.last(); !strings.HasPrefix(got, "Profile saved: Build muscle, 80 kg") {
		t.Fatalf("reply=%q", got)
	}

	bot.Handle(ctx, command(7, "/meal"))
	if got := api.last(); !strings.Contains(got, "Oats") {
		t.Fatalf("reply=%q", got)
	}
	if reg.Len() != 1 {
		t.Fatalf("sessions=%d", reg.Len())
	}
}

func TestInvalidProfileReportsFields(t *testing.T) {
	api := &fakeAPI{}
	bot, _ := newBot(api, &fakeGateway{})
	bot.Handle(context.Background(), command(7, "/profile weight_kg: 80"))
	if got := api.last(); !strings.Contains(got, "primary_goal") {
		t.Fatalf("reply=%q", got)
	}
}

func TestChatsAreIsolated(t *testing.T) {
	api := &fakeAPI{}
	gw := &fakeGateway{}
	bot, reg := newBot(api, gw)
	ctx := context.Background()

	bot.Handle(ctx, &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "  sore legs  "})
	bot.Handle(ctx, &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 2}, Text: "hi"})
	if reg.Len() != 2 {
		t.Fatalf("sessions=%d", reg.Len())
	}
	if api.last() != "Rest well." {
		t.Fatalf("reply=%q", api.last())
	}

	s := bot.session(1)
	msgs := s.Chat.Messages()
	if len(msgs) != 3 || msgs[1].Message != "sore legs" {
		t.Fatalf("messages=%+v", msgs)
	}
}

func TestPhotoIsScanned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("\xff\xd8\xff\xe0\x00\x10JFIF"))
	}))
	defer srv.Close()

	api := &fakeAPI{fileURL: srv.URL}
	gw := &fakeGateway{}
	bot, _ := newBot(api, gw)

	bot.Handle(context.Background(), &tgbotapi.Message{
		Chat:  &tgbotapi.Chat{ID: 9},
		Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}},
	})
	if got := api.last(); !strings.Contains(got, "banana") {
		t.Fatalf("reply=%q", got)
	}
	if gw.scanned.Filename != "photo.jpg" || len(gw.scanned.Data) == 0 {
		t.Fatalf("upload=%+v", gw.scanned)
	}
}

func TestOversizedPhotoIsRejectedBeforeScan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("\xff\xd8\xff\xe0\x00\x10JFIF"))
		_, _ = w.Write(make([]byte, 8<<10))
	}))
	defer srv.Close()

	api := &fakeAPI{fileURL: srv.URL}
	gw := &fakeGateway{}
	reg := session.NewRegistry(gw, nil, session.Options{Constraints: gateway.DefaultConstraints(), PreviewSize: 64})
	bot := New(api, reg, nil, Options{Constraints: gateway.Constraints{MaxSizeBytes: 1 << 10}})

	bot.Handle(context.Background(), &tgbotapi.Message{
		Chat:  &tgbotapi.Chat{ID: 10},
		Photo: []tgbotapi.PhotoSize{{FileID: "huge"}},
	})
	if got := api.last(); got != "Image size should be less than 1KB" {
		t.Fatalf("reply=%q", got)
	}
	if len(gw.scanned.Data) != 0 {
		t.Fatalf("oversized photo reached the gateway: %d bytes", len(gw.scanned.Data))
	}
}

func TestDownloadReadsOnePastLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 4096))
	}))
	defer srv.Close()

	bot, _ := newBot(&fakeAPI{fileURL: srv.URL}, &fakeGateway{})
	data, err := bot.download(context.Background(), "f", 100)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if len(data) != 101 {
		t.Fatalf("read %d bytes", len(data))
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	api := &fakeAPI{updates: make(chan tgbotapi.Update, 1)}
	bot, _ := newBot(api, &fakeGateway{})
	api.updates <- tgbotapi.Update{Message: command(3, "/help")}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bot.Run(ctx) }()

	for i := 0; i < 1000 && api.last() == ""; i++ {
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(api.last(), "/meal") {
		t.Fatalf("help reply=%q", api.last())
	}
	api.mu.Lock()
	stopped := api.stopped
	api.mu.Unlock()
	if !stopped {
		t.Fatalf("updates not stopped")
	}
}

func TestSplit(t *testing.T) {
	text := strings.Repeat("a", 6) + "\n" + strings.Repeat("b", 3) + "\n" + strings.Repeat("c", 12)
	parts := split(text, 8)
	for _, p := range parts {
		if len(p) > 8 {
			t.Fatalf("part too long: %q", p)
		}
	}
	if strings.Join(parts, "") != text {
		t.Fatalf("parts do not reassemble: %q", parts)
	}
}

func TestSplitKeepsRunesWhole(t *testing.T) {
	text := strings.Repeat("é", 10) + "\n" + strings.Repeat("💪", 5)
	parts := split(text, 7)
	for _, p := range parts {
		if len(p) > 7 {
			t.Fatalf("part too long: %q", p)
		}
		if !utf8.ValidString(p) {
			t.Fatalf("part splits a rune: %q", p)
		}
	}
	if strings.Join(parts, "") != text {
		t.Fatalf("parts do not reassemble: %q", parts)
	}
}
