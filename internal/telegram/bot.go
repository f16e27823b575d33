package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/gymcoach/internal/domain/profile"
	"github.com/yungbote/gymcoach/internal/gateway"
	"github.com/yungbote/gymcoach/internal/platform/logger"
	"github.com/yungbote/gymcoach/internal/render"
	"github.com/yungbote/gymcoach/internal/session"
)

// maxMessageLen is Telegram's limit for one text message.
const maxMessageLen = 4096

const helpText = `Commands:
/profile <yaml> - save your profile (send it without text to see it)
/meal - generate a meal plan
/workout - generate a workout plan
/reset - forget everything
Send a food photo to analyze it, or any text to chat with the coach.`

// API is the part of *tgbotapi.BotAPI the bot uses.
type API interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Sessions is satisfied by *session.Registry.
type Sessions interface {
	Create() *session.Session
	Get(id string) (*session.Session, error)
}

type Options struct {
	PollTimeout int
	// Concurrency bounds how many updates are handled at once.
	Concurrency int
	HTTPClient  *http.Client
	// Constraints caps photo downloads. MaxSizeBytes defaults to
	// gateway.DefaultMaxUploadBytes.
	Constraints gateway.Constraints
}

// Bot maps each Telegram chat to one coaching session.
type Bot struct {
	api      API
	sessions Sessions
	log      *logger.Logger
	fmt      *render.TextFormatter
	opts     Options

	mu     sync.Mutex
	byChat map[int64]string
}

func New(api API, sessions Sessions, log *logger.Logger, opts Options) *Bot {
	if log == nil {
		log = logger.Nop()
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 30
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Constraints.MaxSizeBytes <= 0 {
		opts.Constraints.MaxSizeBytes = gateway.DefaultMaxUploadBytes
	}
	return &Bot{
		api:      api,
		sessions: sessions,
		log:      log.With("component", "TelegramBot"),
		fmt:      render.NewTextFormatter(),
		opts:     opts,
		byChat:   make(map[int64]string),
	}
}

// Run long-polls for updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.opts.PollTimeout
	updates := b.api.GetUpdatesChan(u)

	g := new(errgroup.Group)
	g.SetLimit(b.opts.Concurrency)
	defer func() { _ = g.Wait() }()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			msg := update.Message
			g.Go(func() error {
				b.Handle(ctx, msg)
				return nil
			})
		}
	}
}

// Handle answers one incoming message.
func (b *Bot) Handle(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	s := b.session(chatID)

	var reply string
	switch {
	case msg.IsCommand():
		reply = b.command(ctx, s, msg)
	case len(msg.Photo) > 0:
		largest := msg.Photo[len(msg.Photo)-1]
		reply = b.scan(ctx, s, largest.FileID, "photo.jpg", "")
	case msg.Document != nil:
		reply = b.scan(ctx, s, msg.Document.FileID, msg.Document.FileName, msg.Document.MimeType)
	default:
		m, ok := s.SendChat(ctx, msg.Text)
		if !ok {
			return
		}
		reply = m.Message
	}
	b.send(chatID, reply)
}

func (b *Bot) command(ctx context.Context, s *session.Session, msg *tgbotapi.Message) string {
	switch msg.Command() {
	case "start", "help":
		return "Hello! I'm your AI Gym Coach.\n\n" + helpText
	case "profile":
		return b.profile(s, msg.CommandArguments())
	case "meal":
		plan, err := s.GenerateMealPlan(ctx)
		if err != nil {
			return failure(err)
		}
		return b.fmt.MealPlan(plan)
	case "workout":
		plan, err := s.GenerateWorkoutPlan(ctx)
		if err != nil {
			return failure(err)
		}
		return b.fmt.WorkoutPlan(plan)
	case "reset":
		s.Reset()
		return "Done. Send /profile to start again."
	default:
		return helpText
	}
}

func (b *Bot) profile(s *session.Session, args string) string {
	args = strings.TrimSpace(args)
	if args == "" {
		p := s.Profile.Get()
		if p == nil {
			return session.ErrProfileRequired.Reason + ".\n\nExample:\n/profile primary_goal: Build muscle\nweight_kg: 80\nheight_cm: 180\neating_style: Balanced\ncaffeine_consumption: None\nsugar_consumption: Occasionally"
		}
		out, err := yaml.Marshal(p)
		if err != nil {
			return gateway.GenericFailure
		}
		return "Your profile:\n" + string(out)
	}
	var p profile.UserProfile
	if err := yaml.Unmarshal([]byte(args), &p); err != nil {
		return "Could not read that profile: " + err.Error()
	}
	saved, err := s.SaveProfile(profile.DraftFrom(p))
	if err != nil {
		return failure(err)
	}
	return fmt.Sprintf("Profile saved: %s, %s kg, %s cm.", saved.PrimaryGoal, trimFloat(saved.WeightKg), trimFloat(saved.HeightCm))
}

func (b *Bot) scan(ctx context.Context, s *session.Session, fileID, filename, contentType string) string {
	limit := b.opts.Constraints.MaxSizeBytes
	data, err := b.download(ctx, fileID, limit)
	if err != nil {
		b.log.Warn("telegram file download failed", "error", err)
		return gateway.GenericFailure
	}
	if int64(len(data)) > limit {
		return failure(b.opts.Constraints.TooLarge())
	}
	res, err := s.ScanFood(ctx, gateway.Upload{Filename: filename, ContentType: contentType, Data: data})
	if err != nil {
		return failure(err)
	}
	return b.fmt.FoodAnalysis(res.Analysis)
}

// download fetches at most one byte past limit, enough to tell the file is
// too large.
func (b *Bot) download(ctx context.Context, fileID string, limit int64) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("telegram file download: %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit+1))
}

func (b *Bot) session(chatID int64) *session.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	if id, ok := b.byChat[chatID]; ok {
		if s, err := b.sessions.Get(id); err == nil {
			return s
		}
	}
	s := b.sessions.Create()
	b.byChat[chatID] = s.ID
	return s
}

func (b *Bot) send(chatID int64, text string) {
	for _, part := range split(text, maxMessageLen) {
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			b.log.Warn("telegram send failed", "chat_id", chatID, "error", err)
			return
		}
	}
}

func failure(err error) string {
	var fe profile.FieldErrors
	if errors.As(err, &fe) {
		return fe.Error()
	}
	return gateway.UserMessage(err)
}

// split breaks text on line boundaries into parts no longer than n bytes.
// A single line longer than n is cut at a rune boundary.
func split(text string, n int) []string {
	if len(text) <= n {
		return []string{text}
	}
	var (
		out []string
		cur strings.Builder
	)
	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > n {
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
			cut := n
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = n
			}
			out = append(out, line[:cut])
			line = line[cut:]
		}
		if cur.Len()+len(line) > n {
			out = append(out, cur.String())
			cur.Reset()
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
