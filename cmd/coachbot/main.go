package main

import (
	"context"
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yungbote/gymcoach/internal/app"
	"github.com/yungbote/gymcoach/internal/config"
	"github.com/yungbote/gymcoach/internal/platform/logger"
	"github.com/yungbote/gymcoach/internal/platform/shutdown"
	"github.com/yungbote/gymcoach/internal/session"
	"github.com/yungbote/gymcoach/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Telegram.Token == "" {
		log.Error("GYMCOACH_TELEGRAM_TOKEN is required")
		return
	}
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "error", err)
		return
	}
	api.Debug = cfg.Telegram.Debug
	log.Info("telegram bot authorized", "username", api.Self.UserName)

	gw, err := app.NewGateway(cfg, log)
	if err != nil {
		log.Error("init gateway failed", "error", err)
		return
	}
	reg := session.NewRegistry(gw, log, app.SessionOptions(cfg))
	pruner, err := app.NewPruner(log, reg, cfg.Session)
	if err != nil {
		log.Error("init pruner failed", "error", err)
		return
	}
	pruner.Start()
	defer pruner.Stop()

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	bot := telegram.New(api, reg, log, telegram.Options{
		PollTimeout: cfg.Telegram.PollTimeout,
		Constraints: app.Constraints(cfg),
	})
	if err := bot.Run(ctx); err != nil {
		log.Error("bot exited", "error", err)
	}
}
