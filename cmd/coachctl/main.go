package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/gymcoach/internal/app"
	"github.com/yungbote/gymcoach/internal/cli"
	"github.com/yungbote/gymcoach/internal/config"
	"github.com/yungbote/gymcoach/internal/platform/logger"
	"github.com/yungbote/gymcoach/internal/platform/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	// Terminal output stays clean unless LOG_MODE asks for logs.
	log := logger.Nop()
	if os.Getenv("LOG_MODE") != "" {
		if l, err := logger.New(cfg.Env); err == nil {
			log = l
		}
	}
	defer log.Sync()

	gw, err := app.NewGateway(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init gateway: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	cmd := &cli.Command{Gateway: gw, Stdout: os.Stdout, Stderr: os.Stderr}
	code := cmd.Run(ctx, os.Args[1:])
	stop()
	log.Sync()
	os.Exit(code)
}
