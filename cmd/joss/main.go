// Joss downloads short-form video links dropped into a Telegram chat and
// replies with the video (or carousel images) plus an audio-only track.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mymmrac/telego"

	"github.com/jossbot/joss/pkg/config"
	"github.com/jossbot/joss/pkg/extract"
	"github.com/jossbot/joss/pkg/fetch"
	"github.com/jossbot/joss/pkg/logger"
	"github.com/jossbot/joss/pkg/media"
	"github.com/jossbot/joss/pkg/pipeline"
	"github.com/jossbot/joss/pkg/telegram"
	"github.com/jossbot/joss/pkg/transcode"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "joss:", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extract.Install(ctx)

	bot, err := telego.NewBot(cfg.TelegramToken, telego.WithDefaultLogger(false, true))
	if err != nil {
		logger.ErrorCF("main", "Telegram bot init failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	policy := media.DefaultPolicy()
	policy.MaxDuration = cfg.MaxCarouselDuration
	policy.MaxImages = cfg.MaxImages

	transport := telegram.NewTransport(bot)
	pipe := pipeline.New(pipeline.Options{
		Extractor:  extract.NewService(cfg.FetchTimeout),
		Transport:  transport,
		Transcoder: transcode.NewFFmpeg(cfg.FFmpegBin, cfg.FetchTimeout),
		Images:     fetch.NewClient(cfg.HTTPTimeout),
		Policy:     policy,
		LinkHosts:  cfg.LinkHosts,
	})

	handler := telegram.NewHandler(bot, transport, pipe, cfg.LinkHosts)
	logger.InfoCF("main", "Joss is up", map[string]interface{}{
		"hosts": cfg.LinkHosts,
	})

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		logger.ErrorCF("main", "Update loop failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	logger.Info("Joss shut down")
}
