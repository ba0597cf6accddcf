package telegram

import (
	"context"
	"strings"

	"github.com/mymmrac/telego"

	"github.com/jossbot/joss/pkg/logger"
	"github.com/jossbot/joss/pkg/pipeline"
)

const greeting = "👋 Yo, I'm *Joss*! 🎵\n\n" +
	"📥 Drop a TikTok link — I'll send HD video + MP3 instantly! 🚀"

const rejection = "⚠️ Send TikTok link"

// Handler consumes the update feed and runs one pipeline per inbound link.
// Requests share nothing, so each runs in its own goroutine.
type Handler struct {
	bot       *telego.Bot
	transport *Transport
	pipe      *pipeline.Pipeline
	linkHosts []string
}

func NewHandler(bot *telego.Bot, transport *Transport, pipe *pipeline.Pipeline, linkHosts []string) *Handler {
	return &Handler{
		bot:       bot,
		transport: transport,
		pipe:      pipe,
		linkHosts: linkHosts,
	}
}

// Run blocks on the long-polling feed until ctx is cancelled.
func (h *Handler) Run(ctx context.Context) error {
	updates, err := h.bot.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return err
	}
	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		go h.handleMessage(ctx, update.Message)
	}
	return ctx.Err()
}

func (h *Handler) handleMessage(ctx context.Context, msg *telego.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if IsStartCommand(text) {
		if err := h.transport.SendMarkdown(ctx, chatID, greeting); err != nil {
			logger.WarnCF("telegram", "Greeting send failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return
	}

	if _, ok := pipeline.ExtractLink(text, h.linkHosts); !ok {
		if err := h.transport.SendText(ctx, chatID, rejection); err != nil {
			logger.WarnCF("telegram", "Rejection send failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return
	}

	statusID, err := h.transport.SendStatus(ctx, chatID, pipeline.InitialStatus)
	if err != nil {
		// Without a status message there is nothing to edit; the pipeline
		// still runs and its edits fail quietly.
		logger.WarnCF("telegram", "Status message send failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	out := h.pipe.Run(ctx, pipeline.Request{
		Text:            text,
		ChatID:          chatID,
		StatusMessageID: statusID,
	})
	logger.InfoCF("telegram", "Request finished", map[string]interface{}{
		"chat":   chatID,
		"state":  out.State.String(),
		"kind":   out.Kind.String(),
		"images": out.ImagesSent,
		"audio":  out.AudioSent,
		"video":  out.VideoSent,
	})
}

// IsStartCommand reports whether text is the /start command, with or
// without a bot-name suffix.
func IsStartCommand(text string) bool {
	return text == "/start" || strings.HasPrefix(text, "/start@") || strings.HasPrefix(text, "/start ")
}
