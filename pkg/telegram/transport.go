// Package telegram is the chat-transport side of the bot: outbound sends,
// status edits, and the inbound update loop.
package telegram

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// Transport delivers assets through the Telegram Bot API.
type Transport struct {
	bot *telego.Bot
}

func NewTransport(bot *telego.Bot) *Transport {
	return &Transport{bot: bot}
}

func (t *Transport) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := t.bot.SendMessage(ctx, tu.Message(tu.ID(chatID), text))
	return err
}

// SendMarkdown sends Markdown-formatted text, used for the greeting.
func (t *Transport) SendMarkdown(ctx context.Context, chatID int64, text string) error {
	_, err := t.bot.SendMessage(ctx, tu.Message(tu.ID(chatID), text).WithParseMode(telego.ModeMarkdown))
	return err
}

func (t *Transport) SendPhoto(ctx context.Context, chatID int64, data []byte, name string) error {
	photo := tu.File(tu.NameReader(bytes.NewReader(data), name))
	_, err := t.bot.SendPhoto(ctx, tu.Photo(tu.ID(chatID), photo))
	return err
}

func (t *Transport) SendAudio(ctx context.Context, chatID int64, path, title string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	audio := tu.File(tu.NameReader(f, filepath.Base(path)))
	_, err = t.bot.SendAudio(ctx, tu.Audio(tu.ID(chatID), audio).WithTitle(title))
	return err
}

func (t *Transport) SendVideo(ctx context.Context, chatID int64, path, caption string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	video := tu.File(tu.NameReader(f, filepath.Base(path)))
	params := tu.Video(tu.ID(chatID), video).
		WithCaption(caption).
		WithSupportsStreaming()
	_, err = t.bot.SendVideo(ctx, params)
	return err
}

// SendStatus posts the initial status message and returns its id for later
// edits.
func (t *Transport) SendStatus(ctx context.Context, chatID int64, text string) (int, error) {
	msg, err := t.bot.SendMessage(ctx, tu.Message(tu.ID(chatID), text))
	if err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

func (t *Transport) EditStatus(ctx context.Context, chatID int64, messageID int, text string) error {
	_, err := t.bot.EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:    tu.ID(chatID),
		MessageID: messageID,
		Text:      text,
	})
	return err
}
