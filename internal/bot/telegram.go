package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Telegram rejects messages over 4096 chars; stay under it.
const maxMessageLen = 4000

// Dispatcher delivers rendered replies. The chat transport is a
// collaborator behind this interface so the service stays testable.
type Dispatcher interface {
	Reply(chatID int64, text string) error
	ReplyBundle(chatID int64, title string, blocks []string) error
}

// Telegram runs the bot against the Telegram long-poll API and delivers
// replies back to the originating chat.
type Telegram struct {
	bot *tgbotapi.BotAPI
	svc *Service
	log *zap.Logger
}

func NewTelegram(token string, svc *Service, log *zap.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to telegram")
	}
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("telegram bot authorized", zap.String("username", api.Self.UserName))
	return &Telegram{bot: api, svc: svc, log: log}, nil
}

// Run consumes updates until the context is cancelled. Each message is
// routed through the service; unmatched messages are ignored.
func (t *Telegram) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			t.handle(ctx, update.Message)
		}
	}
}

func (t *Telegram) handle(ctx context.Context, msg *tgbotapi.Message) {
	reply, ok := t.svc.Handle(ctx, msg.Text)
	if !ok {
		return
	}

	var err error
	if reply.Blocks != nil {
		err = t.ReplyBundle(msg.Chat.ID, reply.Title, reply.Blocks)
	} else {
		err = t.Reply(msg.Chat.ID, reply.Text)
	}
	if err != nil {
		t.log.Error("failed to deliver reply", zap.Int64("chat", msg.Chat.ID), zap.Error(err))
	}
}

// Reply sends a single text reply, chunked when it exceeds the Telegram
// message limit.
func (t *Telegram) Reply(chatID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		// Telegram rejects empty messages.
		return nil
	}
	for _, chunk := range chunk(text, maxMessageLen) {
		if _, err := t.bot.Send(tgbotapi.NewMessage(chatID, chunk)); err != nil {
			return errors.Wrap(err, "failed to send message")
		}
	}
	return nil
}

// ReplyBundle packages several person blocks into one titled message,
// the group-query equivalent of a forwarded bundle.
func (t *Telegram) ReplyBundle(chatID int64, title string, blocks []string) error {
	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteString("\n")
	}
	for _, block := range blocks {
		b.WriteString("\n")
		b.WriteString(block)
		b.WriteString("\n")
	}
	return t.Reply(chatID, b.String())
}

// chunk splits text into pieces of at most maxLen bytes, preferring to
// break at a newline.
func chunk(text string, maxLen int) []string {
	var out []string
	for len(text) > maxLen {
		cut := strings.LastIndex(text[:maxLen], "\n")
		if cut <= 0 {
			cut = maxLen
		}
		piece := strings.TrimSpace(text[:cut])
		if piece != "" {
			out = append(out, piece)
		}
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text = strings.TrimSpace(text); text != "" {
		out = append(out, text)
	}
	return out
}

var _ Dispatcher = (*Telegram)(nil)
