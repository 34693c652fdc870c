package bot

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Replier sends a plain-text message to a chat. Wrapping the Telegram API
// behind this keeps handlers testable.
type Replier interface {
	Reply(chatID int64, text string) error
}

type TelegramReplier struct {
	api *tgbotapi.BotAPI
	log *slog.Logger
}

func NewTelegramReplier(api *tgbotapi.BotAPI) *TelegramReplier {
	return &TelegramReplier{
		api: api,
		log: slog.With("component", "telegram"),
	}
}

func (t *TelegramReplier) Reply(chatID int64, text string) error {
	_, err := t.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		t.log.Error("couldn't send message", "chat", chatID, "error", err)
	}

	return err
}

// ChannelNotifier sends to one fixed operator chat; the scheduled runner
// uses it for per-recipient notifications.
type ChannelNotifier struct {
	replier Replier
	chatID  int64
}

func NewChannelNotifier(replier Replier, chatID int64) *ChannelNotifier {
	return &ChannelNotifier{
		replier: replier,
		chatID:  chatID,
	}
}

func (n *ChannelNotifier) Notify(text string) error {
	return n.replier.Reply(n.chatID, text)
}
