package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tundex/airtime-bot/internal/errors"
	"github.com/tundex/airtime-bot/internal/interpreter"
	"github.com/tundex/airtime-bot/internal/vending"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	replyRefusal       = "Don't talk to me! 🙅‍♀️"
	replyInvalidPhone  = "Invalid phone number, please confirm phone number and try again."
	replyHelp          = "1. balance\n2. <amount> for <phone_number> (e.g 500 for 08031234567)"
	replyFallback      = "I can't be of help. 🫠"
	replyFailurePrefix = "❌ Request failed due to: "
)

// AdminStore answers whether a sender is allowed to command the bot.
type AdminStore interface {
	HasAdmin(ctx context.Context, telegramID int64) (bool, error)
}

type Config struct {
	BotUsername string
}

// Handler gates each incoming message behind two checks and routes the ones
// that pass. A message that doesn't mention the bot is ignored outright; a
// mention from a non-admin gets a refusal. Only then does the command run,
// always preceded by an acknowledgment echo of the stripped text.
type Handler struct {
	config       *Config
	replier      Replier
	admins       AdminStore
	interpreter  *interpreter.Interpreter
	orchestrator *vending.Orchestrator
	log          *slog.Logger
}

func NewHandler(config *Config, replier Replier, admins AdminStore,
	interp *interpreter.Interpreter, orch *vending.Orchestrator) *Handler {

	return &Handler{
		config:       config,
		replier:      replier,
		admins:       admins,
		interpreter:  interp,
		orchestrator: orch,
		log:          slog.With("component", "bot"),
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}

	// stay silent when the bot isn't addressed, whoever the sender is
	if !h.isProperMention(msg) {
		return
	}

	isAdmin, err := h.admins.HasAdmin(ctx, msg.From.ID)
	if err != nil {
		h.log.Error("admin lookup failed", "sender", msg.From.ID, "error", err)
		return
	}

	if !isAdmin {
		h.log.Info("refusing non-admin sender", "sender", msg.From.ID)
		h.replier.Reply(msg.Chat.ID, replyRefusal)
		return
	}

	command := h.stripMention(msg.Text)

	name := msg.From.FirstName
	if name == "" {
		name = msg.From.UserName
	}
	h.replier.Reply(msg.Chat.ID,
		fmt.Sprintf("Howdy %s 👋, You said %s.", name, command))

	lower := strings.ToLower(command)

	switch {
	case strings.Contains(lower, "for"):
		h.handleVend(ctx, msg, command)
	case strings.Contains(lower, "balance"):
		h.handleBalance(ctx, msg)
	case strings.Contains(lower, "help"):
		h.replier.Reply(msg.Chat.ID, replyHelp)
	default:
		h.replier.Reply(msg.Chat.ID, replyFallback)
	}
}

// isProperMention requires both a structured mention entity and the bot's
// own username in the text; mentions of someone else don't count.
func (h *Handler) isProperMention(msg *tgbotapi.Message) bool {
	hasMention := false
	for _, entity := range msg.Entities {
		if entity.Type == "mention" {
			hasMention = true
			break
		}
	}

	if !hasMention {
		return false
	}

	return strings.Contains(msg.Text, "@"+h.config.BotUsername)
}

func (h *Handler) stripMention(text string) string {
	return strings.TrimSpace(
		strings.ReplaceAll(text, "@"+h.config.BotUsername, ""))
}

func (h *Handler) handleVend(ctx context.Context, msg *tgbotapi.Message,
	command string) {

	req, err := h.interpreter.Parse(ctx, command, msg.From.UserName)
	if err != nil {
		h.replyError(msg.Chat.ID, err)
		return
	}

	_, err = h.orchestrator.Vend(ctx, req, func(text string) {
		h.replier.Reply(msg.Chat.ID, text)
	})
	if err != nil {
		h.replyError(msg.Chat.ID, err)
	}
}

func (h *Handler) handleBalance(ctx context.Context, msg *tgbotapi.Message) {
	balance, summary, err := h.orchestrator.Balance(ctx)
	if err != nil && balance == nil {
		h.replyError(msg.Chat.ID, err)
		return
	}

	h.replier.Reply(msg.Chat.ID,
		fmt.Sprintf("💰 Your wallet balance is ₦ %.2f.", balance.Available))

	if err != nil {
		h.replyError(msg.Chat.ID, err)
		return
	}

	if summary == nil {
		return
	}

	h.replier.Reply(msg.Chat.ID, fmt.Sprintf(
		"📊 Stats\n\nSpent: ₦ %.2f\nSaved: ₦ %.2f\nRecharges: %d.",
		summary.TotalBilled, summary.TotalCommission, summary.AirtimeCount))
}

func (h *Handler) replyError(chatID int64, err error) {
	if errors.HasCode(err, errors.CodeInvalidPhone) {
		h.replier.Reply(chatID, replyInvalidPhone)
		return
	}

	h.replier.Reply(chatID, replyFailurePrefix+err.Error())
}
