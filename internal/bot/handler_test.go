package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/tundex/airtime-bot/internal/interpreter"
	"github.com/tundex/airtime-bot/internal/phone"
	"github.com/tundex/airtime-bot/internal/types"
	"github.com/tundex/airtime-bot/internal/vending"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type recordingReplier struct {
	replies []string
}

func (r *recordingReplier) Reply(chatID int64, text string) error {
	r.replies = append(r.replies, text)
	return nil
}

type fakeAdmins map[int64]bool

func (f fakeAdmins) HasAdmin(ctx context.Context, telegramID int64) (bool, error) {
	return f[telegramID], nil
}

type fakeContacts map[string]string

func (f fakeContacts) GetContactPhone(ctx context.Context, identifier string) (
	string, error) {

	return f[identifier], nil
}

type stubGateway struct {
	summary *types.Summary
}

func (s *stubGateway) VendAirtime(ctx context.Context, amount int64,
	phoneNumber string) (*types.VendResult, error) {

	return &types.VendResult{
		Status:      types.StatusSuccess,
		Reference:   "10291",
		PhoneNumber: phoneNumber,
		Amount:      float64(amount),
		Network:     "MTN",
	}, nil
}

func (s *stubGateway) GetBill(ctx context.Context, reference string) (
	*types.BillDetail, error) {

	return &types.BillDetail{
		Reference:       reference,
		Amount:          500,
		Commission:      12.5,
		TransactionDate: "2024-07-15T09:30:00Z",
		Product:         "AIRTIME",
	}, nil
}

func (s *stubGateway) GetBalance(ctx context.Context) (*types.Balance, error) {
	return &types.Balance{Currency: "NGN", Available: 1500, Ledger: 1500}, nil
}

func (s *stubGateway) GetSummary(ctx context.Context, currency string) (
	*types.Summary, error) {

	return s.summary, nil
}

func newTestHandler(replier *recordingReplier, admins fakeAdmins,
	gw *stubGateway) *Handler {

	interp := interpreter.New(phone.NewResolver("NG"), fakeContacts{})
	orch := vending.New(gw, "test")

	return NewHandler(&Config{BotUsername: "airtime_bot"}, replier, admins,
		interp, orch)
}

func mentionUpdate(senderID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text:     text,
			From:     &tgbotapi.User{ID: senderID, UserName: "tunde", FirstName: "Tunde"},
			Chat:     &tgbotapi.Chat{ID: 42},
			Entities: []tgbotapi.MessageEntity{{Type: "mention", Offset: 0, Length: 12}},
		},
	}
}

func TestHandleUpdate_NoMentionStaysSilent(t *testing.T) {
	replier := &recordingReplier{}
	h := newTestHandler(replier, fakeAdmins{1: true}, &stubGateway{})

	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: "500 for 08031234567",
			From: &tgbotapi.User{ID: 1, UserName: "tunde"},
			Chat: &tgbotapi.Chat{ID: 42},
		},
	}

	h.HandleUpdate(context.Background(), update)

	if len(replier.replies) != 0 {
		t.Errorf("got %d replies to an unaddressed message, want 0", len(replier.replies))
	}
}

func TestHandleUpdate_MentionOfSomeoneElseStaysSilent(t *testing.T) {
	replier := &recordingReplier{}
	h := newTestHandler(replier, fakeAdmins{1: true}, &stubGateway{})

	update := mentionUpdate(1, "@other_bot 500 for 08031234567")

	h.HandleUpdate(context.Background(), update)

	if len(replier.replies) != 0 {
		t.Errorf("got %d replies to a foreign mention, want 0", len(replier.replies))
	}
}

func TestHandleUpdate_NonAdminGetsRefusal(t *testing.T) {
	replier := &recordingReplier{}
	h := newTestHandler(replier, fakeAdmins{}, &stubGateway{})

	update := mentionUpdate(99, "@airtime_bot 500 for 08031234567")

	h.HandleUpdate(context.Background(), update)

	if len(replier.replies) != 1 {
		t.Fatalf("got %d replies, want exactly the refusal", len(replier.replies))
	}
	if replier.replies[0] != replyRefusal {
		t.Errorf("reply = %q, want the refusal message", replier.replies[0])
	}
}

func TestHandleUpdate_AuthorizedVend(t *testing.T) {
	replier := &recordingReplier{}
	h := newTestHandler(replier, fakeAdmins{1: true}, &stubGateway{})

	update := mentionUpdate(1, "@airtime_bot 500 for 08031234567")

	h.HandleUpdate(context.Background(), update)

	// acknowledgment, immediate outcome, final report
	if len(replier.replies) != 3 {
		t.Fatalf("got %d replies, want 3: %v", len(replier.replies), replier.replies)
	}

	if !strings.Contains(replier.replies[0], "Howdy Tunde") {
		t.Errorf("first reply should be the acknowledgment: %q", replier.replies[0])
	}
	if strings.Contains(replier.replies[0], "@airtime_bot") {
		t.Errorf("acknowledgment should echo the stripped text: %q", replier.replies[0])
	}
	if !strings.Contains(replier.replies[1], "10291") {
		t.Errorf("second reply should confirm the transaction: %q", replier.replies[1])
	}
	if !strings.Contains(replier.replies[2], "487.50") {
		t.Errorf("final reply should carry the charged amount: %q", replier.replies[2])
	}
}

func TestHandleUpdate_InterpretationFailure(t *testing.T) {
	replier := &recordingReplier{}
	h := newTestHandler(replier, fakeAdmins{1: true}, &stubGateway{})

	update := mentionUpdate(1, "@airtime_bot abc for nobody")

	h.HandleUpdate(context.Background(), update)

	if len(replier.replies) != 2 {
		t.Fatalf("got %d replies, want acknowledgment and failure", len(replier.replies))
	}
	if !strings.HasPrefix(replier.replies[1], replyFailurePrefix) {
		t.Errorf("failure reply = %q, want the ❌ prefix", replier.replies[1])
	}
}

func TestHandleUpdate_BalanceWithSummary(t *testing.T) {
	replier := &recordingReplier{}
	gw := &stubGateway{summary: &types.Summary{
		Currency:        "NGN",
		TotalBilled:     4500,
		TotalCommission: 120.5,
		AirtimeCount:    9,
	}}
	h := newTestHandler(replier, fakeAdmins{1: true}, gw)

	update := mentionUpdate(1, "@airtime_bot balance")

	h.HandleUpdate(context.Background(), update)

	if len(replier.replies) != 3 {
		t.Fatalf("got %d replies, want ack, balance and stats", len(replier.replies))
	}
	if !strings.Contains(replier.replies[1], "1500.00") {
		t.Errorf("balance reply = %q", replier.replies[1])
	}
	if !strings.Contains(replier.replies[2], "Recharges: 9") {
		t.Errorf("stats reply = %q", replier.replies[2])
	}
}

func TestHandleUpdate_BalanceWithoutSummary(t *testing.T) {
	replier := &recordingReplier{}
	h := newTestHandler(replier, fakeAdmins{1: true}, &stubGateway{})

	update := mentionUpdate(1, "@airtime_bot balance")

	h.HandleUpdate(context.Background(), update)

	// no stats reply when the backend has no summary
	if len(replier.replies) != 2 {
		t.Fatalf("got %d replies, want ack and balance only", len(replier.replies))
	}
}

func TestHandleUpdate_Help(t *testing.T) {
	replier := &recordingReplier{}
	h := newTestHandler(replier, fakeAdmins{1: true}, &stubGateway{})

	update := mentionUpdate(1, "@airtime_bot help")

	h.HandleUpdate(context.Background(), update)

	if len(replier.replies) != 2 {
		t.Fatalf("got %d replies, want ack and help", len(replier.replies))
	}
	if replier.replies[1] != replyHelp {
		t.Errorf("reply = %q, want the help text", replier.replies[1])
	}
}

func TestHandleUpdate_Fallback(t *testing.T) {
	replier := &recordingReplier{}
	h := newTestHandler(replier, fakeAdmins{1: true}, &stubGateway{})

	update := mentionUpdate(1, "@airtime_bot what can you do")

	h.HandleUpdate(context.Background(), update)

	if len(replier.replies) != 2 {
		t.Fatalf("got %d replies, want ack and fallback", len(replier.replies))
	}
	if replier.replies[1] != replyFallback {
		t.Errorf("reply = %q, want the fallback message", replier.replies[1])
	}
}
