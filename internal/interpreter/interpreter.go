package interpreter

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/tundex/airtime-bot/internal/errors"
	"github.com/tundex/airtime-bot/internal/phone"
	"github.com/tundex/airtime-bot/internal/types"
)

// ContactDirectory resolves a saved recipient identifier to a phone number.
// An unknown identifier resolves to the empty string, not an error.
type ContactDirectory interface {
	GetContactPhone(ctx context.Context, identifier string) (string, error)
}

var digitRun = regexp.MustCompile(`\d+`)

// Interpreter turns free-form "<amount> for <target>" text into a validated
// purchase request. The first occurrence of "for" is the sole separator;
// this is a fixed parsing contract, not natural-language handling.
type Interpreter struct {
	phones   *phone.Resolver
	contacts ContactDirectory
	log      *slog.Logger
}

func New(phones *phone.Resolver, contacts ContactDirectory) *Interpreter {
	return &Interpreter{
		phones:   phones,
		contacts: contacts,
		log:      slog.With("component", "interpreter"),
	}
}

// Parse derives a VendRequest from text, or fails with
// interpretation_failed when no positive amount and resolvable phone number
// can be extracted, and with invalid_phone when a target resolves to a
// malformed number.
func (i *Interpreter) Parse(ctx context.Context, text, senderHandle string) (
	*types.VendRequest, error) {

	amountSide, targetSide, _ := strings.Cut(strings.ToLower(text), "for")

	var amount int64
	if match := digitRun.FindString(amountSide); match != "" {
		amount, _ = strconv.ParseInt(match, 10, 64)
	}

	target := strings.TrimSpace(targetSide)
	if target == "me" {
		target = "@" + strings.TrimPrefix(senderHandle, "@")
	}

	phoneNumber, err := i.resolveTarget(ctx, target)
	if err != nil {
		return nil, err
	}

	if amount <= 0 || phoneNumber == "" {
		i.log.Debug("could not interpret message",
			"amount", amount, "target", target)

		return nil, errors.New(errors.CodeInterpretationFailed,
			"unable to deduce amount and/or phone number")
	}

	return &types.VendRequest{
		Amount:      amount,
		PhoneNumber: phoneNumber,
	}, nil
}

// resolveTarget treats a valid phone number as itself and anything else as
// a contact-directory identifier. Contact-resolved numbers are normalized
// too, so a malformed directory entry surfaces as invalid_phone.
func (i *Interpreter) resolveTarget(ctx context.Context, target string) (
	string, error) {

	if target == "" {
		return "", nil
	}

	if i.phones.IsValid(target) {
		return i.phones.Format(target)
	}

	contactPhone, err := i.contacts.GetContactPhone(ctx, target)
	if err != nil {
		return "", err
	}
	if contactPhone == "" {
		return "", nil
	}

	return i.phones.Format(contactPhone)
}
