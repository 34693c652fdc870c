package vending

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tundex/airtime-bot/internal/metrics"
	"github.com/tundex/airtime-bot/internal/types"
	"github.com/tundex/airtime-bot/internal/vendor"
)

// Report is the final accounting for one purchase. Charged and Saved always
// satisfy Charged = Amount - Saved.
type Report struct {
	Status          types.VendStatus
	Reference       string
	PhoneNumber     string
	Amount          float64
	Charged         float64
	Saved           float64
	TransactionDate string
}

// Orchestrator drives a single purchase end to end: vend, then enrich the
// confirmed charge with the bill's commission breakdown. Both the
// interactive handler and the scheduled runner go through here.
type Orchestrator struct {
	gateway    vendor.Gateway
	vendorName string
	log        *slog.Logger
}

func New(gateway vendor.Gateway, vendorName string) *Orchestrator {
	return &Orchestrator{
		gateway:    gateway,
		vendorName: vendorName,
		log:        slog.With("component", "orchestrator"),
	}
}

// Vend submits the purchase and fetches its bill detail. The vend must be
// confirmed before the bill is fetched; some backends can only answer the
// bill query for references they vended moments earlier.
//
// When reply is non-nil it receives the immediate outcome before the bill
// fetch, so the user learns the charge went through even if the detail call
// then fails.
func (o *Orchestrator) Vend(ctx context.Context, req *types.VendRequest,
	reply func(string)) (*Report, error) {

	metrics.VendAttempts.WithLabelValues(o.vendorName).Inc()

	res, err := o.gateway.VendAirtime(ctx, req.Amount, req.PhoneNumber)
	if err != nil {
		metrics.VendFailures.WithLabelValues(o.vendorName).Inc()
		return nil, err
	}

	o.log.Info("Vend submitted",
		"reference", res.Reference,
		"status", res.Status,
		"phone", res.PhoneNumber,
	)

	if reply != nil {
		prefix := "⚠️"
		if res.Status == types.StatusSuccess {
			prefix = "✅"
		}

		reply(fmt.Sprintf("%s Transaction %s finished with a status of %s.",
			prefix, res.Reference, res.Status))
	}

	bill, err := o.gateway.GetBill(ctx, res.Reference)
	if err != nil {
		metrics.VendFailures.WithLabelValues(o.vendorName).Inc()
		return nil, err
	}

	report := &Report{
		Status:          res.Status,
		Reference:       res.Reference,
		PhoneNumber:     res.PhoneNumber,
		Amount:          bill.Amount,
		Charged:         res.Amount - bill.Commission,
		Saved:           bill.Commission,
		TransactionDate: bill.TransactionDate,
	}

	if reply != nil {
		reply(fmt.Sprintf(
			"Airtime recharge for %s (₦ %.2f) on %s.\n"+
				"You were charged ₦ %.2f, you saved ₦ %.2f 🎉.",
			report.PhoneNumber, report.Amount, report.TransactionDate,
			report.Charged, report.Saved))
	}

	return report, nil
}

// Balance returns the spendable funds and, when the backend supports it,
// the current-month summary. A nil summary means "not available", not an
// error.
func (o *Orchestrator) Balance(ctx context.Context) (
	*types.Balance, *types.Summary, error) {

	balance, err := o.gateway.GetBalance(ctx)
	if err != nil {
		return nil, nil, err
	}

	summary, err := o.gateway.GetSummary(ctx, balance.Currency)
	if err != nil {
		return balance, nil, err
	}

	return balance, summary, nil
}
