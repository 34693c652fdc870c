package types

type VendStatus string

const (
	StatusSuccess VendStatus = "success"
	StatusFailure VendStatus = "failure"
	StatusPending VendStatus = "pending"
)

// VendRequest is a fully resolved purchase instruction. It is only ever
// constructed by the command interpreter or the schedule source; the phone
// number is already normalized to E.164 by the time it gets here.
type VendRequest struct {
	Amount      int64  `json:"amount"`
	PhoneNumber string `json:"phone_number"`
}

// VendResult is the normalized outcome of a vend call, identical in shape
// across vendor backends. Reference is the join key to the bill detail.
type VendResult struct {
	Status      VendStatus `json:"status"`
	Reference   string     `json:"reference"`
	PhoneNumber string     `json:"phone_number"`
	Amount      float64    `json:"amount"`
	Network     string     `json:"network"`
}

// BillDetail carries the commission breakdown for a vended reference.
// Amount - Commission is what the account was actually charged.
type BillDetail struct {
	Reference       string  `json:"reference"`
	Amount          float64 `json:"amount"`
	Commission      float64 `json:"commission"`
	TransactionDate string  `json:"transaction_date"`
	Product         string  `json:"product"`
}

type Balance struct {
	Currency  string  `json:"currency"`
	Available float64 `json:"available_balance"`
	Ledger    float64 `json:"ledger_balance"`
}

// Summary is a current-calendar-month aggregate. Backends without an
// aggregate endpoint report it as unavailable rather than erroring.
type Summary struct {
	Currency        string  `json:"currency"`
	TotalBilled     float64 `json:"sum_bills"`
	TotalCommission float64 `json:"sum_commission"`
	AirtimeCount    int64   `json:"count_airtime"`
}

type Admin struct {
	TelegramID int64  `db:"telegram_id"`
	Name       string `db:"name"`
}

// Schedule is a recurring purchase instruction replayed by the weekly runner.
type Schedule struct {
	Amount      int64  `db:"amount"`
	PhoneNumber string `db:"phone_number"`
}

type Credential struct {
	Username string `db:"username"`
	Password string `db:"password"`
}
