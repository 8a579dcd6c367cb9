package ocr

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Suggestion is a best-effort (amount, date) pair extracted from a receipt.
// The submitter can always override it; nothing downstream trusts it.
type Suggestion struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// Provider extracts a suggestion from an uploaded receipt image.
type Provider interface {
	ScanReceipt(ctx context.Context, receiptURL string) (*Suggestion, error)
}
