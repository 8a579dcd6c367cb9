package ocr

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/shopspring/decimal"
)

// MockProvider fabricates a plausible suggestion without calling anything.
// Deterministic per URL so repeated scans of the same receipt agree, which
// keeps the override flow testable.
type MockProvider struct {
	now func() time.Time
}

func NewMockProvider() *MockProvider {
	return &MockProvider{now: time.Now}
}

func (m *MockProvider) ScanReceipt(_ context.Context, receiptURL string) (*Suggestion, error) {
	h := fnv.New32a()
	h.Write([]byte(receiptURL))
	seed := h.Sum32()

	// Amount in [50, 550), date within the last 30 days.
	cents := int64(5000 + seed%50000)
	daysAgo := int(seed % 30)

	return &Suggestion{
		Amount: decimal.New(cents, -2),
		Date:   m.now().AddDate(0, 0, -daysAgo).Truncate(24 * time.Hour),
	}, nil
}
