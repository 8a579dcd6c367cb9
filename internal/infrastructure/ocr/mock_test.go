package ocr

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderDeterministic(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	m := &MockProvider{now: func() time.Time { return fixed }}
	ctx := context.Background()

	first, err := m.ScanReceipt(ctx, "https://receipts.test/a.jpg")
	require.NoError(t, err)
	second, err := m.ScanReceipt(ctx, "https://receipts.test/a.jpg")
	require.NoError(t, err)

	assert.True(t, first.Amount.Equal(second.Amount))
	assert.Equal(t, first.Date, second.Date)

	other, err := m.ScanReceipt(ctx, "https://receipts.test/b.jpg")
	require.NoError(t, err)
	assert.False(t, first.Amount.Equal(other.Amount) && first.Date.Equal(other.Date),
		"different receipts should not collide on both fields")
}

func TestMockProviderBounds(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	m := &MockProvider{now: func() time.Time { return fixed }}

	for _, url := range []string{"r1", "r2", "r3", "a-much-longer-receipt-url.png"} {
		s, err := m.ScanReceipt(context.Background(), url)
		require.NoError(t, err)
		assert.True(t, s.Amount.GreaterThanOrEqual(decimal.NewFromInt(50)), "%s: %s", url, s.Amount)
		assert.True(t, s.Amount.LessThan(decimal.NewFromInt(550)), "%s: %s", url, s.Amount)
		assert.False(t, s.Date.After(fixed))
		assert.False(t, s.Date.Before(fixed.AddDate(0, 0, -30)))
	}
}
