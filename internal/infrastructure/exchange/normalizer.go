package exchange

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Normalizer converts an amount into the company's base currency. It fails
// open: a submitted expense must never be blocked by a transient rate
// outage, so on lookup failure the raw amount is returned with degraded
// set, and the caller flags the stored value as unreliable.
type Normalizer struct {
	provider RateProvider
}

func NewNormalizer(provider RateProvider) *Normalizer {
	return &Normalizer{provider: provider}
}

// Normalize returns the converted amount and whether conversion was
// degraded. Identity conversions never touch the provider.
func (n *Normalizer) Normalize(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	if from == to {
		return amount, false
	}

	rate, err := n.provider.GetRate(ctx, from, to)
	if err != nil {
		slog.Warn("currency conversion degraded, storing raw amount",
			"from", from, "to", to, "error", err)
		return amount, true
	}
	return amount.Mul(rate).Round(2), false
}
