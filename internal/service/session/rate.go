package session

import (
	"context"
	"time"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

// DefaultPricePerKwh is the legacy fixed charging rate. Stop-time cost
// calculation historically ignored the price table and used this constant;
// TableRateResolver is the seam to switch that behavior per deployment.
const DefaultPricePerKwh = 3000.0

// RateResolver yields the per-kWh rate applicable to a pole at an instant.
type RateResolver interface {
	RatePerKwh(ctx context.Context, poleID string, at time.Time) (float64, error)
}

// FixedRateResolver always returns a constant rate.
type FixedRateResolver struct {
	Rate float64
}

func NewFixedRateResolver(rate float64) *FixedRateResolver {
	if rate <= 0 {
		rate = DefaultPricePerKwh
	}
	return &FixedRateResolver{Rate: rate}
}

func (r *FixedRateResolver) RatePerKwh(ctx context.Context, poleID string, at time.Time) (float64, error) {
	return r.Rate, nil
}

// TableRateResolver consults the price table for the CHARGING rule active
// at the instant, falling back to a fixed rate when no rule covers it.
type TableRateResolver struct {
	pricing  ports.PricingService
	fallback float64
}

func NewTableRateResolver(pricing ports.PricingService, fallback float64) *TableRateResolver {
	if fallback <= 0 {
		fallback = DefaultPricePerKwh
	}
	return &TableRateResolver{pricing: pricing, fallback: fallback}
}

func (r *TableRateResolver) RatePerKwh(ctx context.Context, poleID string, at time.Time) (float64, error) {
	rule, err := r.pricing.ResolveActiveRate(ctx, poleID, domain.PriceNameCharging, at)
	if err != nil {
		return 0, err
	}
	if rule == nil {
		return r.fallback, nil
	}
	return rule.Price, nil
}
