package payment

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

// StripeProvider charges session costs through Stripe PaymentIntents.
type StripeProvider struct {
	log *zap.Logger
}

func NewStripeProvider(apiKey string, log *zap.Logger) ports.PaymentProvider {
	stripe.Key = apiKey
	return &StripeProvider{
		log: log,
	}
}

// Charge creates and auto-confirms a payment intent for the given amount.
// The returned ID is Stripe's charge reference, stored on the transaction.
func (s *StripeProvider) Charge(ctx context.Context, customerID string, amount float64, currency, description string) (string, error) {
	if amount <= 0 {
		return "", errors.New("invalid amount")
	}

	s.log.Info("Creating payment intent",
		zap.Float64("amount", amount),
		zap.String("currency", currency),
		zap.String("customer_id", customerID),
	)

	params := &stripe.PaymentIntentParams{
		// Stripe expects the amount in the currency's smallest unit.
		Amount:      stripe.Int64(int64(amount * 100)),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
		Confirm:     stripe.Bool(true),
	}
	if customerID != "" {
		params.Customer = stripe.String(customerID)
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		s.log.Error("Failed to create payment intent", zap.Error(err))
		return "", fmt.Errorf("stripe: create payment intent: %w", err)
	}

	s.log.Info("Payment intent created",
		zap.String("payment_intent_id", pi.ID),
		zap.String("status", string(pi.Status)),
	)

	return pi.ID, nil
}
