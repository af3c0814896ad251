package mocks

import (
	"context"
	"time"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

// MockPricingService is a mock implementation of PricingService
type MockPricingService struct {
	CreateFunc            func(ctx context.Context, vendorID string, in ports.CreatePriceRuleInput) (*domain.PriceRule, error)
	UpdateFunc            func(ctx context.Context, vendorID, ruleID string, in ports.UpdatePriceRuleInput) (*domain.PriceRule, error)
	DeleteFunc            func(ctx context.Context, vendorID, ruleID string) error
	ListByPoleFunc        func(ctx context.Context, poleID string) ([]domain.PriceRule, error)
	ResolveActiveRateFunc func(ctx context.Context, poleID string, name domain.PriceName, at time.Time) (*domain.PriceRule, error)
}

func (m *MockPricingService) Create(ctx context.Context, vendorID string, in ports.CreatePriceRuleInput) (*domain.PriceRule, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, vendorID, in)
	}
	return nil, nil
}

func (m *MockPricingService) Update(ctx context.Context, vendorID, ruleID string, in ports.UpdatePriceRuleInput) (*domain.PriceRule, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, vendorID, ruleID, in)
	}
	return nil, nil
}

func (m *MockPricingService) Delete(ctx context.Context, vendorID, ruleID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, vendorID, ruleID)
	}
	return nil
}

func (m *MockPricingService) ListByPole(ctx context.Context, poleID string) ([]domain.PriceRule, error) {
	if m.ListByPoleFunc != nil {
		return m.ListByPoleFunc(ctx, poleID)
	}
	return []domain.PriceRule{}, nil
}

func (m *MockPricingService) ResolveActiveRate(ctx context.Context, poleID string, name domain.PriceName, at time.Time) (*domain.PriceRule, error) {
	if m.ResolveActiveRateFunc != nil {
		return m.ResolveActiveRateFunc(ctx, poleID, name, at)
	}
	return nil, nil
}

// MockEmailService is a mock implementation of EmailService
type MockEmailService struct {
	SendFunc                  func(ctx context.Context, to, subject, body string) error
	SendChargingCompletedFunc func(ctx context.Context, user *domain.User, session *domain.ChargingSession) error
}

func (m *MockEmailService) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}
	return nil
}

func (m *MockEmailService) SendChargingCompleted(ctx context.Context, user *domain.User, session *domain.ChargingSession) error {
	if m.SendChargingCompletedFunc != nil {
		return m.SendChargingCompletedFunc(ctx, user, session)
	}
	return nil
}

// MockPaymentProvider is a mock implementation of PaymentProvider
type MockPaymentProvider struct {
	ChargeFunc func(ctx context.Context, customerID string, amount float64, currency, description string) (string, error)
}

func (m *MockPaymentProvider) Charge(ctx context.Context, customerID string, amount float64, currency, description string) (string, error) {
	if m.ChargeFunc != nil {
		return m.ChargeFunc(ctx, customerID, amount, currency, description)
	}
	return "ch_mock", nil
}
