package ports

import (
	"context"
	"time"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, error) // access, refresh, err
	Register(ctx context.Context, user *domain.User) error
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

type StationService interface {
	Create(ctx context.Context, vendorID string, station *domain.Station) (*domain.Station, error)
	Get(ctx context.Context, id string) (*domain.Station, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Station, error)
	Update(ctx context.Context, vendorID string, station *domain.Station) (*domain.Station, error)
	Delete(ctx context.Context, vendorID, stationID string) error

	CreatePole(ctx context.Context, vendorID string, pole *domain.Pole) (*domain.Pole, error)
	GetPole(ctx context.Context, id string) (*domain.Pole, error)
	ListPoles(ctx context.Context, stationID string) ([]domain.Pole, error)
	DeletePole(ctx context.Context, vendorID, poleID string) error
}

// ConnectorService is the connector registry: it owns connector lifecycle
// and the pole capacity invariant.
type ConnectorService interface {
	Create(ctx context.Context, vendorID, poleID string, connType domain.ConnectorType, maxPowerKW float64) (*domain.Connector, error)
	UpdateStatus(ctx context.Context, vendorID, connectorID string, status domain.ConnectorStatus) (*domain.Connector, error)
	Delete(ctx context.Context, vendorID, connectorID string) error
	ListByPole(ctx context.Context, poleID string) ([]domain.Connector, error)
	IsInUse(ctx context.Context, connectorID string) (bool, error)
}

type CreatePriceRuleInput struct {
	PoleID        string
	Name          domain.PriceName
	Price         float64
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	StartMinute   domain.MinuteOfDay
	EndMinute     domain.MinuteOfDay
}

// UpdatePriceRuleInput carries a partial update; nil fields keep the
// current value.
type UpdatePriceRuleInput struct {
	Price         *float64
	EffectiveFrom *time.Time
	EffectiveTo   **time.Time
	StartMinute   *domain.MinuteOfDay
	EndMinute     *domain.MinuteOfDay
}

type PricingService interface {
	Create(ctx context.Context, vendorID string, in CreatePriceRuleInput) (*domain.PriceRule, error)
	Update(ctx context.Context, vendorID, ruleID string, in UpdatePriceRuleInput) (*domain.PriceRule, error)
	Delete(ctx context.Context, vendorID, ruleID string) error
	ListByPole(ctx context.Context, poleID string) ([]domain.PriceRule, error)
	ResolveActiveRate(ctx context.Context, poleID string, name domain.PriceName, at time.Time) (*domain.PriceRule, error)
}

type SessionService interface {
	Start(ctx context.Context, customerID, connectorID, vehicleID string) (*domain.ChargingSession, error)
	Stop(ctx context.Context, customerID, sessionID string) (*domain.ChargingSession, error)
	GetCurrent(ctx context.Context, customerID string) (*domain.ChargingSession, error)
	GetHistory(ctx context.Context, customerID string, page domain.PageRequest) (*domain.Page[domain.ChargingSession], error)
}

type VehicleService interface {
	Create(ctx context.Context, customerID string, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	Get(ctx context.Context, customerID, vehicleID string) (*domain.Vehicle, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Vehicle, error)
	Update(ctx context.Context, customerID string, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	Delete(ctx context.Context, customerID, vehicleID string) error
}

type PaymentService interface {
	SettleSession(ctx context.Context, customerID, sessionID string, method domain.PaymentMethod) (*domain.PaymentTransaction, error)
	Get(ctx context.Context, id string) (*domain.PaymentTransaction, error)
	ListByCustomer(ctx context.Context, customerID string, page domain.PageRequest) (*domain.Page[domain.PaymentTransaction], error)
}

// PaymentProvider is the outbound port to the card processor.
type PaymentProvider interface {
	Charge(ctx context.Context, customerID string, amount float64, currency, description string) (string, error)
}

type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
	SendChargingCompleted(ctx context.Context, user *domain.User, session *domain.ChargingSession) error
}
