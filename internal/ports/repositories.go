package ports

import (
	"context"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
)

// Repositories convention: lookups return (nil, nil) when the row does not
// exist; errors are reserved for storage failures.

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type VehicleRepository interface {
	Save(ctx context.Context, vehicle *domain.Vehicle) error
	FindByID(ctx context.Context, id string) (*domain.Vehicle, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type StationRepository interface {
	Save(ctx context.Context, station *domain.Station) error
	FindByID(ctx context.Context, id string) (*domain.Station, error)
	FindByVendorID(ctx context.Context, vendorID string) ([]domain.Station, error)
	Delete(ctx context.Context, id string) error
}

type PoleRepository interface {
	Save(ctx context.Context, pole *domain.Pole) error
	FindByID(ctx context.Context, id string) (*domain.Pole, error)
	FindByStationID(ctx context.Context, stationID string) ([]domain.Pole, error)
	Delete(ctx context.Context, id string) error
}

type ConnectorRepository interface {
	Save(ctx context.Context, connector *domain.Connector) error
	FindByID(ctx context.Context, id string) (*domain.Connector, error)
	// FindByIDForUpdate locks the connector row for the remainder of the
	// surrounding transaction. Only meaningful inside TxManager.WithinTx.
	FindByIDForUpdate(ctx context.Context, id string) (*domain.Connector, error)
	FindByPoleID(ctx context.Context, poleID string) ([]domain.Connector, error)
	CountActiveByPoleID(ctx context.Context, poleID string) (int, error)
	Delete(ctx context.Context, id string) error
}

type PriceRuleRepository interface {
	Save(ctx context.Context, rule *domain.PriceRule) error
	FindByID(ctx context.Context, id string) (*domain.PriceRule, error)
	FindByPoleID(ctx context.Context, poleID string) ([]domain.PriceRule, error)
	FindByPoleAndName(ctx context.Context, poleID string, name domain.PriceName) ([]domain.PriceRule, error)
	Delete(ctx context.Context, id string) error
}

type SessionRepository interface {
	Save(ctx context.Context, session *domain.ChargingSession) error
	Update(ctx context.Context, session *domain.ChargingSession) error
	FindByID(ctx context.Context, id string) (*domain.ChargingSession, error)
	FindActiveByCustomerID(ctx context.Context, customerID string) (*domain.ChargingSession, error)
	FindActiveByConnectorID(ctx context.Context, connectorID string) (*domain.ChargingSession, error)
	// HasAnyByConnectorID reports whether any session, in any status, ever
	// referenced the connector. Drives the soft-vs-hard delete branch.
	HasAnyByConnectorID(ctx context.Context, connectorID string) (bool, error)
	FindHistoryByCustomerID(ctx context.Context, customerID string, page domain.PageRequest) (*domain.Page[domain.ChargingSession], error)
}

type PaymentRepository interface {
	Save(ctx context.Context, tx *domain.PaymentTransaction) error
	Update(ctx context.Context, tx *domain.PaymentTransaction) error
	FindByID(ctx context.Context, id string) (*domain.PaymentTransaction, error)
	FindBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error)
	FindByCustomerID(ctx context.Context, customerID string, page domain.PageRequest) (*domain.Page[domain.PaymentTransaction], error)
}

// Repositories bundles everything a transactional unit of work may touch.
type Repositories struct {
	Users      UserRepository
	Vehicles   VehicleRepository
	Stations   StationRepository
	Poles      PoleRepository
	Connectors ConnectorRepository
	PriceRules PriceRuleRepository
	Sessions   SessionRepository
	Payments   PaymentRepository
}

// TxManager runs fn inside a single database transaction. The Repositories
// handed to fn are bound to that transaction; fn returning an error rolls
// everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, r *Repositories) error) error
}
