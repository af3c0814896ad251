package mocks

import (
	"context"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	SaveFunc        func(ctx context.Context, user *domain.User) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *MockUserRepository) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

// MockVehicleRepository is a mock implementation of VehicleRepository
type MockVehicleRepository struct {
	SaveFunc             func(ctx context.Context, vehicle *domain.Vehicle) error
	FindByIDFunc         func(ctx context.Context, id string) (*domain.Vehicle, error)
	FindByCustomerIDFunc func(ctx context.Context, customerID string) ([]domain.Vehicle, error)
	DeleteFunc           func(ctx context.Context, id string) error
}

func (m *MockVehicleRepository) Save(ctx context.Context, vehicle *domain.Vehicle) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, vehicle)
	}
	return nil
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockVehicleRepository) FindByCustomerID(ctx context.Context, customerID string) ([]domain.Vehicle, error) {
	if m.FindByCustomerIDFunc != nil {
		return m.FindByCustomerIDFunc(ctx, customerID)
	}
	return []domain.Vehicle{}, nil
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockStationRepository is a mock implementation of StationRepository
type MockStationRepository struct {
	SaveFunc           func(ctx context.Context, station *domain.Station) error
	FindByIDFunc       func(ctx context.Context, id string) (*domain.Station, error)
	FindByVendorIDFunc func(ctx context.Context, vendorID string) ([]domain.Station, error)
	DeleteFunc         func(ctx context.Context, id string) error
}

func (m *MockStationRepository) Save(ctx context.Context, station *domain.Station) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, station)
	}
	return nil
}

func (m *MockStationRepository) FindByID(ctx context.Context, id string) (*domain.Station, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStationRepository) FindByVendorID(ctx context.Context, vendorID string) ([]domain.Station, error) {
	if m.FindByVendorIDFunc != nil {
		return m.FindByVendorIDFunc(ctx, vendorID)
	}
	return []domain.Station{}, nil
}

func (m *MockStationRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockPoleRepository is a mock implementation of PoleRepository
type MockPoleRepository struct {
	SaveFunc            func(ctx context.Context, pole *domain.Pole) error
	FindByIDFunc        func(ctx context.Context, id string) (*domain.Pole, error)
	FindByStationIDFunc func(ctx context.Context, stationID string) ([]domain.Pole, error)
	DeleteFunc          func(ctx context.Context, id string) error
}

func (m *MockPoleRepository) Save(ctx context.Context, pole *domain.Pole) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, pole)
	}
	return nil
}

func (m *MockPoleRepository) FindByID(ctx context.Context, id string) (*domain.Pole, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPoleRepository) FindByStationID(ctx context.Context, stationID string) ([]domain.Pole, error) {
	if m.FindByStationIDFunc != nil {
		return m.FindByStationIDFunc(ctx, stationID)
	}
	return []domain.Pole{}, nil
}

func (m *MockPoleRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockConnectorRepository is a mock implementation of ConnectorRepository
type MockConnectorRepository struct {
	SaveFunc                func(ctx context.Context, connector *domain.Connector) error
	FindByIDFunc            func(ctx context.Context, id string) (*domain.Connector, error)
	FindByIDForUpdateFunc   func(ctx context.Context, id string) (*domain.Connector, error)
	FindByPoleIDFunc        func(ctx context.Context, poleID string) ([]domain.Connector, error)
	CountActiveByPoleIDFunc func(ctx context.Context, poleID string) (int, error)
	DeleteFunc              func(ctx context.Context, id string) error
}

func (m *MockConnectorRepository) Save(ctx context.Context, connector *domain.Connector) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, connector)
	}
	return nil
}

func (m *MockConnectorRepository) FindByID(ctx context.Context, id string) (*domain.Connector, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockConnectorRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.Connector, error) {
	if m.FindByIDForUpdateFunc != nil {
		return m.FindByIDForUpdateFunc(ctx, id)
	}
	// Fall through to the plain lookup so tests only stub one of them.
	return m.FindByID(ctx, id)
}

func (m *MockConnectorRepository) FindByPoleID(ctx context.Context, poleID string) ([]domain.Connector, error) {
	if m.FindByPoleIDFunc != nil {
		return m.FindByPoleIDFunc(ctx, poleID)
	}
	return []domain.Connector{}, nil
}

func (m *MockConnectorRepository) CountActiveByPoleID(ctx context.Context, poleID string) (int, error) {
	if m.CountActiveByPoleIDFunc != nil {
		return m.CountActiveByPoleIDFunc(ctx, poleID)
	}
	return 0, nil
}

func (m *MockConnectorRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockPriceRuleRepository is a mock implementation of PriceRuleRepository
type MockPriceRuleRepository struct {
	SaveFunc              func(ctx context.Context, rule *domain.PriceRule) error
	FindByIDFunc          func(ctx context.Context, id string) (*domain.PriceRule, error)
	FindByPoleIDFunc      func(ctx context.Context, poleID string) ([]domain.PriceRule, error)
	FindByPoleAndNameFunc func(ctx context.Context, poleID string, name domain.PriceName) ([]domain.PriceRule, error)
	DeleteFunc            func(ctx context.Context, id string) error
}

func (m *MockPriceRuleRepository) Save(ctx context.Context, rule *domain.PriceRule) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, rule)
	}
	return nil
}

func (m *MockPriceRuleRepository) FindByID(ctx context.Context, id string) (*domain.PriceRule, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPriceRuleRepository) FindByPoleID(ctx context.Context, poleID string) ([]domain.PriceRule, error) {
	if m.FindByPoleIDFunc != nil {
		return m.FindByPoleIDFunc(ctx, poleID)
	}
	return []domain.PriceRule{}, nil
}

func (m *MockPriceRuleRepository) FindByPoleAndName(ctx context.Context, poleID string, name domain.PriceName) ([]domain.PriceRule, error) {
	if m.FindByPoleAndNameFunc != nil {
		return m.FindByPoleAndNameFunc(ctx, poleID, name)
	}
	return []domain.PriceRule{}, nil
}

func (m *MockPriceRuleRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	SaveFunc                    func(ctx context.Context, session *domain.ChargingSession) error
	UpdateFunc                  func(ctx context.Context, session *domain.ChargingSession) error
	FindByIDFunc                func(ctx context.Context, id string) (*domain.ChargingSession, error)
	FindActiveByCustomerIDFunc  func(ctx context.Context, customerID string) (*domain.ChargingSession, error)
	FindActiveByConnectorIDFunc func(ctx context.Context, connectorID string) (*domain.ChargingSession, error)
	HasAnyByConnectorIDFunc     func(ctx context.Context, connectorID string) (bool, error)
	FindHistoryByCustomerIDFunc func(ctx context.Context, customerID string, page domain.PageRequest) (*domain.Page[domain.ChargingSession], error)
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.ChargingSession) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) Update(ctx context.Context, session *domain.ChargingSession) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id string) (*domain.ChargingSession, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockSessionRepository) FindActiveByCustomerID(ctx context.Context, customerID string) (*domain.ChargingSession, error) {
	if m.FindActiveByCustomerIDFunc != nil {
		return m.FindActiveByCustomerIDFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *MockSessionRepository) FindActiveByConnectorID(ctx context.Context, connectorID string) (*domain.ChargingSession, error) {
	if m.FindActiveByConnectorIDFunc != nil {
		return m.FindActiveByConnectorIDFunc(ctx, connectorID)
	}
	return nil, nil
}

func (m *MockSessionRepository) HasAnyByConnectorID(ctx context.Context, connectorID string) (bool, error) {
	if m.HasAnyByConnectorIDFunc != nil {
		return m.HasAnyByConnectorIDFunc(ctx, connectorID)
	}
	return false, nil
}

func (m *MockSessionRepository) FindHistoryByCustomerID(ctx context.Context, customerID string, page domain.PageRequest) (*domain.Page[domain.ChargingSession], error) {
	if m.FindHistoryByCustomerIDFunc != nil {
		return m.FindHistoryByCustomerIDFunc(ctx, customerID, page)
	}
	page = page.Normalize()
	return &domain.Page[domain.ChargingSession]{
		Items:    []domain.ChargingSession{},
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	SaveFunc             func(ctx context.Context, tx *domain.PaymentTransaction) error
	UpdateFunc           func(ctx context.Context, tx *domain.PaymentTransaction) error
	FindByIDFunc         func(ctx context.Context, id string) (*domain.PaymentTransaction, error)
	FindBySessionIDFunc  func(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error)
	FindByCustomerIDFunc func(ctx context.Context, customerID string, page domain.PageRequest) (*domain.Page[domain.PaymentTransaction], error)
}

func (m *MockPaymentRepository) Save(ctx context.Context, tx *domain.PaymentTransaction) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx)
	}
	return nil
}

func (m *MockPaymentRepository) Update(ctx context.Context, tx *domain.PaymentTransaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx)
	}
	return nil
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id string) (*domain.PaymentTransaction, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPaymentRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error) {
	if m.FindBySessionIDFunc != nil {
		return m.FindBySessionIDFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *MockPaymentRepository) FindByCustomerID(ctx context.Context, customerID string, page domain.PageRequest) (*domain.Page[domain.PaymentTransaction], error) {
	if m.FindByCustomerIDFunc != nil {
		return m.FindByCustomerIDFunc(ctx, customerID, page)
	}
	page = page.Normalize()
	return &domain.Page[domain.PaymentTransaction]{
		Items:    []domain.PaymentTransaction{},
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}
