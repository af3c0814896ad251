package access

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

type guardFixture struct {
	stations   *mocks.MockStationRepository
	poles      *mocks.MockPoleRepository
	connectors *mocks.MockConnectorRepository
	rules      *mocks.MockPriceRuleRepository
	vehicles   *mocks.MockVehicleRepository
	sessions   *mocks.MockSessionRepository
	guard      *Guard
}

func newGuardFixture() *guardFixture {
	f := &guardFixture{
		stations:   &mocks.MockStationRepository{},
		poles:      &mocks.MockPoleRepository{},
		connectors: &mocks.MockConnectorRepository{},
		rules:      &mocks.MockPriceRuleRepository{},
		vehicles:   &mocks.MockVehicleRepository{},
		sessions:   &mocks.MockSessionRepository{},
	}
	f.guard = NewGuard(f.stations, f.poles, f.connectors, f.rules, f.vehicles, f.sessions, newTestLogger())
	return f
}

func TestVendorOwnsStation(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newGuardFixture()
	f.stations.FindByIDFunc = func(ctx context.Context, id string) (*domain.Station, error) {
		return &domain.Station{ID: id, VendorID: "vend-1"}, nil
	}

	// Act
	station, err := f.guard.VendorOwnsStation(ctx, "st-1", "vend-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if station.ID != "st-1" {
		t.Errorf("expected station st-1, got %s", station.ID)
	}

	// Act: a different vendor is rejected.
	_, err = f.guard.VendorOwnsStation(ctx, "st-1", "vend-2")

	// Assert
	if !domain.IsKind(err, domain.KindForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestVendorOwnsStation_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newGuardFixture()

	// Act
	_, err := f.guard.VendorOwnsStation(ctx, "missing", "vend-1")

	// Assert
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestVendorOwnsConnector_ResolvesTransitively(t *testing.T) {
	// Arrange: conn-1 -> pole-1 -> st-1 -> vend-1.
	ctx := context.Background()
	f := newGuardFixture()
	f.connectors.FindByIDFunc = func(ctx context.Context, id string) (*domain.Connector, error) {
		return &domain.Connector{ID: id, PoleID: "pole-1"}, nil
	}
	f.poles.FindByIDFunc = func(ctx context.Context, id string) (*domain.Pole, error) {
		return &domain.Pole{ID: id, StationID: "st-1"}, nil
	}
	f.stations.FindByIDFunc = func(ctx context.Context, id string) (*domain.Station, error) {
		return &domain.Station{ID: id, VendorID: "vend-1"}, nil
	}

	// Act
	connector, err := f.guard.VendorOwnsConnector(ctx, "conn-1", "vend-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if connector.ID != "conn-1" {
		t.Errorf("expected connector conn-1, got %s", connector.ID)
	}

	// Act: the chain fails at the vendor.
	_, err = f.guard.VendorOwnsConnector(ctx, "conn-1", "vend-2")

	// Assert
	if !domain.IsKind(err, domain.KindForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestVendorOwnsPriceRule_ResolvesTransitively(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newGuardFixture()
	f.rules.FindByIDFunc = func(ctx context.Context, id string) (*domain.PriceRule, error) {
		return &domain.PriceRule{ID: id, PoleID: "pole-1"}, nil
	}
	f.poles.FindByIDFunc = func(ctx context.Context, id string) (*domain.Pole, error) {
		return &domain.Pole{ID: id, StationID: "st-1"}, nil
	}
	f.stations.FindByIDFunc = func(ctx context.Context, id string) (*domain.Station, error) {
		return &domain.Station{ID: id, VendorID: "vend-1"}, nil
	}

	// Act
	rule, err := f.guard.VendorOwnsPriceRule(ctx, "rule-1", "vend-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rule.ID != "rule-1" {
		t.Errorf("expected rule rule-1, got %s", rule.ID)
	}
}

func TestCustomerOwnsVehicle(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newGuardFixture()
	f.vehicles.FindByIDFunc = func(ctx context.Context, id string) (*domain.Vehicle, error) {
		return &domain.Vehicle{ID: id, CustomerID: "cust-1"}, nil
	}

	// Act
	vehicle, err := f.guard.CustomerOwnsVehicle(ctx, "veh-1", "cust-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if vehicle.ID != "veh-1" {
		t.Errorf("expected vehicle veh-1, got %s", vehicle.ID)
	}

	// Act
	_, err = f.guard.CustomerOwnsVehicle(ctx, "veh-1", "cust-2")

	// Assert
	if !domain.IsKind(err, domain.KindForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestCustomerOwnsSession(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newGuardFixture()
	f.sessions.FindByIDFunc = func(ctx context.Context, id string) (*domain.ChargingSession, error) {
		return &domain.ChargingSession{ID: id, CustomerID: "cust-1"}, nil
	}

	// Act
	session, err := f.guard.CustomerOwnsSession(ctx, "sess-1", "cust-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.ID != "sess-1" {
		t.Errorf("expected session sess-1, got %s", session.ID)
	}
}
