package station

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/mocks"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
	"github.com/duongdanghoc/charging-station-manager/internal/service/access"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

type stationFixture struct {
	stations   *mocks.MockStationRepository
	poles      *mocks.MockPoleRepository
	connectors *mocks.MockConnectorRepository
	service    ports.StationService
}

func newStationFixture() *stationFixture {
	f := &stationFixture{
		stations:   &mocks.MockStationRepository{},
		poles:      &mocks.MockPoleRepository{},
		connectors: &mocks.MockConnectorRepository{},
	}
	guard := access.NewGuard(f.stations, f.poles, f.connectors, &mocks.MockPriceRuleRepository{}, &mocks.MockVehicleRepository{}, &mocks.MockSessionRepository{}, newTestLogger())
	f.service = NewService(f.stations, f.poles, f.connectors, guard, newTestLogger())
	return f
}

func TestCreateStation_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newStationFixture()
	var saved *domain.Station
	f.stations.SaveFunc = func(ctx context.Context, s *domain.Station) error {
		saved = s
		return nil
	}

	// Act
	station, err := f.service.Create(ctx, "vend-1", &domain.Station{
		Name:    "District 1 Hub",
		Address: "12 Nguyen Hue",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if station.VendorID != "vend-1" {
		t.Errorf("expected vendor vend-1, got %s", station.VendorID)
	}
	if station.Status != domain.StationStatusActive {
		t.Errorf("expected status ACTIVE, got %s", station.Status)
	}
	if saved == nil {
		t.Error("expected station to be persisted")
	}
}

func TestCreateStation_MissingName(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newStationFixture()

	// Act
	_, err := f.service.Create(ctx, "vend-1", &domain.Station{Address: "12 Nguyen Hue"})

	// Assert
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestUpdateStation_NotOwner(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newStationFixture()
	f.stations.FindByIDFunc = func(ctx context.Context, id string) (*domain.Station, error) {
		return &domain.Station{ID: id, VendorID: "someone-else"}, nil
	}

	// Act
	_, err := f.service.Update(ctx, "vend-1", &domain.Station{ID: "st-1", Name: "Renamed"})

	// Assert
	if !domain.IsKind(err, domain.KindForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestDeleteStation_BlockedByPoles(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newStationFixture()
	f.stations.FindByIDFunc = func(ctx context.Context, id string) (*domain.Station, error) {
		return &domain.Station{ID: id, VendorID: "vend-1"}, nil
	}
	f.poles.FindByStationIDFunc = func(ctx context.Context, stationID string) ([]domain.Pole, error) {
		return []domain.Pole{{ID: "pole-1", StationID: stationID}}, nil
	}

	// Act
	err := f.service.Delete(ctx, "vend-1", "st-1")

	// Assert
	if !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestDeleteStation_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newStationFixture()
	f.stations.FindByIDFunc = func(ctx context.Context, id string) (*domain.Station, error) {
		return &domain.Station{ID: id, VendorID: "vend-1"}, nil
	}
	deleted := false
	f.stations.DeleteFunc = func(ctx context.Context, id string) error {
		deleted = true
		return nil
	}

	// Act
	err := f.service.Delete(ctx, "vend-1", "st-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !deleted {
		t.Error("expected station to be deleted")
	}
}

func TestCreatePole_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newStationFixture()
	f.stations.FindByIDFunc = func(ctx context.Context, id string) (*domain.Station, error) {
		return &domain.Station{ID: id, VendorID: "vend-1"}, nil
	}
	var saved *domain.Pole
	f.poles.SaveFunc = func(ctx context.Context, p *domain.Pole) error {
		saved = p
		return nil
	}

	// Act
	pole, err := f.service.CreatePole(ctx, "vend-1", &domain.Pole{
		StationID:    "st-1",
		Manufacturer: "ABB",
		MaxPowerKW:   22,
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pole.ConnectorCount != 0 {
		t.Errorf("expected zero connectors on a new pole, got %d", pole.ConnectorCount)
	}
	if pole.InstallDate.IsZero() {
		t.Error("expected install date to default to now")
	}
	if saved == nil {
		t.Error("expected pole to be persisted")
	}
}

func TestCreatePole_NonPositivePower(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newStationFixture()
	f.stations.FindByIDFunc = func(ctx context.Context, id string) (*domain.Station, error) {
		return &domain.Station{ID: id, VendorID: "vend-1"}, nil
	}

	// Act
	_, err := f.service.CreatePole(ctx, "vend-1", &domain.Pole{StationID: "st-1", MaxPowerKW: 0})

	// Assert
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestDeletePole_BlockedByActiveConnectors(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newStationFixture()
	f.stations.FindByIDFunc = func(ctx context.Context, id string) (*domain.Station, error) {
		return &domain.Station{ID: id, VendorID: "vend-1"}, nil
	}
	f.poles.FindByIDFunc = func(ctx context.Context, id string) (*domain.Pole, error) {
		return &domain.Pole{ID: id, StationID: "st-1"}, nil
	}
	f.connectors.FindByPoleIDFunc = func(ctx context.Context, poleID string) ([]domain.Connector, error) {
		return []domain.Connector{{ID: "conn-1", PoleID: poleID, Status: domain.ConnectorStatusAvailable}}, nil
	}

	// Act
	err := f.service.DeletePole(ctx, "vend-1", "pole-1")

	// Assert
	if !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestDeletePole_RetiredConnectorsAllowed(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newStationFixture()
	f.stations.FindByIDFunc = func(ctx context.Context, id string) (*domain.Station, error) {
		return &domain.Station{ID: id, VendorID: "vend-1"}, nil
	}
	f.poles.FindByIDFunc = func(ctx context.Context, id string) (*domain.Pole, error) {
		return &domain.Pole{ID: id, StationID: "st-1"}, nil
	}
	f.connectors.FindByPoleIDFunc = func(ctx context.Context, poleID string) ([]domain.Connector, error) {
		return []domain.Connector{{ID: "conn-1", PoleID: poleID, Status: domain.ConnectorStatusOutOfService}}, nil
	}
	deleted := false
	f.poles.DeleteFunc = func(ctx context.Context, id string) error {
		deleted = true
		return nil
	}

	// Act
	err := f.service.DeletePole(ctx, "vend-1", "pole-1")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !deleted {
		t.Error("expected pole to be deleted")
	}
}
