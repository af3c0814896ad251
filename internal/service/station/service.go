package station

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
	"github.com/duongdanghoc/charging-station-manager/internal/service/access"
)

type Service struct {
	stations   ports.StationRepository
	poles      ports.PoleRepository
	connectors ports.ConnectorRepository
	guard      *access.Guard
	log        *zap.Logger
}

func NewService(
	stations ports.StationRepository,
	poles ports.PoleRepository,
	connectors ports.ConnectorRepository,
	guard *access.Guard,
	log *zap.Logger,
) ports.StationService {
	return &Service{
		stations:   stations,
		poles:      poles,
		connectors: connectors,
		guard:      guard,
		log:        log,
	}
}

func (s *Service) Create(ctx context.Context, vendorID string, station *domain.Station) (*domain.Station, error) {
	if station.Name == "" {
		return nil, domain.InvalidInput("station name is required")
	}
	station.ID = uuid.New().String()
	station.VendorID = vendorID
	station.Status = domain.StationStatusActive
	station.CreatedAt = time.Now()
	station.UpdatedAt = time.Now()

	if err := s.stations.Save(ctx, station); err != nil {
		return nil, fmt.Errorf("failed to save station: %w", err)
	}
	s.log.Info("station created", zap.String("station_id", station.ID), zap.String("vendor_id", vendorID))
	return station, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Station, error) {
	station, err := s.stations.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find station: %w", err)
	}
	if station == nil {
		return nil, domain.NotFound("station %s not found", id)
	}
	return station, nil
}

func (s *Service) ListByVendor(ctx context.Context, vendorID string) ([]domain.Station, error) {
	return s.stations.FindByVendorID(ctx, vendorID)
}

func (s *Service) Update(ctx context.Context, vendorID string, station *domain.Station) (*domain.Station, error) {
	existing, err := s.guard.VendorOwnsStation(ctx, station.ID, vendorID)
	if err != nil {
		return nil, err
	}
	if station.Name != "" {
		existing.Name = station.Name
	}
	if station.Address != "" {
		existing.Address = station.Address
	}
	if station.Latitude != 0 {
		existing.Latitude = station.Latitude
	}
	if station.Longitude != 0 {
		existing.Longitude = station.Longitude
	}
	if station.Status != "" {
		existing.Status = station.Status
	}
	existing.UpdatedAt = time.Now()

	if err := s.stations.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to save station: %w", err)
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, vendorID, stationID string) error {
	if _, err := s.guard.VendorOwnsStation(ctx, stationID, vendorID); err != nil {
		return err
	}
	poles, err := s.poles.FindByStationID(ctx, stationID)
	if err != nil {
		return fmt.Errorf("failed to list poles: %w", err)
	}
	if len(poles) > 0 {
		return domain.Conflict("station %s still has poles", stationID)
	}
	if err := s.stations.Delete(ctx, stationID); err != nil {
		return fmt.Errorf("failed to delete station: %w", err)
	}
	s.log.Info("station deleted", zap.String("station_id", stationID))
	return nil
}

func (s *Service) CreatePole(ctx context.Context, vendorID string, pole *domain.Pole) (*domain.Pole, error) {
	if _, err := s.guard.VendorOwnsStation(ctx, pole.StationID, vendorID); err != nil {
		return nil, err
	}
	if pole.MaxPowerKW <= 0 {
		return nil, domain.InvalidInput("pole max power must be positive")
	}

	pole.ID = uuid.New().String()
	pole.ConnectorCount = 0
	if pole.InstallDate.IsZero() {
		pole.InstallDate = time.Now()
	}
	pole.CreatedAt = time.Now()
	pole.UpdatedAt = time.Now()

	if err := s.poles.Save(ctx, pole); err != nil {
		return nil, fmt.Errorf("failed to save pole: %w", err)
	}
	s.log.Info("pole created", zap.String("pole_id", pole.ID), zap.String("station_id", pole.StationID))
	return pole, nil
}

func (s *Service) GetPole(ctx context.Context, id string) (*domain.Pole, error) {
	pole, err := s.poles.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find pole: %w", err)
	}
	if pole == nil {
		return nil, domain.NotFound("pole %s not found", id)
	}
	return pole, nil
}

func (s *Service) ListPoles(ctx context.Context, stationID string) ([]domain.Pole, error) {
	return s.poles.FindByStationID(ctx, stationID)
}

// DeletePole refuses while any connector on the pole is not retired.
func (s *Service) DeletePole(ctx context.Context, vendorID, poleID string) error {
	if _, err := s.guard.VendorOwnsPole(ctx, poleID, vendorID); err != nil {
		return err
	}
	connectors, err := s.connectors.FindByPoleID(ctx, poleID)
	if err != nil {
		return fmt.Errorf("failed to list connectors: %w", err)
	}
	for i := range connectors {
		if !connectors[i].Retired() {
			return domain.Conflict("pole %s still has active connectors", poleID)
		}
	}
	if err := s.poles.Delete(ctx, poleID); err != nil {
		return fmt.Errorf("failed to delete pole: %w", err)
	}
	s.log.Info("pole deleted", zap.String("pole_id", poleID))
	return nil
}
