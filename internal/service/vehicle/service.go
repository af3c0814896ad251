package vehicle

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

// Service manages the customer's vehicle fleet.
type Service struct {
	vehicles ports.VehicleRepository
	sessions ports.SessionRepository
	guard    *access.Guard
	log      *zap.Logger
}

func NewService(
	vehicles ports.VehicleRepository,
	sessions ports.SessionRepository,
	guard *access.Guard,
	log *zap.Logger,
) ports.VehicleService {
	return &Service{
		vehicles: vehicles,
		sessions: sessions,
		guard:    guard,
		log:      log,
	}
}

func (s *Service) Create(ctx context.Context, customerID string, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if vehicle.Plate == "" {
		return nil, domain.InvalidInput("vehicle plate is required")
	}
	if vehicle.BatteryCapacityKwh < 0 {
		return nil, domain.InvalidInput("battery capacity must not be negative")
	}

	now := time.Now()
	vehicle.ID = uuid.New().String()
	vehicle.CustomerID = customerID
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now

	if err := s.vehicles.Save(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to save vehicle: %w", err)
	}

	s.log.Info("vehicle registered",
		zap.String("vehicle_id", vehicle.ID),
		zap.String("customer_id", customerID),
	)
	return vehicle, nil
}

func (s *Service) Get(ctx context.Context, customerID, vehicleID string) (*domain.Vehicle, error) {
	return s.guard.CustomerOwnsVehicle(ctx, vehicleID, customerID)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]domain.Vehicle, error) {
	return s.vehicles.FindByCustomerID(ctx, customerID)
}

func (s *Service) Update(ctx context.Context, customerID string, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	existing, err := s.guard.CustomerOwnsVehicle(ctx, vehicle.ID, customerID)
	if err != nil {
		return nil, err
	}

	if vehicle.Plate != "" {
		existing.Plate = vehicle.Plate
	}
	if vehicle.Brand != "" {
		existing.Brand = vehicle.Brand
	}
	if vehicle.Model != "" {
		existing.Model = vehicle.Model
	}
	if vehicle.BatteryCapacityKwh > 0 {
		existing.BatteryCapacityKwh = vehicle.BatteryCapacityKwh
	}
	existing.UpdatedAt = time.Now()

	if err := s.vehicles.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, customerID, vehicleID string) error {
	if _, err := s.guard.CustomerOwnsVehicle(ctx, vehicleID, customerID); err != nil {
		return err
	}

	active, err := s.sessions.FindActiveByCustomerID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to check active session: %w", err)
	}
	if active != nil && active.VehicleID == vehicleID {
		return domain.Conflict("vehicle %s is in an active charging session", vehicleID)
	}

	return s.vehicles.Delete(ctx, vehicleID)
}
