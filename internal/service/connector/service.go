package connector

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

// DefaultMaxConnectorsPerPole caps how many non-retired connectors a single
// pole may host.
const DefaultMaxConnectorsPerPole = 2

// Service is the connector registry. Every mutation that touches the pole's
// cached connector count runs inside one transaction so the count can never
// drift from the rows it accounts for.
type Service struct {
	txm        ports.TxManager
	connectors ports.ConnectorRepository
	sessions   ports.SessionRepository
	guard      *access.Guard
	maxPerPole int
	log        *zap.Logger
}

func NewService(
	txm ports.TxManager,
	connectors ports.ConnectorRepository,
	sessions ports.SessionRepository,
	guard *access.Guard,
	maxPerPole int,
	log *zap.Logger,
) ports.ConnectorService {
	if maxPerPole <= 0 {
		maxPerPole = DefaultMaxConnectorsPerPole
	}
	return &Service{
		txm:        txm,
		connectors: connectors,
		sessions:   sessions,
		guard:      guard,
		maxPerPole: maxPerPole,
		log:        log,
	}
}

func (s *Service) Create(ctx context.Context, vendorID, poleID string, connType domain.ConnectorType, maxPowerKW float64) (*domain.Connector, error) {
	pole, err := s.guard.VendorOwnsPole(ctx, poleID, vendorID)
	if err != nil {
		return nil, err
	}

	if maxPowerKW <= 0 {
		return nil, domain.InvalidInput("connector max power must be positive")
	}
	if maxPowerKW > pole.MaxPowerKW {
		return nil, domain.InvalidInput("connector max power %.1f kW exceeds pole limit %.1f kW", maxPowerKW, pole.MaxPowerKW)
	}

	connector := &domain.Connector{
		ID:         uuid.New().String(),
		PoleID:     poleID,
		Type:       connType,
		Status:     domain.ConnectorStatusAvailable,
		MaxPowerKW: maxPowerKW,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	err = s.txm.WithinTx(ctx, func(ctx context.Context, r *ports.Repositories) error {
		active, err := r.Connectors.CountActiveByPoleID(ctx, poleID)
		if err != nil {
			return fmt.Errorf("failed to count connectors: %w", err)
		}
		if active >= s.maxPerPole {
			return domain.Conflict("pole %s already has %d connectors", poleID, active)
		}
		if err := r.Connectors.Save(ctx, connector); err != nil {
			return fmt.Errorf("failed to save connector: %w", err)
		}
		return s.syncPoleCount(ctx, r, poleID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("connector created",
		zap.String("connector_id", connector.ID),
		zap.String("pole_id", poleID),
		zap.Float64("max_power_kw", maxPowerKW),
	)
	return connector, nil
}

func (s *Service) UpdateStatus(ctx context.Context, vendorID, connectorID string, status domain.ConnectorStatus) (*domain.Connector, error) {
	if _, err := s.guard.VendorOwnsConnector(ctx, connectorID, vendorID); err != nil {
		return nil, err
	}
	if status == domain.ConnectorStatusInUse {
		return nil, domain.InvalidInput("IN_USE is set by session start only")
	}

	var updated *domain.Connector
	err := s.txm.WithinTx(ctx, func(ctx context.Context, r *ports.Repositories) error {
		connector, err := r.Connectors.FindByIDForUpdate(ctx, connectorID)
		if err != nil {
			return fmt.Errorf("failed to lock connector: %w", err)
		}
		if connector == nil {
			return domain.NotFound("connector %s not found", connectorID)
		}
		if connector.Status == status {
			updated = connector
			return nil
		}

		active, err := r.Sessions.FindActiveByConnectorID(ctx, connectorID)
		if err != nil {
			return fmt.Errorf("failed to check active session: %w", err)
		}
		if active != nil {
			return domain.Conflict("connector %s has an active session", connectorID)
		}

		// Bringing a retired connector back occupies a capacity slot again.
		if connector.Retired() && status == domain.ConnectorStatusAvailable {
			count, err := r.Connectors.CountActiveByPoleID(ctx, connector.PoleID)
			if err != nil {
				return fmt.Errorf("failed to count connectors: %w", err)
			}
			if count >= s.maxPerPole {
				return domain.Conflict("pole %s is at connector capacity", connector.PoleID)
			}
		}

		connector.Status = status
		connector.UpdatedAt = time.Now()
		if err := r.Connectors.Save(ctx, connector); err != nil {
			return fmt.Errorf("failed to save connector: %w", err)
		}
		updated = connector
		return s.syncPoleCount(ctx, r, connector.PoleID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("connector status updated",
		zap.String("connector_id", connectorID),
		zap.String("status", string(status)),
	)
	return updated, nil
}

// Delete retires a connector that has session history (the rows must stay
// referenceable) and removes it outright otherwise.
func (s *Service) Delete(ctx context.Context, vendorID, connectorID string) error {
	if _, err := s.guard.VendorOwnsConnector(ctx, connectorID, vendorID); err != nil {
		return err
	}

	return s.txm.WithinTx(ctx, func(ctx context.Context, r *ports.Repositories) error {
		connector, err := r.Connectors.FindByIDForUpdate(ctx, connectorID)
		if err != nil {
			return fmt.Errorf("failed to lock connector: %w", err)
		}
		if connector == nil {
			return domain.NotFound("connector %s not found", connectorID)
		}
		if connector.Status == domain.ConnectorStatusInUse {
			return domain.Conflict("connector %s is in use", connectorID)
		}
		active, err := r.Sessions.FindActiveByConnectorID(ctx, connectorID)
		if err != nil {
			return fmt.Errorf("failed to check active session: %w", err)
		}
		if active != nil {
			return domain.Conflict("connector %s has an active session", connectorID)
		}

		hasHistory, err := r.Sessions.HasAnyByConnectorID(ctx, connectorID)
		if err != nil {
			return fmt.Errorf("failed to check session history: %w", err)
		}

		if hasHistory {
			connector.Status = domain.ConnectorStatusOutOfService
			connector.UpdatedAt = time.Now()
			if err := r.Connectors.Save(ctx, connector); err != nil {
				return fmt.Errorf("failed to retire connector: %w", err)
			}
			s.log.Info("connector retired", zap.String("connector_id", connectorID))
		} else {
			if err := r.Connectors.Delete(ctx, connectorID); err != nil {
				return fmt.Errorf("failed to delete connector: %w", err)
			}
			s.log.Info("connector deleted", zap.String("connector_id", connectorID))
		}
		return s.syncPoleCount(ctx, r, connector.PoleID)
	})
}

func (s *Service) ListByPole(ctx context.Context, poleID string) ([]domain.Connector, error) {
	return s.connectors.FindByPoleID(ctx, poleID)
}

func (s *Service) IsInUse(ctx context.Context, connectorID string) (bool, error) {
	active, err := s.sessions.FindActiveByConnectorID(ctx, connectorID)
	if err != nil {
		return false, fmt.Errorf("failed to check active session: %w", err)
	}
	return active != nil, nil
}

// syncPoleCount recomputes the pole's cached active-connector count from
// the rows, inside the same transaction as the connector write.
func (s *Service) syncPoleCount(ctx context.Context, r *ports.Repositories, poleID string) error {
	pole, err := r.Poles.FindByID(ctx, poleID)
	if err != nil {
		return fmt.Errorf("failed to find pole: %w", err)
	}
	if pole == nil {
		return domain.NotFound("pole %s not found", poleID)
	}
	count, err := r.Connectors.CountActiveByPoleID(ctx, poleID)
	if err != nil {
		return fmt.Errorf("failed to count connectors: %w", err)
	}
	if pole.ConnectorCount == count {
		return nil
	}
	pole.ConnectorCount = count
	pole.UpdatedAt = time.Now()
	if err := r.Poles.Save(ctx, pole); err != nil {
		return fmt.Errorf("failed to update pole count: %w", err)
	}
	return nil
}
