package session

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/adapter/queue"
	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/observability/telemetry"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

// FallbackPowerKW is assumed when the connector carries no power rating.
const FallbackPowerKW = 7.0

// Notifier pushes live session updates to connected clients.
type Notifier interface {
	Broadcast(message []byte)
}

// Service drives the charging-session lifecycle. Start and Stop each run as
// one transactional unit: the session write and the connector status flip
// commit together or not at all. Two concurrent starts on one connector are
// serialized by the row lock; the loser sees IN_USE and gets Unavailable.
type Service struct {
	txm        ports.TxManager
	sessions   ports.SessionRepository
	connectors ports.ConnectorRepository
	users      ports.UserRepository
	rate       RateResolver
	mq         queue.MessageQueue
	notifier   Notifier
	emails     ports.EmailService
	log        *zap.Logger
}

func NewService(
	txm ports.TxManager,
	sessions ports.SessionRepository,
	connectors ports.ConnectorRepository,
	users ports.UserRepository,
	rate RateResolver,
	mq queue.MessageQueue,
	notifier Notifier,
	emails ports.EmailService,
	log *zap.Logger,
) ports.SessionService {
	return &Service{
		txm:        txm,
		sessions:   sessions,
		connectors: connectors,
		users:      users,
		rate:       rate,
		mq:         mq,
		notifier:   notifier,
		emails:     emails,
		log:        log,
	}
}

func (s *Service) Start(ctx context.Context, customerID, connectorID, vehicleID string) (*domain.ChargingSession, error) {
	var session *domain.ChargingSession

	err := s.txm.WithinTx(ctx, func(ctx context.Context, r *ports.Repositories) error {
		active, err := r.Sessions.FindActiveByCustomerID(ctx, customerID)
		if err != nil {
			return fmt.Errorf("failed to check active session: %w", err)
		}
		if active != nil {
			return domain.Conflict("customer already has an active charging session")
		}

		connector, err := r.Connectors.FindByIDForUpdate(ctx, connectorID)
		if err != nil {
			return fmt.Errorf("failed to lock connector: %w", err)
		}
		if connector == nil {
			return domain.NotFound("connector %s not found", connectorID)
		}
		if connector.Status != domain.ConnectorStatusAvailable {
			return domain.Unavailable("connector %s is not available", connectorID)
		}

		vehicle, err := r.Vehicles.FindByID(ctx, vehicleID)
		if err != nil {
			return fmt.Errorf("failed to find vehicle: %w", err)
		}
		if vehicle == nil {
			return domain.NotFound("vehicle %s not found", vehicleID)
		}
		if vehicle.CustomerID != customerID {
			return domain.Forbidden("vehicle %s is not owned by the caller", vehicleID)
		}

		now := time.Now()
		session = &domain.ChargingSession{
			ID:          uuid.New().String(),
			CustomerID:  customerID,
			VehicleID:   vehicleID,
			ConnectorID: connectorID,
			Status:      domain.SessionStatusCharging,
			StartTime:   now,
			EnergyKwh:   0,
			Cost:        0,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := r.Sessions.Save(ctx, session); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		connector.Status = domain.ConnectorStatusInUse
		connector.UpdatedAt = now
		if err := r.Connectors.Save(ctx, connector); err != nil {
			return fmt.Errorf("failed to mark connector in use: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	telemetry.ActiveChargingSessions.Inc()
	s.publish(queue.SubjectSessionStarted, session)
	s.broadcast("session.started", session)

	s.log.Info("charging session started",
		zap.String("session_id", session.ID),
		zap.String("customer_id", customerID),
		zap.String("connector_id", connectorID),
	)
	return session, nil
}

func (s *Service) Stop(ctx context.Context, customerID, sessionID string) (*domain.ChargingSession, error) {
	var session *domain.ChargingSession

	err := s.txm.WithinTx(ctx, func(ctx context.Context, r *ports.Repositories) error {
		found, err := r.Sessions.FindByID(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to find session: %w", err)
		}
		if found == nil {
			return domain.NotFound("session %s not found", sessionID)
		}
		if found.CustomerID != customerID {
			return domain.Forbidden("session %s is not owned by the caller", sessionID)
		}
		if found.Status != domain.SessionStatusCharging {
			return domain.Conflict("session %s is not charging", sessionID)
		}

		connector, err := r.Connectors.FindByIDForUpdate(ctx, found.ConnectorID)
		if err != nil {
			return fmt.Errorf("failed to lock connector: %w", err)
		}

		now := time.Now()
		power := FallbackPowerKW
		poleID := ""
		if connector != nil {
			poleID = connector.PoleID
			if connector.MaxPowerKW > 0 {
				power = connector.MaxPowerKW
			}
		}
		rate, err := s.rate.RatePerKwh(ctx, poleID, now)
		if err != nil {
			return fmt.Errorf("failed to resolve rate: %w", err)
		}

		minutes := elapsedMinutes(found.StartTime, now)
		found.EnergyKwh = round2(power * float64(minutes) / 60)
		found.Cost = round2(found.EnergyKwh * rate)
		found.EndTime = &now
		found.Status = domain.SessionStatusCompleted
		found.UpdatedAt = now
		if err := r.Sessions.Update(ctx, found); err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}

		if connector != nil && !connector.Retired() {
			connector.Status = domain.ConnectorStatusAvailable
			connector.UpdatedAt = now
			if err := r.Connectors.Save(ctx, connector); err != nil {
				return fmt.Errorf("failed to release connector: %w", err)
			}
		}
		session = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	telemetry.ActiveChargingSessions.Dec()
	telemetry.EnergyDeliveredTotal.Add(session.EnergyKwh)
	telemetry.SessionsCompletedTotal.WithLabelValues(string(session.Status)).Inc()
	s.publish(queue.SubjectSessionCompleted, session)
	s.broadcast("session.completed", session)
	s.sendReceipt(ctx, session)

	s.log.Info("charging session completed",
		zap.String("session_id", session.ID),
		zap.Float64("energy_kwh", session.EnergyKwh),
		zap.Float64("cost", session.Cost),
	)
	return session, nil
}

// GetCurrent returns the customer's charging session, with provisional
// energy/cost computed on the fly (never persisted) so clients can poll
// live progress.
func (s *Service) GetCurrent(ctx context.Context, customerID string) (*domain.ChargingSession, error) {
	session, err := s.sessions.FindActiveByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find active session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	if session.EnergyKwh != 0 || session.Cost != 0 {
		return session, nil
	}

	now := time.Now()
	power := FallbackPowerKW
	poleID := ""
	connector, err := s.connectors.FindByID(ctx, session.ConnectorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find connector: %w", err)
	}
	if connector != nil {
		poleID = connector.PoleID
		if connector.MaxPowerKW > 0 {
			power = connector.MaxPowerKW
		}
	}
	rate, err := s.rate.RatePerKwh(ctx, poleID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rate: %w", err)
	}

	provisional := *session
	minutes := elapsedMinutes(session.StartTime, now)
	provisional.EnergyKwh = round2(power * float64(minutes) / 60)
	provisional.Cost = round2(provisional.EnergyKwh * rate)
	return &provisional, nil
}

func (s *Service) GetHistory(ctx context.Context, customerID string, page domain.PageRequest) (*domain.Page[domain.ChargingSession], error) {
	return s.sessions.FindHistoryByCustomerID(ctx, customerID, page.Normalize())
}

func (s *Service) publish(subject string, session *domain.ChargingSession) {
	if s.mq == nil {
		return
	}
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	if err := s.mq.Publish(subject, data); err != nil {
		s.log.Warn("failed to publish session event", zap.String("subject", subject), zap.Error(err))
	}
}

func (s *Service) broadcast(event string, session *domain.ChargingSession) {
	if s.notifier == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"session": session,
	})
	if err != nil {
		return
	}
	s.notifier.Broadcast(payload)
}

func (s *Service) sendReceipt(ctx context.Context, session *domain.ChargingSession) {
	if s.emails == nil || s.users == nil {
		return
	}
	user, err := s.users.FindByID(ctx, session.CustomerID)
	if err != nil || user == nil {
		return
	}
	if err := s.emails.SendChargingCompleted(ctx, user, session); err != nil {
		s.log.Warn("failed to send charging receipt", zap.String("session_id", session.ID), zap.Error(err))
	}
}

// elapsedMinutes floors the elapsed duration to whole minutes, with a
// minimum of one so very short sessions are still billed.
func elapsedMinutes(start, end time.Time) int {
	minutes := int(end.Sub(start).Minutes())
	if minutes < 1 {
		return 1
	}
	return minutes
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
