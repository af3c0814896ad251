package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/observability/telemetry"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

// Service settles completed charging sessions: one PaymentTransaction per
// session, charged through the provider behind a circuit breaker so a
// flapping processor fails fast instead of piling up requests.
type Service struct {
	payments ports.PaymentRepository
	sessions ports.SessionRepository
	provider ports.PaymentProvider
	breaker  *gobreaker.CircuitBreaker
	currency string
	log      *zap.Logger
}

func NewService(
	payments ports.PaymentRepository,
	sessions ports.SessionRepository,
	provider ports.PaymentProvider,
	currency string,
	log *zap.Logger,
) ports.PaymentService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "payment-provider",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	if currency == "" {
		currency = "VND"
	}
	return &Service{
		payments: payments,
		sessions: sessions,
		provider: provider,
		breaker:  breaker,
		currency: currency,
		log:      log,
	}
}

func (s *Service) SettleSession(ctx context.Context, customerID, sessionID string, method domain.PaymentMethod) (*domain.PaymentTransaction, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, domain.NotFound("session %s not found", sessionID)
	}
	if session.CustomerID != customerID {
		return nil, domain.Forbidden("session %s is not owned by the caller", sessionID)
	}
	if session.Status != domain.SessionStatusCompleted {
		return nil, domain.Conflict("session %s is not completed", sessionID)
	}

	existing, err := s.payments.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing payment: %w", err)
	}
	if existing != nil && existing.Status != domain.PaymentStatusFailed {
		return nil, domain.Conflict("session %s is already settled", sessionID)
	}

	payment := &domain.PaymentTransaction{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		CustomerID: customerID,
		Amount:     session.Cost,
		Currency:   s.currency,
		Method:     method,
		Status:     domain.PaymentStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	providerID, err := s.breaker.Execute(func() (interface{}, error) {
		return s.provider.Charge(ctx, customerID, payment.Amount, payment.Currency,
			fmt.Sprintf("Charging session %s", sessionID))
	})
	now := time.Now()
	if err != nil {
		payment.Status = domain.PaymentStatusFailed
		payment.FailureReason = err.Error()
		payment.UpdatedAt = now
		if saveErr := s.payments.Update(ctx, payment); saveErr != nil {
			s.log.Error("failed to record payment failure", zap.String("payment_id", payment.ID), zap.Error(saveErr))
		}
		telemetry.PaymentsTotal.WithLabelValues("failed").Inc()
		s.log.Warn("payment failed",
			zap.String("payment_id", payment.ID),
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return payment, nil
	}

	payment.ProviderID, _ = providerID.(string)
	payment.Status = domain.PaymentStatusPaid
	payment.PaidAt = &now
	payment.UpdatedAt = now
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to mark payment paid: %w", err)
	}

	telemetry.PaymentsTotal.WithLabelValues("paid").Inc()
	s.log.Info("session settled",
		zap.String("payment_id", payment.ID),
		zap.String("session_id", sessionID),
		zap.Float64("amount", payment.Amount),
	)
	return payment, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.PaymentTransaction, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	if payment == nil {
		return nil, domain.NotFound("payment %s not found", id)
	}
	return payment, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string, page domain.PageRequest) (*domain.Page[domain.PaymentTransaction], error) {
	return s.payments.FindByCustomerID(ctx, customerID, page.Normalize())
}
