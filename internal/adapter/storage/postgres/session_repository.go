package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

// A session is active while it still holds a connector, which covers
// PENDING as well as CHARGING.
var activeSessionStatuses = []domain.SessionStatus{
	domain.SessionStatusPending,
	domain.SessionStatusCharging,
}

type SessionRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSessionRepository(db *gorm.DB, log *zap.Logger) ports.SessionRepository {
	return &SessionRepository{
		db:  db,
		log: log,
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *domain.ChargingSession) error {
	result := r.db.WithContext(ctx).Create(session)
	if result.Error != nil {
		r.log.Error("Failed to create charging session", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *SessionRepository) Update(ctx context.Context, session *domain.ChargingSession) error {
	result := r.db.WithContext(ctx).Save(session)
	if result.Error != nil {
		r.log.Error("Failed to update charging session", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*domain.ChargingSession, error) {
	var session domain.ChargingSession
	result := r.db.WithContext(ctx).First(&session, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &session, nil
}

func (r *SessionRepository) FindActiveByCustomerID(ctx context.Context, customerID string) (*domain.ChargingSession, error) {
	var session domain.ChargingSession
	result := r.db.WithContext(ctx).
		Where("customer_id = ? AND status IN ?", customerID, activeSessionStatuses).
		First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &session, nil
}

func (r *SessionRepository) FindActiveByConnectorID(ctx context.Context, connectorID string) (*domain.ChargingSession, error) {
	var session domain.ChargingSession
	result := r.db.WithContext(ctx).
		Where("connector_id = ? AND status IN ?", connectorID, activeSessionStatuses).
		First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &session, nil
}

func (r *SessionRepository) HasAnyByConnectorID(ctx context.Context, connectorID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&domain.ChargingSession{}).
		Where("connector_id = ?", connectorID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *SessionRepository) FindHistoryByCustomerID(ctx context.Context, customerID string, page domain.PageRequest) (*domain.Page[domain.ChargingSession], error) {
	page = page.Normalize()

	query := r.db.WithContext(ctx).
		Model(&domain.ChargingSession{}).
		Where("customer_id = ?", customerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var sessions []domain.ChargingSession
	result := query.
		Order("start_time DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return &domain.Page[domain.ChargingSession]{
		Items:    sessions,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}
