package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

type ConnectorRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewConnectorRepository(db *gorm.DB, log *zap.Logger) ports.ConnectorRepository {
	return &ConnectorRepository{
		db:  db,
		log: log,
	}
}

func (r *ConnectorRepository) Save(ctx context.Context, connector *domain.Connector) error {
	result := r.db.WithContext(ctx).Save(connector)
	if result.Error != nil {
		r.log.Error("Failed to save connector", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *ConnectorRepository) FindByID(ctx context.Context, id string) (*domain.Connector, error) {
	var connector domain.Connector
	result := r.db.WithContext(ctx).First(&connector, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &connector, nil
}

// FindByIDForUpdate takes a SELECT FOR UPDATE row lock. Concurrent session
// starts against the same connector serialize on this read.
func (r *ConnectorRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.Connector, error) {
	var connector domain.Connector
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&connector, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &connector, nil
}

func (r *ConnectorRepository) FindByPoleID(ctx context.Context, poleID string) ([]domain.Connector, error) {
	var connectors []domain.Connector
	result := r.db.WithContext(ctx).
		Where("pole_id = ?", poleID).
		Order("created_at").
		Find(&connectors)
	if result.Error != nil {
		return nil, result.Error
	}
	return connectors, nil
}

// CountActiveByPoleID counts the connectors that occupy a slot on the pole.
// Retired connectors are excluded.
func (r *ConnectorRepository) CountActiveByPoleID(ctx context.Context, poleID string) (int, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&domain.Connector{}).
		Where("pole_id = ? AND status <> ?", poleID, domain.ConnectorStatusOutOfService).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

func (r *ConnectorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Connector{}, "id = ?", id).Error
}
