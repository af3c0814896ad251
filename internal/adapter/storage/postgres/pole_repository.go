package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

type PoleRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPoleRepository(db *gorm.DB, log *zap.Logger) ports.PoleRepository {
	return &PoleRepository{
		db:  db,
		log: log,
	}
}

func (r *PoleRepository) Save(ctx context.Context, pole *domain.Pole) error {
	result := r.db.WithContext(ctx).Omit("Connectors").Save(pole)
	if result.Error != nil {
		r.log.Error("Failed to save pole", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *PoleRepository) FindByID(ctx context.Context, id string) (*domain.Pole, error) {
	var pole domain.Pole
	result := r.db.WithContext(ctx).Preload("Connectors").First(&pole, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &pole, nil
}

func (r *PoleRepository) FindByStationID(ctx context.Context, stationID string) ([]domain.Pole, error) {
	var poles []domain.Pole
	result := r.db.WithContext(ctx).
		Preload("Connectors").
		Where("station_id = ?", stationID).
		Order("created_at").
		Find(&poles)
	if result.Error != nil {
		return nil, result.Error
	}
	return poles, nil
}

func (r *PoleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Pole{}, "id = ?", id).Error
}
