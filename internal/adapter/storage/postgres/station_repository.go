package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

type StationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStationRepository(db *gorm.DB, log *zap.Logger) ports.StationRepository {
	return &StationRepository{
		db:  db,
		log: log,
	}
}

func (r *StationRepository) Save(ctx context.Context, station *domain.Station) error {
	result := r.db.WithContext(ctx).Omit("Poles").Save(station)
	if result.Error != nil {
		r.log.Error("Failed to save station", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *StationRepository) FindByID(ctx context.Context, id string) (*domain.Station, error) {
	var station domain.Station
	result := r.db.WithContext(ctx).Preload("Poles").First(&station, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &station, nil
}

func (r *StationRepository) FindByVendorID(ctx context.Context, vendorID string) ([]domain.Station, error) {
	var stations []domain.Station
	result := r.db.WithContext(ctx).
		Preload("Poles").
		Where("vendor_id = ?", vendorID).
		Order("created_at").
		Find(&stations)
	if result.Error != nil {
		return nil, result.Error
	}
	return stations, nil
}

func (r *StationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Station{}, "id = ?", id).Error
}
