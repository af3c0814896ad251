package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

type VehicleRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewVehicleRepository(db *gorm.DB, log *zap.Logger) ports.VehicleRepository {
	return &VehicleRepository{
		db:  db,
		log: log,
	}
}

func (r *VehicleRepository) Save(ctx context.Context, vehicle *domain.Vehicle) error {
	result := r.db.WithContext(ctx).Save(vehicle)
	if result.Error != nil {
		r.log.Error("Failed to save vehicle", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	result := r.db.WithContext(ctx).First(&vehicle, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &vehicle, nil
}

func (r *VehicleRepository) FindByCustomerID(ctx context.Context, customerID string) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	result := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at").
		Find(&vehicles)
	if result.Error != nil {
		return nil, result.Error
	}
	return vehicles, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Vehicle{}, "id = ?", id).Error
}
