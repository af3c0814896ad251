package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

type PriceRuleRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPriceRuleRepository(db *gorm.DB, log *zap.Logger) ports.PriceRuleRepository {
	return &PriceRuleRepository{
		db:  db,
		log: log,
	}
}

func (r *PriceRuleRepository) Save(ctx context.Context, rule *domain.PriceRule) error {
	result := r.db.WithContext(ctx).Save(rule)
	if result.Error != nil {
		r.log.Error("Failed to save price rule", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *PriceRuleRepository) FindByID(ctx context.Context, id string) (*domain.PriceRule, error) {
	var rule domain.PriceRule
	result := r.db.WithContext(ctx).First(&rule, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &rule, nil
}

func (r *PriceRuleRepository) FindByPoleID(ctx context.Context, poleID string) ([]domain.PriceRule, error) {
	var rules []domain.PriceRule
	result := r.db.WithContext(ctx).
		Where("pole_id = ?", poleID).
		Order("effective_from, start_minute").
		Find(&rules)
	if result.Error != nil {
		return nil, result.Error
	}
	return rules, nil
}

func (r *PriceRuleRepository) FindByPoleAndName(ctx context.Context, poleID string, name domain.PriceName) ([]domain.PriceRule, error) {
	var rules []domain.PriceRule
	result := r.db.WithContext(ctx).
		Where("pole_id = ? AND name = ?", poleID, name).
		Order("effective_from, start_minute").
		Find(&rules)
	if result.Error != nil {
		return nil, result.Error
	}
	return rules, nil
}

func (r *PriceRuleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.PriceRule{}, "id = ?", id).Error
}
