package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

type PaymentRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPaymentRepository(db *gorm.DB, log *zap.Logger) ports.PaymentRepository {
	return &PaymentRepository{
		db:  db,
		log: log,
	}
}

func (r *PaymentRepository) Save(ctx context.Context, tx *domain.PaymentTransaction) error {
	result := r.db.WithContext(ctx).Create(tx)
	if result.Error != nil {
		r.log.Error("Failed to create payment transaction", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, tx *domain.PaymentTransaction) error {
	result := r.db.WithContext(ctx).Save(tx)
	if result.Error != nil {
		r.log.Error("Failed to update payment transaction", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.PaymentTransaction, error) {
	var tx domain.PaymentTransaction
	result := r.db.WithContext(ctx).First(&tx, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &tx, nil
}

func (r *PaymentRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error) {
	var tx domain.PaymentTransaction
	result := r.db.WithContext(ctx).First(&tx, "session_id = ?", sessionID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &tx, nil
}

func (r *PaymentRepository) FindByCustomerID(ctx context.Context, customerID string, page domain.PageRequest) (*domain.Page[domain.PaymentTransaction], error) {
	page = page.Normalize()

	query := r.db.WithContext(ctx).
		Model(&domain.PaymentTransaction{}).
		Where("customer_id = ?", customerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var txs []domain.PaymentTransaction
	result := query.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&txs)
	if result.Error != nil {
		return nil, result.Error
	}

	return &domain.Page[domain.PaymentTransaction]{
		Items:    txs,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}
