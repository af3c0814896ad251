package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/duongdanghoc/charging-station-manager/internal/ports"
)

// NewRepositories builds the full repository bundle against db. The db may
// be the root connection or a transaction handle.
func NewRepositories(db *gorm.DB, log *zap.Logger) *ports.Repositories {
	return &ports.Repositories{
		Users:      NewUserRepository(db, log),
		Vehicles:   NewVehicleRepository(db, log),
		Stations:   NewStationRepository(db, log),
		Poles:      NewPoleRepository(db, log),
		Connectors: NewConnectorRepository(db, log),
		PriceRules: NewPriceRuleRepository(db, log),
		Sessions:   NewSessionRepository(db, log),
		Payments:   NewPaymentRepository(db, log),
	}
}

// TxManager implements ports.TxManager on top of gorm transactions.
type TxManager struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTxManager(db *gorm.DB, log *zap.Logger) ports.TxManager {
	return &TxManager{
		db:  db,
		log: log,
	}
}

// WithinTx opens a transaction and hands fn a repository bundle bound to
// it. Row locks taken through those repositories hold until fn returns.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, r *ports.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepositories(tx, m.log))
	})
}
