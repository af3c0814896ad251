package postgres

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/duongdanghoc/charging-station-manager/internal/domain"
	"github.com/duongdanghoc/charging-station-manager/internal/observability/telemetry"
)

// NewConnection initializes a new PostgreSQL connection using GORM
func NewConnection(url string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	registerLatencyCallbacks(db)

	log.Info("Successfully connected to PostgreSQL")
	return db, nil
}

const latencyStartKey = "chargemgr:query_start"

// registerLatencyCallbacks times every query through the shared latency
// histogram.
func registerLatencyCallbacks(db *gorm.DB) {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(latencyStartKey, time.Now())
	}
	after := func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(latencyStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
	}

	db.Callback().Query().Before("gorm:query").Register("chargemgr:latency_before_query", before)
	db.Callback().Query().After("gorm:query").Register("chargemgr:latency_after_query", after)
	db.Callback().Create().Before("gorm:create").Register("chargemgr:latency_before_create", before)
	db.Callback().Create().After("gorm:create").Register("chargemgr:latency_after_create", after)
	db.Callback().Update().Before("gorm:update").Register("chargemgr:latency_before_update", before)
	db.Callback().Update().After("gorm:update").Register("chargemgr:latency_after_update", after)
	db.Callback().Delete().Before("gorm:delete").Register("chargemgr:latency_before_delete", before)
	db.Callback().Delete().After("gorm:delete").Register("chargemgr:latency_after_delete", after)
}

// RunMigrations creates or updates the schema for every persisted entity.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.VendorProfile{},
		&domain.CustomerProfile{},
		&domain.Vehicle{},
		&domain.Station{},
		&domain.Pole{},
		&domain.Connector{},
		&domain.PriceRule{},
		&domain.ChargingSession{},
		&domain.PaymentTransaction{},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
