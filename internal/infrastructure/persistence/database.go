package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/tradecore/internal/domain/catalog"
	"github.com/erp/tradecore/internal/domain/inventory"
	"github.com/erp/tradecore/internal/infrastructure/config"
	"github.com/erp/tradecore/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB *gorm.DB
}

// NewDatabaseWithLogger creates a new database connection that reports SQL through gormLogger
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// PingContext checks the connection; the health endpoint uses it
func (d *Database) PingContext(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// AutoMigrate creates every table the repositories use. Production schemas
// come from the SQL migrations; this is for throwaway databases in tests.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&catalog.TaxRule{},
		&catalog.Product{},
		&catalog.TierPrice{},
		&catalog.SpecialOffer{},
		&inventory.StockItem{},
		&inventory.StockMovement{},
		&models.OrderModel{},
		&models.OrderLineModel{},
		&models.InvoiceModel{},
		&models.InvoiceSequenceModel{},
		&models.PurchaseModel{},
		&models.PurchaseLineModel{},
		&models.LedgerAccountModel{},
		&models.LedgerTransactionModel{},
	); err != nil {
		return err
	}
	return db.FirstOrCreate(&models.InvoiceSequenceModel{ID: invoiceSequenceRow}).Error
}
