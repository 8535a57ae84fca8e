package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/tradecore/internal/domain/catalog"
	"github.com/erp/tradecore/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory SQLite database with every table created.
// A single connection keeps the in-memory database alive for the whole test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

// newMockDB returns a GORM handle on the postgres dialector backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedProduct saves a product and sets its stock row to qty
func seedProduct(t *testing.T, db *gorm.DB, code, price, qty string) *catalog.Product {
	t.Helper()
	ctx := context.Background()

	product, err := catalog.NewProduct(code, "Product "+code, "pcs", dec(price))
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(ctx, product))

	if qty != "" {
		item, err := inventory.NewStockItem(product.ID)
		require.NoError(t, err)
		item.Quantity = dec(qty)
		require.NoError(t, db.Create(item).Error)
	}
	return product
}

func stockOf(t *testing.T, db *gorm.DB, productID uuid.UUID) decimal.Decimal {
	t.Helper()
	item, err := NewGormStockRepository(db).FindByProductID(context.Background(), productID)
	require.NoError(t, err)
	return item.Quantity
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
