package repository

import (
	"context"
	"testing"

	"github.com/dogao/cardapio/internal/config"
	"github.com/dogao/cardapio/internal/models"
	"github.com/dogao/cardapio/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, URL: ":memory:"}, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func seededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	_, err := Seed(context.Background(), db)
	require.NoError(t, err)
	return db
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createProduct(t *testing.T, db *gorm.DB, name string, categoryID uint) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price("10.50"), CategoryID: categoryID}
	require.NoError(t, NewGormProductRepository(db).Create(context.Background(), p))
	return p
}
