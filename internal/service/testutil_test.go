package service

import (
	"testing"

	"go-retail-store/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Each connection to :memory: is its own database; keep the pool at one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Product{}, &model.Store{}, &model.Inventory{},
		&model.Customer{}, &model.OrderDetails{}, &model.OrderItem{},
		&model.User{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, sku, category string, price float64) *model.Product {
	t.Helper()
	product := &model.Product{Name: name, SKU: sku, Category: category, Price: price}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedStore(t *testing.T, db *gorm.DB, name, address string) *model.Store {
	t.Helper()
	store := &model.Store{Name: name, Address: address}
	require.NoError(t, db.Create(store).Error)
	return store
}

func seedInventory(t *testing.T, db *gorm.DB, product *model.Product, store *model.Store, stock int) *model.Inventory {
	t.Helper()
	inv := &model.Inventory{ProductID: product.ID, StoreID: store.ID, StockLevel: stock}
	require.NoError(t, db.Create(inv).Error)
	return inv
}

func stockLevel(t *testing.T, db *gorm.DB, inv *model.Inventory) int {
	t.Helper()
	var current model.Inventory
	require.NoError(t, db.First(&current, "id = ?", inv.ID).Error)
	return current.StockLevel
}
