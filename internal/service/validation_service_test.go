package service

import (
	"testing"

	"go-retail-store/internal/repository"
	"go-retail-store/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newValidationService(db *gorm.DB) ValidationService {
	return NewValidationService(repository.NewProductRepo(db), repository.NewInventoryRepo(db))
}

func TestProductExists(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	svc := newValidationService(db)

	ok, err := svc.ProductExists(product.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ProductExists(uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.ProductExists(uuid.Nil)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestProductNameAvailable(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	svc := newValidationService(db)

	ok, err := svc.ProductNameAvailable("Coffee")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.ProductNameAvailable("Tea")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.ProductNameAvailable("   ")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestSKUAvailable(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	svc := newValidationService(db)

	ok, err := svc.SKUAvailable("SKU-C")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.SKUAvailable("SKU-X")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.SKUAvailable("")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestInventorySlotAvailable(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	seedInventory(t, db, coffee, store, 10)
	svc := newValidationService(db)

	ok, err := svc.InventorySlotAvailable(coffee.ID, store.ID)
	require.NoError(t, err)
	assert.False(t, ok, "occupied slot reported available")

	ok, err = svc.InventorySlotAvailable(uuid.New(), store.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.InventorySlotAvailable(uuid.Nil, store.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestStockSufficient(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	seedInventory(t, db, coffee, store, 5)
	svc := newValidationService(db)

	ok, err := svc.StockSufficient(coffee.ID, store.ID, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.StockSufficient(coffee.ID, store.ID, 6)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.StockSufficient(coffee.ID, store.ID, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// A missing inventory row is an error, not "insufficient".
	_, err = svc.StockSufficient(uuid.New(), store.ID, 1)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
