package service

import (
	"testing"

	"go-retail-store/internal/model"
	"go-retail-store/internal/repository"
	"go-retail-store/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInventoryService(db *gorm.DB) InventoryService {
	pRepo := repository.NewProductRepo(db)
	iRepo := repository.NewInventoryRepo(db)
	return NewInventoryService(iRepo, NewValidationService(pRepo, iRepo), repository.NewStoreRepo(db), nil)
}

func TestSaveInventory(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	svc := newInventoryService(db)

	inv := &model.Inventory{ProductID: coffee.ID, StoreID: store.ID, StockLevel: 25}
	require.NoError(t, svc.SaveInventory(inv, "tester"))
	assert.NotEqual(t, uuid.Nil, inv.ID)
}

func TestSaveInventoryRejectsOccupiedSlot(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	seedInventory(t, db, coffee, store, 10)
	svc := newInventoryService(db)

	err := svc.SaveInventory(&model.Inventory{ProductID: coffee.ID, StoreID: store.ID, StockLevel: 5}, "tester")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestSaveInventoryUnknownReferences(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	svc := newInventoryService(db)

	err := svc.SaveInventory(&model.Inventory{ProductID: uuid.New(), StoreID: store.ID, StockLevel: 5}, "tester")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = svc.SaveInventory(&model.Inventory{ProductID: coffee.ID, StoreID: uuid.New(), StockLevel: 5}, "tester")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateStockLevel(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	inv := seedInventory(t, db, coffee, store, 10)
	svc := newInventoryService(db)

	updated, err := svc.UpdateStockLevel(coffee.ID, store.ID, 42, "tester")
	require.NoError(t, err)
	assert.Equal(t, 42, updated.StockLevel)
	assert.Equal(t, 42, stockLevel(t, db, inv))
}

func TestUpdateStockLevelMissingRow(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)

	_, err := svc.UpdateStockLevel(uuid.New(), uuid.New(), 5, "tester")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateStockLevelRejectsNegative(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)

	_, err := svc.UpdateStockLevel(uuid.New(), uuid.New(), -1, "tester")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestListByStorePreloadsProducts(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	tea := seedProduct(t, db, "Tea", "SKU-T", "beverage", 3.00)
	seedInventory(t, db, coffee, store, 10)
	seedInventory(t, db, tea, store, 5)
	svc := newInventoryService(db)

	inventories, err := svc.ListByStore(store.ID)
	require.NoError(t, err)
	require.Len(t, inventories, 2)
	for _, inv := range inventories {
		require.NotNil(t, inv.Product)
	}
}
