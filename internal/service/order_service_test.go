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

func newOrderService(db *gorm.DB) OrderService {
	return NewOrderService(
		db,
		repository.NewInventoryRepo(db),
		repository.NewOrderRepo(db),
		nil, nil, nil,
	)
}

func orderRequest(storeID uuid.UUID, items ...model.PurchaseItem) *model.PlaceOrderRequest {
	return &model.PlaceOrderRequest{
		StoreID:       storeID,
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Items:         items,
	}
}

func TestPlaceOrderComputesTotalFromLines(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	tea := seedProduct(t, db, "Tea", "SKU-T", "beverage", 3.00)
	seedInventory(t, db, coffee, store, 10)
	seedInventory(t, db, tea, store, 10)

	svc := newOrderService(db)
	order, err := svc.PlaceOrder(orderRequest(store.ID,
		model.PurchaseItem{ProductID: coffee.ID, Quantity: 2},
		model.PurchaseItem{ProductID: tea.ID, Quantity: 3},
	))
	require.NoError(t, err)

	assert.InDelta(t, 2*4.50+3*3.00, order.TotalPrice, 1e-9)
	assert.Len(t, order.Items, 2)
}

func TestPlaceOrderCallerTotalWins(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	seedInventory(t, db, coffee, store, 10)

	total := 99.99
	req := orderRequest(store.ID, model.PurchaseItem{ProductID: coffee.ID, Quantity: 1})
	req.TotalPrice = &total

	svc := newOrderService(db)
	order, err := svc.PlaceOrder(req)
	require.NoError(t, err)
	assert.Equal(t, 99.99, order.TotalPrice)
}

func TestPlaceOrderDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	inv := seedInventory(t, db, coffee, store, 10)

	svc := newOrderService(db)
	_, err := svc.PlaceOrder(orderRequest(store.ID, model.PurchaseItem{ProductID: coffee.ID, Quantity: 4}))
	require.NoError(t, err)

	assert.Equal(t, 6, stockLevel(t, db, inv))
}

func TestPlaceOrderInsufficientStockRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	tea := seedProduct(t, db, "Tea", "SKU-T", "beverage", 3.00)
	coffeeInv := seedInventory(t, db, coffee, store, 10)
	teaInv := seedInventory(t, db, tea, store, 1)

	svc := newOrderService(db)
	_, err := svc.PlaceOrder(orderRequest(store.ID,
		model.PurchaseItem{ProductID: coffee.ID, Quantity: 5}, // would succeed alone
		model.PurchaseItem{ProductID: tea.ID, Quantity: 2},    // short by one
	))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientStock))
	assert.Contains(t, err.Error(), "Tea")
	assert.Contains(t, err.Error(), "available 1, requested 2")

	// The first line's decrement must not survive the rollback.
	assert.Equal(t, 10, stockLevel(t, db, coffeeInv))
	assert.Equal(t, 1, stockLevel(t, db, teaInv))

	var count int64
	require.NoError(t, db.Model(&model.OrderDetails{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrderSequentialOrdersCannotOversell(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	inv := seedInventory(t, db, coffee, store, 5)

	svc := newOrderService(db)
	_, err := svc.PlaceOrder(orderRequest(store.ID, model.PurchaseItem{ProductID: coffee.ID, Quantity: 3}))
	require.NoError(t, err)

	_, err = svc.PlaceOrder(orderRequest(store.ID, model.PurchaseItem{ProductID: coffee.ID, Quantity: 3}))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInsufficientStock))
	assert.Equal(t, 2, stockLevel(t, db, inv))
}

func TestPlaceOrderResolvesCustomerByEmail(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	seedInventory(t, db, coffee, store, 10)

	svc := newOrderService(db)

	first, err := svc.PlaceOrder(orderRequest(store.ID, model.PurchaseItem{ProductID: coffee.ID, Quantity: 1}))
	require.NoError(t, err)
	second, err := svc.PlaceOrder(orderRequest(store.ID, model.PurchaseItem{ProductID: coffee.ID, Quantity: 1}))
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID)

	var count int64
	require.NoError(t, db.Model(&model.Customer{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPlaceOrderFreezesProductPrice(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	seedInventory(t, db, coffee, store, 10)

	svc := newOrderService(db)
	order, err := svc.PlaceOrder(orderRequest(store.ID, model.PurchaseItem{ProductID: coffee.ID, Quantity: 1}))
	require.NoError(t, err)

	// Raise the catalog price after the fact; the line keeps 4.50.
	require.NoError(t, db.Model(&model.Product{}).Where("id = ?", coffee.ID).Update("price", 9.99).Error)

	fetched, err := svc.GetOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, 4.50, fetched.Items[0].Price)
}

func TestPlaceOrderUnknownStore(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	product := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	_, err := svc.PlaceOrder(orderRequest(uuid.New(), model.PurchaseItem{ProductID: product.ID, Quantity: 1}))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Contains(t, err.Error(), "store not found")
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	svc := newOrderService(db)

	_, err := svc.PlaceOrder(orderRequest(store.ID, model.PurchaseItem{ProductID: uuid.New(), Quantity: 1}))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Contains(t, err.Error(), "product not found")
}

func TestPlaceOrderMissingInventoryRow(t *testing.T) {
	db := newTestDB(t)
	store := seedStore(t, db, "Central", "1 Main St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	// No inventory row for this (product, store) pair.

	svc := newOrderService(db)
	_, err := svc.PlaceOrder(orderRequest(store.ID, model.PurchaseItem{ProductID: coffee.ID, Quantity: 1}))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Contains(t, err.Error(), "inventory not found")
}

func TestPlaceOrderRejectsMalformedRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	cases := []struct {
		name string
		req  *model.PlaceOrderRequest
	}{
		{"missing store", &model.PlaceOrderRequest{
			CustomerName:  "Jane",
			CustomerEmail: "jane@example.com",
			Items:         []model.PurchaseItem{{ProductID: uuid.New(), Quantity: 1}},
		}},
		{"no items", orderRequest(uuid.New())},
		{"zero quantity", orderRequest(uuid.New(), model.PurchaseItem{ProductID: uuid.New(), Quantity: 0})},
		{"bad email", &model.PlaceOrderRequest{
			StoreID:       uuid.New(),
			CustomerName:  "Jane",
			CustomerEmail: "not-an-email",
			Items:         []model.PurchaseItem{{ProductID: uuid.New(), Quantity: 1}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(tc.req)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}
}

func TestGetOrderNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	_, err := svc.GetOrder(uuid.New())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListOrdersByStore(t *testing.T) {
	db := newTestDB(t)
	storeA := seedStore(t, db, "Central", "1 Main St")
	storeB := seedStore(t, db, "Branch", "2 Side St")
	coffee := seedProduct(t, db, "Coffee", "SKU-C", "beverage", 4.50)
	seedInventory(t, db, coffee, storeA, 10)
	seedInventory(t, db, coffee, storeB, 10)

	svc := newOrderService(db)
	_, err := svc.PlaceOrder(orderRequest(storeA.ID, model.PurchaseItem{ProductID: coffee.ID, Quantity: 1}))
	require.NoError(t, err)
	_, err = svc.PlaceOrder(orderRequest(storeA.ID, model.PurchaseItem{ProductID: coffee.ID, Quantity: 1}))
	require.NoError(t, err)
	_, err = svc.PlaceOrder(orderRequest(storeB.ID, model.PurchaseItem{ProductID: coffee.ID, Quantity: 1}))
	require.NoError(t, err)

	orders, err := svc.ListOrdersByStore(storeA.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
