package repository

import (
	"go-retail-store/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.OrderDetails) error
	FindByID(id uuid.UUID) (*model.OrderDetails, error)
	FindByStore(storeID uuid.UUID) ([]model.OrderDetails, error)
	FindByCustomer(customerID uuid.UUID) ([]model.OrderDetails, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

// Create persists the header and its items on the caller's transaction; gorm
// writes the items through the association in the same statement batch.
func (r *orderRepo) Create(tx *gorm.DB, order *model.OrderDetails) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.OrderDetails, error) {
	var order model.OrderDetails
	err := r.db.Preload("Items").Preload("Customer").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByStore(storeID uuid.UUID) ([]model.OrderDetails, error) {
	var orders []model.OrderDetails
	err := r.db.Preload("Items").Preload("Customer").
		Where("store_id = ?", storeID).
		Order("placed_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByCustomer(customerID uuid.UUID) ([]model.OrderDetails, error) {
	var orders []model.OrderDetails
	err := r.db.Preload("Items").
		Where("customer_id = ?", customerID).
		Order("placed_at DESC").
		Find(&orders).Error
	return orders, err
}
