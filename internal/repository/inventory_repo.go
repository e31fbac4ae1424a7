package repository

import (
	"go-retail-store/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(inv *model.Inventory) error
	Update(inv *model.Inventory) error
	FindByProductAndStore(productID, storeID uuid.UUID) (*model.Inventory, error)
	ExistsByProductAndStore(productID, storeID uuid.UUID) (bool, error)
	FindByStore(storeID uuid.UUID) ([]model.Inventory, error)
	DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error
	DeleteByStore(tx *gorm.DB, storeID uuid.UUID) error
	DecrementStock(tx *gorm.DB, productID, storeID uuid.UUID, quantity int) (bool, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(inv *model.Inventory) error {
	return r.db.Create(inv).Error
}

func (r *inventoryRepo) Update(inv *model.Inventory) error {
	return r.db.Save(inv).Error
}

func (r *inventoryRepo) FindByProductAndStore(productID, storeID uuid.UUID) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.db.First(&inv, "product_id = ? AND store_id = ?", productID, storeID).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *inventoryRepo) ExistsByProductAndStore(productID, storeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Inventory{}).
		Where("product_id = ? AND store_id = ?", productID, storeID).
		Count(&count).Error
	return count > 0, err
}

func (r *inventoryRepo) FindByStore(storeID uuid.UUID) ([]model.Inventory, error) {
	var invs []model.Inventory
	err := r.db.Preload("Product").Where("store_id = ?", storeID).Find(&invs).Error
	return invs, err
}

func (r *inventoryRepo) DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Delete(&model.Inventory{}, "product_id = ?", productID).Error
}

func (r *inventoryRepo) DeleteByStore(tx *gorm.DB, storeID uuid.UUID) error {
	return tx.Delete(&model.Inventory{}, "store_id = ?", storeID).Error
}

// DecrementStock subtracts quantity from the row's stock level only when
// enough stock remains, in a single guarded UPDATE. It runs on the caller's
// transaction and reports whether a row was affected; false means the row is
// either missing or short on stock — concurrent orders can never drive the
// level below zero.
func (r *inventoryRepo) DecrementStock(tx *gorm.DB, productID, storeID uuid.UUID, quantity int) (bool, error) {
	res := tx.Model(&model.Inventory{}).
		Where("product_id = ? AND store_id = ? AND stock_level >= ?", productID, storeID, quantity).
		UpdateColumn("stock_level", gorm.Expr("stock_level - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
