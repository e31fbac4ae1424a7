package repository

import (
	"go-retail-store/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByName(name string) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	ExistsByID(id uuid.UUID) (bool, error)
	Update(product *model.Product) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	FindByCategory(category string) ([]model.Product, error)
	SearchByName(name string) ([]model.Product, error)
	FindByCategoryAndName(category, name string) ([]model.Product, error)
	FindByPriceBetween(min, max float64) ([]model.Product, error)
	FindByStore(storeID uuid.UUID) ([]model.Product, error)
	SearchInStore(storeID uuid.UUID, name string) ([]model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByName(name string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) ExistsByID(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// Delete runs inside the caller's transaction so the product and its
// inventory rows disappear together.
func (r *productRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) FindByCategory(category string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("LOWER(category) = LOWER(?)", category).Find(&products).Error
	return products, err
}

func (r *productRepo) SearchByName(name string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByCategoryAndName(category, name string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Where("LOWER(category) = LOWER(?)", category).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindByPriceBetween(min, max float64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("price BETWEEN ? AND ?", min, max).Find(&products).Error
	return products, err
}

// FindByStore returns products that have a stocked inventory row at the store.
func (r *productRepo) FindByStore(storeID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Distinct("products.*").
		Joins("JOIN inventories ON inventories.product_id = products.id").
		Where("inventories.store_id = ? AND inventories.stock_level > 0 AND inventories.deleted_at IS NULL", storeID).
		Find(&products).Error
	return products, err
}

func (r *productRepo) SearchInStore(storeID uuid.UUID, name string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.
		Distinct("products.*").
		Joins("JOIN inventories ON inventories.product_id = products.id").
		Where("inventories.store_id = ? AND inventories.deleted_at IS NULL", storeID).
		Where("LOWER(products.name) LIKE LOWER(?)", "%"+name+"%").
		Find(&products).Error
	return products, err
}
