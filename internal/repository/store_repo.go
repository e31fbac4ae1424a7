package repository

import (
	"go-retail-store/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.Store) error
	FindAll() ([]model.Store, error)
	FindAllSortedByName() ([]model.Store, error)
	FindByID(id uuid.UUID) (*model.Store, error)
	FindByName(name string) (*model.Store, error)
	SearchByName(name string) ([]model.Store, error)
	ExistsByID(id uuid.UUID) (bool, error)
	Update(store *model.Store) error
	Delete(tx *gorm.DB, id uuid.UUID) error
}

type storeRepo struct {
	db *gorm.DB
}

func NewStoreRepo(db *gorm.DB) StoreRepository {
	return &storeRepo{db}
}

func (r *storeRepo) Create(store *model.Store) error {
	return r.db.Create(store).Error
}

func (r *storeRepo) FindAll() ([]model.Store, error) {
	var stores []model.Store
	err := r.db.Find(&stores).Error
	return stores, err
}

func (r *storeRepo) FindAllSortedByName() ([]model.Store, error) {
	var stores []model.Store
	err := r.db.Order("name ASC").Find(&stores).Error
	return stores, err
}

func (r *storeRepo) FindByID(id uuid.UUID) (*model.Store, error) {
	var store model.Store
	err := r.db.First(&store, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) FindByName(name string) (*model.Store, error) {
	var store model.Store
	err := r.db.First(&store, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) SearchByName(name string) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").Find(&stores).Error
	return stores, err
}

func (r *storeRepo) ExistsByID(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Store{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *storeRepo) Update(store *model.Store) error {
	return r.db.Save(store).Error
}

// Delete runs inside the caller's transaction so the store and its inventory
// rows disappear together.
func (r *storeRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Store{}, "id = ?", id).Error
}
