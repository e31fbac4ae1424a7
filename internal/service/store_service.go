package service

import (
	"errors"

	"go-retail-store/internal/model"
	"go-retail-store/internal/repository"
	"go-retail-store/pkg/apperr"
	"go-retail-store/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreService handles store CRUD. Store names are unique; deleting a store
// removes its inventory rows in the same transaction.
type StoreService interface {
	CreateStore(store *model.Store, actor string) error
	GetStore(id uuid.UUID) (*model.Store, error)
	ListStores() ([]model.Store, error)
	ListStoresSorted() ([]model.Store, error)
	UpdateStore(id uuid.UUID, store *model.Store, actor string) (*model.Store, error)
	DeleteStore(id uuid.UUID) error
	SearchStores(name string) ([]model.Store, error)
	StoreExists(id uuid.UUID) (bool, error)
}

type storeService struct {
	db            *gorm.DB
	storeRepo     repository.StoreRepository
	inventoryRepo repository.InventoryRepository
}

func NewStoreService(db *gorm.DB, sRepo repository.StoreRepository, iRepo repository.InventoryRepository) StoreService {
	return &storeService{
		db:            db,
		storeRepo:     sRepo,
		inventoryRepo: iRepo,
	}
}

func (s *storeService) CreateStore(store *model.Store, actor string) error {
	if errs := validator.ValidateStruct(store); len(errs) > 0 {
		first := errs[0]
		return apperr.Newf(apperr.KindValidation,
			"validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	_, err := s.storeRepo.FindByName(store.Name)
	if err == nil {
		return apperr.Newf(apperr.KindConflict, "store with name '%s' already exists", store.Name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	store.CreatedBy = actor
	store.UpdatedBy = actor
	if err := s.storeRepo.Create(store); err != nil {
		return apperr.Wrap(apperr.KindInternal, "store creation failed", err)
	}
	return nil
}

func (s *storeService) GetStore(id uuid.UUID) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.KindNotFound, "store not found with id %s", id)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeService) ListStores() ([]model.Store, error) {
	return s.storeRepo.FindAll()
}

func (s *storeService) ListStoresSorted() ([]model.Store, error) {
	return s.storeRepo.FindAllSortedByName()
}

func (s *storeService) UpdateStore(id uuid.UUID, req *model.Store, actor string) (*model.Store, error) {
	existing, err := s.storeRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.KindNotFound, "store not found with id %s", id)
	}
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Address = req.Address
	existing.UpdatedBy = actor

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.Newf(apperr.KindValidation,
			"validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	if err := s.storeRepo.Update(existing); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "store update failed", err)
	}
	return existing, nil
}

// DeleteStore removes the store and its inventory rows, all-or-nothing.
func (s *storeService) DeleteStore(id uuid.UUID) error {
	exists, err := s.storeRepo.ExistsByID(id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Newf(apperr.KindNotFound, "store not found with id %s", id)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.inventoryRepo.DeleteByStore(tx, id); err != nil {
			return apperr.Wrap(apperr.KindInternal, "inventory cleanup failed", err)
		}
		if err := s.storeRepo.Delete(tx, id); err != nil {
			return apperr.Wrap(apperr.KindInternal, "store deletion failed", err)
		}
		return nil
	})
}

func (s *storeService) SearchStores(name string) ([]model.Store, error) {
	if name == "" {
		return nil, apperr.New(apperr.KindValidation, "search name parameter is required")
	}
	return s.storeRepo.SearchByName(name)
}

func (s *storeService) StoreExists(id uuid.UUID) (bool, error) {
	return s.storeRepo.ExistsByID(id)
}
