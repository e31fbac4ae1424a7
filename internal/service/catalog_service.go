package service

import (
	"errors"
	"fmt"
	"strings"

	"go-retail-store/internal/model"
	"go-retail-store/internal/repository"
	"go-retail-store/internal/ws"
	"go-retail-store/pkg/apperr"
	"go-retail-store/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService is the product side of the API: CRUD plus the filter
// queries. Deleting a product takes its inventory rows with it in one
// transaction.
type CatalogService interface {
	CreateProduct(product *model.Product, actor string) error
	UpdateProduct(id uuid.UUID, product *model.Product, actor string) (*model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	ListProducts() ([]model.Product, error)
	DeleteProduct(id uuid.UUID) error
	SearchProducts(name string) ([]model.Product, error)
	ProductsByCategory(category string) ([]model.Product, error)
	FilterProducts(category, name string) ([]model.Product, error)
	ProductsByPriceRange(min, max float64) ([]model.Product, error)
	ProductsByStore(storeID uuid.UUID) ([]model.Product, error)
	ProductsByStoreAndCategory(storeID uuid.UUID, category string) ([]model.Product, error)
	SearchProductsInStore(storeID uuid.UUID, name string) ([]model.Product, error)
}

type catalogService struct {
	db            *gorm.DB
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	validation    ValidationService
	hub           *ws.Hub
}

func NewCatalogService(
	db *gorm.DB,
	pRepo repository.ProductRepository,
	iRepo repository.InventoryRepository,
	validation ValidationService,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		db:            db,
		productRepo:   pRepo,
		inventoryRepo: iRepo,
		validation:    validation,
		hub:           hub,
	}
}

func (s *catalogService) CreateProduct(product *model.Product, actor string) error {
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		first := errs[0]
		return apperr.Newf(apperr.KindValidation,
			"validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	nameFree, err := s.validation.ProductNameAvailable(product.Name)
	if err != nil {
		return err
	}
	if !nameFree {
		return apperr.Newf(apperr.KindConflict, "product with name '%s' already exists", product.Name)
	}

	skuFree, err := s.validation.SKUAvailable(product.SKU)
	if err != nil {
		return err
	}
	if !skuFree {
		return apperr.Newf(apperr.KindConflict, "product with SKU '%s' already exists", product.SKU)
	}

	product.CreatedBy = actor
	product.UpdatedBy = actor
	if err := s.productRepo.Create(product); err != nil {
		return apperr.Wrap(apperr.KindInternal, "product creation failed", err)
	}

	if s.hub != nil {
		go s.hub.BroadcastEvent(ws.Event{
			Type:   "catalog_update",
			Action: "product_created",
			Payload: map[string]interface{}{
				"id":    product.ID,
				"sku":   product.SKU,
				"name":  product.Name,
				"price": product.Price,
			},
			Message: fmt.Sprintf("product '%s' added to catalog", product.Name),
		})
	}
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, actor string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.KindNotFound, "product not found with id %s", id)
	}
	if err != nil {
		return nil, err
	}

	// A rename must not land on another product's name or SKU.
	if req.Name != existing.Name {
		nameFree, err := s.validation.ProductNameAvailable(req.Name)
		if err != nil {
			return nil, err
		}
		if !nameFree {
			return nil, apperr.Newf(apperr.KindConflict, "product with name '%s' already exists", req.Name)
		}
	}
	if req.SKU != existing.SKU {
		skuFree, err := s.validation.SKUAvailable(req.SKU)
		if err != nil {
			return nil, err
		}
		if !skuFree {
			return nil, apperr.Newf(apperr.KindConflict, "product with SKU '%s' already exists", req.SKU)
		}
	}

	existing.Name = req.Name
	existing.SKU = req.SKU
	existing.Category = req.Category
	existing.Price = req.Price
	existing.UpdatedBy = actor

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.Newf(apperr.KindValidation,
			"validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "product update failed", err)
	}
	return existing, nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.KindNotFound, "product not found with id %s", id)
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

// DeleteProduct removes the product and every inventory row that references
// it, all-or-nothing.
func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	exists, err := s.validation.ProductExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Newf(apperr.KindNotFound, "product not found with id %s", id)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.inventoryRepo.DeleteByProduct(tx, id); err != nil {
			return apperr.Wrap(apperr.KindInternal, "inventory cleanup failed", err)
		}
		if err := s.productRepo.Delete(tx, id); err != nil {
			return apperr.Wrap(apperr.KindInternal, "product deletion failed", err)
		}
		return nil
	})
}

func (s *catalogService) SearchProducts(name string) ([]model.Product, error) {
	return s.productRepo.SearchByName(name)
}

func (s *catalogService) ProductsByCategory(category string) ([]model.Product, error) {
	return s.productRepo.FindByCategory(category)
}

// FilterProducts combines the category and name predicates; an empty string
// means the predicate is not applied.
func (s *catalogService) FilterProducts(category, name string) ([]model.Product, error) {
	switch {
	case category == "" && name == "":
		return s.productRepo.FindAll()
	case category == "":
		return s.productRepo.SearchByName(name)
	case name == "":
		return s.productRepo.FindByCategory(category)
	default:
		return s.productRepo.FindByCategoryAndName(category, name)
	}
}

func (s *catalogService) ProductsByPriceRange(min, max float64) ([]model.Product, error) {
	if min < 0 || max < min {
		return nil, apperr.New(apperr.KindValidation, "invalid price range")
	}
	return s.productRepo.FindByPriceBetween(min, max)
}

func (s *catalogService) ProductsByStore(storeID uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindByStore(storeID)
}

func (s *catalogService) ProductsByStoreAndCategory(storeID uuid.UUID, category string) ([]model.Product, error) {
	products, err := s.productRepo.FindByStore(storeID)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return products, nil
	}
	var filtered []model.Product
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *catalogService) SearchProductsInStore(storeID uuid.UUID, name string) ([]model.Product, error) {
	return s.productRepo.SearchInStore(storeID, name)
}
