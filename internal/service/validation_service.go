package service

import (
	"errors"
	"strings"

	"go-retail-store/internal/repository"
	"go-retail-store/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidationService is the stateless check layer shared by the handlers and
// the order workflow. Malformed input fails with a validation error; a
// well-formed check returns a plain boolean.
type ValidationService interface {
	ProductExists(id uuid.UUID) (bool, error)
	ProductNameAvailable(name string) (bool, error)
	SKUAvailable(sku string) (bool, error)
	InventorySlotAvailable(productID, storeID uuid.UUID) (bool, error)
	StockSufficient(productID, storeID uuid.UUID, quantity int) (bool, error)
}

type validationService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
}

func NewValidationService(pRepo repository.ProductRepository, iRepo repository.InventoryRepository) ValidationService {
	return &validationService{
		productRepo:   pRepo,
		inventoryRepo: iRepo,
	}
}

func (s *validationService) ProductExists(id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, apperr.New(apperr.KindValidation, "product id is required")
	}
	return s.productRepo.ExistsByID(id)
}

func (s *validationService) ProductNameAvailable(name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, apperr.New(apperr.KindValidation, "product name must not be blank")
	}
	_, err := s.productRepo.FindByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (s *validationService) SKUAvailable(sku string) (bool, error) {
	if strings.TrimSpace(sku) == "" {
		return false, apperr.New(apperr.KindValidation, "sku must not be blank")
	}
	_, err := s.productRepo.FindBySKU(sku)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (s *validationService) InventorySlotAvailable(productID, storeID uuid.UUID) (bool, error) {
	if productID == uuid.Nil || storeID == uuid.Nil {
		return false, apperr.New(apperr.KindValidation, "product and store references are required")
	}
	exists, err := s.inventoryRepo.ExistsByProductAndStore(productID, storeID)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// StockSufficient fails loudly when the inventory row is missing; a missing
// row and an empty row are different answers.
func (s *validationService) StockSufficient(productID, storeID uuid.UUID, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, apperr.New(apperr.KindValidation, "requested quantity must be positive")
	}
	inv, err := s.inventoryRepo.FindByProductAndStore(productID, storeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, apperr.Newf(apperr.KindNotFound, "inventory not found for product %s at store %s", productID, storeID)
	}
	if err != nil {
		return false, err
	}
	return inv.StockLevel >= quantity, nil
}
