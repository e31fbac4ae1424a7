package service

import (
	"errors"
	"fmt"

	"go-retail-store/internal/model"
	"go-retail-store/internal/repository"
	"go-retail-store/internal/ws"
	"go-retail-store/pkg/apperr"
	"go-retail-store/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService manages the per-(product, store) stock rows outside the
// order workflow: explicit saves, stock-level updates, and the quantity
// availability check.
type InventoryService interface {
	SaveInventory(inv *model.Inventory, actor string) error
	UpdateStockLevel(productID, storeID uuid.UUID, stockLevel int, actor string) (*model.Inventory, error)
	ListByStore(storeID uuid.UUID) ([]model.Inventory, error)
	QuantityAvailable(productID, storeID uuid.UUID, quantity int) (bool, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	validation    ValidationService
	storeRepo     repository.StoreRepository
	hub           *ws.Hub
}

func NewInventoryService(
	iRepo repository.InventoryRepository,
	validation ValidationService,
	sRepo repository.StoreRepository,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		inventoryRepo: iRepo,
		validation:    validation,
		storeRepo:     sRepo,
		hub:           hub,
	}
}

// SaveInventory creates a new stock row. The (product, store) slot must be
// free; duplicate rows are how stock counts silently fork.
func (s *inventoryService) SaveInventory(inv *model.Inventory, actor string) error {
	if errs := validator.ValidateStruct(inv); len(errs) > 0 {
		first := errs[0]
		return apperr.Newf(apperr.KindValidation,
			"validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	exists, err := s.validation.ProductExists(inv.ProductID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Newf(apperr.KindNotFound, "product not found with id %s", inv.ProductID)
	}

	storeExists, err := s.storeRepo.ExistsByID(inv.StoreID)
	if err != nil {
		return err
	}
	if !storeExists {
		return apperr.Newf(apperr.KindNotFound, "store not found with id %s", inv.StoreID)
	}

	slotFree, err := s.validation.InventorySlotAvailable(inv.ProductID, inv.StoreID)
	if err != nil {
		return err
	}
	if !slotFree {
		return apperr.New(apperr.KindConflict, "inventory already exists for this product and store")
	}

	inv.CreatedBy = actor
	inv.UpdatedBy = actor
	if err := s.inventoryRepo.Create(inv); err != nil {
		return apperr.Wrap(apperr.KindInternal, "inventory creation failed", err)
	}

	s.broadcastStock(inv, "inventory_created")
	return nil
}

// UpdateStockLevel replaces the stock level of an existing row.
func (s *inventoryService) UpdateStockLevel(productID, storeID uuid.UUID, stockLevel int, actor string) (*model.Inventory, error) {
	if stockLevel < 0 {
		return nil, apperr.New(apperr.KindValidation, "stock level must not be negative")
	}

	inv, err := s.inventoryRepo.FindByProductAndStore(productID, storeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "no inventory data available for update")
	}
	if err != nil {
		return nil, err
	}

	inv.StockLevel = stockLevel
	inv.UpdatedBy = actor
	if err := s.inventoryRepo.Update(inv); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "inventory update failed", err)
	}

	s.broadcastStock(inv, "inventory_updated")
	return inv, nil
}

func (s *inventoryService) ListByStore(storeID uuid.UUID) ([]model.Inventory, error) {
	return s.inventoryRepo.FindByStore(storeID)
}

func (s *inventoryService) QuantityAvailable(productID, storeID uuid.UUID, quantity int) (bool, error) {
	return s.validation.StockSufficient(productID, storeID, quantity)
}

func (s *inventoryService) broadcastStock(inv *model.Inventory, action string) {
	if s.hub == nil {
		return
	}
	go s.hub.BroadcastEvent(ws.Event{
		Type:   "stock_update",
		Action: action,
		Payload: map[string]interface{}{
			"product_id":  inv.ProductID,
			"store_id":    inv.StoreID,
			"stock_level": inv.StockLevel,
		},
		Message: fmt.Sprintf("stock level now %d for product %s", inv.StockLevel, inv.ProductID),
	})
}
