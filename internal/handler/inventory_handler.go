package handler

import (
	"strconv"

	"go-retail-store/internal/model"
	"go-retail-store/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	inventory service.InventoryService
	catalog   service.CatalogService
}

func NewInventoryHandler(inventory service.InventoryService, catalog service.CatalogService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, catalog: catalog}
}

type updateStockRequest struct {
	ProductID  uuid.UUID `json:"productId"`
	StoreID    uuid.UUID `json:"storeId"`
	StockLevel int       `json:"stockLevel"`
}

func (h *InventoryHandler) SaveInventory(c *fiber.Ctx) error {
	var inv model.Inventory
	if err := c.BodyParser(&inv); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.inventory.SaveInventory(&inv, getUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Inventory saved", "inventory": inv})
}

func (h *InventoryHandler) UpdateInventory(c *fiber.Ctx) error {
	var req updateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.inventory.UpdateStockLevel(req.ProductID, req.StoreID, req.StockLevel, getUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Inventory updated", "inventory": updated})
}

// GetStoreProducts lists the products a store actually has in stock.
func (h *InventoryHandler) GetStoreProducts(c *fiber.Ctx) error {
	storeID, err := parseUUID(c.Params("storeId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	products, err := h.catalog.ProductsByStore(storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// FilterInventory handles ?category=&name= where either value may be the
// literal "null".
func (h *InventoryHandler) FilterInventory(c *fiber.Ctx) error {
	category := normalizeFilter(c.Query("category"))
	name := normalizeFilter(c.Query("name"))

	products, err := h.catalog.FilterProducts(category, name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *InventoryHandler) SearchInStore(c *fiber.Ctx) error {
	storeID, err := parseUUID(c.Query("storeId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	products, err := h.catalog.SearchProductsInStore(storeID, c.Query("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.catalog.DeleteProduct(productID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *InventoryHandler) ValidateQuantity(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Query("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	storeID, err := parseUUID(c.Query("storeId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid quantity"})
	}

	available, err := h.inventory.QuantityAvailable(productID, storeID, quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"available": available})
}
