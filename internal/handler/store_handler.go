package handler

import (
	"go-retail-store/internal/model"
	"go-retail-store/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StoreHandler struct {
	stores service.StoreService
	orders service.OrderService
}

func NewStoreHandler(stores service.StoreService, orders service.OrderService) *StoreHandler {
	return &StoreHandler{stores: stores, orders: orders}
}

func (h *StoreHandler) CreateStore(c *fiber.Ctx) error {
	var store model.Store
	if err := c.BodyParser(&store); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.stores.CreateStore(&store, getUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Store created", "store": store})
}

func (h *StoreHandler) GetStores(c *fiber.Ctx) error {
	stores, err := h.stores.ListStores()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"stores": stores})
}

func (h *StoreHandler) GetStoresSorted(c *fiber.Ctx) error {
	stores, err := h.stores.ListStoresSorted()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"stores": stores})
}

func (h *StoreHandler) GetStore(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	store, err := h.stores.GetStore(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"store": store})
}

func (h *StoreHandler) UpdateStore(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	var store model.Store
	if err := c.BodyParser(&store); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.stores.UpdateStore(id, &store, getUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Store updated", "store": updated})
}

// DeleteStore removes the store and its inventory rows in one go.
func (h *StoreHandler) DeleteStore(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	if err := h.stores.DeleteStore(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Store deleted"})
}

func (h *StoreHandler) ValidateStore(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("storeId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	exists, err := h.stores.StoreExists(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}

func (h *StoreHandler) SearchStores(c *fiber.Ctx) error {
	stores, err := h.stores.SearchStores(c.Query("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"stores": stores})
}

func (h *StoreHandler) PlaceOrder(c *fiber.Ctx) error {
	var req model.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.orders.PlaceOrder(&req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Order placed", "order": order})
}

func (h *StoreHandler) GetStoreOrders(c *fiber.Ctx) error {
	storeID, err := parseUUID(c.Params("storeId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	orders, err := h.orders.ListOrdersByStore(storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (h *StoreHandler) GetOrder(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("orderId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.orders.GetOrder(orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"order": order})
}
