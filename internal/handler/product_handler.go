package handler

import (
	"strconv"

	"go-retail-store/internal/model"
	"go-retail-store/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	catalog service.CatalogService
}

func NewProductHandler(catalog service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.catalog.CreateProduct(&product, getUserID(c)); err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "product": product})
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.catalog.GetProduct(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.catalog.UpdateProduct(id, &product, getUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "product": updated})
}

// DeleteProduct removes the product and its inventory rows in one go.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.catalog.DeleteProduct(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	products, err := h.catalog.SearchProducts(c.Params("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) GetProductsByCategory(c *fiber.Ctx) error {
	products, err := h.catalog.ProductsByCategory(c.Params("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// FilterProducts handles /category/:name/:category where either segment may be
// the literal "null".
func (h *ProductHandler) FilterProducts(c *fiber.Ctx) error {
	name := normalizeFilter(c.Params("name"))
	category := normalizeFilter(c.Params("category"))

	products, err := h.catalog.FilterProducts(category, name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// GetProductsByStoreAndCategory handles /filter/:category/:storeid where the
// category may be the literal "null".
func (h *ProductHandler) GetProductsByStoreAndCategory(c *fiber.Ctx) error {
	storeID, err := parseUUID(c.Params("storeid"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	products, err := h.catalog.ProductsByStoreAndCategory(storeID, normalizeFilter(c.Params("category")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) GetProductsByPriceRange(c *fiber.Ctx) error {
	minParam, maxParam := c.Query("minPrice"), c.Query("maxPrice")
	if minParam == "" || maxParam == "" {
		return c.Status(400).JSON(fiber.Map{"error": "minPrice and maxPrice are required"})
	}
	minPrice, err := strconv.ParseFloat(minParam, 64)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid minPrice"})
	}
	maxPrice, err := strconv.ParseFloat(maxParam, 64)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid maxPrice"})
	}

	products, err := h.catalog.ProductsByPriceRange(minPrice, maxPrice)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}
