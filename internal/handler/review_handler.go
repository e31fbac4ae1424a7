package handler

import (
	"strconv"

	"go-retail-store/internal/model"
	"go-retail-store/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	reviews service.ReviewService
}

func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	StoreID    uuid.UUID  `json:"storeId"`
	ProductID  uuid.UUID  `json:"productId"`
	CustomerID *uuid.UUID `json:"customerId"`
	Rating     int        `json:"rating"`
	Comment    string     `json:"comment"`
}

func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	review := model.Review{
		StoreID:    req.StoreID,
		ProductID:  req.ProductID,
		CustomerID: req.CustomerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := h.reviews.CreateReview(&review); err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Review created", "review": review})
}

func (h *ReviewHandler) GetReviews(c *fiber.Ctx) error {
	storeID, productID, err := h.parseStoreProduct(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	views, err := h.reviews.ReviewsForProduct(storeID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": views, "totalReviews": len(views)})
}

func (h *ReviewHandler) GetReviewsWithComments(c *fiber.Ctx) error {
	storeID, productID, err := h.parseStoreProduct(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	views, err := h.reviews.ReviewsWithComments(storeID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": views, "totalReviews": len(views)})
}

func (h *ReviewHandler) GetAverageRating(c *fiber.Ctx) error {
	storeID, productID, err := h.parseStoreProduct(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := h.reviews.AverageRating(storeID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

func (h *ReviewHandler) GetReviewsByRatingRange(c *fiber.Ctx) error {
	storeID, err := parseUUID(c.Query("storeId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}
	productID, err := parseUUID(c.Query("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	minRating, err := strconv.Atoi(c.Query("minRating", "1"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid minRating"})
	}
	maxRating, err := strconv.Atoi(c.Query("maxRating", "5"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid maxRating"})
	}

	views, err := h.reviews.ReviewsByRating(storeID, productID, minRating, maxRating)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": views, "totalReviews": len(views)})
}

func (h *ReviewHandler) GetReviewsByCustomer(c *fiber.Ctx) error {
	customerID, err := parseUUID(c.Params("customerId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	reviews, err := h.reviews.ReviewsByCustomer(customerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews, "totalReviews": len(reviews)})
}

func (h *ReviewHandler) parseStoreProduct(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	storeID, err := parseUUID(c.Params("storeId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(400, "Invalid store ID")
	}
	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(400, "Invalid product ID")
	}
	return storeID, productID, nil
}
