package handler

import (
	"go-retail-store/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// writeError maps typed service errors onto the wire contract: domain
// failures are 400 with a machine-readable error tag, everything else 500.
func writeError(c *fiber.Ctx, err error) error {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)
	if kind == apperr.KindInternal {
		return c.Status(status).JSON(fiber.Map{
			"error":   string(kind),
			"message": "Internal Server Error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error":   string(kind),
		"message": err.Error(),
	})
}

// Helper untuk ambil User Info dari JWT Context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system" // Fallback when running with auth disabled
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

// Helper untuk parse UUID dari string
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// normalizeFilter treats the literal string "null" as an absent filter, a
// quirk the frontend relies on.
func normalizeFilter(v string) string {
	if v == "null" {
		return ""
	}
	return v
}
