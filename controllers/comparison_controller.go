package controllers

import (
	"counting-app/inventory"

	"github.com/gofiber/fiber/v2"
)

type ComparisonController struct {
	Store *inventory.Store
}

func NewComparisonController(store *inventory.Store) *ComparisonController {
	return &ComparisonController{Store: store}
}

// GetComparison returns the reconciliation view for the active
// counter's group. While either counter still has uncounted products
// the response is a waiting state listing them, never partial
// discrepancy data.
func (c *ComparisonController) GetComparison(ctx *fiber.Ctx) error {
	groupID, counter := session(ctx)

	view, err := c.Store.Comparison(groupID, counter)
	if err != nil {
		return writeStoreError(ctx, err)
	}

	message := "Comparison ready"
	if view.Waiting {
		message = "Waiting for both counters to finish"
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    fiber.Map{"comparison": view},
	})
}
