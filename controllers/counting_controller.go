package controllers

import (
	"errors"
	"strconv"
	"strings"

	"counting-app/inventory"
	"counting-app/models"
	"counting-app/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

type CountingController struct {
	Store *inventory.Store
}

func NewCountingController(store *inventory.Store) *CountingController {
	return &CountingController{Store: store}
}

// session reads the counter session the auth middleware stored in the
// request locals.
func session(ctx *fiber.Ctx) (string, models.CounterID) {
	groupID, _ := ctx.Locals("groupID").(string)
	counterID, _ := ctx.Locals("counterID").(string)
	return groupID, models.CounterID(counterID)
}

// ListProducts returns the group's products with the active counter's
// counting-view status, total and entry count. Supports filtering by
// SAP code or name.
func (c *CountingController) ListProducts(ctx *fiber.Ctx) error {
	groupID, counter := session(ctx)

	search := ctx.Query("search")
	searchType := ctx.Query("type", "sap")

	type productRow struct {
		models.Product
		Status     models.ProductStatus `json:"status"`
		Total      *int                 `json:"total"`
		EntryCount int                  `json:"entry_count"`
	}

	rows := []productRow{}
	for _, p := range c.Store.ProductsForGroup(groupID) {
		if search != "" {
			if searchType == "name" {
				if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
					continue
				}
			} else if !strings.Contains(p.SapCode, search) {
				continue
			}
		}

		row := productRow{
			Product: p,
			Status:  c.Store.StatusFor(groupID, counter, p.ID, inventory.ViewCounting),
		}
		if total, ok := c.Store.Total(groupID, counter, p.ID); ok {
			row.Total = &total
		}
		row.EntryCount = len(c.Store.History(groupID, counter, p.ID))
		rows = append(rows, row)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"products": rows}})
}

// AppendEntry records one partial count for a product.
func (c *CountingController) AppendEntry(ctx *fiber.Ctx) error {
	groupID, counter := session(ctx)

	productID, err := ctx.ParamsInt("productId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid product id"})
	}

	var input struct {
		Quantity *int   `json:"quantity" validate:"required"`
		Location string `json:"location"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body", "error": err.Error()})
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "error": err.Error()})
	}

	entry, err := c.Store.Append(groupID, counter, productID, *input.Quantity, input.Location)
	if err != nil {
		return writeStoreError(ctx, err)
	}

	total, _ := c.Store.Total(groupID, counter, productID)
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Entry recorded",
		"data":    fiber.Map{"entry": entry, "total": total},
	})
}

// History lists the counter's ledger entries for a product, in
// insertion order.
func (c *CountingController) History(ctx *fiber.Ctx) error {
	groupID, counter := session(ctx)

	productID, err := ctx.ParamsInt("productId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid product id"})
	}

	entries := c.Store.History(groupID, counter, productID)
	total, _ := c.Store.Total(groupID, counter, productID)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"entries": entries, "total": total},
	})
}

// UpdateEntry edits the quantity of one ledger entry in place.
func (c *CountingController) UpdateEntry(ctx *fiber.Ctx) error {
	groupID, counter := session(ctx)

	productID, err := ctx.ParamsInt("productId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid product id"})
	}
	entryID, err := strconv.ParseInt(ctx.Params("entryId"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid entry id"})
	}

	var input struct {
		Quantity *int `json:"quantity" validate:"required"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body", "error": err.Error()})
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "error": err.Error()})
	}

	if err := c.Store.UpdateEntry(groupID, counter, productID, types.SnowflakeID(entryID), *input.Quantity); err != nil {
		return writeStoreError(ctx, err)
	}

	total, _ := c.Store.Total(groupID, counter, productID)
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Entry updated", "data": fiber.Map{"total": total}})
}

// DeleteEntry removes one ledger entry. Deleting the last entry
// reverts the product to "not counted".
func (c *CountingController) DeleteEntry(ctx *fiber.Ctx) error {
	groupID, counter := session(ctx)

	productID, err := ctx.ParamsInt("productId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid product id"})
	}
	entryID, err := strconv.ParseInt(ctx.Params("entryId"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid entry id"})
	}

	if err := c.Store.DeleteEntry(groupID, counter, productID, types.SnowflakeID(entryID)); err != nil {
		return writeStoreError(ctx, err)
	}

	total, counted := c.Store.Total(groupID, counter, productID)
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Entry deleted",
		"data":    fiber.Map{"total": total, "counted": counted},
	})
}

// FillZeros force-completes the active counter by zero-filling every
// uncounted product with an "Auto-fill" entry.
func (c *CountingController) FillZeros(ctx *fiber.Ctx) error {
	groupID, counter := session(ctx)

	filled, err := c.Store.FillZeros(groupID, counter)
	if err != nil {
		return writeStoreError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Uncounted products filled with zeros",
		"data":    fiber.Map{"filled": filled, "filled_count": len(filled)},
	})
}

// Progress reports the active counter's counted/total for the group.
func (c *CountingController) Progress(ctx *fiber.Ctx) error {
	groupID, counter := session(ctx)

	counted, total := c.Store.Progress(groupID, counter)
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"counted": counted, "total": total},
	})
}

// writeStoreError translates core errors to HTTP responses.
func writeStoreError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, inventory.ErrNegativeQuantity):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Quantity must not be negative"})
	case errors.Is(err, inventory.ErrUnknownGroup), errors.Is(err, inventory.ErrUnknownProduct):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": err.Error()})
	case errors.Is(err, inventory.ErrPrecondition):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
}
