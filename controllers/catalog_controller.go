package controllers

import (
	"counting-app/inventory"
	"counting-app/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
)

type CatalogController struct {
	Store *inventory.Store
}

func NewCatalogController(store *inventory.Store) *CatalogController {
	return &CatalogController{Store: store}
}

// GetGroups lists the counting groups. The selection screen needs
// this before a session exists, so it is not behind auth.
func (c *CatalogController) GetGroups(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"groups": c.Store.Groups()},
	})
}

// UpdateGroup edits a group's name, counter names and material-group
// assignment. Admin only.
func (c *CatalogController) UpdateGroup(ctx *fiber.Ctx) error {
	groupID := ctx.Params("id")

	var input struct {
		Name           string   `json:"name" validate:"required"`
		MaterialGroups []string `json:"material_groups" validate:"required,min=1"`
		Person1        string   `json:"person1" validate:"required"`
		Person2        string   `json:"person2" validate:"required"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body", "error": err.Error()})
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "error": err.Error()})
	}

	group := models.CountingGroup{
		ID:             groupID,
		Name:           input.Name,
		MaterialGroups: input.MaterialGroups,
		Person1:        input.Person1,
		Person2:        input.Person2,
	}
	if err := c.Store.UpdateGroup(group); err != nil {
		return writeStoreError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Group updated",
		"data":    fiber.Map{"group": group},
	})
}
