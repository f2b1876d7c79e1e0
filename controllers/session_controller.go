package controllers

import (
	"time"

	"counting-app/config"
	"counting-app/inventory"
	"counting-app/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type SessionController struct {
	Store *inventory.Store
}

func NewSessionController(store *inventory.Store) *SessionController {
	return &SessionController{Store: store}
}

// Login selects a counter slot of a group and issues the session
// token the counting endpoints require.
func (c *SessionController) Login(ctx *fiber.Ctx) error {
	var input struct {
		GroupID   string `json:"group_id" validate:"required"`
		CounterID string `json:"counter_id" validate:"required,oneof=person1 person2"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body", "error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "error": err.Error()})
	}

	group, ok := c.Store.GroupByID(input.GroupID)
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Counting group not found"})
	}

	counter := models.CounterID(input.CounterID)
	session := models.UserSession{
		SessionID:   uuid.NewString(),
		GroupID:     group.ID,
		CounterID:   counter,
		CounterName: group.CounterName(counter),
	}
	c.Store.SetSession(session)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id":   session.SessionID,
		"group_id":     session.GroupID,
		"counter_id":   string(session.CounterID),
		"counter_name": session.CounterName,
		"exp":          time.Now().Add(time.Duration(config.JWTExpiration) * time.Second).Unix(),
		"jti":          uuid.NewString(),
	})

	tokenString, err := token.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to sign token", "error": err.Error()})
	}

	ctx.Cookie(config.GetTokenCookie(tokenString))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data": fiber.Map{
			"token":   tokenString,
			"session": session,
			"group":   group,
		},
	})
}

// Logout clears only the persisted session selection. The counter's
// ledger and totals stay untouched.
func (c *SessionController) Logout(ctx *fiber.Ctx) error {
	c.Store.ClearSession()
	ctx.Cookie(config.GetTokenCookie(""))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

// Current returns the active session, if any.
func (c *SessionController) Current(ctx *fiber.Ctx) error {
	session, ok := c.Store.ActiveSession()
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "No active session"})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"session": session}})
}
