package middleware

import (
	"errors"
	"strings"
	"time"

	"counting-app/config"
	"counting-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the counter-session token and stores the
// session claims in the request locals.
func AuthMiddleware(ctx *fiber.Ctx) error {
	claims, err := parseToken(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	groupID, _ := claims["group_id"].(string)
	counterID, _ := claims["counter_id"].(string)
	counterName, _ := claims["counter_name"].(string)
	sessionID, _ := claims["session_id"].(string)

	if groupID == "" || !models.CounterID(counterID).Valid() {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: invalid session claims",
		})
	}

	ctx.Locals("groupID", groupID)
	ctx.Locals("counterID", counterID)
	ctx.Locals("counterName", counterName)
	ctx.Locals("sessionID", sessionID)
	ctx.Locals("role", claims["role"])

	return ctx.Next()
}

// AdminMiddleware additionally requires the admin role claim issued
// after a successful PIN check.
func AdminMiddleware(ctx *fiber.Ctx) error {
	claims, err := parseToken(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	if role, _ := claims["role"].(string); role != "admin" {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden: admin access required",
		})
	}

	ctx.Locals("role", "admin")
	ctx.Locals("sessionID", claims["session_id"])
	return ctx.Next()
}

func parseToken(ctx *fiber.Ctx) (jwt.MapClaims, error) {
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("Missing Authorization header")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return nil, errors.New("Invalid Authorization header format")
	}

	token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("Unauthorized: Invalid signing method")
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("Unauthorized: Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("Unauthorized: Invalid claims")
	}

	if exp, ok := claims["exp"].(float64); !ok || time.Now().Unix() > int64(exp) {
		return nil, errors.New("Unauthorized: Token expired")
	}

	return claims, nil
}
