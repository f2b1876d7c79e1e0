package routes

import (
	"counting-app/config"
	"counting-app/controllers"
	"counting-app/inventory"

	"github.com/gofiber/fiber/v2"
)

func SetupSessionRoutes(app *fiber.App, store *inventory.Store) {
	controller := controllers.NewSessionController(store)
	api := app.Group(config.MAIN_ROUTES + "/session")

	api.Post("/login", controller.Login)
	api.Post("/logout", controller.Logout)
	api.Get("/", controller.Current)
}
