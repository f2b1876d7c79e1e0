package routes

import (
	"counting-app/config"
	"counting-app/controllers"
	"counting-app/inventory"
	"counting-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupComparisonRoutes(app *fiber.App, store *inventory.Store) {
	controller := controllers.NewComparisonController(store)
	api := app.Group(config.MAIN_ROUTES+"/comparison", middleware.AuthMiddleware)

	api.Get("/", controller.GetComparison)
}
