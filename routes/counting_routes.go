package routes

import (
	"counting-app/config"
	"counting-app/controllers"
	"counting-app/inventory"
	"counting-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCountingRoutes(app *fiber.App, store *inventory.Store) {
	controller := controllers.NewCountingController(store)
	api := app.Group(config.MAIN_ROUTES+"/counting", middleware.AuthMiddleware)

	api.Get("/products", controller.ListProducts)
	api.Get("/products/:productId/history", controller.History)
	api.Post("/products/:productId/entries", controller.AppendEntry)
	api.Put("/products/:productId/entries/:entryId", controller.UpdateEntry)
	api.Delete("/products/:productId/entries/:entryId", controller.DeleteEntry)
	api.Post("/fill-zeros", controller.FillZeros)
	api.Get("/progress", controller.Progress)
}
