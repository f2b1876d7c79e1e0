package routes

import (
	"counting-app/config"
	"counting-app/controllers"
	"counting-app/inventory"
	"counting-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCatalogRoutes(app *fiber.App, store *inventory.Store) {
	controller := controllers.NewCatalogController(store)
	api := app.Group(config.MAIN_ROUTES + "/groups")

	api.Get("/", controller.GetGroups)
	api.Put("/:id", middleware.AdminMiddleware, controller.UpdateGroup)
}
