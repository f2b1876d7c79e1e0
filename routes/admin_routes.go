package routes

import (
	"counting-app/config"
	"counting-app/controllers"
	"counting-app/inventory"
	"counting-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, store *inventory.Store) {
	controller := controllers.NewAdminController(store)

	app.Post(config.MAIN_ROUTES+"/admin/login", controller.Login)

	api := app.Group(config.MAIN_ROUTES+"/admin", middleware.AdminMiddleware)
	api.Get("/overview", controller.Overview)
	api.Get("/groups/:id/report", controller.GroupReport)
	api.Post("/resolutions", controller.Resolve)
	api.Get("/export", controller.ExportExcel)
	api.Post("/notify", controller.Notify)
}
