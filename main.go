package main

import (
	"log"

	"counting-app/config"
	"counting-app/controllers/idgen"
	"counting-app/database"
	"counting-app/inventory"
	"counting-app/routes"
	"counting-app/storage"

	"github.com/gofiber/fiber/v2"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	// Connect to database
	db, err := storage.Open()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	idgen.Init()

	// Restore state and seed the catalog on first start
	store := inventory.NewStore(storage.NewStore(db))
	store.Load()
	database.SeedCatalog(store)

	// Setup CORS middleware
	config.SetupCORS(app)

	// Setup routes
	routes.SetupSessionRoutes(app, store)
	routes.SetupCatalogRoutes(app, store)
	routes.SetupCountingRoutes(app, store)
	routes.SetupComparisonRoutes(app, store)
	routes.SetupAdminRoutes(app, store)

	log.Fatal(app.Listen(":" + config.APP_PORT))
}
