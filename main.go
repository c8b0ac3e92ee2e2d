package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/quickfixhub/server/cron"
	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/redis"
	"github.com/quickfixhub/server/routes"
)

func setupApp() *fiber.App {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupConsumerRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupAdminRoutes(app)

	return app
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			db.Migrate()
			return
		case "seed":
			db.Migrate()
			db.Seed()
			return
		}
	}

	db.Init()
	if os.Getenv("REDIS_ADDR") != "" {
		redis.InitRedis()
	}

	cron.StartCronJobs()

	app := setupApp()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("QuickFixHub server listening on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
