package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/appointa/appointa/config"
	"github.com/appointa/appointa/cron"
	"github.com/appointa/appointa/db"
	"github.com/appointa/appointa/logger"
	"github.com/appointa/appointa/redis"
	"github.com/appointa/appointa/routes"
)

func main() {
	cfg := config.Load()
	logger.Init()
	defer logger.Sync()

	db.Init(cfg.DatabaseURL)
	if os.Getenv("RUN_MIGRATIONS") == "true" {
		db.Migrate()
	}
	redis.Init(cfg.RedisAddr)
	cron.StartCronJobs()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, World!")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupActivityRoutes(app)
	routes.SetupAppointmentRoutes(app)

	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.L.Fatal("Server stopped", zap.Error(err))
	}
}
