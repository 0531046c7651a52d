package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appointa/appointa/controllers"
	"github.com/appointa/appointa/middleware"
)

// SetupActivityRoutes configures all activity related routes
func SetupActivityRoutes(app *fiber.App) {
	activity := app.Group("/activities")
	activity.Get("/", controllers.GetAllActivities)
	activity.Get("/:id", controllers.GetActivity)
	activity.Post("/", middleware.Protected(), controllers.CreateActivity)
	activity.Patch("/:id", middleware.Protected(), controllers.UpdateActivity)
	activity.Delete("/:id", middleware.Protected(), controllers.DeleteActivity)
}
