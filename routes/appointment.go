package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appointa/appointa/controllers"
	"github.com/appointa/appointa/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Get("/", controllers.GetAllAppointments)
	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Post("/check-conflict", controllers.CheckConflict)
	appointment.Post("/", middleware.Protected(), controllers.CreateAppointment)
	appointment.Patch("/:id", middleware.Protected(), controllers.UpdateAppointment)
	appointment.Delete("/:id", middleware.Protected(), controllers.DeleteAppointment)

	app.Get("/providers/:id/schedule", controllers.GetProviderSchedule)
}
