package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/appointa/appointa/controllers"
	"github.com/appointa/appointa/middleware"
)

// SetupAuthRoutes configures authentication and profile routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)

	profile := app.Group("/profile", middleware.Protected())
	profile.Get("/", controllers.GetProfile)
	profile.Patch("/", controllers.UpdateProfile)
	profile.Post("/avatar", controllers.UploadAvatar)
}
