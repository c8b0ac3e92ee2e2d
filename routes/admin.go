package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickfixhub/server/controllers"
	"github.com/quickfixhub/server/middleware"
)

// SetupAdminRoutes configures the admin panel routes. Every route requires a
// verified admin role claim.
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected(), middleware.RequireRole(middleware.RoleAdmin))

	admin.Get("/dashboard", controllers.GetDashboardStats)

	admin.Get("/users", controllers.GetAllUsers)
	admin.Get("/users/:id", controllers.GetUserByID)
	admin.Delete("/users/:id", controllers.DeleteUser)

	admin.Get("/providers", controllers.GetAllProviders)
	admin.Get("/providers/:id", controllers.GetProviderByID)
	admin.Delete("/providers/:id", controllers.DeleteProvider)
	admin.Patch("/providers/:id/approve", controllers.ApproveProvider)

	admin.Get("/bookings", controllers.GetAllBookings)
}
