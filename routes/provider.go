package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickfixhub/server/controllers/provider"
	"github.com/quickfixhub/server/middleware"
)

// SetupProviderRoutes configures the provider-side profile, listing and job
// management routes.
func SetupProviderRoutes(app *fiber.App) {
	group := app.Group("/provider", middleware.Protected(), middleware.RequireRole(middleware.RoleProvider))

	group.Get("/profile", provider.GetProfile)
	group.Patch("/profile", provider.UpdateProfile)
	group.Post("/profile/picture", provider.UpdateProfilePicture)

	group.Post("/services", provider.CreateService)
	group.Get("/services", provider.GetMyServices)
	group.Put("/services/:id", provider.UpdateService)
	group.Delete("/services/:id", provider.DeleteService)

	group.Get("/bookings", provider.GetMyBookings)
	group.Post("/bookings/:id/accept", provider.AcceptBooking)
	group.Post("/bookings/:id/decline", provider.DeclineBooking)
	group.Post("/bookings/:id/complete", provider.CompleteBooking)
}
