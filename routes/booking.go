package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickfixhub/server/controllers"
	"github.com/quickfixhub/server/controllers/consumer"
	"github.com/quickfixhub/server/middleware"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App) {
	booking := app.Group("/bookings", middleware.Protected())

	booking.Post("/", middleware.RequireRole(middleware.RoleUser), consumer.CreateBooking)
	booking.Get("/", middleware.RequireRole(middleware.RoleUser), consumer.GetMyBookings)

	// Status mutation is participant-gated inside the handler: the
	// booking's customer, its provider, or an admin.
	booking.Get("/:id", controllers.GetBooking)
	booking.Patch("/:id/status", controllers.UpdateBookingStatus)
}
