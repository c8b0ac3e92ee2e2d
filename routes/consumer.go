package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickfixhub/server/controllers/consumer"
	"github.com/quickfixhub/server/middleware"
)

// SetupConsumerRoutes configures the customer-facing browse, profile and
// review routes.
func SetupConsumerRoutes(app *fiber.App) {
	// Public browse endpoints. Fixed paths are registered before the
	// :id route so they are not captured by it.
	providers := app.Group("/providers")
	providers.Get("/search", consumer.SearchProviders)
	providers.Get("/category/:category", consumer.GetProvidersByCategory)
	providers.Get("/:id", consumer.GetProviderDetails)
	providers.Get("/:id/reviews", consumer.GetProviderReviews)
	providers.Get("/:id/reviews/stats", consumer.GetProviderReviewStats)

	// Reviews require an authenticated customer.
	app.Post("/reviews", middleware.Protected(), middleware.RequireRole(middleware.RoleUser), consumer.CreateReview)

	profile := app.Group("/consumer", middleware.Protected(), middleware.RequireRole(middleware.RoleUser))
	profile.Get("/profile", consumer.GetUserProfile)
	profile.Patch("/profile", consumer.UpdateUserProfile)
	profile.Post("/profile/picture", consumer.UpdateUserProfilePicture)
	profile.Delete("/profile", consumer.DeleteUserProfile)
}
