package consumer

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/models"
	"github.com/quickfixhub/server/redis"
)

// CreateReview adds a new review for a provider
func CreateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	review := new(models.Review)
	if err := c.BodyParser(review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review data",
		})
	}

	// The review always belongs to the authenticated caller.
	review.UserID = userID
	review.Approved = false

	if review.ProviderID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "provider_id is required",
		})
	}
	if review.Rating < 1 || review.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rating must be between 1 and 5",
		})
	}
	if review.Comment == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Comment is required",
		})
	}

	var provider models.ServiceProvider
	if err := db.DB.First(&provider, review.ProviderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if err := db.DB.Create(review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review",
		})
	}

	// Drop the cached rating summary so the new review shows up.
	if redis.Client != nil {
		key := reviewStatsCacheKey(strconv.FormatUint(uint64(review.ProviderID), 10))
		redis.Client.Del(redis.Ctx, key)
	}

	user.Password = ""
	provider.Password = ""
	review.User = user
	review.Provider = provider

	return c.Status(fiber.StatusCreated).JSON(review)
}
