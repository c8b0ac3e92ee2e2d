package consumer

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/models"
	"github.com/quickfixhub/server/utils"
)

// GetUserProfile returns the authenticated customer's profile
func GetUserProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	user.Password = ""
	return c.JSON(user)
}

// UpdateUserProfile edits the caller's profile fields
func UpdateUserProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	updateData := make(map[string]interface{})
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile data",
		})
	}

	// Only allow certain fields to be updated
	allowedFields := map[string]bool{
		"name":         true,
		"phone_number": true,
		"city":         true,
		"state":        true,
	}

	updateMap := make(map[string]interface{})
	for key, value := range updateData {
		if allowedFields[key] {
			updateMap[key] = value
		}
	}

	if err := db.DB.Model(&user).Updates(updateMap).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	user.Password = ""
	return c.JSON(user)
}

// UpdateUserProfilePicture uploads a new profile image and stores its URL.
func UpdateUserProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "picture file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer file.Close()

	url, err := utils.UploadProfileImage(file, fmt.Sprintf("user-%d", user.ID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload image",
		})
	}

	if err := db.DB.Model(&user).Update("profile_image", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save image URL",
		})
	}

	return c.JSON(fiber.Map{"profile_image": url})
}

// DeleteUserProfile removes the caller's account. Bookings and reviews it
// placed are retained with orphaned references.
func DeleteUserProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if err := db.DB.Delete(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete profile",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
