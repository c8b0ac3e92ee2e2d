package provider

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/models"
	"github.com/quickfixhub/server/utils"
)

// GetProfile returns the authenticated provider's profile with its listings.
func GetProfile(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)

	var provider models.ServiceProvider
	if err := db.DB.Preload("Services").First(&provider, providerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}

	provider.Password = ""
	return c.JSON(provider)
}

// UpdateProfile edits the provider's profile, including the availability map
// and service type list. Approval status cannot be self-edited.
func UpdateProfile(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)

	var provider models.ServiceProvider
	if err := db.DB.First(&provider, providerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}

	type profileUpdate struct {
		Name         *string             `json:"name"`
		PhoneNumber  *string             `json:"phone_number"`
		Description  *string             `json:"description"`
		PricingModel *string             `json:"pricing_model"`
		Availability models.Availability `json:"availability"`
		ServiceTypes models.StringList   `json:"service_types"`
		City         *string             `json:"city"`
		State        *string             `json:"state"`
	}

	input := new(profileUpdate)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile data",
		})
	}

	updates := make(map[string]interface{})
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.PhoneNumber != nil {
		updates["phone_number"] = *input.PhoneNumber
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.PricingModel != nil {
		updates["pricing_model"] = *input.PricingModel
	}
	if input.City != nil {
		updates["city"] = *input.City
	}
	if input.State != nil {
		updates["state"] = *input.State
	}
	if input.Availability != nil {
		if err := input.Availability.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		updates["availability"] = input.Availability
	}
	if input.ServiceTypes != nil {
		updates["service_types"] = input.ServiceTypes
	}

	if err := db.DB.Model(&provider).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	provider.Password = ""
	return c.JSON(provider)
}

// UpdateProfilePicture uploads a new profile image and stores its URL.
func UpdateProfilePicture(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)

	var provider models.ServiceProvider
	if err := db.DB.First(&provider, providerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
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
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read uploaded file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadProfileImage(file, fmt.Sprintf("provider-%d", provider.ID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload image",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&provider).Update("profile_image", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save image URL",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"profile_image": url})
}
