package provider

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/models"
	"github.com/quickfixhub/server/utils"
)

// CreateService lists a new offering under the authenticated provider.
func CreateService(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)

	var service models.Service
	if err := c.BodyParser(&service); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	service.ProviderID = providerID

	if service.Title == "" || service.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "title and category are required",
		})
	}
	if service.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "price cannot be negative",
		})
	}

	if err := db.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create service",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}

// GetMyServices lists the authenticated provider's offerings.
func GetMyServices(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)

	var services []models.Service
	if err := db.DB.Where("provider_id = ?", providerID).Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch services",
			Error:   err.Error(),
		})
	}

	return c.JSON(services)
}

// UpdateService edits one of the provider's own listings.
func UpdateService(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)

	var service models.Service
	if err := db.DB.Where("id = ? AND provider_id = ?", c.Params("id"), providerID).
		First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
		})
	}

	type serviceUpdate struct {
		Title       *string           `json:"title"`
		Category    *string           `json:"category"`
		Description *string           `json:"description"`
		Price       *float64          `json:"price"`
		Images      models.StringList `json:"images"`
		Location    *string           `json:"location"`
	}

	input := new(serviceUpdate)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	updates := make(map[string]interface{})
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "price cannot be negative",
			})
		}
		updates["price"] = *input.Price
	}
	if input.Images != nil {
		updates["images"] = input.Images
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}

	if err := db.DB.Model(&service).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update service",
			Error:   err.Error(),
		})
	}

	return c.JSON(service)
}

// DeleteService removes one of the provider's own listings.
func DeleteService(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)

	var service models.Service
	if err := db.DB.Where("id = ? AND provider_id = ?", c.Params("id"), providerID).
		First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
		})
	}

	if err := db.DB.Delete(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete service",
			Error:   err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
