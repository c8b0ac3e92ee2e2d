package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/models"
	"github.com/quickfixhub/server/utils"
)

func pagination(c *fiber.Ctx) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

// GetAllUsers lists customer accounts for the admin panel.
func GetAllUsers(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)

	var users []models.User
	if err := db.DB.Limit(limit).Offset(offset).Order("created_at DESC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch users",
			Error:   err.Error(),
		})
	}

	var count int64
	db.DB.Model(&models.User{}).Count(&count)

	for i := range users {
		users[i].Password = ""
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": count,
		"page":  page,
		"limit": limit,
		"pages": (int(count) + limit - 1) / limit,
	})
}

// GetUserByID returns a single customer account.
func GetUserByID(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}
	user.Password = ""
	return c.JSON(user)
}

// DeleteUser removes a customer account. Dependent bookings and reviews are
// deliberately retained with orphaned references; read paths render them with
// zero-value joins.
func DeleteUser(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	if err := db.DB.Delete(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete user",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}

// GetAllProviders lists provider accounts for the admin panel.
func GetAllProviders(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)

	var providers []models.ServiceProvider
	if err := db.DB.Limit(limit).Offset(offset).Order("created_at DESC").Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch providers",
			Error:   err.Error(),
		})
	}

	var count int64
	db.DB.Model(&models.ServiceProvider{}).Count(&count)

	for i := range providers {
		providers[i].Password = ""
	}

	return c.JSON(fiber.Map{
		"providers": providers,
		"total":     count,
		"page":      page,
		"limit":     limit,
		"pages":     (int(count) + limit - 1) / limit,
	})
}

// GetProviderByID returns a single provider with its service listings.
func GetProviderByID(c *fiber.Ctx) error {
	var provider models.ServiceProvider
	if err := db.DB.Preload("Services").First(&provider, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
		})
	}
	provider.Password = ""
	return c.JSON(provider)
}

// DeleteProvider removes a provider account. Service listings, bookings and
// reviews referencing it are retained (same orphaning policy as DeleteUser).
func DeleteProvider(c *fiber.Ctx) error {
	var provider models.ServiceProvider
	if err := db.DB.First(&provider, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
		})
	}

	if err := db.DB.Delete(&provider).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete provider",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Provider deleted"})
}

// ApproveProvider flips the admin approval gate on a provider profile.
func ApproveProvider(c *fiber.Ctx) error {
	var provider models.ServiceProvider
	if err := db.DB.First(&provider, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
		})
	}

	type approveInput struct {
		Approved *bool `json:"approved"`
	}
	input := new(approveInput)
	if err := c.BodyParser(input); err != nil || input.Approved == nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "approved field is required",
		})
	}

	if err := db.DB.Model(&provider).Update("approved", *input.Approved).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update provider",
			Error:   err.Error(),
		})
	}

	provider.Password = ""
	return c.JSON(provider)
}

// GetAllBookings lists bookings with both parties populated. Bookings whose
// user or provider was deleted come back with zero-value joins rather than
// an error.
func GetAllBookings(c *fiber.Ctx) error {
	page, limit, offset := pagination(c)

	query := db.DB.Preload("User").Preload("Provider").Preload("Service").
		Order("scheduled_time DESC").Limit(limit).Offset(offset)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	var count int64
	db.DB.Model(&models.Booking{}).Count(&count)

	for i := range bookings {
		bookings[i].User.Password = ""
		bookings[i].Provider.Password = ""
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"total":    count,
		"page":     page,
		"limit":    limit,
		"pages":    (int(count) + limit - 1) / limit,
	})
}

// GetDashboardStats returns entity counts and a booking status breakdown.
func GetDashboardStats(c *fiber.Ctx) error {
	var userCount, providerCount, serviceCount, bookingCount, reviewCount int64
	db.DB.Model(&models.User{}).Count(&userCount)
	db.DB.Model(&models.ServiceProvider{}).Count(&providerCount)
	db.DB.Model(&models.Service{}).Count(&serviceCount)
	db.DB.Model(&models.Booking{}).Count(&bookingCount)
	db.DB.Model(&models.Review{}).Count(&reviewCount)

	statuses := []models.BookingStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusCompleted,
		models.StatusCancelled, models.StatusDeclined,
	}
	byStatus := fiber.Map{}
	for _, s := range statuses {
		var n int64
		db.DB.Model(&models.Booking{}).Where("status = ?", s).Count(&n)
		byStatus[string(s)] = n
	}

	return c.JSON(fiber.Map{
		"users":              userCount,
		"providers":          providerCount,
		"services":           serviceCount,
		"bookings":           bookingCount,
		"reviews":            reviewCount,
		"bookings_by_status": byStatus,
	})
}
