package consumer

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/models"
	"github.com/quickfixhub/server/utils"
)

// CreateBooking places a booking request with a provider. The scheduled time
// must be in the future and inside the provider's availability window.
func CreateBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var booking models.Booking
	if err := c.BodyParser(&booking); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	// The booking always belongs to the authenticated caller.
	booking.UserID = userID
	booking.Status = models.StatusPending
	booking.PaymentStatus = models.PaymentPending

	if booking.ProviderID == 0 || booking.ScheduledTime.IsZero() || booking.ServiceDetails == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "provider_id, scheduled_time and service_details are required",
		})
	}

	if !booking.ScheduledTime.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "scheduled_time must be in the future",
		})
	}

	var provider models.ServiceProvider
	if err := db.DB.First(&provider, booking.ProviderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
		})
	}

	if booking.ServiceID != nil {
		var service models.Service
		if err := db.DB.Where("id = ? AND provider_id = ?", *booking.ServiceID, provider.ID).
			First(&service).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Service not found or does not belong to this provider",
			})
		}
	}

	if !provider.Availability.Covers(booking.ScheduledTime) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Requested time is outside the provider's availability",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&booking).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create booking",
			Error:   err.Error(),
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err == nil {
		go utils.NotifyBookingCreated(&booking, &user, &provider)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetMyBookings lists the caller's bookings, most recently scheduled first,
// with the provider and service populated for display.
func GetMyBookings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	query := db.DB.Preload("Provider").Preload("Service").
		Where("user_id = ?", userID).
		Order("scheduled_time DESC")
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

	for i := range bookings {
		bookings[i].Provider.Password = ""
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"count":    len(bookings),
	})
}
