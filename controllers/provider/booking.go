package provider

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/models"
	"github.com/quickfixhub/server/utils"
)

// jobView wraps a booking with the display location: the customer's city and
// state when present, falling back to the provider's own.
type jobView struct {
	models.Booking
	Location string `json:"location"`
}

// GetMyBookings lists the provider's jobs, most recently scheduled first.
func GetMyBookings(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)

	var provider models.ServiceProvider
	if err := db.DB.First(&provider, providerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider profile not found",
		})
	}

	query := db.DB.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, name, email, phone_number, city, state")
	}).Preload("Service").
		Where("provider_id = ?", providerID).
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

	jobs := make([]jobView, 0, len(bookings))
	for _, b := range bookings {
		location := b.User.City
		if location != "" && b.User.State != "" {
			location += ", " + b.User.State
		}
		if location == "" {
			location = provider.LocationLabel()
		}
		jobs = append(jobs, jobView{Booking: b, Location: location})
	}

	return c.JSON(fiber.Map{
		"bookings": jobs,
		"count":    len(jobs),
	})
}

func transitionOwnBooking(c *fiber.Ctx, next models.BookingStatus) error {
	providerID := c.Locals("userID").(uint)

	var booking models.Booking
	if err := db.DB.First(&booking, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	if booking.ProviderID != providerID {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "This booking belongs to another provider",
		})
	}

	if err := booking.Transition(db.DB, next); err != nil {
		var invalid *models.InvalidTransitionError
		if errors.As(err, &invalid) || errors.Is(err, models.ErrStaleBooking) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update booking",
			Error:   err.Error(),
		})
	}

	var user models.User
	if err := db.DB.First(&user, booking.UserID).Error; err == nil {
		go utils.NotifyBookingStatus(&booking, &user)
	}

	return c.JSON(booking)
}

// AcceptBooking confirms a pending job.
func AcceptBooking(c *fiber.Ctx) error {
	return transitionOwnBooking(c, models.StatusConfirmed)
}

// DeclineBooking turns down a pending job.
func DeclineBooking(c *fiber.Ctx) error {
	return transitionOwnBooking(c, models.StatusDeclined)
}

// CompleteBooking marks a confirmed job as done.
func CompleteBooking(c *fiber.Ctx) error {
	return transitionOwnBooking(c, models.StatusCompleted)
}
