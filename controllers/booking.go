package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/quickfixhub/server/db"
	"github.com/quickfixhub/server/middleware"
	"github.com/quickfixhub/server/models"
	"github.com/quickfixhub/server/utils"
)

// statusTargetsByRole limits which lifecycle moves each side may request:
// customers cancel, providers respond to and finish jobs, admins may request
// any legal transition.
var statusTargetsByRole = map[string][]models.BookingStatus{
	middleware.RoleUser:     {models.StatusCancelled},
	middleware.RoleProvider: {models.StatusConfirmed, models.StatusDeclined, models.StatusCompleted},
}

func roleMayRequest(role string, target models.BookingStatus) bool {
	if role == middleware.RoleAdmin {
		return true
	}
	for _, allowed := range statusTargetsByRole[role] {
		if allowed == target {
			return true
		}
	}
	return false
}

// UpdateBookingStatus drives the booking lifecycle. The caller must be the
// booking's customer, its provider, or an admin; the transition table on the
// model rejects everything the lifecycle does not allow.
func UpdateBookingStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)

	type statusUpdate struct {
		Status        models.BookingStatus `json:"status"`
		PaymentStatus models.PaymentStatus `json:"payment_status"`
	}

	input := new(statusUpdate)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Status == "" && input.PaymentStatus == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "status or payment_status is required",
		})
	}
	if input.Status != "" && !models.ValidStatus(input.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unknown booking status: " + string(input.Status),
		})
	}
	if input.PaymentStatus != "" && !models.ValidPaymentStatus(input.PaymentStatus) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unknown payment status: " + string(input.PaymentStatus),
		})
	}

	var booking models.Booking
	if err := db.DB.First(&booking, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	// Capability check: only the booking's parties (or an admin) may touch it.
	switch role {
	case middleware.RoleUser:
		if booking.UserID != userID {
			return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
				Message: "You are not a party to this booking",
			})
		}
	case middleware.RoleProvider:
		if booking.ProviderID != userID {
			return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
				Message: "You are not a party to this booking",
			})
		}
	case middleware.RoleAdmin:
	default:
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You are not a party to this booking",
		})
	}

	statusChanged := false
	if input.Status != "" {
		if !roleMayRequest(role, input.Status) && input.Status != booking.Status {
			return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
				Message: "Your role cannot set this booking status",
			})
		}
		previous := booking.Status
		if err := booking.Transition(db.DB, input.Status); err != nil {
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
		statusChanged = booking.Status != previous
	}

	if input.PaymentStatus != "" {
		if err := booking.SetPaymentStatus(db.DB, input.PaymentStatus); err != nil {
			if errors.Is(err, models.ErrStaleBooking) {
				return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
					Message: err.Error(),
				})
			}
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: err.Error(),
			})
		}
	}

	if statusChanged {
		var user models.User
		if err := db.DB.First(&user, booking.UserID).Error; err == nil {
			go utils.NotifyBookingStatus(&booking, &user)
		}
	}

	return c.JSON(booking)
}

// GetBooking returns a single booking with its parties populated. Restricted
// to the booking's customer, its provider, or an admin.
func GetBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	role := c.Locals("role").(string)

	var booking models.Booking
	if err := db.DB.Preload("User").Preload("Provider").Preload("Service").
		First(&booking, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	isParty := (role == middleware.RoleUser && booking.UserID == userID) ||
		(role == middleware.RoleProvider && booking.ProviderID == userID) ||
		role == middleware.RoleAdmin
	if !isParty {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You are not a party to this booking",
		})
	}

	booking.User.Password = ""
	booking.Provider.Password = ""

	return c.JSON(booking)
}
