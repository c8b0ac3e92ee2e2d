package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusDeclined  BookingStatus = "declined"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// ErrStaleBooking is returned when a guarded status update matched no row,
// meaning another caller transitioned the booking first.
var ErrStaleBooking = errors.New("booking status changed concurrently")

// InvalidTransitionError reports a status change the lifecycle does not allow.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}

// statusTransitions is the allowed next-state table. Completed, cancelled and
// declined are terminal.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusDeclined, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

type Booking struct {
	gorm.Model
	Reference      string          `json:"reference" gorm:"uniqueIndex;size:36"`
	UserID         uint            `json:"user_id"`
	User           User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ProviderID     uint            `json:"provider_id"`
	Provider       ServiceProvider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ServiceID      *uint           `json:"service_id,omitempty"`
	Service        *Service        `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	ScheduledTime  time.Time       `json:"scheduled_time"`
	ServiceDetails string          `json:"service_details"`
	Status         BookingStatus   `json:"status" gorm:"default:pending"`
	PaymentStatus  PaymentStatus   `json:"payment_status" gorm:"default:pending"`
	ConfirmedAt    *time.Time      `json:"confirmed_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = PaymentPending
	}
	if b.Reference == "" {
		b.Reference = uuid.NewString()
	}
	return nil
}

// ValidStatus reports whether s is one of the five booking states.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusDeclined:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is one of the three payment states.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// CanTransition reports whether the lifecycle allows moving to next from the
// booking's current status.
func (b *Booking) CanTransition(next BookingStatus) bool {
	for _, allowed := range statusTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition moves the booking to next and stamps the matching audit field.
// Writing the current status again is an idempotent no-op. The update is
// guarded on the status the caller observed, so two racing transitions cannot
// both win; the loser gets ErrStaleBooking.
func (b *Booking) Transition(tx *gorm.DB, next BookingStatus) error {
	if next == b.Status {
		return nil
	}
	if !b.CanTransition(next) {
		return &InvalidTransitionError{From: b.Status, To: next}
	}

	now := time.Now()
	updates := map[string]interface{}{"status": next}
	switch next {
	case StatusConfirmed:
		updates["confirmed_at"] = &now
	case StatusCompleted:
		updates["completed_at"] = &now
	case StatusCancelled:
		updates["cancelled_at"] = &now
	}

	result := tx.Model(&Booking{}).
		Where("id = ? AND status = ?", b.ID, b.Status).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleBooking
	}

	b.Status = next
	switch next {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}
	return nil
}

// SetPaymentStatus moves the payment axis. A booking can only be marked paid
// once the work is completed; paid is terminal.
func (b *Booking) SetPaymentStatus(tx *gorm.DB, next PaymentStatus) error {
	if next == b.PaymentStatus {
		return nil
	}
	if b.PaymentStatus == PaymentPaid {
		return fmt.Errorf("booking %d is already paid", b.ID)
	}
	if next == PaymentPaid && b.Status != StatusCompleted {
		return fmt.Errorf("cannot mark booking %d paid before completion", b.ID)
	}

	result := tx.Model(&Booking{}).
		Where("id = ? AND payment_status = ?", b.ID, b.PaymentStatus).
		Update("payment_status", next)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleBooking
	}

	b.PaymentStatus = next
	return nil
}
