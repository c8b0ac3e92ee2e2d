package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name"`
	Email        string         `json:"email" gorm:"unique"`
	Password     string         `json:"password,omitempty"`
	PhoneNumber  string         `json:"phone_number,omitempty"`
	ProfileImage string         `json:"profile_image,omitempty"`
	City         string         `json:"city"`
	State        string         `json:"state"`
	Bookings     []Booking      `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
	Reviews      []Review       `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// BeforeCreate normalizes the email so uniqueness is case-insensitive.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}
