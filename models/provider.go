package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ServiceProvider is a business listed on the marketplace. Providers sign in
// with their own credentials and are the target of bookings and reviews.
type ServiceProvider struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name"`
	Email        string         `json:"email" gorm:"unique"`
	Password     string         `json:"password,omitempty"`
	PhoneNumber  string         `json:"phone_number,omitempty"`
	ProfileImage string         `json:"profile_image,omitempty"`
	Description  string         `json:"description,omitempty"`
	PricingModel string         `json:"pricing_model,omitempty"` // free text, e.g. "500/hr"
	Availability Availability   `json:"availability,omitempty" gorm:"type:json"`
	Approved     bool           `json:"approved" gorm:"default:false"`
	ServiceTypes StringList     `json:"service_types" gorm:"type:json"`
	City         string         `json:"city,omitempty"`
	State        string         `json:"state,omitempty"`
	Services     []Service      `json:"services,omitempty" gorm:"foreignKey:ProviderID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// BeforeCreate normalizes the email so uniqueness is case-insensitive.
func (p *ServiceProvider) BeforeCreate(tx *gorm.DB) error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	return nil
}

// PrimaryCategory returns the first service type for card display.
func (p *ServiceProvider) PrimaryCategory() string {
	if len(p.ServiceTypes) == 0 {
		return ""
	}
	return p.ServiceTypes[0]
}

// LocationLabel renders "City, State" with either part optional.
func (p *ServiceProvider) LocationLabel() string {
	switch {
	case p.City != "" && p.State != "":
		return p.City + ", " + p.State
	case p.City != "":
		return p.City
	default:
		return p.State
	}
}
