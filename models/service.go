package models

import (
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	ProviderID  uint            `json:"provider_id"`
	Provider    ServiceProvider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price"`
	Images      StringList      `json:"images" gorm:"type:json"`
	Location    string          `json:"location,omitempty"`
}
