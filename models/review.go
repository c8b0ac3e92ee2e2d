package models

import (
	"fmt"

	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	ProviderID uint            `json:"provider_id"`
	Provider   ServiceProvider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	UserID     uint            `json:"user_id"`
	User       User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Rating     int             `json:"rating" gorm:"not null"`
	Comment    string          `json:"comment"`
	Approved   bool            `json:"approved" gorm:"default:false"` // moderation flag, not enforced on reads
}

// BeforeCreate rejects out-of-range ratings before they reach storage.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

// ReviewStats is the computed rating summary for a provider, aggregated from
// stored reviews rather than synthesized client-side.
type ReviewStats struct {
	ProviderID   uint    `json:"provider_id"`
	TotalReviews int64   `json:"total_reviews"`
	AvgRating    float64 `json:"average_rating"`
	Rating5Count int64   `json:"rating_5_count"`
	Rating4Count int64   `json:"rating_4_count"`
	Rating3Count int64   `json:"rating_3_count"`
	Rating2Count int64   `json:"rating_2_count"`
	Rating1Count int64   `json:"rating_1_count"`
}
