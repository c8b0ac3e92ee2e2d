package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Admin is a dedicated operator identity with a hashed credential, replacing
// plaintext credential comparison against environment variables.
type Admin struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name"`
	Email     string         `json:"email" gorm:"unique"`
	Password  string         `json:"password,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	return nil
}
