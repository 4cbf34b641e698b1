package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OTP is a one-time code mailed during registration. A code is spent once
// verified; expiry is judged at verification time.
type OTP struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	Email     string    `gorm:"not null;index"`
	Code      string    `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (o *OTP) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Expired reports whether the code is past its validity window.
func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
