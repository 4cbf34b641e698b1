package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wallet holds one user's balance in one currency. Balance is an integer in
// minor units, never floating point. Exactly one wallet exists per
// (user, currency) pair, enforced by the composite unique index.
type Wallet struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_wallets_user_currency" json:"-"`
	Currency  Currency  `gorm:"type:varchar(3);not null;uniqueIndex:idx_wallets_user_currency" json:"currency"`
	Balance   int64     `gorm:"type:bigint;not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
