package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types
const (
	TransactionTypeFund    = "FUND"
	TransactionTypeConvert = "CONVERT"
	TransactionTypeTrade   = "TRADE"
)

// Transaction statuses
const (
	TransactionStatusPending = "PENDING"
	TransactionStatusSuccess = "SUCCESS"
	TransactionStatusFailed  = "FAILED"
)

// Transaction is one immutable ledger entry: a single funding or conversion
// attempt and its terminal outcome. Entries are append-only; nothing in the
// codebase updates or deletes one after it is written.
type Transaction struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string          `gorm:"type:uuid;not null;index" json:"-"`
	Type         string          `gorm:"type:varchar(10);not null" json:"type"`
	Reference    string          `gorm:"not null;index" json:"reference"`
	FromCurrency *Currency       `gorm:"type:varchar(3)" json:"fromCurrency"`
	ToCurrency   Currency        `gorm:"type:varchar(3);not null" json:"toCurrency"`
	Amount       int64           `gorm:"type:bigint;not null" json:"amount"`
	Rate         decimal.Decimal `gorm:"type:numeric(12,6)" json:"rate"`
	Status       string          `gorm:"type:varchar(10);not null" json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
