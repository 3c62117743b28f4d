package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet holds a user's balance and loyalty points. One wallet per user,
// created lazily on first access and never deleted.
type Wallet struct {
	ID        string          `gorm:"primarykey;type:uuid" json:"id"`
	UserID    string          `gorm:"uniqueIndex;not null;size:128" json:"userId"`
	Balance   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"balance"`
	Points    int64           `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	// New wallets always start empty
	w.Balance = decimal.Zero
	w.Points = 0
	return nil
}
