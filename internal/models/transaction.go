package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction kinds
const (
	TransactionKindCredit        = "credit"
	TransactionKindDebit         = "debit"
	TransactionKindPointExchange = "point_exchange"
	TransactionKindPixIn         = "pix_in"
	TransactionKindPixOut        = "pix_out"
	TransactionKindMusicRequest  = "music_request"
	TransactionKindLiveTip       = "live_tip"
	TransactionKindContract      = "contract"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusCancelled = "cancelled"
	TransactionStatusEscrow    = "escrow"
)

// Transaction is an append-only ledger entry. The amount is signed: positive
// credits the wallet, negative debits it. Rows are immutable once created,
// except for the pending -> completed/cancelled status transition driven by
// the Pix confirmation flow.
type Transaction struct {
	ID           string          `gorm:"primarykey;type:uuid" json:"id"`
	WalletID     string          `gorm:"index;not null;type:uuid" json:"walletId"`
	Amount       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	PointsChange int64           `gorm:"not null;default:0" json:"pointsChange"`
	Kind         string          `gorm:"not null" json:"kind"`
	Status       string          `gorm:"not null;default:'completed';index" json:"status"`
	Description  string          `json:"description"`
	// ExternalReference carries the payment gateway id for Pix flows.
	ExternalReference string    `gorm:"uniqueIndex:idx_tx_ext_ref,where:external_reference <> ''" json:"externalReference,omitempty"`
	CreatedAt         time.Time `gorm:"index" json:"createdAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
