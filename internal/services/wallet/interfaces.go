package wallet

import (
	"context"

	"mixbeat/internal/models"

	"github.com/shopspring/decimal"
)

// Service defines the wallet manager interface
type Service interface {
	// GetOrCreateWallet returns the user's wallet, creating an empty one on
	// first access. Idempotent under concurrent first calls.
	GetOrCreateWallet(ctx context.Context, userID string) (*models.Wallet, error)

	// ListTransactions returns the wallet's ledger entries newest first.
	// Re-fetching from the top has no side effects.
	ListTransactions(ctx context.Context, walletID string, limit, offset int) ([]models.Transaction, error)

	// ApplyTransaction atomically mutates the balance and appends a completed
	// ledger entry. A debit that would overdraw the wallet returns
	// (false, nil) and changes nothing; storage faults return an error.
	ApplyTransaction(ctx context.Context, userID string, amount decimal.Decimal, kind, description string, points int64) (bool, error)
}

// Cache is the subset of the cache service the wallet manager needs.
type Cache interface {
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)
	SetWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID string) error
}
