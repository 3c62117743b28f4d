package repositories

import (
	"context"
	"errors"
	"time"

	"mixbeat/internal/models"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrDuplicateWallet     = errors.New("wallet already exists")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// WalletRepository is the ledger store: wallets plus their append-only
// transaction history. Mutating calls that must be atomic run inside
// ExecuteInTransaction; the ForUpdate variants take a row lock so balance
// checks and updates on the same wallet cannot interleave.
type WalletRepository interface {
	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	GetWalletByUserID(ctx context.Context, userID string) (*models.Wallet, error)
	GetWalletByUserIDForUpdate(ctx context.Context, userID string) (*models.Wallet, error)
	GetWalletByID(ctx context.Context, walletID string) (*models.Wallet, error)
	GetWalletByIDForUpdate(ctx context.Context, walletID string) (*models.Wallet, error)
	UpdateWallet(ctx context.Context, wallet *models.Wallet) error

	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransactionByExternalRef(ctx context.Context, ref string) (*models.Transaction, error)
	GetTransactionByExternalRefForUpdate(ctx context.Context, ref string) (*models.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, txID, status string) error
	ListTransactions(ctx context.Context, walletID string, limit, offset int) ([]models.Transaction, error)
	ListPendingOlderThan(ctx context.Context, kind string, cutoff time.Time, limit int) ([]models.Transaction, error)

	// ExecuteInTransaction runs fn against a repository bound to a single
	// database transaction. fn returning an error rolls everything back.
	ExecuteInTransaction(fn func(tx WalletRepository) error) error
}
