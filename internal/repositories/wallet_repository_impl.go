package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mixbeat/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a GORM-backed ledger store.
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	if err := r.db.WithContext(ctx).Create(wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateWallet
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetWalletByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	return r.getWallet(ctx, r.db.WithContext(ctx), "user_id = ?", userID)
}

func (r *walletRepository) GetWalletByUserIDForUpdate(ctx context.Context, userID string) (*models.Wallet, error) {
	locked := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getWallet(ctx, locked, "user_id = ?", userID)
}

func (r *walletRepository) GetWalletByID(ctx context.Context, walletID string) (*models.Wallet, error) {
	return r.getWallet(ctx, r.db.WithContext(ctx), "id = ?", walletID)
}

func (r *walletRepository) GetWalletByIDForUpdate(ctx context.Context, walletID string) (*models.Wallet, error) {
	locked := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getWallet(ctx, locked, "id = ?", walletID)
}

func (r *walletRepository) getWallet(_ context.Context, db *gorm.DB, query string, arg interface{}) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := db.Where(query, arg).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) UpdateWallet(ctx context.Context, wallet *models.Wallet) error {
	if err := r.db.WithContext(ctx).Save(wallet).Error; err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *walletRepository) GetTransactionByExternalRef(ctx context.Context, ref string) (*models.Transaction, error) {
	return r.getTransaction(r.db.WithContext(ctx), ref)
}

func (r *walletRepository) GetTransactionByExternalRefForUpdate(ctx context.Context, ref string) (*models.Transaction, error) {
	locked := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getTransaction(locked, ref)
}

func (r *walletRepository) getTransaction(db *gorm.DB, ref string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := db.Where("external_reference = ?", ref).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *walletRepository) UpdateTransactionStatus(ctx context.Context, txID, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ?", txID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *walletRepository) ListTransactions(ctx context.Context, walletID string, limit, offset int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func (r *walletRepository) ListPendingOlderThan(ctx context.Context, kind string, cutoff time.Time, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("kind = ? AND status = ? AND created_at < ?", kind, models.TransactionStatusPending, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}
	return txs, nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(tx WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&walletRepository{db: tx})
	})
}
