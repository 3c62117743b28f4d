package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mixbeat/internal/models"
	"mixbeat/internal/repositories"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type service struct {
	repo  repositories.WalletRepository
	cache Cache
}

// NewService creates a new wallet service. The cache is optional.
func NewService(repo repositories.WalletRepository, cache Cache) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		cache = noopCache{}
	}
	return &service{repo: repo, cache: cache}
}

func (s *service) GetOrCreateWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	if wallet, err := s.cache.GetWallet(ctx, userID); err == nil {
		return wallet, nil
	}

	wallet, err := s.repo.GetWalletByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrWalletNotFound) {
		wallet, err = s.createWallet(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if cacheErr := s.cache.SetWallet(ctx, wallet); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("user_id", userID).Msg("failed to cache wallet")
	}
	return wallet, nil
}

func (s *service) createWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	wallet := &models.Wallet{UserID: userID}
	err := s.repo.CreateWallet(ctx, wallet)
	if errors.Is(err, repositories.ErrDuplicateWallet) {
		// Lost the race against a concurrent first call; the winner's row
		// is the wallet.
		return s.repo.GetWalletByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *service) ListTransactions(ctx context.Context, walletID string, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	txs, err := s.repo.ListTransactions(ctx, walletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func (s *service) ApplyTransaction(ctx context.Context, userID string, amount decimal.Decimal, kind, description string, points int64) (bool, error) {
	if !validKind(kind) {
		return false, ErrInvalidKind
	}

	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.GetWalletByUserIDForUpdate(ctx, userID)
		if errors.Is(err, repositories.ErrWalletNotFound) {
			wallet = &models.Wallet{UserID: userID}
			createErr := tx.CreateWallet(ctx, wallet)
			if errors.Is(createErr, repositories.ErrDuplicateWallet) {
				// Lost the race against a concurrent first touch; lock the
				// winner's row instead.
				wallet, err = tx.GetWalletByUserIDForUpdate(ctx, userID)
				if err != nil {
					return err
				}
			} else if createErr != nil {
				return createErr
			}
		} else if err != nil {
			return err
		}

		if amount.IsNegative() && wallet.Balance.LessThan(amount.Neg()) {
			return errInsufficientFunds
		}
		if points < 0 && wallet.Points < -points {
			return errInsufficientPoints
		}

		wallet.Balance = wallet.Balance.Add(amount)
		wallet.Points += points
		wallet.UpdatedAt = time.Now().UTC()
		if err := tx.UpdateWallet(ctx, wallet); err != nil {
			return err
		}

		return tx.CreateTransaction(ctx, &models.Transaction{
			WalletID:     wallet.ID,
			Amount:       amount,
			PointsChange: points,
			Kind:         kind,
			Status:       models.TransactionStatusCompleted,
			Description:  description,
		})
	})

	if errors.Is(err, errInsufficientFunds) || errors.Is(err, errInsufficientPoints) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to apply transaction: %w", err)
	}

	if cacheErr := s.cache.InvalidateWallet(ctx, userID); cacheErr != nil {
		log.Warn().Err(cacheErr).Str("user_id", userID).Msg("failed to invalidate wallet cache")
	}
	return true, nil
}

func validKind(kind string) bool {
	switch kind {
	case models.TransactionKindCredit,
		models.TransactionKindDebit,
		models.TransactionKindPointExchange,
		models.TransactionKindPixIn,
		models.TransactionKindPixOut,
		models.TransactionKindMusicRequest,
		models.TransactionKindLiveTip,
		models.TransactionKindContract:
		return true
	}
	return false
}

type noopCache struct{}

func (noopCache) GetWallet(context.Context, string) (*models.Wallet, error) {
	return nil, errors.New("no cache")
}
func (noopCache) SetWallet(context.Context, *models.Wallet) error { return nil }
func (noopCache) InvalidateWallet(context.Context, string) error  { return nil }
