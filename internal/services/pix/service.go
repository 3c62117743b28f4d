package pix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mixbeat/internal/models"
	"mixbeat/internal/repositories"
	"mixbeat/internal/services/wallet"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type service struct {
	repo           repositories.WalletRepository
	wallets        wallet.Service
	gateway        Gateway
	gatewayTimeout time.Duration
}

// NewService creates a new pix orchestration service.
func NewService(repo repositories.WalletRepository, wallets wallet.Service, gateway Gateway, gatewayTimeout time.Duration) Service {
	if repo == nil {
		panic("repo is required")
	}
	if wallets == nil {
		panic("wallet service is required")
	}
	if gateway == nil {
		panic("gateway is required")
	}
	if gatewayTimeout == 0 {
		gatewayTimeout = DefaultGatewayTimeout
	}
	return &service{
		repo:           repo,
		wallets:        wallets,
		gateway:        gateway,
		gatewayTimeout: gatewayTimeout,
	}
}

func (s *service) GeneratePixPayment(ctx context.Context, userID string, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", ErrInvalidAmount
	}

	// The wallet must exist before the pending entry can reference it.
	w, err := s.wallets.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return "", err
	}

	gwCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	intent, err := s.gateway.CreatePixIntent(gwCtx, amount, PayerInfo{UserID: userID})
	if err != nil {
		// No payable intent, no local record.
		return "", err
	}

	tx := &models.Transaction{
		WalletID:          w.ID,
		Amount:            amount,
		Kind:              models.TransactionKindPixIn,
		Status:            models.TransactionStatusPending,
		Description:       "awaiting pix payment",
		ExternalReference: intent.GatewayID,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return "", fmt.Errorf("failed to record pending payment: %w", err)
	}

	log.Info().
		Str("user_id", userID).
		Str("gateway_id", intent.GatewayID).
		Str("amount", amount.String()).
		Msg("pix payment generated")

	return intent.Payload, nil
}

func (s *service) ConfirmPixPayment(ctx context.Context, paymentID string) (bool, error) {
	var alreadyDone bool

	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		t, err := tx.GetTransactionByExternalRefForUpdate(ctx, paymentID)
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrUnknownPayment
		}
		if err != nil {
			return err
		}

		switch t.Status {
		case models.TransactionStatusCompleted:
			// Duplicate confirmation, nothing to credit.
			alreadyDone = true
			return nil
		case models.TransactionStatusCancelled:
			return ErrPaymentCancelled
		}

		w, err := tx.GetWalletByIDForUpdate(ctx, t.WalletID)
		if errors.Is(err, repositories.ErrWalletNotFound) {
			// A pending entry always references an existing wallet.
			return fmt.Errorf("%w: wallet %s for payment %s", wallet.ErrWalletNotFound, t.WalletID, paymentID)
		}
		if err != nil {
			return err
		}

		w.Balance = w.Balance.Add(t.Amount)
		w.Points += t.PointsChange
		w.UpdatedAt = time.Now().UTC()
		if err := tx.UpdateWallet(ctx, w); err != nil {
			return err
		}

		return tx.UpdateTransactionStatus(ctx, t.ID, models.TransactionStatusCompleted)
	})

	if err != nil {
		if errors.Is(err, ErrUnknownPayment) || errors.Is(err, ErrPaymentCancelled) {
			return false, err
		}
		return false, fmt.Errorf("failed to confirm payment: %w", err)
	}

	if alreadyDone {
		log.Info().Str("gateway_id", paymentID).Msg("duplicate pix confirmation ignored")
	} else {
		log.Info().Str("gateway_id", paymentID).Msg("pix payment confirmed")
	}
	return true, nil
}

func (s *service) CancelPixPayment(ctx context.Context, paymentID string) error {
	return s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		t, err := tx.GetTransactionByExternalRefForUpdate(ctx, paymentID)
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrUnknownPayment
		}
		if err != nil {
			return err
		}

		if t.Status != models.TransactionStatusPending {
			// Completed and cancelled entries are final.
			return nil
		}
		return tx.UpdateTransactionStatus(ctx, t.ID, models.TransactionStatusCancelled)
	})
}
