// Package topup credits wallets from card payments. Cards are tokenized at
// the card processor and charged there; the wallet only sees the resulting
// credit.
package topup

import (
	"context"
	"errors"
	"fmt"

	"mixbeat/internal/models"
	"mixbeat/internal/services/wallet"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
	"github.com/stripe/stripe-go/v72/token"
)

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrInvalidCard   = errors.New("invalid card")
	ErrChargeFailed  = errors.New("card charge failed")
)

// Card is the raw card input from the client. It never touches the ledger;
// only the processor token does.
type Card struct {
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CVC         string
}

type Service interface {
	// TopUp charges the card and credits the user's wallet with the amount.
	TopUp(ctx context.Context, userID string, amount decimal.Decimal, card Card) error
}

type service struct {
	wallets wallet.Service
}

func NewService(wallets wallet.Service, stripeKey string) Service {
	if wallets == nil {
		panic("wallet service is required")
	}
	stripe.Key = stripeKey
	return &service{wallets: wallets}
}

func (s *service) TopUp(ctx context.Context, userID string, amount decimal.Decimal, card Card) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	tok, err := tokenizeCard(card)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(amount.Shift(2).IntPart()), // processor wants cents
		Currency:    stripe.String(string(stripe.CurrencyBRL)),
		Description: stripe.String("wallet top-up"),
	}
	params.SetSource(tok)
	ch, err := charge.New(params)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrChargeFailed, err)
	}

	ok, err := s.wallets.ApplyTransaction(ctx, userID, amount,
		models.TransactionKindCredit, "card top-up "+ch.ID, 0)
	if err != nil {
		return err
	}
	if !ok {
		// Credits cannot be rejected for funds; treat as a fault.
		return fmt.Errorf("top-up credit rejected for user %s", userID)
	}
	return nil
}

func tokenizeCard(card Card) (string, error) {
	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.String(card.ExpiryMonth),
			ExpYear:  stripe.String(card.ExpiryYear),
			CVC:      stripe.String(card.CVC),
		},
	}
	t, err := token.New(params)
	if err != nil {
		return "", err
	}
	return t.ID, nil
}
