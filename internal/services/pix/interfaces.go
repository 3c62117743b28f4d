package pix

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service orchestrates the two-phase Pix top-up flow: generate an intent at
// the gateway, record it pending, credit the wallet only on confirmation.
type Service interface {
	// GeneratePixPayment creates a payment intent and records a pending
	// pix_in transaction. Returns the gateway-issued scannable payload.
	// The wallet is not credited yet.
	GeneratePixPayment(ctx context.Context, userID string, amount decimal.Decimal) (string, error)

	// ConfirmPixPayment completes the pending transaction identified by the
	// gateway payment id and credits the wallet exactly once. Confirming an
	// already-completed payment is a no-op returning true.
	ConfirmPixPayment(ctx context.Context, paymentID string) (bool, error)

	// CancelPixPayment moves a pending payment to cancelled. Completed
	// payments are left untouched.
	CancelPixPayment(ctx context.Context, paymentID string) error
}

// Gateway is the payment gateway adapter. Amount and currency rules are the
// gateway's own; this core treats them as opaque.
type Gateway interface {
	CreatePixIntent(ctx context.Context, amount decimal.Decimal, payer PayerInfo) (*PixIntent, error)
}

// PixIntent is a payable intent issued by the gateway.
type PixIntent struct {
	GatewayID string
	Payload   string // scannable copy-and-paste code
}

// PayerInfo identifies the paying user to the gateway.
type PayerInfo struct {
	UserID string
	Email  string
}
