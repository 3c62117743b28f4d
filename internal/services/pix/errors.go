package pix

import "errors"

// Service errors
var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrGateway covers gateway rejections and transport failures. The core
	// does not retry; callers may re-issue GeneratePixPayment.
	ErrGateway        = errors.New("payment gateway error")
	ErrGatewayTimeout = errors.New("payment gateway timeout")

	// ErrUnknownPayment is a confirmation for a payment with no matching
	// pending record. Reported, never silently dropped.
	ErrUnknownPayment = errors.New("confirmation for unknown payment")

	ErrPaymentCancelled = errors.New("payment was cancelled")
)
