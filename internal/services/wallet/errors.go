package wallet

import "errors"

// Service errors
var (
	// ErrWalletNotFound should not surface under lazy-create semantics; seeing
	// it means a caller passed a wallet id that was never issued.
	ErrWalletNotFound = errors.New("wallet not found")

	ErrInvalidKind = errors.New("invalid transaction kind")

	// errInsufficientFunds and errInsufficientPoints stay internal: callers
	// see the rejected outcome as (false, nil), not as a fault.
	errInsufficientFunds  = errors.New("insufficient funds")
	errInsufficientPoints = errors.New("insufficient points")
)
