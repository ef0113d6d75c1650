package core

import (
	"errors"
)

var (
	ErrAccountLocked        = errors.New("account is locked")
	ErrAmountRequired       = errors.New("amount required")
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrDuplicateTransaction = errors.New("transaction id already recorded")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrClientMismatch       = errors.New("client does not own the referenced transaction")
	ErrAlreadyDisputed      = errors.New("transaction already disputed")
	ErrDisputeNotFound      = errors.New("dispute not found")
	ErrInvalidDisputeState  = errors.New("dispute is not open")
)
