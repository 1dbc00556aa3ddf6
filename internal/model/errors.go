package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoInterestTier    = errors.New("account has no interest tier")
	ErrNoCreditLimit     = errors.New("account has no credit limit")
	ErrLimitBelowDebt    = errors.New("credit limit does not cover the current balance")
	ErrInvalidLevel      = errors.New("invalid interest level")
	ErrInvalidLimit      = errors.New("credit limit must not be negative")
	ErrInvalidKind       = errors.New("invalid account kind")
	ErrInvalidOrder      = errors.New("invalid account order")
)

// Refinements of ErrInvalidAmount; errors.Is matches both.
var (
	ErrNonPositiveAmount = fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	ErrInvalidPrecision  = fmt.Errorf("%w: at most 2 decimal places", ErrInvalidAmount)
	ErrBelowFloor        = fmt.Errorf("%w: below the overdraft floor", ErrInvalidAmount)
)
