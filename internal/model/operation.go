package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OperationKind string

const (
	OperationDeposit    OperationKind = "DEPOSIT"
	OperationWithdraw   OperationKind = "WITHDRAW"
	OperationSetBalance OperationKind = "SET_BALANCE"
	OperationInterest   OperationKind = "INTEREST"
	OperationSetLevel   OperationKind = "SET_LEVEL"
	OperationSetLimit   OperationKind = "SET_LIMIT"
)

// Operation is one committed account change. Amount is signed: negative for
// money leaving the account, zero for level and limit changes.
type Operation struct {
	ID           int64           `json:"id"`
	AccountID    int64           `json:"account_id"`
	Kind         OperationKind   `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	ProcessedAt  time.Time       `json:"processed_at"`
}

// Mutation changes an account in place and returns the signed amount to record.
type Mutation func(a *Account) (decimal.Decimal, error)

func DepositMutation(amount decimal.Decimal) Mutation {
	return func(a *Account) (decimal.Decimal, error) {
		if err := a.Deposit(amount); err != nil {
			return decimal.Zero, err
		}
		return amount, nil
	}
}

func WithdrawMutation(amount decimal.Decimal) Mutation {
	return func(a *Account) (decimal.Decimal, error) {
		if err := a.Withdraw(amount); err != nil {
			return decimal.Zero, err
		}
		return amount.Neg(), nil
	}
}

func SetBalanceMutation(balance decimal.Decimal) Mutation {
	return func(a *Account) (decimal.Decimal, error) {
		before := a.Balance
		if err := a.SetBalance(balance); err != nil {
			return decimal.Zero, err
		}
		return balance.Sub(before), nil
	}
}

func SetLevelMutation(level Level) Mutation {
	return func(a *Account) (decimal.Decimal, error) {
		return decimal.Zero, a.SetLevel(level)
	}
}

func SetLimitMutation(limit decimal.Decimal) Mutation {
	return func(a *Account) (decimal.Decimal, error) {
		return decimal.Zero, a.SetLimit(limit)
	}
}

// InterestMutation credits the computed interest. A zero interest (empty
// account) is rejected by Deposit as ErrNonPositiveAmount.
func InterestMutation() Mutation {
	return func(a *Account) (decimal.Decimal, error) {
		interest, err := a.Interest()
		if err != nil {
			return decimal.Zero, err
		}
		interest = interest.Round(2)
		if err := a.Deposit(interest); err != nil {
			return decimal.Zero, err
		}
		return interest, nil
	}
}
