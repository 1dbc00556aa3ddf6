package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindPlain  Kind = "PLAIN"
	KindSaving Kind = "SAVING"
	KindCredit Kind = "CREDIT"
)

// Variant is the closed set of account flavours: Plain, Saving or Credit.
type Variant interface {
	Kind() Kind
	variant()
}

type Plain struct{}

// Saving carries the interest tier. Interest is computed on demand, never accrued.
type Saving struct {
	Level Level
}

// Credit lets the balance go negative down to -Limit.
type Credit struct {
	Limit decimal.Decimal
}

func (Plain) Kind() Kind  { return KindPlain }
func (Saving) Kind() Kind { return KindSaving }
func (Credit) Kind() Kind { return KindCredit }

func (Plain) variant()  {}
func (Saving) variant() {}
func (Credit) variant() {}

// NewVariant builds a variant from its wire form. Level is only read for
// saving accounts and limit only for credit accounts.
func NewVariant(kind Kind, level Level, limit decimal.Decimal) (Variant, error) {
	switch Kind(strings.ToUpper(string(kind))) {
	case KindPlain, "":
		return Plain{}, nil
	case KindSaving:
		if level == "" {
			level = LevelNormal
		}
		if !level.Valid() {
			return nil, ErrInvalidLevel
		}
		return Saving{Level: level}, nil
	case KindCredit:
		if limit.IsNegative() {
			return nil, ErrInvalidLimit
		}
		return Credit{Limit: limit}, nil
	default:
		return nil, ErrInvalidKind
	}
}

// Account is a ledger entity. Two accounts are the same account when their
// IDs match, whatever their name, balance or variant; use Equal, not ==.
type Account struct {
	ID        int64
	UserID    int64
	Name      string
	Balance   decimal.Decimal
	Variant   Variant
	CreatedAt time.Time
}

func NewAccount(id int64, name string, balance decimal.Decimal, v Variant) *Account {
	if v == nil {
		v = Plain{}
	}
	return &Account{
		ID:      id,
		Name:    name,
		Balance: balance,
		Variant: v,
	}
}

func (a *Account) Kind() Kind {
	if a.Variant == nil {
		return KindPlain
	}
	return a.Variant.Kind()
}

// Overdraft is the negative-balance capacity granted by the variant.
func (a *Account) Overdraft() decimal.Decimal {
	if c, ok := a.Variant.(Credit); ok {
		return c.Limit
	}
	return decimal.Zero
}

// Available is what a single withdrawal may take right now.
func (a *Account) Available() decimal.Decimal {
	return a.Balance.Add(a.Overdraft())
}

func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if amount.GreaterThan(a.Available()) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// SetBalance overwrites the balance. Values below the overdraft floor are rejected.
func (a *Account) SetBalance(balance decimal.Decimal) error {
	if balance.LessThan(a.Overdraft().Neg()) {
		return ErrBelowFloor
	}
	a.Balance = balance
	return nil
}

// SetLevel changes the tier of a saving account.
func (a *Account) SetLevel(level Level) error {
	s, ok := a.Variant.(Saving)
	if !ok {
		return ErrNoInterestTier
	}
	if !level.Valid() {
		return ErrInvalidLevel
	}
	s.Level = level
	a.Variant = s
	return nil
}

// SetLimit changes the overdraft of a credit account. The new limit must
// still cover a negative balance.
func (a *Account) SetLimit(limit decimal.Decimal) error {
	if _, ok := a.Variant.(Credit); !ok {
		return ErrNoCreditLimit
	}
	if limit.IsNegative() {
		return ErrInvalidLimit
	}
	if a.Balance.Add(limit).IsNegative() {
		return ErrLimitBelowDebt
	}
	a.Variant = Credit{Limit: limit}
	return nil
}

// Interest is balance times the tier rate. It is not credited to the account.
func (a *Account) Interest() (decimal.Decimal, error) {
	s, ok := a.Variant.(Saving)
	if !ok {
		return decimal.Zero, ErrNoInterestTier
	}
	return a.Balance.Mul(s.Level.Rate()), nil
}

// Equal reports identity: accounts are equal iff their IDs are equal.
func (a *Account) Equal(other *Account) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.ID == other.ID
}

// Info renders the multi-line summary, variant details last.
func (a *Account) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Id: %d\nName: %s\nBalance: %s", a.ID, a.Name, a.Balance.StringFixed(2))
	switch v := a.Variant.(type) {
	case Saving:
		fmt.Fprintf(&b, "\nLevel: %s", v.Level)
	case Credit:
		fmt.Fprintf(&b, "\nLimit: %s", v.Limit.StringFixed(2))
	}
	return b.String()
}

func (a *Account) String() string {
	s := fmt.Sprintf("Id: %d, Name: %s, Balance: %s", a.ID, a.Name, a.Balance.StringFixed(2))
	switch v := a.Variant.(type) {
	case Saving:
		s += ", Level: " + v.Level.String()
	case Credit:
		s += ", Limit: " + v.Limit.StringFixed(2)
	}
	return s
}

// OpenAccountRequest describes an account to open. Level is read for saving
// accounts and Limit for credit accounts only.
type OpenAccountRequest struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Kind    Kind            `json:"kind"`
	Level   Level           `json:"level,omitempty"`
	Limit   decimal.Decimal `json:"limit"`
}

type InterestQuote struct {
	AccountID int64           `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	Level     Level           `json:"level"`
	Rate      decimal.Decimal `json:"rate"`
	Interest  decimal.Decimal `json:"interest"`
}
