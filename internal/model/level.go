package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Level is the interest tier of a saving account.
type Level string

const (
	LevelNormal Level = "NORMAL"
	LevelVIP    Level = "VIP"
)

var levelRates = map[Level]decimal.Decimal{
	LevelNormal: decimal.RequireFromString("0.01"),
	LevelVIP:    decimal.RequireFromString("0.02"),
}

// ParseLevel accepts the tier name in any case.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelRates[l]; !ok {
		return "", ErrInvalidLevel
	}
	return l, nil
}

func (l Level) Valid() bool {
	_, ok := levelRates[l]
	return ok
}

// Rate returns zero for an unknown level.
func (l Level) Rate() decimal.Decimal {
	return levelRates[l]
}

func (l Level) String() string {
	return string(l)
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l), nil
}

// UnmarshalText leaves an empty level unset so NewVariant can default it.
func (l *Level) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*l = ""
		return nil
	}
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
