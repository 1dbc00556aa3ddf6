package core

import (
	"context"

	"github.com/Evgen-Mutagen/go-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type (
	AuthService interface {
		Register(ctx context.Context, login, password string) (*model.User, string, error)
		Login(ctx context.Context, login, password string) (*model.User, string, error)
		ValidateToken(tokenString string) (int64, error)
	}

	AccountService interface {
		Open(ctx context.Context, userID int64, req model.OpenAccountRequest) (*model.Account, error)
		Get(ctx context.Context, userID, id int64) (*model.Account, error)
		List(ctx context.Context, userID int64, order model.AccountOrder) ([]*model.Account, error)
		Deposit(ctx context.Context, userID, id int64, amount decimal.Decimal) (*model.Account, error)
		Withdraw(ctx context.Context, userID, id int64, amount decimal.Decimal) (*model.Account, error)
		SetBalance(ctx context.Context, userID, id int64, balance decimal.Decimal) (*model.Account, error)
		SetLevel(ctx context.Context, userID, id int64, level model.Level) (*model.Account, error)
		SetLimit(ctx context.Context, userID, id int64, limit decimal.Decimal) (*model.Account, error)
		Interest(ctx context.Context, userID, id int64) (*model.InterestQuote, error)
		ApplyInterest(ctx context.Context, userID, id int64) (*model.Account, error)
		Operations(ctx context.Context, userID, id int64) ([]*model.Operation, error)
	}
)
