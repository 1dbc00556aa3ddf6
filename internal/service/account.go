package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Evgen-Mutagen/go-ledger/internal/core"
	"github.com/Evgen-Mutagen/go-ledger/internal/model"
	"github.com/Evgen-Mutagen/go-ledger/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
	ErrInvalidAccountID     = errors.New("account id must be positive")
	ErrEmptyAccountName     = errors.New("account name is required")
)

// moneyPlaces is the precision the ledger stores amounts with.
const moneyPlaces = 2

type accountService struct {
	accountRepo   repository.AccountRepository
	operationRepo repository.OperationRepository
	logger        *zap.Logger
}

func NewAccountService(
	accountRepo repository.AccountRepository,
	operationRepo repository.OperationRepository,
	logger *zap.Logger,
) core.AccountService {
	return &accountService{
		accountRepo:   accountRepo,
		operationRepo: operationRepo,
		logger:        logger,
	}
}

func validMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(moneyPlaces))
}

func (s *accountService) Open(ctx context.Context, userID int64, req model.OpenAccountRequest) (*model.Account, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidAccountID
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyAccountName
	}
	if req.Balance.IsNegative() {
		return nil, model.ErrBelowFloor
	}
	if !validMoney(req.Balance) {
		return nil, model.ErrInvalidPrecision
	}
	if !validMoney(req.Limit) {
		return nil, model.ErrInvalidLimit
	}

	variant, err := model.NewVariant(req.Kind, req.Level, req.Limit)
	if err != nil {
		return nil, err
	}

	account := model.NewAccount(req.ID, name, req.Balance, variant)
	account.UserID = userID

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			return nil, ErrAccountAlreadyExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("Account opened",
		zap.Int64("user_id", userID),
		zap.Int64("account_id", account.ID),
		zap.String("kind", string(account.Kind())))

	return account, nil
}

func (s *accountService) Get(ctx context.Context, userID, id int64) (*model.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

func (s *accountService) List(ctx context.Context, userID int64, order model.AccountOrder) ([]*model.Account, error) {
	accounts, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	model.SortAccounts(accounts, order)
	return accounts, nil
}

func (s *accountService) Deposit(ctx context.Context, userID, id int64, amount decimal.Decimal) (*model.Account, error) {
	if !validMoney(amount) {
		return nil, model.ErrInvalidPrecision
	}
	return s.update(ctx, userID, id, model.OperationDeposit, model.DepositMutation(amount))
}

func (s *accountService) Withdraw(ctx context.Context, userID, id int64, amount decimal.Decimal) (*model.Account, error) {
	if !validMoney(amount) {
		return nil, model.ErrInvalidPrecision
	}
	return s.update(ctx, userID, id, model.OperationWithdraw, model.WithdrawMutation(amount))
}

func (s *accountService) SetBalance(ctx context.Context, userID, id int64, balance decimal.Decimal) (*model.Account, error) {
	if !validMoney(balance) {
		return nil, model.ErrInvalidPrecision
	}
	return s.update(ctx, userID, id, model.OperationSetBalance, model.SetBalanceMutation(balance))
}

func (s *accountService) SetLevel(ctx context.Context, userID, id int64, level model.Level) (*model.Account, error) {
	if !level.Valid() {
		return nil, model.ErrInvalidLevel
	}
	return s.update(ctx, userID, id, model.OperationSetLevel, model.SetLevelMutation(level))
}

func (s *accountService) SetLimit(ctx context.Context, userID, id int64, limit decimal.Decimal) (*model.Account, error) {
	if limit.IsNegative() || !validMoney(limit) {
		return nil, model.ErrInvalidLimit
	}
	return s.update(ctx, userID, id, model.OperationSetLimit, model.SetLimitMutation(limit))
}

func (s *accountService) Interest(ctx context.Context, userID, id int64) (*model.InterestQuote, error) {
	account, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	interest, err := account.Interest()
	if err != nil {
		return nil, err
	}

	level := account.Variant.(model.Saving).Level
	return &model.InterestQuote{
		AccountID: account.ID,
		Balance:   account.Balance,
		Level:     level,
		Rate:      level.Rate(),
		Interest:  interest,
	}, nil
}

func (s *accountService) ApplyInterest(ctx context.Context, userID, id int64) (*model.Account, error) {
	return s.update(ctx, userID, id, model.OperationInterest, model.InterestMutation())
}

func (s *accountService) Operations(ctx context.Context, userID, id int64) ([]*model.Operation, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.operationRepo.GetByAccountID(ctx, id)
}

func (s *accountService) update(ctx context.Context, userID, id int64, kind model.OperationKind, fn model.Mutation) (*model.Account, error) {
	account, err := s.accountRepo.Update(ctx, userID, id, kind, fn)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAccountNotFound):
			return nil, ErrAccountNotFound
		case isDomainError(err):
			s.logger.Warn("Operation rejected",
				zap.Int64("account_id", id),
				zap.String("operation", string(kind)),
				zap.Error(err))
			return nil, err
		default:
			return nil, fmt.Errorf("failed to apply %s: %w", kind, err)
		}
	}

	s.logger.Info("Operation applied",
		zap.Int64("account_id", account.ID),
		zap.String("operation", string(kind)),
		zap.Stringer("balance", account.Balance))

	return account, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, model.ErrInvalidAmount) ||
		errors.Is(err, model.ErrInsufficientFunds) ||
		errors.Is(err, model.ErrNoInterestTier) ||
		errors.Is(err, model.ErrNoCreditLimit) ||
		errors.Is(err, model.ErrLimitBelowDebt)
}
