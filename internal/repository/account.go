package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Evgen-Mutagen/go-ledger/internal/model"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
)

const uniqueViolation = "23505"

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	GetByID(ctx context.Context, userID, id int64) (*model.Account, error)
	GetByUserID(ctx context.Context, userID int64) ([]*model.Account, error)
	// Update applies fn to the locked account, persists it and appends an
	// operation of the given kind. Nothing is written when fn fails.
	Update(ctx context.Context, userID, id int64, kind model.OperationKind, fn model.Mutation) (*model.Account, error)
}

type accountRepository struct {
	db *Database
}

func NewAccountRepository(db *Database) AccountRepository {
	return &accountRepository{db: db}
}

// accountRow is the flat storage form of an account variant.
type accountRow struct {
	kind  string
	level sql.NullString
	limit decimal.NullDecimal
}

func toRow(a *model.Account) accountRow {
	var row accountRow
	row.kind = string(a.Kind())
	switch v := a.Variant.(type) {
	case model.Saving:
		row.level = sql.NullString{String: string(v.Level), Valid: true}
	case model.Credit:
		row.limit = decimal.NullDecimal{Decimal: v.Limit, Valid: true}
	}
	return row
}

func (row accountRow) variant() (model.Variant, error) {
	return model.NewVariant(model.Kind(row.kind), model.Level(row.level.String), row.limit.Decimal)
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	row := toRow(account)
	query := `INSERT INTO accounts (id, user_id, name, balance, kind, level, credit_limit)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING created_at`
	err := r.db.db.QueryRowContext(ctx, query,
		account.ID,
		account.UserID,
		account.Name,
		account.Balance,
		row.kind,
		row.level,
		row.limit,
	).Scan(&account.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrAccountExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(s rowScanner) (*model.Account, error) {
	var (
		a   model.Account
		row accountRow
	)
	if err := s.Scan(&a.ID, &a.UserID, &a.Name, &a.Balance, &row.kind, &row.level, &row.limit, &a.CreatedAt); err != nil {
		return nil, err
	}
	v, err := row.variant()
	if err != nil {
		return nil, fmt.Errorf("account %d has corrupt variant: %w", a.ID, err)
	}
	a.Variant = v
	return &a, nil
}

const accountColumns = `id, user_id, name, balance, kind, level, credit_limit, created_at`

func (r *accountRepository) GetByID(ctx context.Context, userID, id int64) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2`
	account, err := scanAccount(r.db.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (r *accountRepository) GetByUserID(ctx context.Context, userID int64) ([]*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY id ASC`
	rows, err := r.db.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return accounts, nil
}

func (r *accountRepository) Update(ctx context.Context, userID, id int64, kind model.OperationKind, fn model.Mutation) (*model.Account, error) {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2 FOR UPDATE`
	account, err := scanAccount(tx.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}

	amount, err := fn(account)
	if err != nil {
		return nil, err
	}

	row := toRow(account)
	query = `UPDATE accounts SET balance = $1, level = $2, credit_limit = $3 WHERE id = $4`
	if _, err := tx.ExecContext(ctx, query, account.Balance, row.level, row.limit, account.ID); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	op := &model.Operation{
		AccountID:    account.ID,
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: account.Balance,
		ProcessedAt:  time.Now(),
	}
	if err := insertOperation(ctx, tx, op); err != nil {
		return nil, fmt.Errorf("failed to record operation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return account, nil
}
