package repository

import (
	"context"
	"database/sql"

	"github.com/Evgen-Mutagen/go-ledger/internal/model"
)

type OperationRepository interface {
	GetByAccountID(ctx context.Context, accountID int64) ([]*model.Operation, error)
}

type operationRepository struct {
	db *Database
}

func NewOperationRepository(db *Database) OperationRepository {
	return &operationRepository{db: db}
}

func insertOperation(ctx context.Context, tx *sql.Tx, op *model.Operation) error {
	query := `INSERT INTO operations (account_id, kind, amount, balance_after, processed_at)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id`
	return tx.QueryRowContext(ctx, query,
		op.AccountID,
		op.Kind,
		op.Amount,
		op.BalanceAfter,
		op.ProcessedAt,
	).Scan(&op.ID)
}

func (r *operationRepository) GetByAccountID(ctx context.Context, accountID int64) ([]*model.Operation, error) {
	query := `SELECT id, account_id, kind, amount, balance_after, processed_at
              FROM operations
              WHERE account_id = $1
              ORDER BY processed_at DESC, id DESC`
	rows, err := r.db.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var operations []*model.Operation
	for rows.Next() {
		var op model.Operation
		if err := rows.Scan(&op.ID, &op.AccountID, &op.Kind, &op.Amount, &op.BalanceAfter, &op.ProcessedAt); err != nil {
			return nil, err
		}
		operations = append(operations, &op)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return operations, nil
}
