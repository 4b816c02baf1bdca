package postgres

import (
	"context"
	"errors"
	"fmt"
)

const defaultTransactionsTable = "stock_transactions"

// TransactionRepository is a Postgres implementation for 1099-B sales.
type TransactionRepository struct {
	db    DBTX
	table string
}

// NewTransactionRepository constructs a repository.
func NewTransactionRepository(db DBTX) *TransactionRepository {
	return &TransactionRepository{db: db, table: defaultTransactionsTable}
}

// Add inserts a sale.
func (r *TransactionRepository) Add(ctx context.Context, tx *TransactionRecord) error {
	if r == nil || r.db == nil {
		return errors.New("transaction repo: nil db")
	}
	if tx == nil {
		return errors.New("transaction repo: nil transaction")
	}
	if tx.ID == "" || tx.ReturnID == "" {
		return errors.New("transaction repo: id and return id are required")
	}

	query := fmt.Sprintf(`
INSERT INTO %s (id, return_id, description, proceeds, cost_basis, is_long_term)
VALUES ($1, $2, $3, $4, $5, $6)`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.ReturnID, tx.Description, tx.Proceeds, tx.CostBasis, tx.IsLongTerm)
	return err
}

// ListByReturn loads all sales attached to a return.
func (r *TransactionRepository) ListByReturn(ctx context.Context, returnID string) ([]TransactionRecord, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("transaction repo: nil db")
	}
	if returnID == "" {
		return nil, errors.New("transaction repo: empty return id")
	}

	query := fmt.Sprintf(`
SELECT id, return_id, description, proceeds, cost_basis, is_long_term
FROM %s
WHERE return_id = $1
ORDER BY created_at ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query, returnID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []TransactionRecord
	for rows.Next() {
		var rec TransactionRecord
		if err := rows.Scan(&rec.ID, &rec.ReturnID, &rec.Description, &rec.Proceeds, &rec.CostBasis, &rec.IsLongTerm); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes a sale by id.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("transaction repo: nil db")
	}
	if id == "" {
		return errors.New("transaction repo: empty id")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
