package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const defaultReturnsTable = "tax_returns"

// ReturnRepository is a Postgres implementation for tax returns.
type ReturnRepository struct {
	db    DBTX
	table string
}

// NewReturnRepository constructs a repository.
func NewReturnRepository(db DBTX, opts ...ReturnOption) *ReturnRepository {
	repo := &ReturnRepository{db: db, table: defaultReturnsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// ReturnOption configures the repository.
type ReturnOption func(*ReturnRepository)

// WithReturnsTable overrides the default table name.
func WithReturnsTable(table string) ReturnOption {
	return func(repo *ReturnRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Save upserts a return.
func (r *ReturnRepository) Save(ctx context.Context, ret *TaxReturn) error {
	if r == nil || r.db == nil {
		return errors.New("return repo: nil db")
	}
	if ret == nil {
		return errors.New("return repo: nil return")
	}
	if ret.ID == "" || ret.UserID == "" {
		return errors.New("return repo: id and user id are required")
	}
	if ret.TaxYear == 0 {
		return errors.New("return repo: tax year is required")
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	id,
	user_id,
	tax_year,
	filing_status,
	resident_state,
	additional_income,
	adjustments,
	tax_payments
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8
)
ON CONFLICT (id)
DO UPDATE SET
	tax_year = EXCLUDED.tax_year,
	filing_status = EXCLUDED.filing_status,
	resident_state = EXCLUDED.resident_state,
	additional_income = EXCLUDED.additional_income,
	adjustments = EXCLUDED.adjustments,
	tax_payments = EXCLUDED.tax_payments,
	updated_at = NOW()`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		ret.ID,
		ret.UserID,
		ret.TaxYear,
		ret.FilingStatus,
		ret.ResidentState,
		ret.AdditionalIncome,
		ret.Adjustments,
		ret.TaxPayments,
	)
	return err
}

// Get loads a return by id. Returns (nil, nil) when absent.
func (r *ReturnRepository) Get(ctx context.Context, id string) (*TaxReturn, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("return repo: nil db")
	}
	if id == "" {
		return nil, errors.New("return repo: empty id")
	}

	query := fmt.Sprintf(`
SELECT id, user_id, tax_year, filing_status, resident_state,
       additional_income, adjustments, tax_payments, created_at, updated_at
FROM %s
WHERE id = $1
LIMIT 1`, r.table)

	var ret TaxReturn
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ret.ID,
		&ret.UserID,
		&ret.TaxYear,
		&ret.FilingStatus,
		&ret.ResidentState,
		&ret.AdditionalIncome,
		&ret.Adjustments,
		&ret.TaxPayments,
		&ret.CreatedAt,
		&ret.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	ret.CreatedAt = ret.CreatedAt.UTC()
	ret.UpdatedAt = ret.UpdatedAt.UTC()
	return &ret, nil
}

// ListByUser loads all returns owned by a user, newest first.
func (r *ReturnRepository) ListByUser(ctx context.Context, userID string) ([]TaxReturn, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("return repo: nil db")
	}
	if userID == "" {
		return nil, errors.New("return repo: empty user id")
	}

	query := fmt.Sprintf(`
SELECT id, user_id, tax_year, filing_status, resident_state,
       additional_income, adjustments, tax_payments, created_at, updated_at
FROM %s
WHERE user_id = $1
ORDER BY tax_year DESC, created_at DESC`, r.table)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var returns []TaxReturn
	for rows.Next() {
		var ret TaxReturn
		if err := rows.Scan(
			&ret.ID,
			&ret.UserID,
			&ret.TaxYear,
			&ret.FilingStatus,
			&ret.ResidentState,
			&ret.AdditionalIncome,
			&ret.Adjustments,
			&ret.TaxPayments,
			&ret.CreatedAt,
			&ret.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ret.CreatedAt = ret.CreatedAt.UTC()
		ret.UpdatedAt = ret.UpdatedAt.UTC()
		returns = append(returns, ret)
	}
	return returns, rows.Err()
}

// Delete removes a return; child rows cascade.
func (r *ReturnRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("return repo: nil db")
	}
	if id == "" {
		return errors.New("return repo: empty id")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
