package postgres

import (
	"context"
	"errors"
	"fmt"
)

const defaultW2Table = "w2_forms"

// W2Repository is a Postgres implementation for W-2 records.
type W2Repository struct {
	db    DBTX
	table string
}

// NewW2Repository constructs a repository.
func NewW2Repository(db DBTX) *W2Repository {
	return &W2Repository{db: db, table: defaultW2Table}
}

// Save upserts a W-2.
func (r *W2Repository) Save(ctx context.Context, w2 *W2Record) error {
	if r == nil || r.db == nil {
		return errors.New("w2 repo: nil db")
	}
	if w2 == nil {
		return errors.New("w2 repo: nil w2")
	}
	if w2.ID == "" || w2.ReturnID == "" {
		return errors.New("w2 repo: id and return id are required")
	}

	query := fmt.Sprintf(`
INSERT INTO %s (id, return_id, employer, wages, federal_tax_withheld)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id)
DO UPDATE SET
	employer = EXCLUDED.employer,
	wages = EXCLUDED.wages,
	federal_tax_withheld = EXCLUDED.federal_tax_withheld,
	updated_at = NOW()`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		w2.ID, w2.ReturnID, w2.Employer, w2.Wages, w2.FederalTaxWithheld)
	return err
}

// ListByReturn loads all W-2s attached to a return.
func (r *W2Repository) ListByReturn(ctx context.Context, returnID string) ([]W2Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("w2 repo: nil db")
	}
	if returnID == "" {
		return nil, errors.New("w2 repo: empty return id")
	}

	query := fmt.Sprintf(`
SELECT id, return_id, employer, wages, federal_tax_withheld
FROM %s
WHERE return_id = $1
ORDER BY created_at ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query, returnID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []W2Record
	for rows.Next() {
		var rec W2Record
		if err := rows.Scan(&rec.ID, &rec.ReturnID, &rec.Employer, &rec.Wages, &rec.FederalTaxWithheld); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes a W-2 by id.
func (r *W2Repository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("w2 repo: nil db")
	}
	if id == "" {
		return errors.New("w2 repo: empty id")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
