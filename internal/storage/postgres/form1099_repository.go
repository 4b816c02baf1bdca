package postgres

import (
	"context"
	"errors"
	"fmt"
)

const defaultForm1099Table = "form1099s"

// Form1099Repository is a Postgres implementation for 1099-INT and
// 1099-DIV records.
type Form1099Repository struct {
	db    DBTX
	table string
}

// NewForm1099Repository constructs a repository.
func NewForm1099Repository(db DBTX) *Form1099Repository {
	return &Form1099Repository{db: db, table: defaultForm1099Table}
}

// Save upserts a 1099.
func (r *Form1099Repository) Save(ctx context.Context, form *Form1099Record) error {
	if r == nil || r.db == nil {
		return errors.New("form1099 repo: nil db")
	}
	if form == nil {
		return errors.New("form1099 repo: nil form")
	}
	if form.ID == "" || form.ReturnID == "" {
		return errors.New("form1099 repo: id and return id are required")
	}
	if form.Kind != Form1099KindInterest && form.Kind != Form1099KindDividends {
		return fmt.Errorf("form1099 repo: kind must be %s or %s", Form1099KindInterest, Form1099KindDividends)
	}

	query := fmt.Sprintf(`
INSERT INTO %s (id, return_id, payer, kind, amount)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id)
DO UPDATE SET
	payer = EXCLUDED.payer,
	kind = EXCLUDED.kind,
	amount = EXCLUDED.amount,
	updated_at = NOW()`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		form.ID, form.ReturnID, form.Payer, form.Kind, form.Amount)
	return err
}

// ListByReturn loads all 1099s attached to a return.
func (r *Form1099Repository) ListByReturn(ctx context.Context, returnID string) ([]Form1099Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("form1099 repo: nil db")
	}
	if returnID == "" {
		return nil, errors.New("form1099 repo: empty return id")
	}

	query := fmt.Sprintf(`
SELECT id, return_id, payer, kind, amount
FROM %s
WHERE return_id = $1
ORDER BY created_at ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query, returnID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Form1099Record
	for rows.Next() {
		var rec Form1099Record
		if err := rows.Scan(&rec.ID, &rec.ReturnID, &rec.Payer, &rec.Kind, &rec.Amount); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes a 1099 by id.
func (r *Form1099Repository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("form1099 repo: nil db")
	}
	if id == "" {
		return errors.New("form1099 repo: empty id")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
