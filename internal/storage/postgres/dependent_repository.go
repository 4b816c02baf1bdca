package postgres

import (
	"context"
	"errors"
	"fmt"
)

const defaultDependentsTable = "dependents"

// DependentRepository is a Postgres implementation for dependents.
type DependentRepository struct {
	db    DBTX
	table string
}

// NewDependentRepository constructs a repository.
func NewDependentRepository(db DBTX) *DependentRepository {
	return &DependentRepository{db: db, table: defaultDependentsTable}
}

// Add inserts a dependent.
func (r *DependentRepository) Add(ctx context.Context, dep *DependentRecord) error {
	if r == nil || r.db == nil {
		return errors.New("dependent repo: nil db")
	}
	if dep == nil {
		return errors.New("dependent repo: nil dependent")
	}
	if dep.ID == "" || dep.ReturnID == "" {
		return errors.New("dependent repo: id and return id are required")
	}
	if dep.DateOfBirth.IsZero() {
		return errors.New("dependent repo: date of birth is required")
	}

	query := fmt.Sprintf(`
INSERT INTO %s (id, return_id, first_name, last_name, date_of_birth, relationship)
VALUES ($1, $2, $3, $4, $5, $6)`, r.table)

	_, err := r.db.ExecContext(ctx, query,
		dep.ID, dep.ReturnID, dep.FirstName, dep.LastName, dep.DateOfBirth, dep.Relationship)
	return err
}

// ListByReturn loads all dependents attached to a return.
func (r *DependentRepository) ListByReturn(ctx context.Context, returnID string) ([]DependentRecord, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("dependent repo: nil db")
	}
	if returnID == "" {
		return nil, errors.New("dependent repo: empty return id")
	}

	query := fmt.Sprintf(`
SELECT id, return_id, first_name, last_name, date_of_birth, relationship
FROM %s
WHERE return_id = $1
ORDER BY created_at ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query, returnID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []DependentRecord
	for rows.Next() {
		var rec DependentRecord
		if err := rows.Scan(&rec.ID, &rec.ReturnID, &rec.FirstName, &rec.LastName, &rec.DateOfBirth, &rec.Relationship); err != nil {
			return nil, err
		}
		rec.DateOfBirth = rec.DateOfBirth.UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes a dependent by id.
func (r *DependentRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("dependent repo: nil db")
	}
	if id == "" {
		return errors.New("dependent repo: empty id")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
