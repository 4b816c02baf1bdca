package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sthanna/UsTaxesFree/internal/audit"
)

const defaultAuditTable = "audit_log"

// AuditRepository persists audit entries. It satisfies audit.Logger.
type AuditRepository struct {
	db    DBTX
	table string
}

// NewAuditRepository constructs a repository.
func NewAuditRepository(db DBTX) *AuditRepository {
	return &AuditRepository{db: db, table: defaultAuditTable}
}

var _ audit.Logger = (*AuditRepository)(nil)

// Log appends one audit entry.
func (r *AuditRepository) Log(ctx context.Context, entry audit.Entry) error {
	if r == nil || r.db == nil {
		return errors.New("audit repo: nil db")
	}
	if entry.Action == "" || entry.Resource == "" {
		return errors.New("audit repo: action and resource are required")
	}

	query := fmt.Sprintf(`
INSERT INTO %s (user_id, action, resource, detail)
VALUES ($1, $2, $3, $4)`, r.table)

	// The user id column is nullable; unauthenticated actions (failed
	// logins) carry none.
	var userID sql.NullString
	if entry.UserID != "" {
		userID = sql.NullString{String: entry.UserID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query, userID, entry.Action, entry.Resource, entry.Detail)
	return err
}
