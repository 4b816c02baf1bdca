// Package audit records who did what to which return. Entries are
// append-only; nothing in the application reads them back except the
// operator.
package audit

import (
	"context"
	"time"
)

// Entry represents an audit log entry.
type Entry struct {
	UserID    string
	Action    string
	Resource  string
	Detail    string
	CreatedAt time.Time
}

// Logger writes audit entries.
type Logger interface {
	Log(ctx context.Context, entry Entry) error
}

// NopLogger discards entries; used by tests and the CLI, which has no
// database behind it.
type NopLogger struct{}

func (NopLogger) Log(context.Context, Entry) error { return nil }

// Common actions recorded by the API layer.
const (
	ActionRegister  = "user.register"
	ActionLogin     = "user.login"
	ActionCreate    = "return.create"
	ActionUpdate    = "return.update"
	ActionDelete    = "return.delete"
	ActionCalculate = "return.calculate"
	ActionExport    = "return.export"
)
