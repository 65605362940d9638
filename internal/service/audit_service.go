package service

import (
	"context"

	"barveredales/internal/model"
	"barveredales/internal/store"
)

// AuditLog is the append-only activity record written by every other
// component. The collection is ring-buffered at model.MaxLogEntries.
type AuditLog struct {
	store *store.Store
}

func NewAuditLog(st *store.Store) *AuditLog { return &AuditLog{store: st} }

// Append records an event attributed to no particular network origin.
func (a *AuditLog) Append(ctx context.Context, action, message string, userID *int) error {
	return a.AppendIP(ctx, "", action, message, userID)
}

// AppendIP records an event with the caller's network address.
func (a *AuditLog) AppendIP(ctx context.Context, ip, action, message string, userID *int) error {
	return a.store.Mutate(ctx, func(doc *model.Document) error {
		doc.AppendLog(model.NewLogEntry(action, message, userID, ip))
		return nil
	})
}

// Query returns the most recent limit entries in storage order (oldest-first
// among the returned slice). Callers wanting newest-first reverse explicitly.
// A non-positive limit defaults to 100.
func (a *AuditLog) Query(ctx context.Context, limit int) ([]model.LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []model.LogEntry
	err := a.store.View(ctx, func(doc *model.Document) error {
		logs := doc.Logs
		if len(logs) > limit {
			logs = logs[len(logs)-limit:]
		}
		out = append([]model.LogEntry(nil), logs...)
		return nil
	})
	return out, err
}
