package model

import "time"

// LogEntry is one append-only activity record. The collection is capped at
// MaxLogEntries; oldest entries are evicted first.
type LogEntry struct {
	ID        int64     `json:"id"` // millisecond timestamp at append time
	Action    string    `json:"action"`
	Message   string    `json:"message"`
	UserID    *int      `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip"`
}

// MaxLogEntries bounds the activity log collection.
const MaxLogEntries = 1000

// NewLogEntry builds an entry stamped with the current time. An empty ip is
// recorded as "localhost", matching entries written outside a request context.
func NewLogEntry(action, message string, userID *int, ip string) LogEntry {
	if ip == "" {
		ip = "localhost"
	}
	now := time.Now()
	return LogEntry{
		ID:        now.UnixMilli(),
		Action:    action,
		Message:   message,
		UserID:    userID,
		Timestamp: now,
		IP:        ip,
	}
}
