package model

import "strings"

// Document is the single JSON-serializable aggregate holding all persisted
// entities. It is the sole unit of durability: every mutation is a full read,
// in-memory change, full write of this structure.
type Document struct {
	Users    []User     `json:"users"`
	Sessions []Session  `json:"sessions"`
	Settings Settings   `json:"settings"`
	Logs     []LogEntry `json:"logs"`
	Payments []Payment  `json:"payments,omitempty"`
}

// AppendLog appends an activity entry and enforces the log bound: when the
// collection exceeds MaxLogEntries, the oldest entries are evicted.
func (d *Document) AppendLog(e LogEntry) {
	d.Logs = append(d.Logs, e)
	if len(d.Logs) > MaxLogEntries {
		d.Logs = d.Logs[len(d.Logs)-MaxLogEntries:]
	}
}

// UserByEmail returns the user with the given email (case-insensitive), or nil.
func (d *Document) UserByEmail(email string) *User {
	for i := range d.Users {
		if strings.EqualFold(d.Users[i].Email, email) {
			return &d.Users[i]
		}
	}
	return nil
}

// UserByID returns the user with the given id, or nil.
func (d *Document) UserByID(id int) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// NextUserID allocates max(existing)+1. Ids are never reused after deletion.
func (d *Document) NextUserID() int {
	next := 1
	for i := range d.Users {
		if d.Users[i].ID >= next {
			next = d.Users[i].ID + 1
		}
	}
	return next
}

// SessionByID returns the session with the given id, or nil.
func (d *Document) SessionByID(id string) *Session {
	for i := range d.Sessions {
		if d.Sessions[i].ID == id {
			return &d.Sessions[i]
		}
	}
	return nil
}

// Stats summarizes the document for the dashboard.
type Stats struct {
	TotalUsers     int    `json:"totalUsers"`
	ActiveUsers    int    `json:"activeUsers"`
	TotalSessions  int    `json:"totalSessions"`
	ActiveSessions int    `json:"activeSessions"`
	TotalLogs      int    `json:"totalLogs"`
	LastActivity   string `json:"lastActivity,omitempty"` // timestamp of the newest log entry
}
