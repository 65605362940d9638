package model

import "time"

// Session is a client-recognized marker of an authenticated context, distinct
// from any transport-level token. UserID is a weak reference: deleting a user
// does not cascade to their sessions.
type Session struct {
	ID           string     `json:"id"`
	UserID       int        `json:"userId"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastActivity time.Time  `json:"lastActivity"`
	IsActive     bool       `json:"isActive"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	IP           string     `json:"ip"`
	UserAgent    string     `json:"userAgent"`
}
