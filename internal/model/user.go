package model

import "time"

// User stores registered accounts with role-based access.
// Role: "user" | "admin"
// JSON field names mirror the persisted document layout ("barVeredalesDB" slot),
// so exported backups remain interchangeable with previously stored data.
type User struct {
	ID        int    `json:"id"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Edad      int    `json:"edad"`
	Email     string `json:"email"`
	// Password holds the credential digest, never the plaintext.
	Password        string     `json:"password"`
	Role            string     `json:"role"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
	LastLogin       *time.Time `json:"lastLogin"`
	IsActive        bool       `json:"isActive"`
	LoginAttempts   int        `json:"loginAttempts"`
	LastAttempt     *time.Time `json:"lastAttempt"`
	PasswordResetAt *time.Time `json:"passwordResetAt,omitempty"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
