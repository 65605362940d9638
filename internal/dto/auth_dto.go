package dto

import (
	"time"

	"barveredales/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Nombres   string `json:"nombres"   validate:"required,min=2,max=100"`
	Apellidos string `json:"apellidos" validate:"required,min=2,max=100"`
	Edad      int    `json:"edad"      validate:"required,gte=18,lte=100"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LogoutRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// PublicUser is the user view returned on login: it never carries the
// credential digest or the attempt-throttling counters.
type PublicUser struct {
	ID        int       `json:"id"`
	Nombres   string    `json:"nombres"`
	Apellidos string    `json:"apellidos"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewPublicUser(u *model.User) PublicUser {
	return PublicUser{
		ID:        u.ID,
		Nombres:   u.Nombres,
		Apellidos: u.Apellidos,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResult is what the authentication service hands back on success.
type LoginResult struct {
	User    PublicUser     `json:"user"`
	Session *model.Session `json:"session"`
}

// LoginResponse is the HTTP shape of POST /api/login, compatible with the
// remote API contract (token) while also carrying the local session.
type LoginResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token,omitempty"`
	User    PublicUser     `json:"user"`
	Session *model.Session `json:"session,omitempty"`
	Source  string         `json:"source,omitempty"` // "remote" | "local"
}

// RegisterResponse is the HTTP shape of POST /api/register.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    RegisterUser `json:"user"`
	Source  string       `json:"source,omitempty"`
}

type RegisterUser struct {
	ID      any    `json:"id"` // integer locally; opaque string from the remote API
	Email   string `json:"email"`
	Nombres string `json:"nombres"`
}
