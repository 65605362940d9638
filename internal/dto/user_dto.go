package dto

import (
	"time"

	"barveredales/internal/model"
)

// UpdateUserRequest is the admin patch for a user. Only the whitelisted fields
// below can be changed; anything else in the payload is silently ignored.
type UpdateUserRequest struct {
	Nombres   *string `json:"nombres"   validate:"omitempty,min=2,max=100"`
	Apellidos *string `json:"apellidos" validate:"omitempty,min=2,max=100"`
	Edad      *int    `json:"edad"      validate:"omitempty,gte=18,lte=100"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	IsActive  *bool   `json:"isActive"`
}

// UserResponse is the admin dashboard view of a user. Wider than PublicUser
// but still without digest or throttling counters.
type UserResponse struct {
	ID        int        `json:"id"`
	Nombres   string     `json:"nombres"`
	Apellidos string     `json:"apellidos"`
	Edad      int        `json:"edad"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	LastLogin *time.Time `json:"lastLogin"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Nombres:   u.Nombres,
		Apellidos: u.Apellidos,
		Edad:      u.Edad,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		LastLogin: u.LastLogin,
	}
}
