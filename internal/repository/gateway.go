package repository

import (
	"context"

	"barveredales/internal/dto"
)

// AccountGateway is the authentication backend as seen by the HTTP layer.
// Two implementations exist: the remote HTTP API and the local document
// store. The Failover wrapper tries the remote one first and falls back.
type AccountGateway interface {
	Login(ctx context.Context, req dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest, ip string) (*dto.RegisterResponse, error)
}
