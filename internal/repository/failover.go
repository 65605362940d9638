package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"barveredales/internal/dto"
	"barveredales/internal/infra"
)

// FailoverGateway tries the remote API first and falls back to the local
// store on any remote failure. A circuit breaker skips the remote attempt
// entirely while the API is known to be down.
type FailoverGateway struct {
	remote  AccountGateway
	local   AccountGateway
	breaker *infra.CircuitBreaker
}

func NewFailoverGateway(remote, local AccountGateway, breaker *infra.CircuitBreaker) *FailoverGateway {
	return &FailoverGateway{remote: remote, local: local, breaker: breaker}
}

func (g *FailoverGateway) Login(ctx context.Context, req dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error) {
	if g.remote != nil {
		var out *dto.LoginResponse
		err := g.breaker.Execute(func() error {
			var remoteErr error
			out, remoteErr = g.remote.Login(ctx, req, ip, userAgent)
			return remoteErr
		})
		if err == nil {
			return out, nil
		}
		g.logFallback("login", err)
	}
	return g.local.Login(ctx, req, ip, userAgent)
}

func (g *FailoverGateway) Register(ctx context.Context, req dto.RegisterRequest, ip string) (*dto.RegisterResponse, error) {
	if g.remote != nil {
		var out *dto.RegisterResponse
		err := g.breaker.Execute(func() error {
			var remoteErr error
			out, remoteErr = g.remote.Register(ctx, req, ip)
			return remoteErr
		})
		if err == nil {
			return out, nil
		}
		g.logFallback("register", err)
	}
	return g.local.Register(ctx, req, ip)
}

func (g *FailoverGateway) logFallback(op string, err error) {
	evt := log.Warn().Str("operation", op).Str("breaker", g.breaker.State().String())
	if errors.Is(err, infra.ErrCircuitOpen) {
		evt.Msg("api remota omitida, usando almacenamiento local")
		return
	}
	evt.Err(err).Msg("api remota no disponible, usando almacenamiento local")
}
