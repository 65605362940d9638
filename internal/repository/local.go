package repository

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"barveredales/internal/dto"
	"barveredales/internal/service"
)

// LocalGateway serves authentication from the document store. It is the
// fallback when the remote API is unreachable and the only backend in
// offline deployments.
type LocalGateway struct {
	auth      *service.AuthService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewLocalGateway(auth *service.AuthService, jwtSecret string, tokenTTL time.Duration) *LocalGateway {
	return &LocalGateway{auth: auth, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (g *LocalGateway) Login(ctx context.Context, req dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error) {
	result, err := g.auth.Login(ctx, req.Email, req.Password, ip, userAgent)
	if err != nil {
		return nil, err
	}

	token, err := g.generateToken(result.User)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Message: "Login exitoso",
		Token:   token,
		User:    result.User,
		Session: result.Session,
		Source:  "local",
	}, nil
}

func (g *LocalGateway) Register(ctx context.Context, req dto.RegisterRequest, ip string) (*dto.RegisterResponse, error) {
	user, err := g.auth.Register(ctx, req, ip)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		Message: "Usuario registrado exitosamente",
		User: dto.RegisterUser{
			ID:      user.ID,
			Email:   user.Email,
			Nombres: user.Nombres,
		},
		Source: "local",
	}, nil
}

func (g *LocalGateway) generateToken(user dto.PublicUser) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(g.tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(g.jwtSecret))
}
