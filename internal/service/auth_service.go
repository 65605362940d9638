package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"barveredales/internal/credential"
	"barveredales/internal/dto"
	"barveredales/internal/model"
	"barveredales/internal/store"
)

// User-facing error messages. Handlers surface these strings verbatim.
var (
	ErrInvalidCredentials = errors.New("Credenciales incorrectas")
	ErrUserInactive       = errors.New("Usuario inactivo")
	ErrUserBlocked        = errors.New("Usuario bloqueado. Intenta en 15 minutos")
	ErrEmailRegistered    = errors.New("El email ya está registrado")
)

const (
	// maxLoginAttempts mirrors the historical hard-coded threshold. The
	// settings record carries a maxLoginAttempts field but the login path has
	// never consulted it.
	maxLoginAttempts = 5
	lockoutWindow    = 15 * time.Minute
)

// AuthService orchestrates login (credential check + attempt throttling +
// session creation) and account CRUD against the document store.
type AuthService struct {
	store    *store.Store
	codec    credential.Codec
	sessions *SessionService
	audit    *AuditLog
}

func NewAuthService(st *store.Store, codec credential.Codec, sessions *SessionService, audit *AuditLog) *AuthService {
	return &AuthService{store: st, codec: codec, sessions: sessions, audit: audit}
}

// Login evaluates the attempt state machine in strict order; every branch
// short-circuits. Throttling counters and failure logs are persisted even when
// the attempt fails.
func (s *AuthService) Login(ctx context.Context, email, password, ip, userAgent string) (*dto.LoginResult, error) {
	var outcome error
	var loggedIn *model.User

	err := s.store.Mutate(ctx, func(doc *model.Document) error {
		u := doc.UserByEmail(email)
		if u == nil {
			doc.AppendLog(model.NewLogEntry("login_failed",
				"Intento de login con email inexistente: "+email, nil, ip))
			outcome = ErrInvalidCredentials
			return nil
		}

		if !u.IsActive {
			doc.AppendLog(model.NewLogEntry("login_failed",
				"Intento de login con usuario inactivo: "+email, nil, ip))
			outcome = ErrUserInactive
			return nil
		}

		if u.LoginAttempts >= maxLoginAttempts {
			if u.LastAttempt != nil && time.Since(*u.LastAttempt) < lockoutWindow {
				doc.AppendLog(model.NewLogEntry("login_blocked",
					"Usuario bloqueado por intentos excesivos: "+email, nil, ip))
				outcome = ErrUserBlocked
				return nil
			}
			// Lockout expired: the counter resets at the start of this
			// attempt, then evaluation falls through to the credential check.
			u.LoginAttempts = 0
			u.LastAttempt = nil
		}

		if !s.codec.Verify(password, u.Password) {
			now := time.Now()
			u.LoginAttempts++
			u.LastAttempt = &now
			doc.AppendLog(model.NewLogEntry("login_failed",
				"Contraseña incorrecta para: "+email, nil, ip))
			outcome = ErrInvalidCredentials
			return nil
		}

		u.LoginAttempts = 0
		u.LastAttempt = nil
		if s.codec.NeedsRehash(u.Password) {
			if digest, hashErr := s.codec.Hash(password); hashErr == nil {
				u.Password = digest
			}
		}
		cp := *u
		loggedIn = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		return nil, outcome
	}

	session, err := s.sessions.Create(ctx, loggedIn.ID, ip, userAgent)
	if err != nil {
		return nil, err
	}
	if err := s.audit.AppendIP(ctx, ip, "login_success", "Login exitoso: "+loggedIn.Email, &loggedIn.ID); err != nil {
		return nil, err
	}

	return &dto.LoginResult{User: dto.NewPublicUser(loggedIn), Session: session}, nil
}

// Register creates a new account. Email uniqueness is case-insensitive; the
// stored email is trimmed and normalized to lowercase.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest, ip string) (*model.User, error) {
	var created model.User
	err := s.store.Mutate(ctx, func(doc *model.Document) error {
		if doc.UserByEmail(req.Email) != nil {
			return ErrEmailRegistered
		}
		digest, err := s.codec.Hash(req.Password)
		if err != nil {
			return err
		}
		created = model.User{
			ID:        doc.NextUserID(),
			Nombres:   strings.TrimSpace(req.Nombres),
			Apellidos: strings.TrimSpace(req.Apellidos),
			Edad:      req.Edad,
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Password:  digest,
			Role:      model.RoleUser,
			CreatedAt: time.Now(),
			IsActive:  true,
		}
		doc.Users = append(doc.Users, created)
		doc.AppendLog(model.NewLogEntry("user_created",
			"Usuario creado: "+created.Email, &created.ID, ip))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetUserByID returns nil when the id is unknown.
func (s *AuthService) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	var out *model.User
	err := s.store.View(ctx, func(doc *model.Document) error {
		if u := doc.UserByID(id); u != nil {
			cp := *u
			out = &cp
		}
		return nil
	})
	return out, err
}

// GetUserByEmail returns nil when no account matches (case-insensitive).
func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var out *model.User
	err := s.store.View(ctx, func(doc *model.Document) error {
		if u := doc.UserByEmail(email); u != nil {
			cp := *u
			out = &cp
		}
		return nil
	})
	return out, err
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := s.store.View(ctx, func(doc *model.Document) error {
		out = append([]model.User(nil), doc.Users...)
		return nil
	})
	return out, err
}

// UpdateUser mutates only the whitelisted fields (nombres, apellidos, edad,
// email, isActive); anything else in the patch is silently ignored. Returns
// nil when the id is unknown.
func (s *AuthService) UpdateUser(ctx context.Context, id int, patch dto.UpdateUserRequest, ip string) (*model.User, error) {
	var out *model.User
	err := s.store.Mutate(ctx, func(doc *model.Document) error {
		u := doc.UserByID(id)
		if u == nil {
			return nil
		}
		if patch.Nombres != nil {
			u.Nombres = *patch.Nombres
		}
		if patch.Apellidos != nil {
			u.Apellidos = *patch.Apellidos
		}
		if patch.Edad != nil {
			u.Edad = *patch.Edad
		}
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.IsActive != nil {
			u.IsActive = *patch.IsActive
		}
		now := time.Now()
		u.UpdatedAt = &now
		doc.AppendLog(model.NewLogEntry("user_updated",
			"Usuario actualizado: "+u.Email, &u.ID, ip))
		cp := *u
		out = &cp
		return nil
	})
	return out, err
}

// DeleteUser removes the account by id. Sessions and logs referencing the id
// are left dangling on purpose: there is no cascade.
func (s *AuthService) DeleteUser(ctx context.Context, id int, ip string) (bool, error) {
	deleted := false
	err := s.store.Mutate(ctx, func(doc *model.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				email := doc.Users[i].Email
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				doc.AppendLog(model.NewLogEntry("user_deleted",
					"Usuario eliminado: "+email, &id, ip))
				deleted = true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
