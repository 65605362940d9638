package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"barveredales/internal/model"
	"barveredales/internal/store"
)

var (
	ErrResetAccountNotFound = errors.New("No existe una cuenta con este email")
	ErrResetCodeInvalid     = errors.New("Código no válido o expirado")
	ErrResetTooManyAttempts = errors.New("Demasiados intentos. Solicita un nuevo código")
	ErrResetCodeExpired     = errors.New("El código ha expirado. Solicita uno nuevo")
)

const (
	resetCodeTTL         = 10 * time.Minute
	resetMaxAttempts     = 3
	tempPasswordLength   = 8
	tempPasswordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// CodeNotifier delivers a recovery code to the account owner.
type CodeNotifier interface {
	SendResetCode(ctx context.Context, email, code string) error
}

type resetEntry struct {
	code     string
	issuedAt time.Time
	attempts int
}

// ResetService implements the password recovery flow. Pending codes live only
// in this process; a restart discards them, which matches the lifetime the
// flow has always had.
type ResetService struct {
	store    *store.Store
	audit    *AuditLog
	notifier CodeNotifier

	mu      sync.Mutex
	pending map[string]*resetEntry

	now func() time.Time
}

func NewResetService(st *store.Store, audit *AuditLog, notifier CodeNotifier) *ResetService {
	return &ResetService{
		store:    st,
		audit:    audit,
		notifier: notifier,
		pending:  make(map[string]*resetEntry),
		now:      time.Now,
	}
}

// RequestCode issues a fresh 6-digit code for the account, replacing any
// pending one, and hands it to the notifier. The code is returned so callers
// in development mode can expose it.
func (s *ResetService) RequestCode(ctx context.Context, email string) (string, error) {
	user, err := s.lookup(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrResetAccountNotFound
	}

	code, err := s.storeCode(email)
	if err != nil {
		return "", err
	}

	if err := s.audit.Append(ctx, "password_reset_requested", "Código de recuperación solicitado: "+user.Email, &user.ID); err != nil {
		return "", err
	}

	s.notify(ctx, user.Email, code)
	return code, nil
}

// ResendCode issues a replacement code for the submitted email. The account
// is not looked up again and the attempt counter starts over.
func (s *ResetService) ResendCode(ctx context.Context, email string) (string, error) {
	code, err := s.storeCode(email)
	if err != nil {
		return "", err
	}

	if err := s.audit.Append(ctx, "password_reset_code_resent", "Código de recuperación reenviado: "+email, nil); err != nil {
		return "", err
	}

	s.notify(ctx, email, code)
	return code, nil
}

func (s *ResetService) storeCode(email string) (string, error) {
	code, err := newResetCode()
	if err != nil {
		return "", err
	}

	key := strings.ToLower(strings.TrimSpace(email))
	s.mu.Lock()
	s.pending[key] = &resetEntry{code: code, issuedAt: s.now()}
	s.mu.Unlock()
	return code, nil
}

func (s *ResetService) notify(ctx context.Context, email, code string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendResetCode(ctx, email, code); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("no se pudo enviar el código de recuperación")
	}
}

// VerifyCode checks the submitted code and, on success, replaces the account
// password with a generated temporary one and returns it in plaintext. The
// checks run in strict order: unknown entry, attempt budget, code match,
// expiry.
func (s *ResetService) VerifyCode(ctx context.Context, email, code string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	entry, ok := s.pending[key]
	if !ok {
		s.mu.Unlock()
		return "", ErrResetCodeInvalid
	}
	if entry.attempts >= resetMaxAttempts {
		delete(s.pending, key)
		s.mu.Unlock()
		return "", ErrResetTooManyAttempts
	}
	if code != entry.code {
		entry.attempts++
		remaining := resetMaxAttempts - entry.attempts
		s.mu.Unlock()
		return "", fmt.Errorf("Código incorrecto. Intentos restantes: %d", remaining)
	}
	if s.now().Sub(entry.issuedAt) > resetCodeTTL {
		delete(s.pending, key)
		s.mu.Unlock()
		return "", ErrResetCodeExpired
	}
	delete(s.pending, key)
	s.mu.Unlock()

	tempPassword, err := newTempPassword()
	if err != nil {
		return "", err
	}

	err = s.store.Mutate(ctx, func(doc *model.Document) error {
		u := doc.UserByEmail(key)
		if u == nil {
			return ErrResetAccountNotFound
		}
		digest, hashErr := s.store.Codec().Hash(tempPassword)
		if hashErr != nil {
			return hashErr
		}
		now := s.now()
		u.Password = digest
		u.PasswordResetAt = &now
		u.UpdatedAt = &now
		doc.AppendLog(model.NewLogEntry("password_reset_completed",
			"Contraseña restablecida para: "+u.Email, &u.ID, ""))
		return nil
	})
	if err != nil {
		return "", err
	}

	return tempPassword, nil
}

func (s *ResetService) lookup(ctx context.Context, email string) (*model.User, error) {
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

// newResetCode draws a uniform 6-digit code in [100000, 999999].
func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func newTempPassword() (string, error) {
	out := make([]byte, tempPasswordLength)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}
