package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"barveredales/internal/model"
	"barveredales/internal/store"
)

// SessionService creates, looks up, and invalidates session records.
// Sessions are never physically deleted; closing marks them inactive.
type SessionService struct {
	store *store.Store
}

func NewSessionService(st *store.Store) *SessionService {
	return &SessionService{store: st}
}

// Create appends a new active session and refreshes the owning user's
// lastLogin. The session id keeps the historical composite format.
func (s *SessionService) Create(ctx context.Context, userID int, ip, userAgent string) (*model.Session, error) {
	if ip == "" {
		ip = "localhost"
	}
	now := time.Now()
	session := model.Session{
		ID:           newSessionID(now),
		UserID:       userID,
		CreatedAt:    now,
		LastActivity: now,
		IsActive:     true,
		IP:           ip,
		UserAgent:    userAgent,
	}

	err := s.store.Mutate(ctx, func(doc *model.Document) error {
		doc.Sessions = append(doc.Sessions, session)
		email := ""
		if owner := doc.UserByID(userID); owner != nil {
			owner.LastLogin = &now
			email = owner.Email
		}
		doc.AppendLog(model.NewLogEntry("session_created",
			fmt.Sprintf("Sesión creada para usuario: %s", email), &userID, ip))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetActive returns the session iff it is active, refreshing lastActivity as a
// side effect. Missing or closed sessions yield (nil, nil).
func (s *SessionService) GetActive(ctx context.Context, id string) (*model.Session, error) {
	var found *model.Session
	err := s.store.Mutate(ctx, func(doc *model.Document) error {
		sess := doc.SessionByID(id)
		if sess == nil || !sess.IsActive {
			return nil
		}
		sess.LastActivity = time.Now()
		cp := *sess
		found = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Close marks the session inactive regardless of its current state.
// Returns false when the id is unknown.
func (s *SessionService) Close(ctx context.Context, id string) (bool, error) {
	closed := false
	err := s.store.Mutate(ctx, func(doc *model.Document) error {
		sess := doc.SessionByID(id)
		if sess == nil {
			return nil
		}
		now := time.Now()
		sess.IsActive = false
		sess.ClosedAt = &now
		closed = true
		doc.AppendLog(model.NewLogEntry("session_closed",
			fmt.Sprintf("Sesión cerrada: %s", id), &sess.UserID, ""))
		return nil
	})
	if err != nil {
		return false, err
	}
	return closed, nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// newSessionID keeps the historical format:
// "session_" + unix millis + "_" + 9 random base-36 chars.
func newSessionID(now time.Time) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36))))
		if err != nil {
			// crypto/rand failing means the host is broken; ids just need
			// uniqueness, so degrade to a time-derived digit.
			suffix[i] = base36[now.UnixNano()%36]
			continue
		}
		suffix[i] = base36[n.Int64()]
	}
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)
}
