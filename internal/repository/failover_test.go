package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barveredales/internal/credential"
	"barveredales/internal/dto"
	"barveredales/internal/infra"
	"barveredales/internal/service"
	"barveredales/internal/store"
)

func newLocalGateway(t *testing.T) *LocalGateway {
	t.Helper()
	codec := credential.New(credential.SchemeLegacy)
	st, err := store.New(context.Background(), store.NewMemorySlot(), codec)
	require.NoError(t, err)
	audit := service.NewAuditLog(st)
	auth := service.NewAuthService(st, codec, service.NewSessionService(st), audit)
	return NewLocalGateway(auth, "test-secret", time.Hour)
}

func newFailover(remoteURL string, local *LocalGateway) *FailoverGateway {
	remote := NewRemoteGateway(remoteURL, 2*time.Second)
	return NewFailoverGateway(remote, local, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
}

func TestFailoverPrefersRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login", r.URL.Path)
		var body dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@veredales.com", body.Email)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Login exitoso",
			"token":   "remote-token",
			"user":    map[string]interface{}{"id": 1, "email": "admin@veredales.com"},
		})
	}))
	defer srv.Close()

	gw := newFailover(srv.URL, newLocalGateway(t))
	resp, err := gw.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@veredales.com",
		Password: "admin123",
	}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "remote", resp.Source)
	assert.Equal(t, "remote-token", resp.Token)
}

func TestFailoverFallsBackWhenRemoteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	gw := newFailover(srv.URL, newLocalGateway(t))
	resp, err := gw.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@veredales.com",
		Password: "admin123",
	}, "", "agent")
	require.NoError(t, err)
	assert.Equal(t, "local", resp.Source)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.Session)
	assert.Equal(t, 1, resp.User.ID)
}

func TestFailoverFallsBackOnRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "Error interno"})
	}))
	defer srv.Close()

	gw := newFailover(srv.URL, newLocalGateway(t))
	resp, err := gw.Register(context.Background(), dto.RegisterRequest{
		Nombres:   "Ana",
		Apellidos: "Ruiz",
		Edad:      30,
		Email:     "ana@test.com",
		Password:  "secret1",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "local", resp.Source)
	assert.Equal(t, "ana@test.com", resp.User.Email)
}

func TestFailoverSurfacesLocalAuthErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	gw := newFailover(srv.URL, newLocalGateway(t))
	_, err := gw.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@veredales.com",
		Password: "wrong",
	}, "", "")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	gw := newFailover(srv.URL, newLocalGateway(t))
	ctx := context.Background()
	req := dto.LoginRequest{Email: "admin@veredales.com", Password: "admin123"}

	for i := 0; i < 7; i++ {
		resp, err := gw.Login(ctx, req, "", "")
		require.NoError(t, err)
		assert.Equal(t, "local", resp.Source)
	}
	// After the failure threshold the breaker fast-fails without hitting remote
	assert.Equal(t, 5, hits)
}
