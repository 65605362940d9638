package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barveredales/internal/credential"
	"barveredales/internal/repository"
	"barveredales/internal/service"
	"barveredales/internal/store"
)

type authFixture struct {
	router *gin.Engine
	store  *store.Store
	reset  *service.ResetService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec := credential.New(credential.SchemeLegacy)
	st, err := store.New(context.Background(), store.NewMemorySlot(), codec)
	require.NoError(t, err)

	audit := service.NewAuditLog(st)
	sessions := service.NewSessionService(st)
	auth := service.NewAuthService(st, codec, sessions, audit)
	reset := service.NewResetService(st, audit, nil)
	local := repository.NewLocalGateway(auth, "test-secret", time.Hour)

	authH := NewAuthHandler(local, sessions)
	resetH := NewResetHandler(reset, true)

	r := gin.New()
	r.POST("/api/register", authH.Register)
	r.POST("/api/login", authH.Login)
	r.POST("/api/logout", authH.Logout)
	r.GET("/api/session/:id", authH.Session)
	r.POST("/api/password/forgot", resetH.Forgot)
	r.POST("/api/password/verify", resetH.Verify)
	r.POST("/api/password/resend", resetH.Resend)

	return &authFixture{router: r, store: st, reset: reset}
}

func (f *authFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRegisterEndpoint(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do(t, http.MethodPost, "/api/register", gin.H{
		"nombres":   "Ana",
		"apellidos": "Ruiz",
		"edad":      30,
		"email":     "ana@test.com",
		"password":  "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Usuario registrado exitosamente", body["message"])
	assert.Equal(t, "local", body["source"])

	// Same email, different case
	w = f.do(t, http.MethodPost, "/api/register", gin.H{
		"nombres":   "Ana",
		"apellidos": "Ruiz",
		"edad":      30,
		"email":     "ANA@test.com",
		"password":  "secret1",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "El email ya está registrado", decodeBody(t, w)["message"])
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do(t, http.MethodPost, "/api/register", gin.H{
		"nombres":   "A",
		"apellidos": "Ruiz",
		"edad":      15,
		"email":     "not-an-email",
		"password":  "123",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do(t, http.MethodPost, "/api/login", gin.H{
		"email":    "admin@veredales.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Login exitoso", body["message"])
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "local", body["source"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "admin@veredales.com", user["email"])
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)

	session := body["session"].(map[string]interface{})
	assert.NotEmpty(t, session["id"])
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do(t, http.MethodPost, "/api/login", gin.H{
		"email":    "admin@veredales.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Credenciales incorrectas", decodeBody(t, w)["message"])
}

func TestSessionLifecycleEndpoints(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do(t, http.MethodPost, "/api/login", gin.H{
		"email":    "admin@veredales.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	session := decodeBody(t, w)["session"].(map[string]interface{})
	sessionID := session["id"].(string)

	w = f.do(t, http.MethodGet, "/api/session/"+sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/logout", gin.H{"sessionId": sessionID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sesión cerrada", decodeBody(t, w)["message"])

	// Closed sessions are no longer retrievable
	w = f.do(t, http.MethodGet, "/api/session/"+sessionID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Sesión no válida", decodeBody(t, w)["message"])

	w = f.do(t, http.MethodPost, "/api/logout", gin.H{"sessionId": "session_0_xxxxxxxxx"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Sesión no encontrada", decodeBody(t, w)["message"])
}

func TestPasswordResetEndpoints(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do(t, http.MethodPost, "/api/password/forgot", gin.H{"email": "nadie@test.com"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No existe una cuenta con este email", decodeBody(t, w)["message"])

	w = f.do(t, http.MethodPost, "/api/password/forgot", gin.H{"email": "admin@veredales.com"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	code, _ := body["code"].(string)
	require.Len(t, code, 6) // dev mode exposes the code

	w = f.do(t, http.MethodPost, "/api/password/verify", gin.H{
		"email": "admin@veredales.com",
		"code":  code,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decodeBody(t, w)
	assert.Equal(t, "Contraseña restablecida", body["message"])
	temp, _ := body["temporaryPassword"].(string)
	require.Len(t, temp, 8)

	// Old password dead, temporary one works
	w = f.do(t, http.MethodPost, "/api/login", gin.H{
		"email":    "admin@veredales.com",
		"password": "admin123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodPost, "/api/login", gin.H{
		"email":    "admin@veredales.com",
		"password": temp,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyCodeValidation(t *testing.T) {
	f := newAuthFixture(t)

	w := f.do(t, http.MethodPost, "/api/password/verify", gin.H{
		"email": "admin@veredales.com",
		"code":  "12ab56",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
