package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barveredales/internal/config"
	"barveredales/internal/credential"
	"barveredales/internal/model"
	"barveredales/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(context.Background(), store.NewMemorySlot(), credential.New(credential.SchemeLegacy))
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "test",
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		ReceiptStoragePath: t.TempDir(),
	}
	return New(cfg, st, nil, nil), st, cfg
}

func enableMaintenance(t *testing.T, st *store.Store) {
	t.Helper()
	mode := true
	_, err := st.UpdateSettings(context.Background(), store.SettingsPatch{MaintenanceMode: &mode})
	require.NoError(t, err)
}

func signTestToken(secret string, userID int, role string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   "admin@veredales.com",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, _ := token.SignedString([]byte(secret))
	return signed
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Maintenance mode blocks registration and payments but never the login path,
// so an administrator can always get back in to switch it off.
func TestMaintenanceModeScopedToRegisterAndPayments(t *testing.T) {
	r, st, cfg := newTestRouter(t)
	enableMaintenance(t, st)

	w := doJSON(r, http.MethodPost, "/api/login", "", gin.H{
		"email":    "admin@veredales.com",
		"password": "admin123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/register", "", gin.H{
		"nombres":   "Nuevo",
		"apellidos": "Usuario",
		"edad":      30,
		"email":     "nuevo@test.com",
		"password":  "secret1",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Aplicación en mantenimiento")

	payment := gin.H{
		"order":         []gin.H{{"name": "Café", "price": "2.50", "quantity": 1}},
		"paymentMethod": "nequi",
		"tableNumber":   1,
	}

	userToken := signTestToken(cfg.JWTSecret, 2, model.RoleUser)
	w = doJSON(r, http.MethodPost, "/v1/pagos", userToken, payment)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	adminToken := signTestToken(cfg.JWTSecret, 1, model.RoleAdmin)
	w = doJSON(r, http.MethodPost, "/v1/pagos", adminToken, payment)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPasswordResetOpenDuringMaintenance(t *testing.T) {
	r, st, _ := newTestRouter(t)
	enableMaintenance(t, st)

	w := doJSON(r, http.MethodPost, "/api/password/forgot", "", gin.H{
		"email": "admin@veredales.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Código enviado al correo")
}
