package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barveredales/internal/credential"
	"barveredales/internal/model"
	"barveredales/internal/store"
)

func newMaintenanceRouter(t *testing.T, enabled bool) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(context.Background(), store.NewMemorySlot(), credential.New(credential.SchemeLegacy))
	require.NoError(t, err)
	if enabled {
		mode := true
		_, err = st.UpdateSettings(context.Background(), store.SettingsPatch{MaintenanceMode: &mode})
		require.NoError(t, err)
	}

	r := gin.New()
	r.GET("/ping", Maintenance(st), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	r.GET("/admin-ping", func(c *gin.Context) {
		c.Set(ClaimsKey, &JWTClaims{UserID: 1, Role: model.RoleAdmin})
		c.Next()
	}, Maintenance(st), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r, st
}

func TestMaintenanceDisabledPassesThrough(t *testing.T) {
	r, _ := newMaintenanceRouter(t, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMaintenanceBlocksAnonymous(t *testing.T) {
	r, _ := newMaintenanceRouter(t, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Aplicación en mantenimiento")
}

func TestMaintenanceAdminBypass(t *testing.T) {
	r, _ := newMaintenanceRouter(t, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin-ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "custom-id")
	r.ServeHTTP(w, req)
	assert.Equal(t, "custom-id", w.Header().Get("X-Request-ID"))
}
