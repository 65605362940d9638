package middleware

import (
	"net/http"

	"barveredales/internal/apierror"
	"barveredales/internal/model"
	"barveredales/internal/store"

	"github.com/gin-gonic/gin"
)

// Maintenance returns 503 while maintenance mode is enabled in settings.
// Administrators keep access so they can turn the mode back off.
func Maintenance(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var enabled bool
		if err := st.View(c.Request.Context(), func(doc *model.Document) error {
			enabled = doc.Settings.MaintenanceMode
			return nil
		}); err != nil {
			c.Next()
			return
		}
		if !enabled {
			c.Next()
			return
		}

		if claims, ok := c.Get(ClaimsKey); ok {
			if jc, ok := claims.(*JWTClaims); ok && jc.Role == model.RoleAdmin {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusServiceUnavailable,
			apierror.New("Aplicación en mantenimiento. Intenta más tarde"))
	}
}
