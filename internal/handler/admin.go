package handler

import (
	"io"
	"net/http"
	"strconv"

	"barveredales/internal/apierror"
	"barveredales/internal/service"
	"barveredales/internal/store"

	"github.com/gin-gonic/gin"
)

// AdminHandler groups the document-level maintenance operations: logs,
// settings, stats, export/import and full reset.
type AdminHandler struct {
	store *store.Store
	audit *service.AuditLog
}

func NewAdminHandler(st *store.Store, audit *service.AuditLog) *AdminHandler {
	return &AdminHandler{store: st, audit: audit}
}

func (h *AdminHandler) Logs(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Límite inválido"))
			return
		}
		limit = n
	}
	logs, err := h.audit.Query(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.store.GetSettings(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var patch store.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return
	}
	settings, err := h.store.UpdateSettings(c.Request.Context(), patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.store.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// Export streams the full document as a pretty-printed JSON attachment.
func (h *AdminHandler) Export(c *gin.Context) {
	data, err := h.store.ExportData(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="barveredales_backup.json"`)
	c.Data(http.StatusOK, "application/json", []byte(data))
}

// Import replaces the whole document with the uploaded backup. Malformed
// input is reported as a 400 and leaves the current document untouched.
func (h *AdminHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el archivo"))
		return
	}
	if !h.store.ImportData(c.Request.Context(), string(raw)) {
		c.JSON(http.StatusBadRequest, apierror.New("Datos de importación no válidos"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Datos importados exitosamente"})
}

func (h *AdminHandler) Clear(c *gin.Context) {
	if err := h.store.ClearDatabase(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Base de datos limpiada"})
}
