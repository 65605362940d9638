package handler

import (
	"errors"
	"net/http"

	"barveredales/internal/apierror"
	"barveredales/internal/dto"
	"barveredales/internal/repository"
	"barveredales/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	gateway  repository.AccountGateway
	sessions *service.SessionService
}

func NewAuthHandler(gateway repository.AccountGateway, sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{gateway: gateway, sessions: sessions}
}

// Register godoc
// @Summary Registro de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Datos del usuario"
// @Success 201 {object} dto.RegisterResponse
// @Failure 409 {object} apierror.APIError
// @Router /api/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.gateway.Register(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrEmailRegistered) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.gateway.Login(c.Request.Context(), req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !bindAndValidate(c, &req) {
		return
	}

	closed, err := h.sessions.Close(c.Request.Context(), req.SessionID)
	if err != nil {
		c.Error(err)
		return
	}
	if !closed {
		c.JSON(http.StatusNotFound, apierror.New("Sesión no encontrada"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

// Session returns the active session by id, refreshing its lastActivity.
func (h *AuthHandler) Session(c *gin.Context) {
	session, err := h.sessions.GetActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, apierror.New("Sesión no válida"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}
