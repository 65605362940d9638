package handler

import (
	"errors"
	"net/http"

	"barveredales/internal/apierror"
	"barveredales/internal/dto"
	"barveredales/internal/service"

	"github.com/gin-gonic/gin"
)

type ResetHandler struct {
	svc *service.ResetService
	// devMode exposes the generated code in responses so the flow can be
	// exercised without a mail server.
	devMode bool
}

func NewResetHandler(svc *service.ResetService, devMode bool) *ResetHandler {
	return &ResetHandler{svc: svc, devMode: devMode}
}

func (h *ResetHandler) Forgot(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	code, err := h.svc.RequestCode(c.Request.Context(), req.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.codeResponse("Código enviado al correo", code))
}

func (h *ResetHandler) Resend(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	code, err := h.svc.ResendCode(c.Request.Context(), req.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.codeResponse("Código reenviado al correo", code))
}

func (h *ResetHandler) Verify(c *gin.Context) {
	var req dto.VerifyCodeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	tempPassword, err := h.svc.VerifyCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResetPasswordResponse{
		Message:           "Contraseña restablecida",
		TemporaryPassword: tempPassword,
	})
}

func (h *ResetHandler) codeResponse(message, code string) dto.ForgotPasswordResponse {
	resp := dto.ForgotPasswordResponse{Message: message}
	if h.devMode {
		resp.Code = code
	}
	return resp
}

func (h *ResetHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrResetAccountNotFound) {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
}
