package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"barveredales/internal/apierror"
	"barveredales/internal/dto"
	"barveredales/internal/middleware"
	"barveredales/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentsHandler struct{ svc *service.PaymentService }

func NewPaymentsHandler(svc *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{svc: svc}
}

func (h *PaymentsHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	payment, err := h.svc.Create(c.Request.Context(), claims.UserID, req, c.ClientIP())
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Pago registrado exitosamente", "payment": payment})
}

func (h *PaymentsHandler) List(c *gin.Context) {
	payments, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (h *PaymentsHandler) Get(c *gin.Context) {
	id, ok := h.paymentID(c)
	if !ok {
		return
	}
	payment, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}

// Receipt serves the payment receipt as a PDF download.
func (h *PaymentsHandler) Receipt(c *gin.Context) {
	id, ok := h.paymentID(c)
	if !ok {
		return
	}
	data, err := h.svc.Receipt(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="recibo_%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *PaymentsHandler) paymentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return 0, false
	}
	return id, true
}
