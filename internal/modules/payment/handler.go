package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linsok/housing-analyzer-sub000/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/generate_khqr", h.GenerateKHQR)
	rg.POST("/payments/check_payment_status", h.CheckPaymentStatus)
	rg.POST("/payments/retry_verification", h.RetryVerification)
	rg.POST("/payments/cancel_verification", h.CancelVerification)
}

func (h *Handler) GenerateKHQR(c *gin.Context) {
	var req GenerateKHQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment request")
		return
	}

	out, err := h.service.GenerateKHQR(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) CheckPaymentStatus(c *gin.Context) {
	var req CheckStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "md5_hash is required")
		return
	}

	out, err := h.service.CheckPaymentStatus(c.Request.Context(), c.GetInt64("user_id"), req.MD5Hash)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) RetryVerification(c *gin.Context) {
	var req CheckStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "md5_hash is required")
		return
	}

	out, err := h.service.RetryVerification(c.Request.Context(), c.GetInt64("user_id"), req.MD5Hash)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) CancelVerification(c *gin.Context) {
	var req CheckStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "md5_hash is required")
		return
	}

	if err := h.service.CancelVerification(c.Request.Context(), c.GetInt64("user_id"), req.MD5Hash); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidCurrency):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrMerchantNotConfigured):
		response.Error(c, http.StatusConflict, "MERCHANT_NOT_CONFIGURED",
			"KHQR payments are not configured for this property")
	case errors.Is(err, ErrPropertyNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case errors.Is(err, ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Payment session not found or expired")
	case errors.Is(err, ErrGateway):
		response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Payment gateway unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process payment")
	}
}
