package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
	"github.com/linsok/housing-analyzer-sub000/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.PATCH("/admin/users/:id/verification", adminOnly, h.SetUserVerification)
	rg.PATCH("/admin/properties/:id/verification", adminOnly, h.SetPropertyVerification)
}

type verificationRequest struct {
	Status string `json:"status" binding:"required,oneof=verified rejected"`
}

func (h *Handler) SetUserVerification(c *gin.Context) {
	h.setVerification(c, h.service.SetUserVerification)
}

func (h *Handler) SetPropertyVerification(c *gin.Context) {
	h.setVerification(c, h.service.SetPropertyVerification)
}

func (h *Handler) setVerification(c *gin.Context, apply func(ctx context.Context, id int64, status domain.VerificationStatus) error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return
	}

	var req verificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be verified or rejected")
		return
	}

	if err := apply(c.Request.Context(), id, domain.VerificationStatus(req.Status)); err != nil {
		switch err {
		case ErrInvalidStatus:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Record not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update verification")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": req.Status})
}
