package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/linsok/housing-analyzer-sub000/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/properties/:id/reviews", h.ListByProperty)
	authed.POST("/reviews", h.Create)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review data")
		return
	}

	rv, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"review": rv})
}

func (h *Handler) ListByProperty(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	out, err := h.service.ListByProperty(c.Request.Context(), propertyID, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrInvalidRating:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case ErrNotEligible:
		response.Error(c, http.StatusForbidden, "NOT_ELIGIBLE",
			"Only renters who completed a rental on this property can review it")
	case ErrAlreadyReviewed:
		response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "You already reviewed this property")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process review")
	}
}
