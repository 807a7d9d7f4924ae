package recommend

import (
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

// RegisterRoutes exposes the personalized feed to signed-in users and
// the generic feed publicly.
func (h *Handler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/recommendations/fallback", h.Fallback)
	authed.GET("/recommendations", h.Aggregate)
}

func (h *Handler) Aggregate(c *gin.Context) {
	items, err := h.service.Aggregate(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load recommendations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recommendations": items})
}

func (h *Handler) Fallback(c *gin.Context) {
	items, err := h.service.Fallback(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load recommendations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recommendations": items})
}
