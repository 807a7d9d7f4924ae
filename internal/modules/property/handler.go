package property

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/linsok/housing-analyzer-sub000/internal/pkg/response"
	"github.com/linsok/housing-analyzer-sub000/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes splits the surface into a public browse side and an
// authenticated side; owner-only routes take the extra role guard.
func (h *Handler) RegisterRoutes(public, authed *gin.RouterGroup, ownerOnly gin.HandlerFunc) {
	public.GET("/properties", h.List)
	public.GET("/properties/:id", h.Get)

	authed.POST("/properties/:id/favorite", h.ToggleFavorite)
	authed.GET("/favorites", h.ListFavorites)

	authed.POST("/properties", ownerOnly, h.Create)
	authed.PUT("/properties/:id", ownerOnly, h.Update)
	authed.POST("/properties/:id/publish", ownerOnly, h.Publish)
	authed.POST("/properties/:id/unpublish", ownerOnly, h.Unpublish)
	// Lives under /owner to keep the GET tree free of static segments
	// beside the :id wildcard.
	authed.GET("/owner/properties", ownerOnly, h.ListMine)
}

func (h *Handler) List(c *gin.Context) {
	f := repository.PropertyFilters{
		City:         c.Query("city"),
		PropertyType: c.Query("property_type"),
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		f.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		f.MaxPrice = v
	}

	list, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": list})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property data")
		return
	}

	p, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"property": p})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property data")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) Publish(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	p, err := h.service.Publish(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) Unpublish(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	p, err := h.service.Unpublish(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": list})
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	favorited, err := h.service.ToggleFavorite(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorited": favorited})
}

func (h *Handler) ListFavorites(c *gin.Context) {
	list, err := h.service.ListFavorites(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorites": list})
}

func (h *Handler) paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property data")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this property")
	case ErrNotPublishable:
		response.Error(c, http.StatusConflict, "NOT_PUBLISHABLE",
			"Both the owner account and the listing must be verified before publishing")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process property")
	}
}
