package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
	"github.com/linsok/housing-analyzer-sub000/internal/pkg/response"
	"github.com/linsok/housing-analyzer-sub000/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Lifecycle actions ride PATCH so the wildcard routes never share a
// method tree with the static POST endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListMine)
	rg.GET("/bookings/owner", h.ListForOwner)
	rg.POST("/bookings/payment_with_transaction", h.PaymentWithTransaction)
	rg.PATCH("/bookings/:id/confirm", h.Confirm)
	rg.PATCH("/bookings/:id/confirm_review", h.ConfirmReview)
	rg.PATCH("/bookings/:id/cancel", h.Cancel)
	rg.PATCH("/bookings/:id/complete", h.Complete)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": toView(b, domain.ActorRenter)})
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListForRenter(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": toViews(list, domain.ActorRenter)})
}

func (h *Handler) ListForOwner(c *gin.Context) {
	f := ListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Date:   c.Query("date"),
	}

	list, err := h.service.ListForOwner(c.Request.Context(), c.GetInt64("user_id"), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": toViews(list, domain.ActorOwner)})
}

func (h *Handler) PaymentWithTransaction(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.PostForm("property"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_PAYMENT_DATA", "Invalid payment data")
		return
	}

	req := PaymentWithTransactionRequest{
		PropertyID:    propertyID,
		StartDate:     c.PostForm("start_date"),
		EndDate:       c.PostForm("end_date"),
		MonthlyRent:   parseFloat(c.PostForm("monthly_rent")),
		DepositAmount: parseFloat(c.PostForm("deposit_amount")),
		TotalAmount:   parseFloat(c.PostForm("total_amount")),
		Message:       c.PostForm("message"),
		MD5Hash:       c.PostForm("md5_hash"),
	}

	if fh, err := c.FormFile("transaction_image"); err == nil {
		req.Receipt = fh
	}

	// Multipart fields never pass through gin's binding validation.
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid payment data", fields)
		return
	}

	b, err := h.service.PaymentWithTransaction(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": toView(b, domain.ActorRenter)})
}

func (h *Handler) Confirm(c *gin.Context) {
	h.transition(c, func(id, userID int64) (*domain.Booking, error) {
		return h.service.Confirm(c.Request.Context(), id, userID)
	})
}

func (h *Handler) ConfirmReview(c *gin.Context) {
	h.transition(c, func(id, userID int64) (*domain.Booking, error) {
		return h.service.ConfirmReview(c.Request.Context(), id, userID)
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	// An owner "cancel" with a reason is a rejection; a renter cancel
	// is a plain cancellation.
	var req RejectRequest
	_ = c.ShouldBindJSON(&req)

	h.transition(c, func(id, userID int64) (*domain.Booking, error) {
		if c.GetString("role") == string(domain.RoleOwner) {
			return h.service.Reject(c.Request.Context(), id, userID, req.Reason)
		}
		return h.service.Cancel(c.Request.Context(), id, userID)
	})
}

func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, func(id, userID int64) (*domain.Booking, error) {
		return h.service.Complete(c.Request.Context(), id, userID)
	})
}

func (h *Handler) transition(c *gin.Context, apply func(id, userID int64) (*domain.Booking, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	b, err := apply(id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	actor := domain.ActorRenter
	if c.GetString("role") == string(domain.RoleOwner) {
		actor = domain.ActorOwner
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toView(b, actor)})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
	case ErrReceiptType:
		response.Error(c, http.StatusBadRequest, "RECEIPT_TYPE_NOT_ALLOWED",
			"Receipt must be a JPEG, PNG, GIF image or a PDF")
	case ErrReceiptTooLarge:
		response.Error(c, http.StatusBadRequest, "RECEIPT_TOO_LARGE",
			"Receipt file must not exceed 5MB")
	case ErrReceiptRequired:
		response.Error(c, http.StatusBadRequest, "RECEIPT_REQUIRED", "Transaction image is required")
	case ErrReasonRequired:
		response.Error(c, http.StatusBadRequest, "REASON_REQUIRED", "A rejection reason is required for visit bookings")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or property not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot modify this booking")
	case ErrIllegalTransition:
		response.Error(c, http.StatusConflict, "ILLEGAL_TRANSITION",
			"This action is not allowed for the booking's current status")
	case ErrPropertyNotOpen:
		response.Error(c, http.StatusConflict, "PROPERTY_NOT_AVAILABLE", "Property is not available for booking")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
	}
}

func parseFloat(raw string) float64 {
	v, _ := strconv.ParseFloat(raw, 64)
	return v
}

func toView(b *domain.Booking, actor domain.Actor) BookingView {
	meta := domain.MetaFor(b.Status)
	actions := domain.AllowedActions(b.Status, actor)

	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, string(a))
	}

	v := BookingView{
		ID:                     b.ID,
		PropertyID:             b.PropertyID,
		RenterID:               b.RenterID,
		BookingType:            string(b.BookingType),
		Status:                 string(b.Status),
		StatusLabel:            meta.Label,
		StatusSeverity:         meta.Severity,
		AllowedActions:         names,
		StartDate:              b.StartDate,
		EndDate:                b.EndDate,
		VisitTime:              b.VisitTime,
		MonthlyRent:            b.MonthlyRent,
		DepositAmount:          b.DepositAmount,
		TotalAmount:            b.TotalAmount,
		Message:                b.Message,
		OwnerNotes:             b.OwnerNotes,
		TransactionImage:       b.TransactionImage,
		TransactionSubmittedAt: b.TransactionSubmittedAt,
		CreatedAt:              b.CreatedAt,
	}
	if b.Property != nil {
		v.PropertyTitle = b.Property.Title
	}
	if b.Renter != nil {
		v.RenterName = b.Renter.FullName
		v.RenterEmail = b.Renter.Email
	}
	return v
}

func toViews(list []domain.Booking, actor domain.Actor) []BookingView {
	out := make([]BookingView, 0, len(list))
	for i := range list {
		out = append(out, toView(&list[i], actor))
	}
	return out
}
