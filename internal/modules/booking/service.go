package booking

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

type Service struct {
	bookings   BookingRepository
	properties PropertyReader
	sessions   SessionReader
	storage    ReceiptUploader
	notifs     Notifier
}

func NewService(
	bookings BookingRepository,
	properties PropertyReader,
	sessions SessionReader,
	storage ReceiptUploader,
	notifs Notifier,
) *Service {
	return &Service{
		bookings:   bookings,
		properties: properties,
		sessions:   sessions,
		storage:    storage,
		notifs:     notifs,
	}
}

func (s *Service) CreateBooking(ctx context.Context, renterID int64, req CreateBookingRequest) (*domain.Booking, error) {
	prop, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if prop.Status != domain.PropertyAvailable {
		return nil, ErrPropertyNotOpen
	}

	b := &domain.Booking{
		PropertyID:  req.PropertyID,
		RenterID:    renterID,
		BookingType: domain.BookingType(req.BookingType),
		Status:      domain.BookingPending,
		Message:     req.Message,
	}

	switch b.BookingType {
	case domain.BookingRental:
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, ErrValidation
		}
		b.StartDate = &start
		if req.EndDate != "" {
			end, err := time.Parse("2006-01-02", req.EndDate)
			if err != nil || end.Before(start) {
				return nil, ErrValidation
			}
			b.EndDate = &end
		}
		b.MonthlyRent = req.MonthlyRent
		b.DepositAmount = req.DepositAmount
		b.TotalAmount = req.TotalAmount
	case domain.BookingVisit:
		if req.VisitTime == "" {
			return nil, ErrValidation
		}
		visit, err := time.Parse(time.RFC3339, req.VisitTime)
		if err != nil {
			return nil, ErrValidation
		}
		b.VisitTime = &visit
	default:
		return nil, ErrValidation
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.Notify(ctx, prop.OwnerID, domain.NotifyBookingCreated, b.ID,
			"New booking request",
			fmt.Sprintf("New %s request for %q", b.BookingType, prop.Title))
	}

	return b, nil
}

// PaymentWithTransactionRequest finalizes a rental booking with payment
// evidence in a single multipart call.
// PaymentWithTransactionRequest is assembled from multipart form fields,
// so it is validated explicitly instead of through gin's JSON binding.
type PaymentWithTransactionRequest struct {
	PropertyID    int64  `validate:"required,gt=0"`
	StartDate     string `validate:"required,datetime=2006-01-02"`
	EndDate       string `validate:"omitempty,datetime=2006-01-02"`
	MonthlyRent   float64
	DepositAmount float64
	TotalAmount   float64 `validate:"required,gt=0"`
	Message       string
	MD5Hash       string `validate:"omitempty,len=32,hexadecimal"`
	Receipt       *multipart.FileHeader
}

func (s *Service) PaymentWithTransaction(ctx context.Context, renterID int64, req PaymentWithTransactionRequest) (*domain.Booking, error) {
	// Receipt constraints are checked before anything touches storage
	// or the database.
	if err := ValidateReceipt(req.Receipt); err != nil {
		return nil, err
	}

	prop, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if prop.Status != domain.PropertyAvailable {
		return nil, ErrPropertyNotOpen
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrValidation
	}

	// A booking whose session the gateway already saw as PAID skips the
	// owner's receipt review.
	status := domain.BookingPendingReview
	var sessionSeen bool
	if req.MD5Hash != "" && s.sessions != nil {
		if sess, err := s.sessions.Get(ctx, req.MD5Hash); err == nil {
			sessionSeen = true
			if sess.Status == domain.PaymentPaid {
				status = domain.BookingConfirmed
			}
		}
	}

	url, err := s.storage.Upload(req.Receipt, "receipts")
	if err != nil {
		return nil, fmt.Errorf("store receipt: %w", err)
	}

	now := time.Now()
	b := &domain.Booking{
		PropertyID:             req.PropertyID,
		RenterID:               renterID,
		BookingType:            domain.BookingRental,
		Status:                 status,
		StartDate:              &start,
		MonthlyRent:            req.MonthlyRent,
		DepositAmount:          req.DepositAmount,
		TotalAmount:            req.TotalAmount,
		Message:                req.Message,
		TransactionImage:       url,
		TransactionSubmittedAt: &now,
	}
	if req.EndDate != "" {
		if end, err := time.Parse("2006-01-02", req.EndDate); err == nil {
			b.EndDate = &end
		}
	}
	if status == domain.BookingConfirmed {
		b.ConfirmedAt = &now
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if sessionSeen {
		_ = s.sessions.Delete(ctx, req.MD5Hash)
	}

	if s.notifs != nil {
		_ = s.notifs.Notify(ctx, prop.OwnerID, domain.NotifyReceiptSubmitted, b.ID,
			"Payment receipt submitted",
			fmt.Sprintf("A payment receipt was submitted for %q", prop.Title))
	}

	return b, nil
}

func (s *Service) Confirm(ctx context.Context, bookingID, ownerID int64) (*domain.Booking, error) {
	return s.applyOwnerAction(ctx, bookingID, ownerID, domain.ActionConfirm, "")
}

func (s *Service) ConfirmReview(ctx context.Context, bookingID, ownerID int64) (*domain.Booking, error) {
	return s.applyOwnerAction(ctx, bookingID, ownerID, domain.ActionConfirmReview, "")
}

func (s *Service) Reject(ctx context.Context, bookingID, ownerID int64, reason string) (*domain.Booking, error) {
	return s.applyOwnerAction(ctx, bookingID, ownerID, domain.ActionReject, reason)
}

func (s *Service) Complete(ctx context.Context, bookingID, ownerID int64) (*domain.Booking, error) {
	return s.applyOwnerAction(ctx, bookingID, ownerID, domain.ActionComplete, "")
}

func (s *Service) Cancel(ctx context.Context, bookingID, renterID int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, ErrForbidden
	}
	return s.applyTransition(ctx, b, domain.ActionCancel, domain.ActorRenter, "")
}

func (s *Service) applyOwnerAction(ctx context.Context, bookingID, ownerID int64, action domain.BookingAction, reason string) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	prop, err := s.properties.GetByID(ctx, b.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	return s.applyTransition(ctx, b, action, domain.ActorOwner, reason)
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// applyTransition is the single choke point for status mutation. The
// domain transition table decides legality; extra preconditions from the
// lifecycle rules are enforced here.
func (s *Service) applyTransition(ctx context.Context, b *domain.Booking, action domain.BookingAction, actor domain.Actor, reason string) (*domain.Booking, error) {
	if !domain.CanTransition(b.Status, action, actor) {
		return nil, ErrIllegalTransition
	}

	switch action {
	case domain.ActionConfirmReview:
		if !b.HasReceipt() {
			return nil, ErrReceiptRequired
		}
	case domain.ActionReject:
		if b.BookingType == domain.BookingVisit && reason == "" {
			return nil, ErrReasonRequired
		}
	}

	next, _ := domain.NextStatus(action)
	now := time.Now()
	fields := map[string]any{"status": string(next), "updated_at": now}

	switch next {
	case domain.BookingConfirmed:
		fields["confirmed_at"] = now
	case domain.BookingCompleted:
		fields["completed_at"] = now
	case domain.BookingCancelled, domain.BookingRejected:
		fields["cancelled_at"] = now
	}
	if action == domain.ActionReject && reason != "" {
		fields["owner_notes"] = reason
	}

	if err := s.bookings.UpdateFields(ctx, b.ID, fields); err != nil {
		return nil, err
	}

	b.Status = next
	if action == domain.ActionReject && reason != "" {
		b.OwnerNotes = reason
	}

	s.notifyTransition(ctx, b, next)

	return b, nil
}

func (s *Service) notifyTransition(ctx context.Context, b *domain.Booking, next domain.BookingStatus) {
	if s.notifs == nil {
		return
	}

	var t domain.NotificationType
	var title string
	switch next {
	case domain.BookingConfirmed:
		t, title = domain.NotifyBookingConfirmed, "Booking confirmed"
	case domain.BookingRejected:
		t, title = domain.NotifyBookingRejected, "Booking rejected"
	case domain.BookingCompleted:
		t, title = domain.NotifyBookingCompleted, "Booking completed"
	case domain.BookingCancelled:
		t, title = domain.NotifyBookingCancelled, "Booking cancelled"
	default:
		return
	}

	_ = s.notifs.Notify(ctx, b.RenterID, t, b.ID, title,
		fmt.Sprintf("Your booking #%d is now %s", b.ID, next))
}

// ListForRenter returns the renter's own bookings.
func (s *Service) ListForRenter(ctx context.Context, renterID int64) ([]domain.Booking, error) {
	return s.bookings.ListByRenter(ctx, renterID)
}

// ListForOwner returns bookings against the owner's properties, with
// the in-memory filter applied.
func (s *Service) ListForOwner(ctx context.Context, ownerID int64, f ListFilter) ([]domain.Booking, error) {
	list, err := s.bookings.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return FilterBookings(list, f), nil
}
