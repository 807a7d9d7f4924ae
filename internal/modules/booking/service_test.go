package booking

import (
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

type fakeBookingRepo struct {
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, bookings: map[int64]*domain.Booking{}}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	b.ID = r.nextID
	r.nextID++
	b.CreatedAt = time.Now()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) UpdateFields(_ context.Context, id int64, fields map[string]any) error {
	b, ok := r.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["status"].(string); ok {
		b.Status = domain.BookingStatus(v)
	}
	if v, ok := fields["owner_notes"].(string); ok {
		b.OwnerNotes = v
	}
	if v, ok := fields["confirmed_at"].(time.Time); ok {
		b.ConfirmedAt = &v
	}
	if v, ok := fields["completed_at"].(time.Time); ok {
		b.CompletedAt = &v
	}
	if v, ok := fields["cancelled_at"].(time.Time); ok {
		b.CancelledAt = &v
	}
	return nil
}

func (r *fakeBookingRepo) ListByRenter(_ context.Context, renterID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.RenterID == renterID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByOwner(_ context.Context, _ int64) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

type fakePropertyReader struct {
	props map[int64]*domain.Property
}

func (r *fakePropertyReader) GetByID(_ context.Context, id int64) (*domain.Property, error) {
	p, ok := r.props[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type fakeSessionReader struct {
	sessions map[string]*domain.PaymentSession
	deleted  []string
}

func (r *fakeSessionReader) Get(_ context.Context, md5Hash string) (*domain.PaymentSession, error) {
	s, ok := r.sessions[md5Hash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSessionReader) Delete(_ context.Context, md5Hash string) error {
	r.deleted = append(r.deleted, md5Hash)
	return nil
}

type fakeUploader struct {
	uploads int
}

func (u *fakeUploader) Upload(fh *multipart.FileHeader, folder string) (string, error) {
	u.uploads++
	return "/media/" + folder + "/" + fh.Filename, nil
}

type sentNote struct {
	userID int64
	t      domain.NotificationType
}

type fakeNotifier struct {
	sent []sentNote
}

func (n *fakeNotifier) Notify(_ context.Context, userID int64, t domain.NotificationType, _ int64, _, _ string) error {
	n.sent = append(n.sent, sentNote{userID: userID, t: t})
	return nil
}

type fixture struct {
	svc      *Service
	repo     *fakeBookingRepo
	sessions *fakeSessionReader
	uploader *fakeUploader
	notifier *fakeNotifier
}

const (
	testOwnerID  = int64(10)
	testRenterID = int64(20)
	testPropID   = int64(1)
)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newFakeBookingRepo()
	props := &fakePropertyReader{props: map[int64]*domain.Property{
		testPropID: {ID: testPropID, OwnerID: testOwnerID, Title: "BKK1 Residence", Status: domain.PropertyAvailable},
		2:          {ID: 2, OwnerID: testOwnerID, Title: "Closed Villa", Status: domain.PropertyRented},
	}}
	sessions := &fakeSessionReader{sessions: map[string]*domain.PaymentSession{}}
	uploader := &fakeUploader{}
	notifier := &fakeNotifier{}
	return &fixture{
		svc:      NewService(repo, props, sessions, uploader, notifier),
		repo:     repo,
		sessions: sessions,
		uploader: uploader,
		notifier: notifier,
	}
}

func receiptFile(name, contentType string, size int64) *multipart.FileHeader {
	fh := &multipart.FileHeader{Filename: name, Size: size, Header: textproto.MIMEHeader{}}
	if contentType != "" {
		fh.Header.Set("Content-Type", contentType)
	}
	return fh
}

func TestCreateRentalBooking(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.CreateBooking(context.Background(), testRenterID, CreateBookingRequest{
		PropertyID:  testPropID,
		BookingType: "rental",
		StartDate:   "2026-09-01",
		EndDate:     "2027-08-31",
		MonthlyRent: 450,
		TotalAmount: 900,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.NotNil(t, b.StartDate)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, testOwnerID, f.notifier.sent[0].userID)
	assert.Equal(t, domain.NotifyBookingCreated, f.notifier.sent[0].t)
}

func TestCreateVisitBookingRequiresTime(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateBooking(context.Background(), testRenterID, CreateBookingRequest{
		PropertyID:  testPropID,
		BookingType: "visit",
	})
	assert.ErrorIs(t, err, ErrValidation)

	b, err := f.svc.CreateBooking(context.Background(), testRenterID, CreateBookingRequest{
		PropertyID:  testPropID,
		BookingType: "visit",
		VisitTime:   "2026-09-05T14:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingVisit, b.BookingType)
	assert.NotNil(t, b.VisitTime)
}

func TestCreateBookingOnUnavailableProperty(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateBooking(context.Background(), testRenterID, CreateBookingRequest{
		PropertyID:  2,
		BookingType: "rental",
		StartDate:   "2026-09-01",
	})
	assert.ErrorIs(t, err, ErrPropertyNotOpen)
}

func TestPaymentWithTransactionPaidSession(t *testing.T) {
	f := newFixture(t)
	f.sessions.sessions["abc123"] = &domain.PaymentSession{
		MD5Hash: "abc123",
		Status:  domain.PaymentPaid,
	}

	b, err := f.svc.PaymentWithTransaction(context.Background(), testRenterID, PaymentWithTransactionRequest{
		PropertyID: testPropID,
		StartDate:  "2026-09-01",
		MD5Hash:    "abc123",
		Receipt:    receiptFile("receipt.png", "image/png", 120_000),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.NotNil(t, b.ConfirmedAt)
	assert.True(t, b.HasReceipt())
	assert.Equal(t, []string{"abc123"}, f.sessions.deleted)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, domain.NotifyReceiptSubmitted, f.notifier.sent[0].t)
}

func TestPaymentWithTransactionUnverifiedGoesToReview(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.PaymentWithTransaction(context.Background(), testRenterID, PaymentWithTransactionRequest{
		PropertyID: testPropID,
		StartDate:  "2026-09-01",
		MD5Hash:    "never-seen",
		Receipt:    receiptFile("receipt.jpg", "image/jpeg", 120_000),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingPendingReview, b.Status)
	assert.Nil(t, b.ConfirmedAt)
	assert.Empty(t, f.sessions.deleted)
}

func TestPaymentWithTransactionRejectsBadReceiptBeforeUpload(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.PaymentWithTransaction(context.Background(), testRenterID, PaymentWithTransactionRequest{
		PropertyID: testPropID,
		StartDate:  "2026-09-01",
		Receipt:    receiptFile("receipt.png", "image/png", 6<<20),
	})
	assert.ErrorIs(t, err, ErrReceiptTooLarge)

	_, err = f.svc.PaymentWithTransaction(context.Background(), testRenterID, PaymentWithTransactionRequest{
		PropertyID: testPropID,
		StartDate:  "2026-09-01",
		Receipt:    receiptFile("notes.txt", "text/plain", 1_000),
	})
	assert.ErrorIs(t, err, ErrReceiptType)

	assert.Zero(t, f.uploader.uploads)
	assert.Empty(t, f.repo.bookings)
}

func seedBooking(f *fixture, b domain.Booking) int64 {
	_ = f.repo.Create(context.Background(), &b)
	return b.ID
}

func TestOwnerConfirmPending(t *testing.T) {
	f := newFixture(t)
	id := seedBooking(f, domain.Booking{
		PropertyID: testPropID, RenterID: testRenterID,
		BookingType: domain.BookingRental, Status: domain.BookingPending,
	})

	b, err := f.svc.Confirm(context.Background(), id, testOwnerID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)

	stored, _ := f.repo.GetByID(context.Background(), id)
	assert.Equal(t, domain.BookingConfirmed, stored.Status)
	assert.NotNil(t, stored.ConfirmedAt)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, testRenterID, f.notifier.sent[0].userID)
	assert.Equal(t, domain.NotifyBookingConfirmed, f.notifier.sent[0].t)
}

func TestConfirmIsNotRepeatable(t *testing.T) {
	f := newFixture(t)
	id := seedBooking(f, domain.Booking{
		PropertyID: testPropID, RenterID: testRenterID,
		BookingType: domain.BookingRental, Status: domain.BookingConfirmed,
	})

	_, err := f.svc.Confirm(context.Background(), id, testOwnerID)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTerminalStatusesAcceptNoAction(t *testing.T) {
	f := newFixture(t)
	for _, status := range []domain.BookingStatus{
		domain.BookingCompleted, domain.BookingCancelled, domain.BookingRejected,
	} {
		id := seedBooking(f, domain.Booking{
			PropertyID: testPropID, RenterID: testRenterID,
			BookingType: domain.BookingRental, Status: status,
		})

		_, err := f.svc.Confirm(context.Background(), id, testOwnerID)
		assert.ErrorIs(t, err, ErrIllegalTransition, "confirm from %s", status)
		_, err = f.svc.Cancel(context.Background(), id, testRenterID)
		assert.ErrorIs(t, err, ErrIllegalTransition, "cancel from %s", status)
	}
}

func TestConfirmReviewRequiresReceipt(t *testing.T) {
	f := newFixture(t)
	id := seedBooking(f, domain.Booking{
		PropertyID: testPropID, RenterID: testRenterID,
		BookingType: domain.BookingRental, Status: domain.BookingPendingReview,
	})

	_, err := f.svc.ConfirmReview(context.Background(), id, testOwnerID)
	assert.ErrorIs(t, err, ErrReceiptRequired)

	withReceipt := seedBooking(f, domain.Booking{
		PropertyID: testPropID, RenterID: testRenterID,
		BookingType: domain.BookingRental, Status: domain.BookingPendingReview,
		TransactionImage: "/media/receipts/r.png",
	})

	b, err := f.svc.ConfirmReview(context.Background(), withReceipt, testOwnerID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingReviewConfirmed, b.Status)
}

func TestRejectVisitRequiresReason(t *testing.T) {
	f := newFixture(t)
	id := seedBooking(f, domain.Booking{
		PropertyID: testPropID, RenterID: testRenterID,
		BookingType: domain.BookingVisit, Status: domain.BookingPending,
	})

	_, err := f.svc.Reject(context.Background(), id, testOwnerID, "")
	assert.ErrorIs(t, err, ErrReasonRequired)

	b, err := f.svc.Reject(context.Background(), id, testOwnerID, "owner unavailable that day")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingRejected, b.Status)
	assert.Equal(t, "owner unavailable that day", b.OwnerNotes)

	stored, _ := f.repo.GetByID(context.Background(), id)
	assert.Equal(t, "owner unavailable that day", stored.OwnerNotes)
	assert.NotNil(t, stored.CancelledAt)
}

func TestCancelOnlyByBookingRenter(t *testing.T) {
	f := newFixture(t)
	id := seedBooking(f, domain.Booking{
		PropertyID: testPropID, RenterID: testRenterID,
		BookingType: domain.BookingRental, Status: domain.BookingPending,
	})

	_, err := f.svc.Cancel(context.Background(), id, int64(999))
	assert.ErrorIs(t, err, ErrForbidden)

	b, err := f.svc.Cancel(context.Background(), id, testRenterID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestOwnerActionsRequireOwnership(t *testing.T) {
	f := newFixture(t)
	id := seedBooking(f, domain.Booking{
		PropertyID: testPropID, RenterID: testRenterID,
		BookingType: domain.BookingRental, Status: domain.BookingPending,
	})

	_, err := f.svc.Confirm(context.Background(), id, int64(999))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCompleteOnlyFromConfirmed(t *testing.T) {
	f := newFixture(t)
	pending := seedBooking(f, domain.Booking{
		PropertyID: testPropID, RenterID: testRenterID,
		BookingType: domain.BookingRental, Status: domain.BookingPending,
	})
	confirmed := seedBooking(f, domain.Booking{
		PropertyID: testPropID, RenterID: testRenterID,
		BookingType: domain.BookingRental, Status: domain.BookingConfirmed,
	})

	_, err := f.svc.Complete(context.Background(), pending, testOwnerID)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	b, err := f.svc.Complete(context.Background(), confirmed, testOwnerID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)

	stored, _ := f.repo.GetByID(context.Background(), confirmed)
	assert.NotNil(t, stored.CompletedAt)
}

func TestBookingNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Confirm(context.Background(), 404, testOwnerID)
	assert.ErrorIs(t, err, ErrNotFound)
}
