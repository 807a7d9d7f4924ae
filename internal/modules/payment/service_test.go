package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

type stubPropertyReader struct {
	props map[int64]*domain.Property
}

func (r *stubPropertyReader) GetByID(_ context.Context, id int64) (*domain.Property, error) {
	p, ok := r.props[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type stubUserReader struct {
	users map[int64]*domain.User
}

func (r *stubUserReader) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type fixedChecker struct {
	status domain.PaymentStatus
	err    error
	calls  int
}

func (c *fixedChecker) CheckTransaction(_ context.Context, _ string) (domain.PaymentStatus, error) {
	c.calls++
	return c.status, c.err
}

func newTestService(checker StatusChecker) (*Service, *MemorySessionStore) {
	store := NewMemorySessionStore()
	props := &stubPropertyReader{props: map[int64]*domain.Property{
		1: {ID: 1, OwnerID: 10, Title: "BKK1 Residence", Status: domain.PropertyAvailable},
		2: {
			ID: 2, OwnerID: 10, Title: "Riverside Loft", Status: domain.PropertyAvailable,
			BakongAccount:      "riverside@bank",
			BakongMerchantName: "Riverside Rentals",
		},
	}}
	users := &stubUserReader{users: map[int64]*domain.User{
		20: {ID: 20, FullName: "Sok Dara", Email: "dara@example.com"},
	}}
	merchant := MerchantConfig{
		BankAccount:  "platform@bank",
		MerchantName: "Housing Analyzer",
		MerchantCity: "Phnom Penh",
	}
	svc := NewService(props, users, store, checker, nil, merchant, 15*time.Minute, 3)
	return svc, store
}

func TestGenerateKHQRCreatesSession(t *testing.T) {
	svc, store := newTestService(&fixedChecker{status: domain.PaymentVerifying})

	out, err := svc.GenerateKHQR(context.Background(), 20, GenerateKHQRRequest{
		PropertyID: 1, Amount: 2000, Currency: "KHR",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.QRImage, "data:image/png;base64,"))
	assert.Len(t, out.MD5Hash, 32)
	assert.Equal(t, "Housing Analyzer", out.MerchantName)
	assert.True(t, strings.HasPrefix(out.BillNumber, "BK1-"))

	sess, err := store.Get(context.Background(), out.MD5Hash)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentVerifying, sess.Status)
	assert.Equal(t, int64(20), sess.RenterID)
	assert.Equal(t, "Sok Dara", sess.RenterName)
	assert.Equal(t, float64(2000), sess.Amount)
}

func TestGenerateKHQRCarriesBookingID(t *testing.T) {
	svc, store := newTestService(&fixedChecker{status: domain.PaymentVerifying})

	out, err := svc.GenerateKHQR(context.Background(), 20, GenerateKHQRRequest{
		PropertyID: 1, BookingID: 7, Amount: 2000, Currency: "KHR",
	})
	require.NoError(t, err)

	sess, err := store.Get(context.Background(), out.MD5Hash)
	require.NoError(t, err)
	assert.Equal(t, int64(7), sess.BookingID)
}

func TestGenerateKHQRUsesPropertyMerchantOverride(t *testing.T) {
	svc, _ := newTestService(&fixedChecker{status: domain.PaymentVerifying})

	out, err := svc.GenerateKHQR(context.Background(), 20, GenerateKHQRRequest{
		PropertyID: 2, Amount: 350, Currency: "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "Riverside Rentals", out.MerchantName)
}

func TestGenerateKHQRUnknownProperty(t *testing.T) {
	svc, _ := newTestService(&fixedChecker{status: domain.PaymentVerifying})

	_, err := svc.GenerateKHQR(context.Background(), 20, GenerateKHQRRequest{
		PropertyID: 404, Amount: 2000, Currency: "KHR",
	})
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestCheckPaymentStatusDirectPoll(t *testing.T) {
	checker := &fixedChecker{status: domain.PaymentVerifying}
	svc, _ := newTestService(checker)

	out, err := svc.GenerateKHQR(context.Background(), 20, GenerateKHQRRequest{
		PropertyID: 1, Amount: 2000, Currency: "KHR",
	})
	require.NoError(t, err)

	st, err := svc.CheckPaymentStatus(context.Background(), 20, out.MD5Hash)
	require.NoError(t, err)
	assert.Equal(t, "verifying", st.Status)
	assert.Equal(t, 1, st.Attempts)

	checker.status = domain.PaymentPaid
	st, err = svc.CheckPaymentStatus(context.Background(), 20, out.MD5Hash)
	require.NoError(t, err)
	assert.Equal(t, "PAID", st.Status)

	// A settled session stays settled without further gateway calls.
	calls := checker.calls
	st, err = svc.CheckPaymentStatus(context.Background(), 20, out.MD5Hash)
	require.NoError(t, err)
	assert.Equal(t, "PAID", st.Status)
	assert.Equal(t, calls, checker.calls)
}

func TestCheckPaymentStatusTimesOut(t *testing.T) {
	svc, _ := newTestService(&fixedChecker{status: domain.PaymentVerifying})

	out, err := svc.GenerateKHQR(context.Background(), 20, GenerateKHQRRequest{
		PropertyID: 1, Amount: 2000, Currency: "KHR",
	})
	require.NoError(t, err)

	var st *CheckStatusResponse
	for i := 0; i < 3; i++ {
		st, err = svc.CheckPaymentStatus(context.Background(), 20, out.MD5Hash)
		require.NoError(t, err)
	}
	assert.Equal(t, "timeout", st.Status)
	assert.Equal(t, 3, st.Attempts)
}

func TestCheckPaymentStatusWrongRenter(t *testing.T) {
	svc, _ := newTestService(&fixedChecker{status: domain.PaymentVerifying})

	out, err := svc.GenerateKHQR(context.Background(), 20, GenerateKHQRRequest{
		PropertyID: 1, Amount: 2000, Currency: "KHR",
	})
	require.NoError(t, err)

	_, err = svc.CheckPaymentStatus(context.Background(), 999, out.MD5Hash)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRetryVerificationAfterClientPollTimeout(t *testing.T) {
	checker := &fixedChecker{status: domain.PaymentVerifying}
	svc, _ := newTestService(checker)

	out, err := svc.GenerateKHQR(context.Background(), 20, GenerateKHQRRequest{
		PropertyID: 1, Amount: 2000, Currency: "KHR",
	})
	require.NoError(t, err)

	var st *CheckStatusResponse
	for i := 0; i < 3; i++ {
		st, err = svc.CheckPaymentStatus(context.Background(), 20, out.MD5Hash)
		require.NoError(t, err)
	}
	require.Equal(t, "timeout", st.Status)

	// The payer settles late; a timed-out session ignores status checks.
	checker.status = domain.PaymentPaid
	st, err = svc.CheckPaymentStatus(context.Background(), 20, out.MD5Hash)
	require.NoError(t, err)
	assert.Equal(t, "timeout", st.Status)

	// Retry resets the attempt budget without touching the QR, so the
	// next check sees the payment.
	st, err = svc.RetryVerification(context.Background(), 20, out.MD5Hash)
	require.NoError(t, err)
	assert.Equal(t, "verifying", st.Status)
	assert.Equal(t, 0, st.Attempts)

	st, err = svc.CheckPaymentStatus(context.Background(), 20, out.MD5Hash)
	require.NoError(t, err)
	assert.Equal(t, "PAID", st.Status)
}

func TestRetryVerificationRestartsBackgroundLoop(t *testing.T) {
	checker := &scriptedChecker{statuses: []domain.PaymentStatus{
		domain.PaymentVerifying, domain.PaymentVerifying, domain.PaymentVerifying, domain.PaymentPaid,
	}}
	store := NewMemorySessionStore()
	props := &stubPropertyReader{props: map[int64]*domain.Property{
		1: {ID: 1, OwnerID: 10, Title: "BKK1 Residence", Status: domain.PropertyAvailable},
	}}
	users := &stubUserReader{users: map[int64]*domain.User{
		20: {ID: 20, FullName: "Sok Dara"},
	}}
	verifier := NewVerifier(checker, 2*time.Millisecond, 3)
	svc := NewService(props, users, store, checker, verifier, MerchantConfig{
		BankAccount:  "platform@bank",
		MerchantName: "Housing Analyzer",
		MerchantCity: "Phnom Penh",
	}, 15*time.Minute, 3)

	out, err := svc.GenerateKHQR(context.Background(), 20, GenerateKHQRRequest{
		PropertyID: 1, Amount: 2000, Currency: "KHR",
	})
	require.NoError(t, err)

	waitFor(t, func() bool {
		sess, err := store.Get(context.Background(), out.MD5Hash)
		return err == nil && sess.Status == domain.PaymentTimeout
	})

	// The gateway has settled by now, but an exhausted loop stays dead
	// and status checks only echo the stored state.
	st, err := svc.CheckPaymentStatus(context.Background(), 20, out.MD5Hash)
	require.NoError(t, err)
	assert.Equal(t, "timeout", st.Status)

	st, err = svc.RetryVerification(context.Background(), 20, out.MD5Hash)
	require.NoError(t, err)
	assert.Equal(t, "verifying", st.Status)

	waitFor(t, func() bool {
		sess, err := store.Get(context.Background(), out.MD5Hash)
		return err == nil && sess.Status == domain.PaymentPaid
	})
}

func TestRetryVerificationLeavesSettledSession(t *testing.T) {
	checker := &fixedChecker{status: domain.PaymentPaid}
	svc, _ := newTestService(checker)

	out, err := svc.GenerateKHQR(context.Background(), 20, GenerateKHQRRequest{
		PropertyID: 1, Amount: 2000, Currency: "KHR",
	})
	require.NoError(t, err)

	st, err := svc.CheckPaymentStatus(context.Background(), 20, out.MD5Hash)
	require.NoError(t, err)
	require.Equal(t, "PAID", st.Status)

	calls := checker.calls
	st, err = svc.RetryVerification(context.Background(), 20, out.MD5Hash)
	require.NoError(t, err)
	assert.Equal(t, "PAID", st.Status)
	assert.Equal(t, 1, st.Attempts)
	assert.Equal(t, calls, checker.calls)
}

func TestRetryVerificationWrongRenter(t *testing.T) {
	svc, _ := newTestService(&fixedChecker{status: domain.PaymentVerifying})

	out, err := svc.GenerateKHQR(context.Background(), 20, GenerateKHQRRequest{
		PropertyID: 1, Amount: 2000, Currency: "KHR",
	})
	require.NoError(t, err)

	_, err = svc.RetryVerification(context.Background(), 999, out.MD5Hash)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCancelVerificationDiscardsSession(t *testing.T) {
	svc, store := newTestService(&fixedChecker{status: domain.PaymentVerifying})

	out, err := svc.GenerateKHQR(context.Background(), 20, GenerateKHQRRequest{
		PropertyID: 1, Amount: 2000, Currency: "KHR",
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelVerification(context.Background(), 20, out.MD5Hash))

	_, err = store.Get(context.Background(), out.MD5Hash)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	sess := &domain.PaymentSession{MD5Hash: "abc", Status: domain.PaymentVerifying}

	require.NoError(t, store.Save(context.Background(), sess, 10*time.Millisecond))
	got, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentVerifying, got.Status)

	time.Sleep(20 * time.Millisecond)
	_, err = store.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
