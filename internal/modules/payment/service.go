package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/linsok/housing-analyzer-sub000/internal/domain"
)

// PropertyReader resolves the property being paid for.
type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// UserReader resolves the paying renter for session bookkeeping.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// MerchantConfig is the service-wide Bakong identity, used when a
// property carries no override.
type MerchantConfig struct {
	BankAccount  string
	MerchantName string
	MerchantCity string
	PhoneNumber  string
}

type Service struct {
	properties PropertyReader
	users      UserReader
	sessions   SessionStore
	checker    StatusChecker
	verifier   *Verifier
	merchant   MerchantConfig

	sessionTTL  time.Duration
	maxAttempts int
}

func NewService(
	properties PropertyReader,
	users UserReader,
	sessions SessionStore,
	checker StatusChecker,
	verifier *Verifier,
	merchant MerchantConfig,
	sessionTTL time.Duration,
	maxAttempts int,
) *Service {
	return &Service{
		properties:  properties,
		users:       users,
		sessions:    sessions,
		checker:     checker,
		verifier:    verifier,
		merchant:    merchant,
		sessionTTL:  sessionTTL,
		maxAttempts: maxAttempts,
	}
}

// GenerateKHQR builds a dynamic KHQR code for the property's merchant,
// stores a verification session under the payload md5, and kicks off
// the background poll loop.
func (s *Service) GenerateKHQR(ctx context.Context, renterID int64, req GenerateKHQRRequest) (*GenerateKHQRResponse, error) {
	prop, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	renter, err := s.users.GetByID(ctx, renterID)
	if err != nil {
		return nil, err
	}

	params := s.merchantParams(prop)
	params.Amount = req.Amount
	params.Currency = req.Currency
	params.BillNumber = fmt.Sprintf("BK%d-%d", prop.ID, time.Now().Unix())

	payload, err := BuildKHQRPayload(params)
	if err != nil {
		return nil, err
	}
	md5Hash := PayloadMD5(payload)

	qrImage, err := RenderQRBase64(payload)
	if err != nil {
		return nil, err
	}

	sess := &domain.PaymentSession{
		MD5Hash:      md5Hash,
		BookingID:    req.BookingID,
		PropertyID:   prop.ID,
		RenterID:     renter.ID,
		RenterName:   renter.FullName,
		Amount:       req.Amount,
		Currency:     req.Currency,
		MerchantName: params.MerchantName,
		BillNumber:   params.BillNumber,
		Status:       domain.PaymentVerifying,
		CreatedAt:    time.Now(),
	}
	if err := s.sessions.Save(ctx, sess, s.sessionTTL); err != nil {
		return nil, err
	}

	if s.verifier != nil {
		s.verifier.Start(md5Hash, s.recordUpdate)
	}

	return &GenerateKHQRResponse{
		QRImage:      qrImage,
		MD5Hash:      md5Hash,
		MerchantName: params.MerchantName,
		BillNumber:   params.BillNumber,
		Amount:       req.Amount,
		Currency:     req.Currency,
	}, nil
}

// recordUpdate persists each poll observation back into the session so
// status checks read the latest state. A vanished session means the
// checkout finished or expired, so the loop for it is stopped.
func (s *Service) recordUpdate(u PollUpdate) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sess, err := s.sessions.Get(ctx, u.MD5Hash)
	if err != nil {
		if s.verifier != nil {
			go s.verifier.Stop(u.MD5Hash)
		}
		return
	}

	sess.Status = u.Status
	sess.Attempts = u.Attempt
	if err := s.sessions.Save(ctx, sess, s.sessionTTL); err != nil {
		log.Printf("payment_session_update_failed md5=%s err=%v", u.MD5Hash, err)
	}
}

// CheckPaymentStatus reports the current verification state for a
// session. When no background loop runs it also performs one direct
// gateway check, so the endpoint works for clients driving the poll
// themselves.
func (s *Service) CheckPaymentStatus(ctx context.Context, renterID int64, md5Hash string) (*CheckStatusResponse, error) {
	sess, err := s.sessions.Get(ctx, md5Hash)
	if err != nil {
		return nil, err
	}
	if sess.RenterID != renterID {
		return nil, ErrSessionNotFound
	}

	if sess.Status == domain.PaymentVerifying && s.verifier == nil {
		status, err := s.checker.CheckTransaction(ctx, md5Hash)
		if err != nil {
			sess.Status = domain.PaymentError
		} else {
			sess.Status = status
			if status != domain.PaymentPaid {
				sess.Status = domain.PaymentVerifying
			}
		}
		sess.Attempts++
		if sess.Status == domain.PaymentVerifying && sess.Attempts >= s.maxAttempts {
			sess.Status = domain.PaymentTimeout
		}
		if err := s.sessions.Save(ctx, sess, s.sessionTTL); err != nil {
			return nil, err
		}
	}

	return &CheckStatusResponse{
		Status:   string(sess.Status),
		Attempts: sess.Attempts,
	}, nil
}

// RetryVerification restarts the bounded poll loop for a session whose
// verification ended in timeout or error. The payload, md5 and QR stay
// the same, so the payer does not have to re-scan anything.
func (s *Service) RetryVerification(ctx context.Context, renterID int64, md5Hash string) (*CheckStatusResponse, error) {
	sess, err := s.sessions.Get(ctx, md5Hash)
	if err != nil {
		return nil, err
	}
	if sess.RenterID != renterID {
		return nil, ErrSessionNotFound
	}

	// Settled or still-running sessions have nothing to restart.
	if sess.Status != domain.PaymentTimeout && sess.Status != domain.PaymentError {
		return &CheckStatusResponse{Status: string(sess.Status), Attempts: sess.Attempts}, nil
	}

	sess.Status = domain.PaymentVerifying
	sess.Attempts = 0
	if err := s.sessions.Save(ctx, sess, s.sessionTTL); err != nil {
		return nil, err
	}

	if s.verifier != nil {
		s.verifier.Start(md5Hash, s.recordUpdate)
	}

	return &CheckStatusResponse{Status: string(sess.Status)}, nil
}

// CancelVerification stops the poll loop and discards the session, for
// checkouts the renter abandons.
func (s *Service) CancelVerification(ctx context.Context, renterID int64, md5Hash string) error {
	sess, err := s.sessions.Get(ctx, md5Hash)
	if err != nil {
		return err
	}
	if sess.RenterID != renterID {
		return ErrSessionNotFound
	}

	if s.verifier != nil {
		s.verifier.Stop(md5Hash)
	}
	return s.sessions.Delete(ctx, md5Hash)
}

// merchantParams resolves the merchant identity for a property, letting
// per-property overrides win over the service-wide config.
func (s *Service) merchantParams(prop *domain.Property) KHQRParams {
	p := KHQRParams{
		BankAccount:  s.merchant.BankAccount,
		MerchantName: s.merchant.MerchantName,
		MerchantCity: s.merchant.MerchantCity,
		Mobile:       s.merchant.PhoneNumber,
	}
	if prop.BakongAccount != "" {
		p.BankAccount = prop.BakongAccount
	}
	if prop.BakongMerchantName != "" {
		p.MerchantName = prop.BakongMerchantName
	}
	if prop.BakongPhone != "" {
		p.Mobile = prop.BakongPhone
	}
	return p
}
