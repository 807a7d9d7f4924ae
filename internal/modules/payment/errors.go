package payment

import "errors"

var (
	ErrInvalidAmount         = errors.New("payment amount must be positive")
	ErrInvalidCurrency       = errors.New("currency must be KHR or USD")
	ErrMerchantNotConfigured = errors.New("merchant bank account is not configured")
	ErrPropertyNotFound      = errors.New("property not found")
	ErrSessionNotFound       = errors.New("payment session not found or expired")
	ErrGateway               = errors.New("payment gateway unavailable")
)
