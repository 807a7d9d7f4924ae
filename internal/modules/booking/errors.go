package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("booking not found")
	ErrForbidden         = errors.New("not allowed for this booking")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrReceiptRequired   = errors.New("transaction image required")
	ErrReasonRequired    = errors.New("rejection reason required")
	ErrReceiptTooLarge   = errors.New("receipt file exceeds the 5MB limit")
	ErrReceiptType       = errors.New("receipt file type not allowed")
	ErrPropertyNotOpen   = errors.New("property is not available for booking")
)
