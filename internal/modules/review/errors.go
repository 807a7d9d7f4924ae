package review

import "errors"

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrNotEligible     = errors.New("only renters with a completed rental can review")
	ErrAlreadyReviewed = errors.New("property already reviewed by this renter")
	ErrNotFound        = errors.New("property not found")
)
