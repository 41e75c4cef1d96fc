package credits

import "errors"

var (
	// ErrInsufficientCredits indicates a deduction would drive the balance negative.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrInvalidAmount indicates a non-positive deduction or grant amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidLength indicates a negative content length passed to the estimator.
	ErrInvalidLength = errors.New("content length must not be negative")
	// ErrUnknownTier indicates a tier the estimator has no base cost for.
	ErrUnknownTier = errors.New("unknown analysis tier")
)
