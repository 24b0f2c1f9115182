package utils

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrUnauthorized        = errors.New("caller does not own this resource")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidState        = errors.New("invalid status transition")
	ErrInvalidInput        = errors.New("invalid input payload")
	ErrSignatureInvalid    = errors.New("webhook signature mismatch")
	ErrUpstreamFailure     = errors.New("upstream workflow call failed")
	ErrPlanTierRequired    = errors.New("plan tier does not include this flow")
	ErrConcurrencyLimit    = errors.New("concurrent generation limit reached")
	ErrDuplicateEvent      = errors.New("webhook event already processed")
	ErrDatabaseError       = errors.New("database error")
)
