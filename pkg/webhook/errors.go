package webhook

import "errors"

var (
	ErrInvalidURL       = errors.New("webhook: invalid url")
	ErrInvalidPayload   = errors.New("webhook: invalid payload")
	ErrMissingSecret    = errors.New("webhook: signing secret is required")
	ErrInvalidSignature = errors.New("webhook: invalid signature")
	ErrSignatureExpired = errors.New("webhook: signature timestamp outside allowed window")
	ErrCircuitOpen      = errors.New("webhook: circuit breaker is open")
	ErrPermanentFailure = errors.New("webhook: permanent delivery failure")
	ErrTemporaryFailure = errors.New("webhook: temporary delivery failure")
)
