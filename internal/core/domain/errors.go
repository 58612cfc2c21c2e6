package domain

import "errors"

var ErrUnauthenticated = errors.New("missing or invalid token")
var ErrForbidden = errors.New("admin role required")
var ErrVerificationFailed = errors.New("token verification failed")
var ErrMissingEmail = errors.New("email is required")
var ErrMissingPassword = errors.New("password is required")
var ErrMissingUserID = errors.New("id is required")

// ProviderError carries the provider's own error message verbatim. The relay
// never reinterprets provider failures; they surface to the caller as-is.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// NewProviderError wraps a provider-reported failure message.
func NewProviderError(msg string) *ProviderError {
	return &ProviderError{Message: msg}
}
