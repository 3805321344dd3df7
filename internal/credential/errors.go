package credential

import (
	"errors"
	"fmt"
)

// Reason distinguishes why a credential could not be obtained.
type Reason string

const (
	ReasonMissingClientConfig Reason = "missing_client_config"
	ReasonUserCancelled       Reason = "user_cancelled"
	ReasonNetworkFailure      Reason = "network_failure"
	ReasonRefreshRevoked      Reason = "refresh_revoked"
)

// Sentinel errors, one per Reason, for errors.Is checks.
var (
	ErrMissingClientConfig = errors.New("client configuration missing")
	ErrUserCancelled       = errors.New("authorization cancelled")
	ErrNetworkFailure      = errors.New("authorization server unreachable")
	ErrRefreshRevoked      = errors.New("refresh token revoked or expired")

	// ErrCorruptCredential is returned by FileStore.Load when the file cannot be decoded.
	ErrCorruptCredential = errors.New("credential file is corrupt")
)

// AuthError is returned when a valid credential could not be obtained.
type AuthError struct {
	Reason  Reason
	Message string
	Err     error
}

// NewAuthError creates an AuthError for reason with a user-facing message.
func NewAuthError(reason Reason, message string, err error) *AuthError {
	return &AuthError{Reason: reason, Message: message, Err: err}
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("auth: %s: %s", e.Reason, e.Message)
}

// Unwrap exposes both the reason sentinel and the underlying cause.
func (e *AuthError) Unwrap() []error {
	errs := []error{e.Reason.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (r Reason) sentinel() error {
	switch r {
	case ReasonMissingClientConfig:
		return ErrMissingClientConfig
	case ReasonUserCancelled:
		return ErrUserCancelled
	case ReasonRefreshRevoked:
		return ErrRefreshRevoked
	default:
		return ErrNetworkFailure
	}
}

// IsAuthError checks whether err is an AuthError and returns it.
func IsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}
