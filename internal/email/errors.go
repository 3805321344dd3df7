package email

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have a recipient")

	// ErrSendFailed indicates the provider did not accept the message.
	ErrSendFailed = errors.New("failed to send email")
)

// TransportError wraps whatever the mail provider reported.
type TransportError struct {
	StatusCode int    // HTTP status, 0 when the request never got a response
	Message    string // provider message, verbatim
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport: API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("transport: %s", e.Message)
}

// Unwrap exposes ErrSendFailed and the underlying cause.
func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSendFailed}
	}
	return []error{ErrSendFailed, e.Err}
}

// newTransportError converts a Gmail client error into a TransportError.
func newTransportError(err error) *TransportError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Body
		}
		return &TransportError{StatusCode: apiErr.Code, Message: msg, Err: err}
	}
	return &TransportError{Message: err.Error(), Err: err}
}

// IsTransportError checks whether err is a TransportError and returns it.
func IsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}
