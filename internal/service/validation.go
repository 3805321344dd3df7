package service

import (
	"fmt"
	"strings"

	"github.com/hrmail/hrmail/internal/email"
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap makes every ValidationError match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ValidateRequest checks the user-supplied fields of a send request.
// The recipient name and address are required; Cc and Bcc are optional but
// must parse as address lists when present.
func ValidateRequest(req SendRequest) error {
	if strings.TrimSpace(req.RecipientName) == "" {
		return &ValidationError{Field: "recipient name", Message: "is required"}
	}

	to := strings.TrimSpace(req.RecipientEmail)
	if to == "" {
		return &ValidationError{Field: "recipient e-mail", Message: "is required"}
	}
	addrs, err := email.ParseAddressList(to)
	if err != nil || len(addrs) != 1 {
		return &ValidationError{Field: "recipient e-mail", Message: "must be a single e-mail address"}
	}

	if _, err := email.ParseAddressList(req.Cc); err != nil {
		return &ValidationError{Field: "cc", Message: "must be a comma separated list of e-mail addresses"}
	}
	if _, err := email.ParseAddressList(req.Bcc); err != nil {
		return &ValidationError{Field: "bcc", Message: "must be a comma separated list of e-mail addresses"}
	}

	return nil
}
