package service

import (
	"errors"

	"github.com/hrmail/hrmail/internal/credential"
	"github.com/hrmail/hrmail/internal/email"
	"github.com/hrmail/hrmail/internal/template"
)

// Send errors
var (
	ErrValidation   = errors.New("invalid input")
	ErrNotConfirmed = errors.New("send was not confirmed")
)

// Kind classifies a send failure.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindDeclined
	KindUnknownTemplate
	KindCorruptTemplateStore
	KindAuth
	KindTransport
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindDeclined:
		return "declined"
	case KindUnknownTemplate:
		return "unknown_template"
	case KindCorruptTemplateStore:
		return "corrupt_template_store"
	case KindAuth:
		return "auth"
	case KindTransport:
		return "transport"
	default:
		return "internal"
	}
}

// KindOf returns the Kind of err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotConfirmed):
		return KindDeclined
	case errors.Is(err, template.ErrUnknownTemplate):
		return KindUnknownTemplate
	case errors.Is(err, template.ErrCorruptTemplateStore):
		return KindCorruptTemplateStore
	}
	if _, ok := credential.IsAuthError(err); ok {
		return KindAuth
	}
	if _, ok := email.IsTransportError(err); ok {
		return KindTransport
	}
	return KindInternal
}
