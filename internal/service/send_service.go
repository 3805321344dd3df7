package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hrmail/hrmail/internal/config"
	"github.com/hrmail/hrmail/internal/credential"
	"github.com/hrmail/hrmail/internal/email"
	"github.com/hrmail/hrmail/internal/logger"
	"github.com/hrmail/hrmail/internal/template"
)

const defaultSendTimeout = 30 * time.Second

// CredentialProvider hands out a usable credential, authorizing if needed.
type CredentialProvider interface {
	EnsureValid(ctx context.Context) (*credential.Credential, error)
}

// TemplateSource returns the stored body of a template.
type TemplateSource interface {
	Get(key string) (string, error)
}

// Confirmer asks the user to confirm the destination address of a send.
type Confirmer interface {
	ConfirmRecipient(ctx context.Context, address string) (bool, error)
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(ctx context.Context, address string) (bool, error)

// ConfirmRecipient calls f.
func (f ConfirmerFunc) ConfirmRecipient(ctx context.Context, address string) (bool, error) {
	return f(ctx, address)
}

// SendRequest is one templated e-mail to send.
type SendRequest struct {
	TemplateKey    string
	RecipientName  string
	RecipientEmail string
	Cc             string
	Bcc            string
	// Confirmed skips the interactive confirmation, for callers that already
	// confirmed the destination.
	Confirmed bool
}

// Status is the outcome of a send.
type Status string

const (
	StatusSent     Status = "sent"
	StatusDeclined Status = "declined"
	StatusFailed   Status = "failed"
)

// SendResult is the single outcome of SendTemplatedEmail.
type SendResult struct {
	Status    Status
	MessageID string
	Err       error
}

// Succeeded reports whether the message was accepted by the transport.
func (r SendResult) Succeeded() bool {
	return r.Status == StatusSent
}

// Kind classifies the failure, KindNone on success.
func (r SendResult) Kind() Kind {
	return KindOf(r.Err)
}

// SendService validates, authorizes, renders, composes and sends one
// templated e-mail at a time.
type SendService struct {
	mu          sync.Mutex
	credentials CredentialProvider
	templates   TemplateSource
	transport   email.Transport
	confirmer   Confirmer
	sanitizer   *bluemonday.Policy
	from        string
	sendTimeout time.Duration
	log         *logger.Logger
}

// NewSendService creates a new SendService. A nil confirmer declines every
// request that is not already confirmed.
func NewSendService(
	credentials CredentialProvider,
	templates TemplateSource,
	transport email.Transport,
	confirmer Confirmer,
	cfg *config.Config,
	log *logger.Logger,
) *SendService {
	timeout := cfg.Gmail.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	return &SendService{
		credentials: credentials,
		templates:   templates,
		transport:   transport,
		confirmer:   confirmer,
		sanitizer:   bluemonday.StrictPolicy(),
		from:        email.FormatAddress(cfg.Sender.Name, cfg.Sender.Address),
		sendTimeout: timeout,
		log:         log.WithComponent("send"),
	}
}

// SendTemplatedEmail sends the template selected by req.TemplateKey to one
// recipient. The transport is called at most once; every failure is returned
// in the result rather than retried.
func (s *SendService) SendTemplatedEmail(ctx context.Context, req SendRequest) SendResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.send(ctx, req)
	s.log.SendAudit(req.TemplateKey, strings.TrimSpace(req.RecipientEmail), string(res.Status), res.MessageID, res.Err)
	return res
}

func (s *SendService) send(ctx context.Context, req SendRequest) SendResult {
	if err := ValidateRequest(req); err != nil {
		return failed(err)
	}
	// The name is spliced into HTML, so it must still be non-empty once markup is stripped.
	name := strings.TrimSpace(s.sanitizer.Sanitize(strings.TrimSpace(req.RecipientName)))
	if name == "" {
		return failed(&ValidationError{Field: "recipient name", Message: "is required"})
	}
	to := strings.TrimSpace(req.RecipientEmail)

	if !req.Confirmed {
		confirmed, err := s.confirm(ctx, to)
		if err != nil {
			return failed(err)
		}
		if !confirmed {
			return SendResult{Status: StatusDeclined, Err: ErrNotConfirmed}
		}
	}

	cred, err := s.credentials.EnsureValid(ctx)
	if err != nil {
		return failed(err)
	}

	body, err := s.templates.Get(req.TemplateKey)
	if err != nil {
		return failed(err)
	}
	subject, ok := template.Title(req.TemplateKey)
	if !ok {
		return failed(fmt.Errorf("%w: %q", template.ErrUnknownTemplate, req.TemplateKey))
	}

	rendered := template.Render(body, name)

	msg := email.Compose(to, subject, rendered, req.Cc, req.Bcc)
	msg.From = s.from

	payload, err := email.Serialize(msg)
	if err != nil {
		return failed(err)
	}

	id, err := s.deliver(ctx, payload, cred)
	if err != nil {
		return failed(err)
	}
	return SendResult{Status: StatusSent, MessageID: id}
}

func (s *SendService) confirm(ctx context.Context, address string) (bool, error) {
	if s.confirmer == nil {
		return false, nil
	}
	return s.confirmer.ConfirmRecipient(ctx, address)
}

// deliver calls the transport once under the send timeout. Anything the
// transport returns or panics with becomes a TransportError.
func (s *SendService) deliver(ctx context.Context, payload []byte, cred *credential.Credential) (id string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("transport panicked")
			id, err = "", &email.TransportError{
				Message: "unexpected error while sending",
				Err:     fmt.Errorf("panic: %v", r),
			}
		}
	}()

	id, err = s.transport.Send(ctx, payload, cred)
	if err != nil {
		if _, ok := email.IsTransportError(err); !ok {
			err = &email.TransportError{Message: err.Error(), Err: err}
		}
		return "", err
	}
	return id, nil
}

func failed(err error) SendResult {
	return SendResult{Status: StatusFailed, Err: err}
}
