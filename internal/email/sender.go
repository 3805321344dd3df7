package email

import (
	"context"

	"github.com/hrmail/hrmail/internal/credential"
)

// Transport is the interface mail delivery providers implement.
// This abstraction allows swapping the Gmail API for another provider
// (or a fake in tests) without changing the send flow.
type Transport interface {
	// Send delivers a serialized message and returns the provider's message ID.
	Send(ctx context.Context, payload []byte, cred *credential.Credential) (string, error)
}
