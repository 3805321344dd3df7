package email

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/hrmail/hrmail/internal/credential"
)

// GmailConfig holds the configuration for the Gmail transport.
type GmailConfig struct {
	// Endpoint overrides the API base URL; empty uses Google's.
	Endpoint string
	// UserID is the mailbox to send from; "me" is the authorized user.
	UserID string
	// HTTPClient is the base client for API calls; nil uses http.DefaultClient.
	HTTPClient *http.Client
}

// GmailTransport implements Transport using the Gmail API.
type GmailTransport struct {
	endpoint   string
	userID     string
	httpClient *http.Client
}

// NewGmailTransport creates a new GmailTransport.
func NewGmailTransport(cfg GmailConfig) *GmailTransport {
	userID := cfg.UserID
	if userID == "" {
		userID = "me"
	}
	return &GmailTransport{
		endpoint:   cfg.Endpoint,
		userID:     userID,
		httpClient: cfg.HTTPClient,
	}
}

// Send submits the serialized message with users.messages.send. The call is
// made once; failures are returned as *TransportError.
func (g *GmailTransport) Send(ctx context.Context, payload []byte, cred *credential.Credential) (string, error) {
	if cred == nil || cred.AccessToken == "" {
		return "", &TransportError{Message: "no access token"}
	}

	if g.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	}
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(cred.Token()))

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if g.endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.endpoint))
	}

	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return "", &TransportError{Message: fmt.Sprintf("failed to create Gmail service: %v", err), Err: err}
	}

	sent, err := svc.Users.Messages.Send(g.userID, &gmail.Message{Raw: string(payload)}).Context(ctx).Do()
	if err != nil {
		return "", newTransportError(err)
	}

	return sent.Id, nil
}
