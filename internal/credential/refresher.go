package credential

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuthRefresher refreshes credentials against the token endpoint recorded in
// the credential, falling back to Google's.
type OAuthRefresher struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewOAuthRefresher creates a new OAuthRefresher. A nil httpClient uses http.DefaultClient.
func NewOAuthRefresher(httpClient *http.Client, timeout time.Duration) *OAuthRefresher {
	return &OAuthRefresher{httpClient: httpClient, timeout: timeout}
}

// Refresh exchanges c's refresh token for a new access token. A rejection by
// the token endpoint yields ErrRefreshRevoked; anything else ErrNetworkFailure.
func (r *OAuthRefresher) Refresh(ctx context.Context, c *Credential) (*Credential, error) {
	if c.RefreshToken == "" {
		return nil, NewAuthError(ReasonRefreshRevoked, "credential has no refresh token", nil)
	}
	if c.ClientID == "" {
		return nil, NewAuthError(ReasonRefreshRevoked, "credential has no client identity", nil)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	if r.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
	}

	endpoint := google.Endpoint
	if c.TokenURI != "" {
		endpoint.TokenURL = c.TokenURI
	}
	cfg := &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       c.Scopes,
	}

	tok, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: c.RefreshToken}).Token()
	if err != nil {
		return nil, classifyTokenError(err)
	}

	out := *c
	out.AccessToken = tok.AccessToken
	out.TokenType = tok.TokenType
	out.Expiry = tok.Expiry.UTC()
	if tok.RefreshToken != "" {
		out.RefreshToken = tok.RefreshToken
	}
	if scopes := scopesFromToken(tok); len(scopes) > 0 {
		out.Scopes = scopes
	}
	return &out, nil
}

// classifyTokenError maps a token endpoint failure onto an AuthError.
func classifyTokenError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		rejected := re.ErrorCode == "invalid_grant" || re.ErrorCode == "unauthorized_client"
		if re.Response != nil {
			code := re.Response.StatusCode
			rejected = rejected || code == http.StatusBadRequest || code == http.StatusUnauthorized
		}
		if rejected {
			return NewAuthError(ReasonRefreshRevoked, "the authorization server rejected the refresh token", err)
		}
	}
	return NewAuthError(ReasonNetworkFailure, "could not reach the authorization server", err)
}
