package auth

import "net/http"

// Option configures a LocalServerFlow.
type Option func(*options)

type options struct {
	httpClient *http.Client
	opener     URLOpener
}

// WithHTTPClient sets the HTTP client used for the token exchange.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithOpener sets how the consent URL is presented to the user.
func WithOpener(opener URLOpener) Option {
	return func(o *options) {
		o.opener = opener
	}
}
