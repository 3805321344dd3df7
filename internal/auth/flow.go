package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/hrmail/hrmail/internal/credential"
	"github.com/hrmail/hrmail/internal/logger"
)

const callbackPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>hrmail</title></head>
<body style="font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;">
<p>%s</p>
</body>
</html>`

// FlowConfig holds the settings of the interactive authorization flow.
type FlowConfig struct {
	ClientConfigPath string
	CallbackHost     string
	CallbackPort     int
	// Timeout bounds the wait for the user to finish the consent screen.
	Timeout time.Duration
	// ExchangeTimeout bounds the authorization code exchange.
	ExchangeTimeout time.Duration
}

// LocalServerFlow runs the OAuth installed-application flow: it listens on a
// loopback port, sends the user to the consent screen and exchanges the
// returned code for tokens.
type LocalServerFlow struct {
	cfg        FlowConfig
	scopes     []string
	httpClient *http.Client
	opener     URLOpener
	log        *logger.Logger
}

// NewLocalServerFlow creates a new LocalServerFlow requesting the Gmail scopes.
func NewLocalServerFlow(cfg FlowConfig, log *logger.Logger, opts ...Option) *LocalServerFlow {
	o := options{opener: OpenBrowser}
	for _, opt := range opts {
		opt(&o)
	}

	return &LocalServerFlow{
		cfg:        cfg,
		scopes:     credential.RequiredScopes(),
		httpClient: o.httpClient,
		opener:     o.opener,
		log:        log.WithComponent("auth"),
	}
}

type callbackResult struct {
	code    string
	errCode string
}

// Run performs one interactive authorization.
func (f *LocalServerFlow) Run(ctx context.Context) (*credential.Credential, error) {
	oauthCfg, err := LoadClientConfig(f.cfg.ClientConfigPath, f.scopes)
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(f.cfg.CallbackHost, strconv.Itoa(f.cfg.CallbackPort)))
	if err != nil {
		return nil, credential.NewAuthError(credential.ReasonNetworkFailure, "cannot start local callback listener", err)
	}

	port := ln.Addr().(*net.TCPAddr).Port
	oauthCfg.RedirectURL = fmt.Sprintf("http://%s/", net.JoinHostPort(f.cfg.CallbackHost, strconv.Itoa(port)))

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	results := make(chan callbackResult, 1)

	srv := &http.Server{
		Handler:           callbackHandler(state, results),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.log.Error().Err(err).Msg("callback listener stopped")
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	authURL := oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))
	f.log.Info().Str("url", authURL).Str("redirect_uri", oauthCfg.RedirectURL).Msg("waiting for authorization in the browser")
	if f.opener != nil {
		if err := f.opener(authURL); err != nil {
			f.log.Warn().Err(err).Msg("could not open the browser, open the URL manually")
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	var res callbackResult
	select {
	case res = <-results:
	case <-waitCtx.Done():
		return nil, credential.NewAuthError(credential.ReasonUserCancelled, "authorization was not completed in the browser", waitCtx.Err())
	}

	if res.errCode != "" {
		return nil, credential.NewAuthError(credential.ReasonUserCancelled,
			fmt.Sprintf("authorization denied (%s)", res.errCode), nil)
	}

	exchangeCtx, cancelExchange := context.WithTimeout(ctx, f.cfg.ExchangeTimeout)
	defer cancelExchange()
	if f.httpClient != nil {
		exchangeCtx = context.WithValue(exchangeCtx, oauth2.HTTPClient, f.httpClient)
	}

	tok, err := oauthCfg.Exchange(exchangeCtx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, credential.NewAuthError(credential.ReasonNetworkFailure, "authorization code exchange failed", err)
	}

	return credential.FromToken(tok, oauthCfg), nil
}

// callbackHandler delivers the first callback carrying the expected state.
func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}

		res := callbackResult{code: q.Get("code"), errCode: q.Get("error")}
		if res.code == "" && res.errCode == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			return
		}

		message := "Authorization complete. You may close this window."
		if res.errCode != "" {
			message = "Authorization was not granted. You may close this window."
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprintf(w, callbackPage, message)

		select {
		case results <- res:
		default:
		}
	})
}
