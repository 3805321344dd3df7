package main

import (
	"fmt"
	"io"

	"github.com/hrmail/hrmail/internal/auth"
	"github.com/hrmail/hrmail/internal/config"
	"github.com/hrmail/hrmail/internal/credential"
	"github.com/hrmail/hrmail/internal/email"
	"github.com/hrmail/hrmail/internal/logger"
	"github.com/hrmail/hrmail/internal/service"
	"github.com/hrmail/hrmail/internal/template"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg         *config.Config
	log         *logger.Logger
	templates   *template.Store
	credentials *credential.Manager
	sender      *service.SendService
}

// newApp loads configuration and wires every component. out receives the
// consent URL when the browser is not opened automatically; confirmer may be
// nil for commands that never send.
func newApp(out io.Writer, confirmer service.Confirmer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Debug().Str("templates", cfg.Files.Templates).Str("credential", cfg.Files.Credential).Msg("configuration loaded")

	return wire(cfg, log, out, confirmer), nil
}

func wire(cfg *config.Config, log *logger.Logger, out io.Writer, confirmer service.Confirmer) *app {
	flow := auth.NewLocalServerFlow(auth.FlowConfig{
		ClientConfigPath: cfg.Files.ClientConfig,
		CallbackHost:     cfg.Auth.CallbackHost,
		CallbackPort:     cfg.Auth.CallbackPort,
		Timeout:          cfg.Auth.Timeout,
		ExchangeTimeout:  cfg.Auth.ExchangeTimeout,
	}, log, auth.WithOpener(consentOpener(cfg.Auth.OpenBrowser, out)))

	credentials := credential.NewManager(
		credential.NewFileStore(cfg.Files.Credential),
		credential.NewOAuthRefresher(nil, cfg.Auth.ExchangeTimeout),
		flow,
		log,
	)

	templates := template.NewStore(cfg.Files.Templates, log)

	transport := email.NewGmailTransport(email.GmailConfig{
		Endpoint: cfg.Gmail.Endpoint,
		UserID:   cfg.Gmail.UserID,
	})

	return &app{
		cfg:         cfg,
		log:         log,
		templates:   templates,
		credentials: credentials,
		sender:      service.NewSendService(credentials, templates, transport, confirmer, cfg, log),
	}
}

// consentOpener prints the consent URL and, when enabled, opens it in the
// default browser as well.
func consentOpener(openBrowser bool, out io.Writer) auth.URLOpener {
	return func(url string) error {
		fmt.Fprintf(out, "Open this URL to authorize access to Gmail:\n\n  %s\n\n", url)
		if !openBrowser {
			return nil
		}
		return auth.OpenBrowser(url)
	}
}
