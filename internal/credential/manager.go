package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hrmail/hrmail/internal/logger"
)

// Refresher exchanges a refresh token for a new access token.
type Refresher interface {
	Refresh(ctx context.Context, c *Credential) (*Credential, error)
}

// AuthorizationFlow obtains a brand new credential with user interaction.
type AuthorizationFlow interface {
	Run(ctx context.Context) (*Credential, error)
}

// Manager drives the credential lifecycle: load, refresh, re-authorize, persist.
type Manager struct {
	store     Store
	refresher Refresher
	flow      AuthorizationFlow
	scopes    []string
	now       func() time.Time
	log       *logger.Logger
}

// NewManager creates a new Manager requiring the Gmail scopes.
func NewManager(store Store, refresher Refresher, flow AuthorizationFlow, log *logger.Logger) *Manager {
	return &Manager{
		store:     store,
		refresher: refresher,
		flow:      flow,
		scopes:    RequiredScopes(),
		now:       time.Now,
		log:       log.WithComponent("credential"),
	}
}

// EnsureValid returns a usable credential. A valid stored credential is
// returned without network I/O; an expired one is refreshed; otherwise the
// interactive authorization flow runs. Every new credential is persisted.
func (m *Manager) EnsureValid(ctx context.Context) (*Credential, error) {
	cred, err := m.load()
	if err != nil {
		return nil, err
	}

	state := Classify(cred, m.scopes, m.now())
	for {
		m.log.Debug().Str("state", state.String()).Msg("credential state")

		switch state {
		case StateAbsent:
			state = StateNeedsInteractiveAuth

		case StateValid:
			return cred, nil

		case StateExpired:
			state = StateRefreshing

		case StateRefreshing:
			refreshed, err := m.refresher.Refresh(ctx, cred)
			if err == nil {
				if err := m.store.Save(refreshed); err != nil {
					return nil, err
				}
				m.log.Info().Time("expiry", refreshed.Expiry).Msg("access token refreshed")
				cred, state = refreshed, StateValid
				continue
			}
			if !errors.Is(err, ErrRefreshRevoked) {
				return nil, err
			}
			m.log.Warn().Err(err).Msg("refresh rejected, discarding stored credential")
			if err := m.store.Delete(); err != nil {
				return nil, err
			}
			cred, state = nil, StateNeedsInteractiveAuth

		case StateNeedsInteractiveAuth:
			fresh, err := m.authorize(ctx)
			if err != nil {
				return nil, err
			}
			if err := m.store.Save(fresh); err != nil {
				return nil, err
			}
			m.log.Info().Msg("authorization completed")
			cred, state = fresh, StateValid

		default:
			return nil, fmt.Errorf("credential: unexpected state %s", state)
		}
	}
}

// Status reports the lifecycle state of the stored credential without any network I/O.
func (m *Manager) Status() (State, *Credential, error) {
	cred, err := m.load()
	if err != nil {
		return StateAbsent, nil, err
	}
	return Classify(cred, m.scopes, m.now()), cred, nil
}

// Logout deletes the stored credential.
func (m *Manager) Logout() error {
	return m.store.Delete()
}

func (m *Manager) load() (*Credential, error) {
	cred, err := m.store.Load()
	if errors.Is(err, ErrCorruptCredential) {
		m.log.Warn().Err(err).Msg("ignoring unreadable credential file")
		return nil, nil
	}
	return cred, err
}

func (m *Manager) authorize(ctx context.Context) (*Credential, error) {
	fresh, err := m.flow.Run(ctx)
	if err != nil {
		if _, ok := IsAuthError(err); ok {
			return nil, err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, NewAuthError(ReasonUserCancelled, "authorization was not completed", err)
		}
		return nil, NewAuthError(ReasonNetworkFailure, "authorization failed", err)
	}
	if !fresh.HasScopes(m.scopes) {
		return nil, NewAuthError(ReasonUserCancelled, "consent did not grant every required Gmail permission", nil)
	}
	return fresh, nil
}
