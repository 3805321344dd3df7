package credential

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrmail/hrmail/internal/logger"
)

type memStore struct {
	mu      sync.Mutex
	cred    *Credential
	loadErr error
	saves   int
	deletes int
}

func (s *memStore) Load() (*Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.cred == nil {
		return nil, nil
	}
	c := *s.cred
	return &c, nil
}

func (s *memStore) Save(c *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.cred = &cp
	s.saves++
	return nil
}

func (s *memStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	s.deletes++
	return nil
}

type fakeRefresher struct {
	calls int
	fn    func(c *Credential) (*Credential, error)
}

func (r *fakeRefresher) Refresh(_ context.Context, c *Credential) (*Credential, error) {
	r.calls++
	return r.fn(c)
}

type fakeFlow struct {
	calls int
	cred  *Credential
	err   error
}

func (f *fakeFlow) Run(context.Context) (*Credential, error) {
	f.calls++
	return f.cred, f.err
}

func unexpectedRefresh(*Credential) (*Credential, error) {
	return nil, errors.New("refresh should not be called")
}

func newTestManager(store Store, r Refresher, f AuthorizationFlow, now time.Time) *Manager {
	m := NewManager(store, r, f, logger.Nop())
	m.now = func() time.Time { return now }
	return m
}

func TestManager_EnsureValid(t *testing.T) {
	t.Parallel()
	now := time.Now()

	t.Run("valid credential is returned without refresh or flow", func(t *testing.T) {
		t.Parallel()
		store := &memStore{cred: validCredential(now)}
		refresher := &fakeRefresher{fn: unexpectedRefresh}
		flow := &fakeFlow{}

		c, err := newTestManager(store, refresher, flow, now).EnsureValid(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "access", c.AccessToken)
		assert.Zero(t, refresher.calls)
		assert.Zero(t, flow.calls)
		assert.Zero(t, store.saves)
	})

	t.Run("expired credential is refreshed once and persisted", func(t *testing.T) {
		t.Parallel()
		stale := validCredential(now)
		stale.Expiry = now.Add(-time.Hour)
		store := &memStore{cred: stale}
		refresher := &fakeRefresher{fn: func(c *Credential) (*Credential, error) {
			out := *c
			out.AccessToken = "fresh-access"
			out.Expiry = now.Add(time.Hour)
			return &out, nil
		}}
		flow := &fakeFlow{}

		c, err := newTestManager(store, refresher, flow, now).EnsureValid(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, refresher.calls)
		assert.Zero(t, flow.calls)
		assert.Equal(t, "fresh-access", c.AccessToken)
		assert.True(t, c.Expiry.After(now))

		persisted, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "fresh-access", persisted.AccessToken)
		assert.Equal(t, 1, store.saves)
	})

	t.Run("revoked refresh deletes credential and runs interactive flow", func(t *testing.T) {
		t.Parallel()
		stale := validCredential(now)
		stale.Expiry = now.Add(-time.Hour)
		store := &memStore{cred: stale}
		refresher := &fakeRefresher{fn: func(*Credential) (*Credential, error) {
			return nil, NewAuthError(ReasonRefreshRevoked, "rejected", nil)
		}}
		authorized := validCredential(now)
		authorized.AccessToken = "interactive-access"
		flow := &fakeFlow{cred: authorized}

		c, err := newTestManager(store, refresher, flow, now).EnsureValid(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, refresher.calls)
		assert.Equal(t, 1, store.deletes)
		assert.Equal(t, 1, flow.calls)
		assert.Equal(t, "interactive-access", c.AccessToken)

		persisted, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "interactive-access", persisted.AccessToken)
	})

	t.Run("revoked refresh with cancelled flow leaves no credential behind", func(t *testing.T) {
		t.Parallel()
		stale := validCredential(now)
		stale.Expiry = now.Add(-time.Hour)
		store := &memStore{cred: stale}
		refresher := &fakeRefresher{fn: func(*Credential) (*Credential, error) {
			return nil, NewAuthError(ReasonRefreshRevoked, "rejected", nil)
		}}
		flow := &fakeFlow{err: NewAuthError(ReasonUserCancelled, "closed", nil)}

		_, err := newTestManager(store, refresher, flow, now).EnsureValid(context.Background())
		require.ErrorIs(t, err, ErrUserCancelled)

		persisted, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, persisted)
	})

	t.Run("network failure on refresh keeps credential", func(t *testing.T) {
		t.Parallel()
		stale := validCredential(now)
		stale.Expiry = now.Add(-time.Hour)
		store := &memStore{cred: stale}
		refresher := &fakeRefresher{fn: func(*Credential) (*Credential, error) {
			return nil, NewAuthError(ReasonNetworkFailure, "offline", nil)
		}}
		flow := &fakeFlow{}

		_, err := newTestManager(store, refresher, flow, now).EnsureValid(context.Background())
		require.ErrorIs(t, err, ErrNetworkFailure)
		assert.Zero(t, store.deletes)
		assert.Zero(t, flow.calls)
	})

	t.Run("absent credential runs interactive flow", func(t *testing.T) {
		t.Parallel()
		store := &memStore{}
		flow := &fakeFlow{cred: validCredential(now)}

		c, err := newTestManager(store, &fakeRefresher{fn: unexpectedRefresh}, flow, now).EnsureValid(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, flow.calls)
		assert.Equal(t, "access", c.AccessToken)
		assert.Equal(t, 1, store.saves)
	})

	t.Run("corrupt credential file is treated as absent", func(t *testing.T) {
		t.Parallel()
		store := &memStore{loadErr: ErrCorruptCredential}
		flow := &fakeFlow{cred: validCredential(now)}

		_, err := newTestManager(store, &fakeRefresher{fn: unexpectedRefresh}, flow, now).EnsureValid(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, flow.calls)
	})

	t.Run("missing client config surfaces reason", func(t *testing.T) {
		t.Parallel()
		flow := &fakeFlow{err: NewAuthError(ReasonMissingClientConfig, "credentials.json not found", nil)}

		_, err := newTestManager(&memStore{}, &fakeRefresher{fn: unexpectedRefresh}, flow, now).EnsureValid(context.Background())
		authErr, ok := IsAuthError(err)
		require.True(t, ok)
		assert.Equal(t, ReasonMissingClientConfig, authErr.Reason)
	})

	t.Run("context cancellation during flow is user cancelled", func(t *testing.T) {
		t.Parallel()
		flow := &fakeFlow{err: context.Canceled}

		_, err := newTestManager(&memStore{}, &fakeRefresher{fn: unexpectedRefresh}, flow, now).EnsureValid(context.Background())
		require.ErrorIs(t, err, ErrUserCancelled)
	})

	t.Run("consent without required scopes is rejected", func(t *testing.T) {
		t.Parallel()
		narrow := validCredential(now)
		narrow.Scopes = RequiredScopes()[:1]
		store := &memStore{}
		flow := &fakeFlow{cred: narrow}

		_, err := newTestManager(store, &fakeRefresher{fn: unexpectedRefresh}, flow, now).EnsureValid(context.Background())
		require.ErrorIs(t, err, ErrUserCancelled)
		assert.Zero(t, store.saves)
	})
}

func TestManager_StatusAndLogout(t *testing.T) {
	t.Parallel()
	now := time.Now()
	store := &memStore{cred: validCredential(now)}
	m := newTestManager(store, &fakeRefresher{fn: unexpectedRefresh}, &fakeFlow{}, now)

	state, c, err := m.Status()
	require.NoError(t, err)
	assert.Equal(t, StateValid, state)
	assert.NotNil(t, c)

	require.NoError(t, m.Logout())

	state, c, err = m.Status()
	require.NoError(t, err)
	assert.Equal(t, StateAbsent, state)
	assert.Nil(t, c)
}
