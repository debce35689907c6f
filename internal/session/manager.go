// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/submitty-sidebar/internal/adapter"
	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/internal/secret"
	"github.com/MKhiriev/submitty-sidebar/internal/utils"
	"github.com/MKhiriev/submitty-sidebar/internal/validators"
	"github.com/MKhiriev/submitty-sidebar/models"
)

// Default secret store address of the token.
const (
	DefaultService = "submittyToken"
	DefaultAccount = "submittyToken"
)

// StateListener is called after every state transition.
type StateListener func(prev, next models.SessionState)

type Option func(*Manager)

// WithSecretAddress overrides the service/account pair of the stored token.
func WithSecretAddress(service, account string) Option {
	return func(m *Manager) {
		if service != "" {
			m.service = service
		}
		if account != "" {
			m.account = account
		}
	}
}

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// Manager holds the session state. The token lives only here and in the
// secret store.
type Manager struct {
	secrets  secret.Store
	settings SettingsRepository
	api      adapter.SubmittyAPI
	prompter Prompter
	logger   *logger.Logger

	service string
	account string
	now     func() time.Time

	mu      sync.RWMutex
	state   models.SessionState
	token   string
	baseURL string
	lastErr error

	listenersMu sync.Mutex
	listeners   map[int]StateListener
	nextID      int
}

func NewManager(
	secrets secret.Store,
	settings SettingsRepository,
	api adapter.SubmittyAPI,
	prompter Prompter,
	log *logger.Logger,
	opts ...Option,
) *Manager {
	m := &Manager{
		secrets:   secrets,
		settings:  settings,
		api:       api,
		prompter:  prompter,
		logger:    log,
		service:   DefaultService,
		account:   DefaultAccount,
		now:       time.Now,
		state:     models.LoggedOut,
		listeners: make(map[int]StateListener),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize restores the session. A stored, unexpired token with a known
// base URL logs the user in without prompting; otherwise the user is asked
// for credentials.
func (m *Manager) Initialize(ctx context.Context) error {
	baseURL, err := m.settings.BaseURL(ctx)
	if err != nil {
		m.logger.Warn().Err(err).Msg("load base url")
	}
	if baseURL != "" {
		m.applyBaseURL(baseURL)
	}

	token, err := m.secrets.Get(ctx, m.service, m.account)
	switch {
	case errors.Is(err, secret.ErrNotFound):
		token = ""
	case err != nil:
		m.logger.Warn().Err(err).Msg("read stored token")
		token = ""
	}

	if token != "" && utils.IsTokenExpired(token, m.now()) {
		m.logger.Info().Msg("stored token expired, discarding it")
		if err = m.secrets.Delete(ctx, m.service, m.account); err != nil {
			m.logger.Warn().Err(err).Msg("delete expired token")
		}
		token = ""
	}

	if token != "" && baseURL != "" {
		m.mu.Lock()
		m.token = token
		m.lastErr = nil
		m.mu.Unlock()

		m.transition(models.LoggedIn)
		m.logger.Info().Str("base_url", baseURL).Msg("session restored")
		return nil
	}

	return m.Prompt(ctx)
}

// Prompt asks the user for credentials and logs in with them. A cancelled
// prompt leaves the session waiting for credentials and is not an error.
func (m *Manager) Prompt(ctx context.Context) error {
	m.transition(models.AwaitingCredentials)

	baseURL := m.BaseURL()
	creds, err := m.prompter.PromptCredentials(ctx, baseURL == "", baseURL)
	if errors.Is(err, ErrPromptCancelled) {
		m.logger.Info().Msg("credential prompt cancelled")
		return nil
	}
	if err != nil {
		return fmt.Errorf("prompt credentials: %w", err)
	}

	return m.Login(ctx, creds)
}

// Login validates creds, persists the base URL, logs in against the backend
// and stores the issued token. On failure the error is recorded and the
// session goes back to waiting for credentials.
func (m *Manager) Login(ctx context.Context, creds models.Credentials) error {
	if err := creds.Validate(); err != nil {
		m.setLastErr(err)
		return err
	}

	baseURL := m.BaseURL()
	if creds.URL != "" {
		normalized, err := validators.BaseURL(creds.URL)
		if err != nil {
			m.setLastErr(err)
			return err
		}
		baseURL = normalized
	}
	if baseURL == "" {
		err := &validators.ValidationError{Field: validators.FieldURL, Reason: validators.ErrEmptyValue}
		m.setLastErr(err)
		return err
	}

	m.mu.Lock()
	if m.state == models.LoggingIn {
		m.mu.Unlock()
		return ErrLoginInProgress
	}
	prev := m.state
	m.state = models.LoggingIn
	m.mu.Unlock()
	m.notify(prev, models.LoggingIn)

	prevBaseURL := m.BaseURL()
	token, err := m.login(ctx, baseURL, creds)
	if err != nil {
		m.mu.Lock()
		hadToken := m.token != ""
		m.token = ""
		m.lastErr = err
		m.mu.Unlock()
		m.transition(models.AwaitingCredentials)

		// a token issued by the previous backend must not reach the new one
		if hadToken && m.BaseURL() != prevBaseURL {
			if delErr := m.secrets.Delete(ctx, m.service, m.account); delErr != nil {
				m.logger.Warn().Err(delErr).Msg("delete token of previous backend")
			}
		}
		m.logger.Warn().Err(err).Str("base_url", baseURL).Msg("login failed")
		return err
	}

	m.mu.Lock()
	m.token = token
	m.lastErr = nil
	m.mu.Unlock()

	m.transition(models.LoggedIn)
	m.logger.Info().Str("base_url", baseURL).Str("user", creds.Username).Msg("logged in")
	return nil
}

func (m *Manager) login(ctx context.Context, baseURL string, creds models.Credentials) (string, error) {
	if baseURL != m.BaseURL() {
		if err := m.settings.SetBaseURL(ctx, baseURL); err != nil {
			return "", fmt.Errorf("save base url: %w", err)
		}
		m.applyBaseURL(baseURL)
	}

	token, err := m.api.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		return "", err
	}

	if err = m.secrets.Set(ctx, m.service, m.account, token); err != nil {
		// the session still works for this run, it just won't survive a restart
		m.logger.Warn().Err(err).Msg("store token")
	}

	return token, nil
}

// Logout forgets the token in memory and in the secret store.
func (m *Manager) Logout(ctx context.Context) error {
	return m.clear(ctx, nil)
}

// Expire logs out because the token ran out and records ErrSessionExpired.
func (m *Manager) Expire(ctx context.Context) error {
	m.logger.Info().Msg("session expired")
	return m.clear(ctx, ErrSessionExpired)
}

// HandleError reacts to err returned by an authenticated call. A rejected
// token forces a logout and reports true; any other error only reports false.
func (m *Manager) HandleError(ctx context.Context, err error) bool {
	if !errors.Is(err, adapter.ErrAuthRejected) {
		return false
	}

	m.logger.Warn().Err(err).Msg("token rejected, logging out")
	if clearErr := m.clear(ctx, err); clearErr != nil {
		m.logger.Warn().Err(clearErr).Msg("forced logout")
	}
	return true
}

func (m *Manager) clear(ctx context.Context, reason error) error {
	m.mu.Lock()
	m.token = ""
	m.lastErr = reason
	m.mu.Unlock()

	m.transition(models.LoggedOut)

	if err := m.secrets.Delete(ctx, m.service, m.account); err != nil {
		return fmt.Errorf("delete stored token: %w", err)
	}
	return nil
}

// Token returns the current token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) BaseURL() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.baseURL
}

func (m *Manager) State() models.SessionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// LastError returns the error of the last failed login or forced logout.
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// OnStateChange registers fn and returns a func that removes it.
func (m *Manager) OnStateChange(fn StateListener) (unsubscribe func()) {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn

	return func() {
		m.listenersMu.Lock()
		delete(m.listeners, id)
		m.listenersMu.Unlock()
	}
}

func (m *Manager) applyBaseURL(baseURL string) {
	m.mu.Lock()
	m.baseURL = baseURL
	m.mu.Unlock()
	m.api.SetBaseURL(baseURL)
}

func (m *Manager) setLastErr(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}

func (m *Manager) transition(next models.SessionState) {
	m.mu.Lock()
	prev := m.state
	m.state = next
	m.mu.Unlock()

	m.notify(prev, next)
}

func (m *Manager) notify(prev, next models.SessionState) {
	if prev == next {
		return
	}

	m.logger.Debug().Stringer("from", prev).Stringer("to", next).Msg("session state changed")

	m.listenersMu.Lock()
	listeners := make([]StateListener, 0, len(m.listeners))
	for id := 0; id < m.nextID; id++ {
		if fn, ok := m.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	m.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(prev, next)
	}
}
