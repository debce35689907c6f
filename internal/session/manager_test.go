// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/submitty-sidebar/internal/adapter"
	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/internal/mock"
	"github.com/MKhiriev/submitty-sidebar/internal/secret"
	"github.com/MKhiriev/submitty-sidebar/internal/validators"
	"github.com/MKhiriev/submitty-sidebar/models"
)

const testBaseURL = "https://example.submitty.edu"

type testDeps struct {
	secrets  *mock.MockStore
	settings *mock.MockSettingsRepository
	api      *mock.MockSubmittyAPI
	prompter *mock.MockPrompter
}

func newTestManager(t *testing.T, opts ...Option) (*Manager, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := testDeps{
		secrets:  mock.NewMockStore(ctrl),
		settings: mock.NewMockSettingsRepository(ctrl),
		api:      mock.NewMockSubmittyAPI(ctrl),
		prompter: mock.NewMockPrompter(ctrl),
	}
	m := NewManager(deps.secrets, deps.settings, deps.api, deps.prompter, logger.Nop(), opts...)
	return m, deps
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-key"))
	require.NoError(t, err)
	return s
}

func recordStates(m *Manager) func() []models.SessionState {
	var (
		mu     sync.Mutex
		states []models.SessionState
	)
	m.OnStateChange(func(_, next models.SessionState) {
		mu.Lock()
		states = append(states, next)
		mu.Unlock()
	})
	return func() []models.SessionState {
		mu.Lock()
		defer mu.Unlock()
		return append([]models.SessionState(nil), states...)
	}
}

// ── Initialize ──────────────────────────────────────────────────────────────

func TestManager_Initialize_RestoresStoredToken(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()

	gomock.InOrder(
		deps.settings.EXPECT().BaseURL(ctx).Return(testBaseURL, nil),
		deps.api.EXPECT().SetBaseURL(testBaseURL),
		deps.secrets.EXPECT().Get(ctx, DefaultService, DefaultAccount).Return("opaque-token", nil),
	)

	require.NoError(t, m.Initialize(ctx))
	assert.Equal(t, models.LoggedIn, m.State())
	assert.Equal(t, "opaque-token", m.Token())
	assert.Equal(t, testBaseURL, m.BaseURL())
	assert.NoError(t, m.LastError())
}

func TestManager_Initialize_UnexpiredJWT(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m, deps := newTestManager(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()
	token := signedToken(t, now.Add(time.Hour))

	deps.settings.EXPECT().BaseURL(ctx).Return(testBaseURL, nil)
	deps.api.EXPECT().SetBaseURL(testBaseURL)
	deps.secrets.EXPECT().Get(ctx, DefaultService, DefaultAccount).Return(token, nil)

	require.NoError(t, m.Initialize(ctx))
	assert.Equal(t, models.LoggedIn, m.State())
}

func TestManager_Initialize_ExpiredTokenPrompts(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m, deps := newTestManager(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()
	token := signedToken(t, now.Add(-time.Minute))

	gomock.InOrder(
		deps.settings.EXPECT().BaseURL(ctx).Return(testBaseURL, nil),
		deps.api.EXPECT().SetBaseURL(testBaseURL),
		deps.secrets.EXPECT().Get(ctx, DefaultService, DefaultAccount).Return(token, nil),
		deps.secrets.EXPECT().Delete(ctx, DefaultService, DefaultAccount).Return(nil),
		deps.prompter.EXPECT().PromptCredentials(ctx, false, testBaseURL).Return(models.Credentials{}, ErrPromptCancelled),
	)

	require.NoError(t, m.Initialize(ctx))
	assert.Equal(t, models.AwaitingCredentials, m.State())
	assert.Empty(t, m.Token())
}

func TestManager_Initialize_NoTokenPromptsAndLogsIn(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()
	states := recordStates(m)

	gomock.InOrder(
		deps.settings.EXPECT().BaseURL(ctx).Return("", nil),
		deps.secrets.EXPECT().Get(ctx, DefaultService, DefaultAccount).Return("", secret.ErrNotFound),
		deps.prompter.EXPECT().PromptCredentials(ctx, true, "").Return(models.Credentials{
			URL:      testBaseURL + "/",
			Username: "alice",
			Password: "pw",
		}, nil),
		deps.settings.EXPECT().SetBaseURL(ctx, testBaseURL).Return(nil),
		deps.api.EXPECT().SetBaseURL(testBaseURL),
		deps.api.EXPECT().Login(ctx, "alice", "pw").Return("new-token", nil),
		deps.secrets.EXPECT().Set(ctx, DefaultService, DefaultAccount, "new-token").Return(nil),
	)

	require.NoError(t, m.Initialize(ctx))
	assert.Equal(t, models.LoggedIn, m.State())
	assert.Equal(t, "new-token", m.Token())
	assert.Equal(t, []models.SessionState{
		models.AwaitingCredentials,
		models.LoggingIn,
		models.LoggedIn,
	}, states())
}

func TestManager_Initialize_TokenWithoutBaseURLPrompts(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()

	deps.settings.EXPECT().BaseURL(ctx).Return("", errors.New("db locked"))
	deps.secrets.EXPECT().Get(ctx, DefaultService, DefaultAccount).Return("orphan-token", nil)
	deps.prompter.EXPECT().PromptCredentials(ctx, true, "").Return(models.Credentials{}, ErrPromptCancelled)

	require.NoError(t, m.Initialize(ctx))
	assert.Equal(t, models.AwaitingCredentials, m.State())
}

func TestManager_Initialize_PromptFailure(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()
	promptErr := errors.New("bridge down")

	deps.settings.EXPECT().BaseURL(ctx).Return(testBaseURL, nil)
	deps.api.EXPECT().SetBaseURL(testBaseURL)
	deps.secrets.EXPECT().Get(ctx, DefaultService, DefaultAccount).Return("", errors.New("keychain locked"))
	deps.prompter.EXPECT().PromptCredentials(ctx, false, testBaseURL).Return(models.Credentials{}, promptErr)

	err := m.Initialize(ctx)
	require.ErrorIs(t, err, promptErr)
	assert.Equal(t, models.AwaitingCredentials, m.State())
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestManager_Login_ValidationFailsBeforeNetwork(t *testing.T) {
	m, _ := newTestManager(t)

	tests := []struct {
		name  string
		creds models.Credentials
		field string
	}{
		{name: "bad url", creds: models.Credentials{URL: "not a url", Username: "alice", Password: "pw"}, field: validators.FieldURL},
		{name: "missing username", creds: models.Credentials{URL: testBaseURL, Password: "pw"}, field: validators.FieldUsername},
		{name: "missing password", creds: models.Credentials{URL: testBaseURL, Username: "alice"}, field: validators.FieldPassword},
		{name: "no url configured", creds: models.Credentials{Username: "alice", Password: "pw"}, field: validators.FieldURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Login(context.Background(), tt.creds)

			var vErr *validators.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, err, m.LastError())
			assert.Equal(t, models.LoggedOut, m.State())
		})
	}
}

func TestManager_Login_BackendFailure(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()
	apiErr := &adapter.APIError{StatusCode: 200, Message: "Could not login using that user id or password"}

	deps.settings.EXPECT().SetBaseURL(ctx, testBaseURL).Return(nil)
	deps.api.EXPECT().SetBaseURL(testBaseURL)
	deps.api.EXPECT().Login(ctx, "alice", "wrong").Return("", apiErr)

	err := m.Login(ctx, models.Credentials{URL: testBaseURL, Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, apiErr)
	assert.Equal(t, models.AwaitingCredentials, m.State())
	assert.ErrorIs(t, m.LastError(), apiErr)
	assert.Empty(t, m.Token())
}

func TestManager_Login_SaveBaseURLFailure(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()

	deps.settings.EXPECT().SetBaseURL(ctx, testBaseURL).Return(errors.New("disk full"))

	err := m.Login(ctx, models.Credentials{URL: testBaseURL, Username: "alice", Password: "pw"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save base url")
	assert.Equal(t, models.AwaitingCredentials, m.State())
}

func TestManager_Login_TokenStoreFailureStillLogsIn(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()

	deps.settings.EXPECT().SetBaseURL(ctx, testBaseURL).Return(nil)
	deps.api.EXPECT().SetBaseURL(testBaseURL)
	deps.api.EXPECT().Login(ctx, "alice", "pw").Return("tok", nil)
	deps.secrets.EXPECT().Set(ctx, DefaultService, DefaultAccount, "tok").Return(errors.New("keychain locked"))

	require.NoError(t, m.Login(ctx, models.Credentials{URL: testBaseURL, Username: "alice", Password: "pw"}))
	assert.Equal(t, models.LoggedIn, m.State())
	assert.Equal(t, "tok", m.Token())
}

func TestManager_Login_InProgress(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()

	release := make(chan struct{})
	deps.settings.EXPECT().SetBaseURL(ctx, testBaseURL).Return(nil)
	deps.api.EXPECT().SetBaseURL(testBaseURL)
	deps.api.EXPECT().Login(ctx, "alice", "pw").DoAndReturn(func(context.Context, string, string) (string, error) {
		<-release
		return "tok", nil
	})
	deps.secrets.EXPECT().Set(ctx, DefaultService, DefaultAccount, "tok").Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- m.Login(ctx, models.Credentials{URL: testBaseURL, Username: "alice", Password: "pw"})
	}()
	require.Eventually(t, func() bool { return m.State() == models.LoggingIn }, time.Second, 5*time.Millisecond)

	err := m.Login(ctx, models.Credentials{URL: testBaseURL, Username: "bob", Password: "pw"})
	assert.ErrorIs(t, err, ErrLoginInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, models.LoggedIn, m.State())
}

// ── Logout / Expire / HandleError ───────────────────────────────────────────

func loggedIn(t *testing.T, m *Manager, deps testDeps) {
	t.Helper()
	ctx := context.Background()

	deps.settings.EXPECT().SetBaseURL(ctx, testBaseURL).Return(nil)
	deps.api.EXPECT().SetBaseURL(testBaseURL)
	deps.api.EXPECT().Login(ctx, "alice", "pw").Return("tok", nil)
	deps.secrets.EXPECT().Set(ctx, DefaultService, DefaultAccount, "tok").Return(nil)

	require.NoError(t, m.Login(ctx, models.Credentials{URL: testBaseURL, Username: "alice", Password: "pw"}))
}

func TestManager_Login_FailureFromLoggedInDropsToken(t *testing.T) {
	const otherBaseURL = "https://other.submitty.edu"
	apiErr := &adapter.APIError{StatusCode: 200, Message: "Could not login using that user id or password"}

	t.Run("same backend", func(t *testing.T) {
		m, deps := newTestManager(t)
		ctx := context.Background()
		loggedIn(t, m, deps)

		deps.api.EXPECT().Login(ctx, "alice", "wrong").Return("", apiErr)

		err := m.Login(ctx, models.Credentials{URL: testBaseURL, Username: "alice", Password: "wrong"})
		require.ErrorIs(t, err, apiErr)
		assert.Equal(t, models.AwaitingCredentials, m.State())
		assert.Empty(t, m.Token())
	})

	t.Run("other backend", func(t *testing.T) {
		m, deps := newTestManager(t)
		ctx := context.Background()
		loggedIn(t, m, deps)

		deps.settings.EXPECT().SetBaseURL(ctx, otherBaseURL).Return(nil)
		deps.api.EXPECT().SetBaseURL(otherBaseURL)
		deps.api.EXPECT().Login(ctx, "alice", "wrong").Return("", apiErr)
		deps.secrets.EXPECT().Delete(ctx, DefaultService, DefaultAccount).Return(nil)

		err := m.Login(ctx, models.Credentials{URL: otherBaseURL, Username: "alice", Password: "wrong"})
		require.ErrorIs(t, err, apiErr)
		assert.Equal(t, models.AwaitingCredentials, m.State())
		assert.Equal(t, otherBaseURL, m.BaseURL())
		assert.Empty(t, m.Token())
	})
}

func TestManager_Logout(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()
	loggedIn(t, m, deps)

	deps.secrets.EXPECT().Delete(ctx, DefaultService, DefaultAccount).Return(nil)

	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, models.LoggedOut, m.State())
	assert.Empty(t, m.Token())
	assert.NoError(t, m.LastError())
	assert.Equal(t, testBaseURL, m.BaseURL())
}

func TestManager_Logout_DeleteFailure(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()
	loggedIn(t, m, deps)

	deps.secrets.EXPECT().Delete(ctx, DefaultService, DefaultAccount).Return(errors.New("keychain locked"))

	require.Error(t, m.Logout(ctx))
	assert.Equal(t, models.LoggedOut, m.State())
	assert.Empty(t, m.Token())
}

func TestManager_Expire(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()
	loggedIn(t, m, deps)

	deps.secrets.EXPECT().Delete(ctx, DefaultService, DefaultAccount).Return(nil)

	require.NoError(t, m.Expire(ctx))
	assert.Equal(t, models.LoggedOut, m.State())
	assert.ErrorIs(t, m.LastError(), ErrSessionExpired)
}

func TestManager_HandleError_AuthRejectedThenLoginClearsError(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()
	loggedIn(t, m, deps)

	rejected := fmt.Errorf("fetch courses: %w", adapter.ErrAuthRejected)
	deps.secrets.EXPECT().Delete(ctx, DefaultService, DefaultAccount).Return(nil)

	assert.True(t, m.HandleError(ctx, rejected))
	assert.Equal(t, models.LoggedOut, m.State())
	assert.Empty(t, m.Token())
	assert.ErrorIs(t, m.LastError(), adapter.ErrAuthRejected)

	deps.api.EXPECT().Login(ctx, "alice", "pw2").Return("tok2", nil)
	deps.secrets.EXPECT().Set(ctx, DefaultService, DefaultAccount, "tok2").Return(nil)

	require.NoError(t, m.Login(ctx, models.Credentials{Username: "alice", Password: "pw2"}))
	assert.Equal(t, models.LoggedIn, m.State())
	assert.NoError(t, m.LastError())
	assert.Equal(t, "tok2", m.Token())
}

func TestManager_HandleError_OtherErrorsIgnored(t *testing.T) {
	m, deps := newTestManager(t)
	loggedIn(t, m, deps)

	assert.False(t, m.HandleError(context.Background(), &adapter.APIError{StatusCode: 500, Message: "boom"}))
	assert.False(t, m.HandleError(context.Background(), nil))
	assert.Equal(t, models.LoggedIn, m.State())
	assert.Equal(t, "tok", m.Token())
}

func TestManager_OnStateChange_Unsubscribe(t *testing.T) {
	m, deps := newTestManager(t)
	ctx := context.Background()

	calls := 0
	unsubscribe := m.OnStateChange(func(prev, next models.SessionState) {
		calls++
		assert.Equal(t, models.LoggedOut, prev)
		assert.Equal(t, models.LoggingIn, next)
	})

	deps.settings.EXPECT().SetBaseURL(ctx, testBaseURL).Return(nil)
	deps.api.EXPECT().SetBaseURL(testBaseURL)
	deps.api.EXPECT().Login(ctx, "alice", "pw").DoAndReturn(func(context.Context, string, string) (string, error) {
		unsubscribe()
		return "", errors.New("offline")
	})

	require.Error(t, m.Login(ctx, models.Credentials{URL: testBaseURL, Username: "alice", Password: "pw"}))
	assert.Equal(t, 1, calls)
}

// ── with the keyring backend ────────────────────────────────────────────────

func TestManager_StoredTokenSurvivesRestart(t *testing.T) {
	keyring.MockInit()
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	store := secret.NewKeyringStore()
	settingsRepo := mock.NewMockSettingsRepository(ctrl)
	api := mock.NewMockSubmittyAPI(ctrl)
	prompter := mock.NewMockPrompter(ctrl)

	settingsRepo.EXPECT().SetBaseURL(ctx, testBaseURL).Return(nil)
	api.EXPECT().SetBaseURL(testBaseURL).Times(2)
	api.EXPECT().Login(ctx, "alice", "pw").Return("persisted-token", nil)

	first := NewManager(store, settingsRepo, api, prompter, logger.Nop())
	require.NoError(t, first.Login(ctx, models.Credentials{URL: testBaseURL, Username: "alice", Password: "pw"}))

	settingsRepo.EXPECT().BaseURL(ctx).Return(testBaseURL, nil)

	second := NewManager(store, settingsRepo, api, prompter, logger.Nop())
	require.NoError(t, second.Initialize(ctx))
	assert.Equal(t, models.LoggedIn, second.State())
	assert.Equal(t, "persisted-token", second.Token())
}
