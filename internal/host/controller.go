// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package host

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/submitty-sidebar/internal/adapter"
	"github.com/MKhiriev/submitty-sidebar/internal/bridge"
	"github.com/MKhiriev/submitty-sidebar/internal/logger"
	"github.com/MKhiriev/submitty-sidebar/models"
)

var knownCommands = map[string]struct{}{
	models.CommandReady:                  {},
	models.CommandLogin:                  {},
	models.CommandLogout:                 {},
	models.CommandFetchAndDisplayCourses: {},
	models.CommandGrade:                  {},
	models.CommandHello:                  {},
}

// Controller dispatches UI commands. Handler work runs on its own goroutines
// so bridge delivery is never blocked by network calls or prompts.
type Controller struct {
	bridge   *bridge.Bridge
	session  Session
	api      adapter.SubmittyAPI
	notifier Notifier
	logger   *logger.Logger

	initOnce sync.Once

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	stopped     bool
	wg          sync.WaitGroup
	unsubscribe []func()
}

func NewController(b *bridge.Bridge, sess Session, api adapter.SubmittyAPI, notifier Notifier, log *logger.Logger) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		bridge:   b,
		session:  sess,
		api:      api,
		notifier: notifier,
		logger:   log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start registers the command handlers and the session state listener.
func (c *Controller) Start() {
	c.unsubscribe = append(c.unsubscribe,
		bridge.Handle(c.bridge, models.CommandReady, c.handleReady),
		bridge.Handle(c.bridge, models.CommandLogin, c.handleLogin),
		bridge.Handle(c.bridge, models.CommandLogout, c.handleLogout),
		bridge.Handle(c.bridge, models.CommandFetchAndDisplayCourses, c.handleFetchCourses),
		bridge.Handle(c.bridge, models.CommandGrade, c.handleGrade),
		bridge.Handle(c.bridge, models.CommandHello, c.handleHello),
		c.bridge.OnMessage("", c.handleUnknown),
		c.session.OnStateChange(func(_, next models.SessionState) {
			c.postSessionState(next)
		}),
	)
}

// Stop removes the handlers, cancels running work and waits for it.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.mu.Unlock()

	for _, unsubscribe := range c.unsubscribe {
		unsubscribe()
	}
	c.cancel()
	c.wg.Wait()
}

func (c *Controller) handleReady(_ context.Context, _ bridge.Message, _ models.Empty) error {
	c.postSessionState(c.session.State())

	first := false
	c.initOnce.Do(func() { first = true })

	if first {
		c.spawn(models.CommandReady, func(ctx context.Context) error {
			if err := c.session.Initialize(ctx); err != nil {
				c.reportError("Authentication failed", err)
				return err
			}
			return c.loadCourses(ctx)
		})
		return nil
	}

	c.spawn(models.CommandReady, c.loadCourses)
	return nil
}

func (c *Controller) handleLogin(_ context.Context, msg bridge.Message, creds models.Credentials) error {
	c.spawn(models.CommandLogin, func(ctx context.Context) error {
		if err := c.session.Login(ctx, creds); err != nil {
			c.reportError("Login failed", err)
			c.respondError(msg, err)
			return err
		}

		c.respond(msg, c.sessionStateMessage(c.session.State()))
		return c.loadCourses(ctx)
	})
	return nil
}

func (c *Controller) handleLogout(_ context.Context, msg bridge.Message, _ models.Empty) error {
	c.spawn(models.CommandLogout, func(ctx context.Context) error {
		if err := c.session.Logout(ctx); err != nil {
			c.notifier.Notify(models.LevelWarning, fmt.Sprintf("Logout incomplete: %v", err))
		}
		c.respond(msg, c.sessionStateMessage(c.session.State()))
		return nil
	})
	return nil
}

func (c *Controller) handleFetchCourses(context.Context, bridge.Message, models.Empty) error {
	c.spawn(models.CommandFetchAndDisplayCourses, c.loadCourses)
	return nil
}

func (c *Controller) handleGrade(_ context.Context, msg bridge.Message, req models.GradeRequest) error {
	c.spawn(models.CommandGrade, func(ctx context.Context) error {
		grade, err := c.fetchGrade(ctx, req.HW)
		if err != nil {
			c.handleAPIError("Failed to fetch grade details", err)
			c.respondError(msg, err)
			return err
		}

		if err = c.bridge.Post(models.CommandDisplayGrade, grade); err != nil {
			return err
		}
		c.respond(msg, grade)
		return nil
	})
	return nil
}

func (c *Controller) handleHello(_ context.Context, _ bridge.Message, hello models.Hello) error {
	c.notifier.Notify(models.LevelInfo, hello.Text)
	return nil
}

func (c *Controller) handleUnknown(_ context.Context, msg bridge.Message) error {
	if _, ok := knownCommands[msg.Command()]; ok {
		return nil
	}

	c.notifier.Notify(models.LevelWarning, "Unknown command: "+msg.Command())
	c.respondError(msg, fmt.Errorf("unknown command %q", msg.Command()))
	return nil
}

func (c *Controller) loadCourses(ctx context.Context) error {
	token := c.session.Token()
	if token == "" {
		c.logger.Debug().Msg("not logged in, courses not loaded")
		return nil
	}

	courses, err := c.api.FetchCourses(ctx, token)
	if err != nil {
		c.handleAPIError("Failed to fetch courses", err)
		return err
	}

	html, err := RenderCourses(courses.Unarchived)
	if err != nil {
		return fmt.Errorf("render courses: %w", err)
	}

	return c.bridge.Post(models.CommandDisplayCourses, models.DisplayCourses{
		UnarchivedHTML: html,
		Unarchived:     courses.Unarchived,
		Dropped:        courses.Dropped,
	})
}

func (c *Controller) fetchGrade(ctx context.Context, hw string) (models.DisplayGrade, error) {
	details, err := c.api.FetchGradeDetail(ctx, hw)
	if err != nil {
		return models.DisplayGrade{}, err
	}

	attempts, err := c.api.FetchAttemptHistory(ctx, hw)
	if err != nil {
		return models.DisplayGrade{}, err
	}

	return models.DisplayGrade{HW: hw, GradeDetails: details, PreviousAttempts: attempts}, nil
}

// handleAPIError reports err and, when the backend rejected the token,
// logs out and asks for credentials again.
func (c *Controller) handleAPIError(prefix string, err error) {
	c.reportError(prefix, err)

	if !c.session.HandleError(c.ctx, err) {
		return
	}

	c.Reprompt()
}

// Reprompt asks the UI for credentials in the background and reloads the
// course list once the user has logged in again.
func (c *Controller) Reprompt() {
	c.spawn("reprompt", func(ctx context.Context) error {
		if err := c.session.Prompt(ctx); err != nil {
			c.reportError("Authentication failed", err)
			return err
		}
		return c.loadCourses(ctx)
	})
}

func (c *Controller) reportError(prefix string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}

	text := fmt.Sprintf("%s: %v", prefix, err)
	c.notifier.Notify(models.LevelError, text)

	if postErr := c.bridge.Post(models.CommandError, models.ErrorMessage{Message: text}); postErr != nil {
		c.logger.Debug().Err(postErr).Msg("error message not delivered to ui")
	}
}

func (c *Controller) postSessionState(state models.SessionState) {
	if err := c.bridge.Post(models.CommandSessionState, c.sessionStateMessage(state)); err != nil {
		c.logger.Debug().Err(err).Msg("session state not delivered to ui")
	}
}

func (c *Controller) sessionStateMessage(state models.SessionState) models.SessionStateMessage {
	return models.SessionStateMessage{State: state.String(), BaseURL: c.session.BaseURL()}
}

func (c *Controller) respond(msg bridge.Message, data any) {
	if msg.CorrelationID() == "" {
		return
	}
	if err := c.bridge.Respond(msg, data); err != nil {
		c.logger.Warn().Err(err).Str("command", msg.Command()).Msg("respond")
	}
}

func (c *Controller) respondError(msg bridge.Message, cause error) {
	if msg.CorrelationID() == "" {
		return
	}
	if err := c.bridge.RespondError(msg, cause); err != nil {
		c.logger.Warn().Err(err).Str("command", msg.Command()).Msg("respond")
	}
}

// spawn runs fn on a tracked goroutine unless the controller is stopped.
func (c *Controller) spawn(name string, fn func(ctx context.Context) error) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error().Str("task", name).Interface("panic", r).Msg("controller task panicked")
			}
		}()

		if err := fn(c.ctx); err != nil && c.ctx.Err() == nil {
			c.logger.Debug().Err(err).Str("task", name).Msg("controller task failed")
		}
	}()
}
