package authstate

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"authgate/internal/metrics"
	"authgate/internal/middlewares"
	"authgate/internal/models"
)

// GenericActionError is the only failure message auth actions surface.
// Provider diagnostics are logged, never returned, so provider-internal
// detail cannot leak to the UI layer.
const GenericActionError = "An error occurred"

var ErrActionFailed = errors.New(GenericActionError)

// Actions are the one-shot login, signup and logout operations. Each sets a
// submitting flag for its duration and never retries; a failed action
// requires explicit re-submission. Navigation after success belongs to the
// caller, and the synchronizer's user updates only via the subscription.
type Actions struct {
	sessions middlewares.SessionService
	logger   *slog.Logger

	mu         sync.Mutex
	submitting bool
	lastError  string
}

func NewActions(sessions middlewares.SessionService, logger *slog.Logger) *Actions {
	return &Actions{
		sessions: sessions,
		logger:   logger,
	}
}

func (a *Actions) Login(ctx context.Context, email, password string, write middlewares.CookieWriter) error {
	a.begin()
	defer a.end()

	if err := a.sessions.SignIn(ctx, email, password, write); err != nil {
		a.fail(metrics.ActionSignIn, err)
		return ErrActionFailed
	}

	metrics.AuthActionsTotal.WithLabelValues(metrics.ActionSignIn, metrics.OutcomeSuccess).Inc()
	return nil
}

func (a *Actions) SignUp(ctx context.Context, email, password string, profile models.ProfileFields, write middlewares.CookieWriter) error {
	a.begin()
	defer a.end()

	if err := a.sessions.SignUp(ctx, email, password, profile, write); err != nil {
		a.fail(metrics.ActionSignUp, err)
		return ErrActionFailed
	}

	metrics.AuthActionsTotal.WithLabelValues(metrics.ActionSignUp, metrics.OutcomeSuccess).Inc()
	return nil
}

func (a *Actions) Logout(ctx context.Context, write middlewares.CookieWriter) error {
	a.begin()
	defer a.end()

	if err := a.sessions.SignOut(ctx, write); err != nil {
		a.fail(metrics.ActionSignOut, err)
		return ErrActionFailed
	}

	metrics.AuthActionsTotal.WithLabelValues(metrics.ActionSignOut, metrics.OutcomeSuccess).Inc()
	return nil
}

func (a *Actions) Submitting() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.submitting
}

// Err returns the last action's error message, empty after a success or
// while no action has run.
func (a *Actions) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastError
}

func (a *Actions) begin() {
	a.mu.Lock()
	a.submitting = true
	a.lastError = ""
	a.mu.Unlock()
}

func (a *Actions) end() {
	a.mu.Lock()
	a.submitting = false
	a.mu.Unlock()
}

func (a *Actions) fail(action string, err error) {
	a.logger.Warn("auth action failed", "action", action, "error", err)
	metrics.AuthActionsTotal.WithLabelValues(action, metrics.OutcomeError).Inc()

	a.mu.Lock()
	a.lastError = GenericActionError
	a.mu.Unlock()
}
