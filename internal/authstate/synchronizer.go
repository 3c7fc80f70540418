// Package authstate keeps a client process's view of the session consistent
// with the server-held session. A Synchronizer resolves the current user
// once at startup and then follows the session service's change events for
// the rest of its lifetime.
package authstate

import (
	"context"
	"log/slog"
	"sync"

	"authgate/internal/middlewares"
	"authgate/internal/models"
)

// State is the snapshot exposed to observers. Loading starts true and
// becomes false exactly once, after the first resolution of either the
// initial query or an incoming subscription event, whichever lands first.
type State struct {
	User    *models.User
	Loading bool
}

type initialResult struct {
	user *models.User
	err  error
}

// Synchronizer owns all state mutation on a single run loop, so
// subscription events apply in arrival order and there is no lock ordering
// to reason about beyond the snapshot mutex.
type Synchronizer struct {
	sessions middlewares.SessionService
	logger   *slog.Logger

	mu        sync.Mutex
	state     State
	eventSeen bool
	watchers  []chan State

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// NewSynchronizer opens the subscription and launches the initial user
// query concurrently; neither blocks the other. The synchronizer runs until
// ctx is canceled or Close is called.
func NewSynchronizer(ctx context.Context, sessions middlewares.SessionService, logger *slog.Logger) (*Synchronizer, error) {
	runCtx, cancel := context.WithCancel(ctx)

	s := &Synchronizer{
		sessions: sessions,
		logger:   logger,
		state:    State{Loading: true},
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	events, unsubscribe, err := sessions.Subscribe(runCtx)
	if err != nil {
		cancel()
		return nil, err
	}

	initial := make(chan initialResult, 1)
	go func() {
		user, err := sessions.CurrentUser(runCtx)
		initial <- initialResult{user: user, err: err}
	}()

	go s.run(runCtx, events, unsubscribe, initial)

	return s, nil
}

func (s *Synchronizer) run(ctx context.Context, events <-chan models.AuthEvent, unsubscribe func(), initial <-chan initialResult) {
	defer close(s.done)
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return

		case res := <-initial:
			initial = nil
			s.applyInitial(res)

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.applyEvent(event)
		}

		if initial == nil && events == nil {
			<-ctx.Done()
			return
		}
	}
}

// applyInitial resolves the startup query. A result arriving after any
// subscription event is stale and discarded; events always reflect a newer
// provider state than the query they raced.
func (s *Synchronizer) applyInitial(res initialResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.eventSeen {
		return
	}

	if res.err != nil {
		s.logger.Warn("initial session query failed", "error", res.err)
		res.user = nil
	}

	s.state = State{User: res.user, Loading: false}
	s.notifyLocked()
}

func (s *Synchronizer) applyEvent(event models.AuthEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.eventSeen = true
	s.state = State{User: event.User, Loading: false}
	s.notifyLocked()
}

// notifyLocked pushes the latest state to every watcher without blocking;
// a watcher that has not drained its previous value gets it replaced.
func (s *Synchronizer) notifyLocked() {
	for _, ch := range s.watchers {
		select {
		case ch <- s.state:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s.state:
			default:
			}
		}
	}
}

// Snapshot returns the current (user, loading) tuple.
func (s *Synchronizer) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Watch registers an observer channel. The current state is delivered
// immediately; later deliveries are latest-wins. The channel is valid until
// the synchronizer is closed.
func (s *Synchronizer) Watch() <-chan State {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State, 1)
	ch <- s.state
	s.watchers = append(s.watchers, ch)

	return ch
}

// Close stops the run loop and cancels the subscription. It does not return
// until the loop has exited, so no event delivered after Close mutates
// state.
func (s *Synchronizer) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
	})
}
