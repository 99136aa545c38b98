// Package session holds the locally logged-in user for the lifetime of the process.
//
// A [Store] is installed into a [context.Context] by the program entry point with [NewContext].
// Components that read or change the session resolve it with [FromContext] when they are constructed,
// so a component built outside of a provider fails immediately with [ErrNoProvider] instead of at first use.
//
// Nothing is persisted and no network calls are made; logging in only toggles UI state.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/shared"
)

// ErrNoProvider is returned when no [Store] has been installed in the context.
var ErrNoProvider = fmt.Errorf("%w: session must be used within a session provider", shared.ErrConfiguration)

type contextKey struct{}

// Store holds at most one [models.SessionUser].
type Store struct {
	mu   sync.RWMutex
	user *models.SessionUser
}

// New returns an empty, logged-out store.
func New() *Store {
	return &Store{}
}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the store installed by [NewContext], or [ErrNoProvider].
func FromContext(ctx context.Context) (*Store, error) {
	s, ok := ctx.Value(contextKey{}).(*Store)
	if !ok || s == nil {
		return nil, ErrNoProvider
	}
	return s, nil
}

// Login sets the current user, replacing any existing session.
func (s *Store) Login(user models.SessionUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

// Logout clears the current user.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// User returns the current user and whether one is logged in.
func (s *Store) User() (models.SessionUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.SessionUser{}, false
	}
	return *s.user, true
}

// LoggedIn reports whether a user is set.
func (s *Store) LoggedIn() bool {
	_, ok := s.User()
	return ok
}
