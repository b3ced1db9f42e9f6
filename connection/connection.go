package connection

import (
	"context"
	"net/http"
	"sync"
)

// Connection is the abstract boundary representing one client HTTP request or
// persistent websocket session. It is owned by the transport layer for the
// duration of the request or session; resolution never outlives it.
type Connection interface {
	// Context returns the request-scoped context used for cancellation.
	Context() context.Context
	// PathParams returns the path parameters matched by the router.
	PathParams() map[string]string
	// RawQuery returns the raw, still percent-encoded query string bytes.
	RawQuery() []byte
	// Headers returns the request headers.
	Headers() http.Header
	// Cookies returns the request cookies as a name to value mapping.
	Cookies() map[string]string
	// State returns the application-wide shared state container. May be nil
	// when the application configured none; State.Snapshot is nil-safe.
	State() *State
	// User returns the value populated by an auth middleware, or
	// ErrUserNotSet when no middleware ran.
	User() (any, error)
	// Auth returns the auth value populated by an auth middleware, or
	// ErrAuthNotSet when no middleware ran.
	Auth() (any, error)
}

// Scope is the mutable part of a connection populated by upstream middleware
// before parameter resolution runs.
type Scope interface {
	SetState(*State)
	SetUser(any)
	SetAuth(any)
}

// scope carries middleware-populated values shared by both connection
// variants. User and auth are explicit optional fields with a distinct
// not-yet-populated failure mode instead of a dynamic attribute bag.
type scope struct {
	state   *State
	user    any
	userSet bool
	auth    any
	authSet bool
}

// SetState attaches the application-wide shared state container.
func (s *scope) SetState(state *State) {
	s.state = state
}

// SetUser populates the user scope value. Called by auth middleware.
func (s *scope) SetUser(user any) {
	s.user = user
	s.userSet = true
}

// SetAuth populates the auth scope value. Called by auth middleware.
func (s *scope) SetAuth(auth any) {
	s.auth = auth
	s.authSet = true
}

func (s *scope) State() *State {
	return s.state
}

func (s *scope) User() (any, error) {
	if !s.userSet {
		return nil, ErrUserNotSet
	}
	return s.user, nil
}

func (s *scope) Auth() (any, error) {
	if !s.authSet {
		return nil, ErrAuthNotSet
	}
	return s.auth, nil
}

// State is a copy-on-read container for application-wide shared values.
// Handlers receive a snapshot, never the container itself, so handler-side
// mutations cannot leak into the shared original.
type State struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewState builds a State from the given values. The input map is copied.
func NewState(values map[string]any) *State {
	s := &State{values: make(map[string]any, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Set stores a value under key.
func (s *State) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[key] = value
}

// Get returns the value stored under key.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Snapshot returns a shallow copy of the current values. Safe to call on a
// nil receiver, which yields an empty mapping.
func (s *State) Snapshot() map[string]any {
	if s == nil {
		return map[string]any{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
