package core

import (
	"log/slog"
	"sync"
)

// Session is the client-held proof of authentication: a bearer token and
// the identity it belongs to. The zero value means "logged out".
type Session struct {
	Token string
	User  *User
}

// LoggedIn reports whether the session carries a token. Absence of a token
// disables every authenticated operation.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// SessionStore is the single source of truth for the process-wide
// authentication state. It is constructed once and handed by reference to
// the Guard and the Controller; nothing reaches it through ambient lookup.
//
// The store does not persist: a new process starts logged out.
type SessionStore struct {
	mu      sync.RWMutex
	session Session
	logger  *slog.Logger
}

// NewSessionStore creates an empty store. The logger may be nil.
func NewSessionStore(logger *slog.Logger) *SessionStore {
	return &SessionStore{logger: logger}
}

// Set replaces the session unconditionally. The token is not validated for
// well-formedness; an empty token means "logged out" and drops the user so
// that identity is never present without a credential.
func (s *SessionStore) Set(token string, user User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		s.session = Session{}
		return
	}
	u := user
	s.session = Session{Token: token, User: &u}

	if s.logger != nil {
		s.logger.Debug("session replaced", "username", user.Username)
	}
}

// Clear drops the session. Idempotent. An operation already in flight is
// not preempted; the empty token only matters for the next remote call.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.logger != nil && s.session.LoggedIn() {
		s.logger.Debug("session cleared")
	}
	s.session = Session{}
}

// Current returns the session synchronously. The returned value is a copy;
// mutating it does not affect the store.
func (s *SessionStore) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.session
	if s.session.User != nil {
		u := *s.session.User
		out.User = &u
	}
	return out
}
