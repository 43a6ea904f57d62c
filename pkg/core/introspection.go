package core

import (
	"github.com/aretw0/introspection"
)

// ControllerState exposes internal state for observability.
type ControllerState struct {
	NoteCount   int  `json:"note_count"`
	Editing     bool `json:"editing"`
	Subscribers int  `json:"subscribers"`
	Closed      bool `json:"closed"`
	EventBuffer int  `json:"event_buffer"`
}

// State implements introspection.Introspectable.
func (c *Controller) State() any {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ControllerState{
		NoteCount:   len(c.state.Notes),
		Editing:     c.state.EditTarget != nil,
		Subscribers: len(c.subs),
		Closed:      c.closed,
		EventBuffer: c.buffer,
	}
}

// ComponentType implements introspection.Component.
func (c *Controller) ComponentType() string {
	return "note-controller"
}

var _ introspection.Introspectable = (*Controller)(nil)
var _ introspection.Component = (*Controller)(nil)

// SessionState exposes the session store for observability. The token is
// deliberately absent.
type SessionState struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
}

// State implements introspection.Introspectable.
func (s *SessionStore) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := SessionState{LoggedIn: s.session.LoggedIn()}
	if s.session.User != nil {
		state.Username = s.session.User.Username
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *SessionStore) ComponentType() string {
	return "session-store"
}

var _ introspection.Introspectable = (*SessionStore)(nil)
var _ introspection.Component = (*SessionStore)(nil)
