package quill

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/quill/internal/platform"
	"github.com/aretw0/quill/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// NoteID is a public alias for the server-assigned note identity.
type NoteID = core.NoteID

// User is a public alias for the account identity.
type User = core.User

// Draft is a public alias for an unsaved title/content pair.
type Draft = core.Draft

// Session is a public alias for the authentication session.
type Session = core.Session

// ListState is a public alias for one snapshot of the notes view.
type ListState = core.ListState

// App is a public alias for the wired client.
type App = core.App

// Route identifies a navigable view.
type Route = core.Route

// Decision is the outcome of a navigation attempt.
type Decision = core.Decision

// Navigator is the sink for redirect instructions.
type Navigator = core.Navigator

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc = core.NavigatorFunc

// NotesService is the remote note-store contract.
type NotesService = core.NotesService

// AuthService is the account-endpoints contract.
type AuthService = core.AuthService

const (
	RouteLogin  = core.RouteLogin
	RouteSignup = core.RouteSignup
	RouteNotes  = core.RouteNotes
)

// Common errors.
var (
	ErrUnauthorized = core.ErrUnauthorized
	ErrNotFound     = core.ErrNotFound
	ErrClosed       = core.ErrClosed
)

// --- Configuration ---

// Option defines a functional option for configuring the client.
type Option = platform.Option

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithHTTPClient sets the transport used by the REST adapter.
func WithHTTPClient(client *http.Client) Option {
	return platform.WithHTTPClient(client)
}

// WithRemote allows injecting a custom note-service adapter.
func WithRemote(remote core.NotesService) Option {
	return platform.WithRemote(remote)
}

// WithAuth allows injecting a custom auth-service adapter.
func WithAuth(auth core.AuthService) Option {
	return platform.WithAuth(auth)
}

// WithNavigator sets the redirect sink for guard denials and session
// expiry.
func WithNavigator(nav core.Navigator) Option {
	return platform.WithNavigator(nav)
}

// WithEventBuffer sets the per-subscriber snapshot buffer size.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// --- Factory ---

// New wires a client App against the note service at serverURL.
func New(serverURL string, opts ...Option) (*core.App, error) {
	return platform.New(serverURL, opts...)
}
