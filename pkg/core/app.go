package core

import "context"

// App bundles the wired components of one client process: the session
// store, the guard and controller that share it, and the remote services
// everything talks to. Construct one via the platform factory.
type App struct {
	Sessions *SessionStore
	Guard    *Guard
	Notes    *Controller
	Auth     AuthService
	Remote   NotesService
}

// Login authenticates and installs the resulting session. The request
// itself is a single round trip with no state coordination.
func (a *App) Login(ctx context.Context, email, password string) error {
	creds, err := a.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.Sessions.Set(creds.Token, creds.User)
	return nil
}

// Signup registers an account. Fire and forget: the server does return
// credentials, but the flow sends the user through login, so they are
// discarded here.
func (a *App) Signup(ctx context.Context, username, email, password string) error {
	_, err := a.Auth.Signup(ctx, username, email, password)
	return err
}

// Logout clears the session. The notes view is denied on the next
// navigation attempt.
func (a *App) Logout() {
	a.Sessions.Clear()
}

// Close tears down the controller. In-flight responses are discarded.
func (a *App) Close() {
	a.Notes.Close()
}
