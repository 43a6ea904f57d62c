package core

// Route identifies a navigable view.
type Route string

const (
	RouteLogin  Route = "login"
	RouteSignup Route = "signup"
	RouteNotes  Route = "notes"
)

// Decision is the outcome of a navigation attempt. When Allowed is false
// the caller must render nothing of the target view and navigate to
// RedirectTo instead.
type Decision struct {
	Allowed    bool
	RedirectTo Route
}

// Navigator is the sink for redirect instructions. The UI layer implements
// it; the Guard and the Controller only emit intents.
type Navigator interface {
	Navigate(route Route)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route Route)

func (f NavigatorFunc) Navigate(route Route) { f(route) }

// Guard admits or denies navigation based on the current session. The
// route table maps each route to its required-session predicate; the
// session is re-read on every Admit call, never cached, so a session
// cleared mid-use denies the very next navigation.
type Guard struct {
	sessions *SessionStore
	table    map[Route]bool
}

// NewGuard builds a guard over the default route table: the notes view
// requires a session, login and signup do not.
func NewGuard(sessions *SessionStore) *Guard {
	return &Guard{
		sessions: sessions,
		table: map[Route]bool{
			RouteLogin:  false,
			RouteSignup: false,
			RouteNotes:  true,
		},
	}
}

// Admit evaluates a navigation attempt. Unknown routes fall through to the
// login view, mirroring the catch-all route of the original navigation.
func (g *Guard) Admit(route Route) Decision {
	required, known := g.table[route]
	if !known {
		return Decision{Allowed: false, RedirectTo: RouteLogin}
	}
	if required && !g.sessions.Current().LoggedIn() {
		return Decision{Allowed: false, RedirectTo: RouteLogin}
	}
	return Decision{Allowed: true}
}
