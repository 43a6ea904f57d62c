package core

import "context"

// NotesService defines the contract the client consumes from the remote
// note store. Adhering to this interface keeps the controller independent
// of the transport (REST, in-memory fake, future gRPC).
//
// Every method authenticates with the bearer token passed by the caller;
// a response indicating an invalid or expired token is surfaced as
// ErrUnauthorized regardless of which operation triggered it.
type NotesService interface {
	// List returns the full note list for the token's user, in server order.
	List(ctx context.Context, token string) ([]Note, error)

	// Create persists a new note and returns the canonical record carrying
	// the server-assigned ID.
	Create(ctx context.Context, token string, draft Draft) (Note, error)

	// Update replaces title and content of an existing note and returns
	// the authoritative stored record. ErrNotFound if the ID is unknown.
	Update(ctx context.Context, token string, id NoteID, draft Draft) (Note, error)

	// Delete removes a note by ID.
	Delete(ctx context.Context, token string, id NoteID) error
}

// Credentials is what a successful login or signup yields.
type Credentials struct {
	Token string
	User  User
}

// AuthService covers the account endpoints. These are single round trips
// with no state coordination; callers feed the result into a SessionStore.
type AuthService interface {
	Login(ctx context.Context, email, password string) (Credentials, error)
	Signup(ctx context.Context, username, email, password string) (Credentials, error)
}
