package core

import "strings"

// NoteID is the server-assigned note identity. The client treats it as
// opaque: it never constructs one for a note that has not been persisted.
type NoteID int64

// Note is the central entity of the domain as it appears on the wire.
type Note struct {
	ID      NoteID `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// User identifies the authenticated account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Draft holds the editable title/content pair of a note before the server
// has confirmed it.
type Draft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Valid reports whether both fields are non-empty after trimming whitespace.
// Invalid drafts never leave the client.
func (d Draft) Valid() bool {
	return strings.TrimSpace(d.Title) != "" && strings.TrimSpace(d.Content) != ""
}
