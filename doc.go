// Package quill is the Composition Root for the quill client.
//
// It connects the session-gated client state machine (Domain Layer) with
// the transport adapters (REST, in-memory) using the Hexagonal
// Architecture pattern.
//
// Philosophy:
//
// Quill is a terminal client for a personal note-taking service. The core
// is a small state machine: a process-wide SessionStore holds the bearer
// token, a Guard admits or denies navigation into protected views, and a
// Controller owns the note list and edit cursor, reconciling local state
// against the authoritative remote store. Everything else is presentation.
//
// Features:
//
//   - **Hexagonal Architecture**: the controller consumes a NotesService
//     port; REST and in-memory adapters are interchangeable.
//   - **Explicit dependency injection**: the SessionStore is built once
//     and passed by reference; no ambient state.
//   - **Observable state**: every transition publishes an immutable
//     ListState snapshot to subscribers; slow consumers never block a
//     transition.
//   - **Uniform session-expiry policy**: any remote call rejected with an
//     authorization failure clears the session and redirects to login.
//   - **Authoritative server**: no optimistic placeholders; the
//     server-returned record is the only thing that enters the list.
//
// Usage:
//
//	// Wire a client with functional options
//	app, err := quill.New("http://localhost:8081",
//		quill.WithLogger(logger),
//	)
//
//	// Authenticate and load the notes view
//	err = app.Login(ctx, "gopher@example.com", "secret")
//	err = app.Notes.Load(ctx)
package quill
