// Package memory implements the note-service ports in process memory.
// It backs the offline demo mode of the CLI and the integration tests;
// it mimics the wire contract's failure semantics (unauthorized tokens,
// unknown IDs) without a network in the way.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/quill/pkg/core"
)

type account struct {
	user     core.User
	password string
	notes    []core.Note
}

// Service holds accounts, notes and issued tokens. Tokens are uuids,
// valid until Revoke.
type Service struct {
	mu       sync.Mutex
	nextUser int64
	nextNote int64
	accounts map[string]*account // keyed by email
	tokens   map[string]string   // token -> email
}

// NewService creates an empty service.
func NewService() *Service {
	return &Service{
		accounts: make(map[string]*account),
		tokens:   make(map[string]string),
	}
}

// Signup implements core.AuthService.
func (s *Service) Signup(ctx context.Context, username, email, password string) (core.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[email]; exists {
		return core.Credentials{}, fmt.Errorf("memory: email already in use")
	}
	s.nextUser++
	acct := &account{
		user:     core.User{ID: s.nextUser, Username: username, Email: email},
		password: password,
	}
	s.accounts[email] = acct
	return s.issueLocked(acct), nil
}

// Login implements core.AuthService.
func (s *Service) Login(ctx context.Context, email, password string) (core.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[email]
	if !ok || acct.password != password {
		return core.Credentials{}, fmt.Errorf("memory: invalid email or password")
	}
	return s.issueLocked(acct), nil
}

// Revoke invalidates a token. Subsequent calls carrying it fail with
// core.ErrUnauthorized, which is how tests trigger the session-expiry path.
func (s *Service) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// List implements core.NotesService.
func (s *Service) List(ctx context.Context, token string) ([]core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	notes := make([]core.Note, len(acct.notes))
	copy(notes, acct.notes)
	return notes, nil
}

// Create implements core.NotesService.
func (s *Service) Create(ctx context.Context, token string, draft core.Draft) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.authenticateLocked(token)
	if err != nil {
		return core.Note{}, err
	}
	s.nextNote++
	note := core.Note{ID: core.NoteID(s.nextNote), Title: draft.Title, Content: draft.Content}
	acct.notes = append(acct.notes, note)
	return note, nil
}

// Update implements core.NotesService.
func (s *Service) Update(ctx context.Context, token string, id core.NoteID, draft core.Draft) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.authenticateLocked(token)
	if err != nil {
		return core.Note{}, err
	}
	for i := range acct.notes {
		if acct.notes[i].ID == id {
			acct.notes[i].Title = draft.Title
			acct.notes[i].Content = draft.Content
			return acct.notes[i], nil
		}
	}
	return core.Note{}, core.ErrNotFound
}

// Delete implements core.NotesService.
func (s *Service) Delete(ctx context.Context, token string, id core.NoteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.authenticateLocked(token)
	if err != nil {
		return err
	}
	for i := range acct.notes {
		if acct.notes[i].ID == id {
			acct.notes = append(acct.notes[:i], acct.notes[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

var _ core.NotesService = (*Service)(nil)
var _ core.AuthService = (*Service)(nil)

func (s *Service) issueLocked(acct *account) core.Credentials {
	token := uuid.NewString()
	s.tokens[token] = acct.user.Email
	return core.Credentials{Token: token, User: acct.user}
}

func (s *Service) authenticateLocked(token string) (*account, error) {
	email, ok := s.tokens[token]
	if !ok {
		return nil, core.ErrUnauthorized
	}
	acct, ok := s.accounts[email]
	if !ok {
		return nil, core.ErrUnauthorized
	}
	return acct, nil
}
