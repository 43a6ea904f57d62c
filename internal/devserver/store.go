package devserver

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aretw0/quill/pkg/core"
)

var (
	errEmailTaken     = errors.New("email already in use")
	errBadCredentials = errors.New("invalid email or password")
	errBadToken       = errors.New("invalid token")
	errNoSuchNote     = errors.New("note not found")
	errNotOwner       = errors.New("not allowed")
)

type user struct {
	id       int64
	username string
	email    string
	hash     []byte
}

type record struct {
	note  core.Note
	owner int64
}

// store keeps everything in memory: users keyed by email, notes in
// insertion order, bearer tokens mapped to user IDs. One lock guards it
// all; this is a dev convenience, not a production service.
type store struct {
	mu       sync.Mutex
	nextUser int64
	nextNote int64
	users    map[string]*user
	notes    []record
	tokens   map[string]int64
}

func newStore() *store {
	return &store{
		users:  make(map[string]*user),
		tokens: make(map[string]int64),
	}
}

func (s *store) signup(username, email, password string) (*user, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return nil, "", errEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	s.nextUser++
	u := &user{id: s.nextUser, username: username, email: email, hash: hash}
	s.users[email] = u
	return u, s.issueLocked(u), nil
}

func (s *store) login(email, password string) (*user, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, "", errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
		return nil, "", errBadCredentials
	}
	return u, s.issueLocked(u), nil
}

func (s *store) authenticate(token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.tokens[token]
	if !ok {
		return 0, errBadToken
	}
	return userID, nil
}

// revoke drops a token. Exposed so tests can expire a session mid-use.
func (s *store) revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

func (s *store) listNotes(owner int64) []core.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notes []core.Note
	for _, r := range s.notes {
		if r.owner == owner {
			notes = append(notes, r.note)
		}
	}
	return notes
}

func (s *store) createNote(owner int64, draft core.Draft) core.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextNote++
	note := core.Note{ID: core.NoteID(s.nextNote), Title: draft.Title, Content: draft.Content}
	s.notes = append(s.notes, record{note: note, owner: owner})
	return note
}

func (s *store) updateNote(owner int64, id core.NoteID, draft core.Draft) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].note.ID != id {
			continue
		}
		if s.notes[i].owner != owner {
			return core.Note{}, errNotOwner
		}
		s.notes[i].note.Title = draft.Title
		s.notes[i].note.Content = draft.Content
		return s.notes[i].note, nil
	}
	return core.Note{}, errNoSuchNote
}

func (s *store) deleteNote(owner int64, id core.NoteID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].note.ID != id {
			continue
		}
		if s.notes[i].owner != owner {
			return errNotOwner
		}
		s.notes = append(s.notes[:i], s.notes[i+1:]...)
		return nil
	}
	return errNoSuchNote
}

func (s *store) issueLocked(u *user) string {
	token := uuid.NewString()
	s.tokens[token] = u.id
	return token
}
