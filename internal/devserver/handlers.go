package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/aretw0/quill/pkg/core"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the flat shape the original auth endpoints return.
type authResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	u, token, err := s.store.signup(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			s.writeError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	s.logger.Info("account created", "username", u.username, "email", u.email)
	s.writeJSON(w, http.StatusOK, authResponse{ID: u.id, Username: u.username, Email: u.email, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	u, token, err := s.store.login(req.Email, req.Password)
	if err != nil {
		s.writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	s.logger.Debug("login", "email", u.email)
	s.writeJSON(w, http.StatusOK, authResponse{ID: u.id, Username: u.username, Email: u.email, Token: token})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	owner := r.Context().Value(userKey).(int64)
	notes := s.store.listNotes(owner)
	if notes == nil {
		notes = []core.Note{}
	}
	s.writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	owner := r.Context().Value(userKey).(int64)

	var draft core.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	note := s.store.createNote(owner, draft)
	s.writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	owner := r.Context().Value(userKey).(int64)
	id := pathID(r)

	var draft core.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	note, err := s.store.updateNote(owner, id, draft)
	switch {
	case errors.Is(err, errNoSuchNote):
		s.writeError(w, http.StatusNotFound, "note not found")
	case errors.Is(err, errNotOwner):
		s.writeError(w, http.StatusForbidden, "Not allowed")
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, "update failed")
	default:
		s.writeJSON(w, http.StatusOK, note)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	owner := r.Context().Value(userKey).(int64)
	id := pathID(r)

	err := s.store.deleteNote(owner, id)
	switch {
	case errors.Is(err, errNoSuchNote):
		s.writeError(w, http.StatusNotFound, "note not found")
	case errors.Is(err, errNotOwner):
		s.writeError(w, http.StatusForbidden, "Not allowed")
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, "delete failed")
	default:
		s.writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted"})
	}
}

func pathID(r *http.Request) core.NoteID {
	// The route pattern guarantees digits.
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return core.NoteID(id)
}
