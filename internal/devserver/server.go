// Package devserver is a self-contained implementation of the note
// service's wire contract, for local development and end-to-end tests.
// State lives in memory and dies with the process.
package devserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type contextKey string

const userKey contextKey = "user"

// Server serves the /api surface of the note service.
type Server struct {
	store  *store
	logger *slog.Logger
}

// New creates a Server. The logger may be nil.
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: newStore(), logger: logger}
}

// Router builds the route table. Protected routes pass through the bearer
// token middleware; auth routes do not.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/auth/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)

	notes := r.PathPrefix("/api/notes").Subrouter()
	notes.Use(s.requireToken)
	notes.HandleFunc("", s.handleList).Methods(http.MethodGet)
	notes.HandleFunc("", s.handleCreate).Methods(http.MethodPost)
	notes.HandleFunc("/{id:[0-9]+}", s.handleUpdate).Methods(http.MethodPut)
	notes.HandleFunc("/{id:[0-9]+}", s.handleDelete).Methods(http.MethodDelete)

	return r
}

// Revoke invalidates a previously issued token. Test hook for simulating
// session expiry between requests.
func (s *Server) Revoke(token string) {
	s.store.revoke(token)
}

// requireToken admits requests carrying a valid "Authorization: Bearer"
// header and rejects everything else with 403, matching what the client
// treats as session expiry.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, http.StatusForbidden, "missing bearer token")
			return
		}
		userID, err := s.store.authenticate(token)
		if err != nil {
			s.writeError(w, http.StatusForbidden, "invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
