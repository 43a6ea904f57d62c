// Package rest implements the remote note-service ports over HTTP/JSON.
//
// All protected endpoints authenticate with an Authorization: Bearer
// header. A 401/403 response maps to core.ErrUnauthorized, a 404 to
// core.ErrNotFound; any other non-2xx status surfaces as an *APIError so
// callers can leave local state untouched and report the failure.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/aretw0/quill/pkg/core"
)

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the root of the note service (e.g. "http://localhost:8081").
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. May be nil.
	Logger *slog.Logger
}

// Client talks to the note service. It is stateless with respect to the
// session: the bearer token is passed per call, read from the session
// store by the controller at request time.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	requests   atomic.Int64
}

// NewClient validates the base URL and builds a client.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("rest: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("rest: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     config.Logger,
	}, nil
}

// List implements core.NotesService.
func (c *Client) List(ctx context.Context, token string) ([]core.Note, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/notes", token, nil)
	if err != nil {
		return nil, err
	}
	var notes []core.Note
	if err := json.Unmarshal(body, &notes); err != nil {
		return nil, fmt.Errorf("rest: failed to parse note list: %w", err)
	}
	return notes, nil
}

// Create implements core.NotesService.
func (c *Client) Create(ctx context.Context, token string, draft core.Draft) (core.Note, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/notes", token, draft)
	if err != nil {
		return core.Note{}, err
	}
	var note core.Note
	if err := json.Unmarshal(body, &note); err != nil {
		return core.Note{}, fmt.Errorf("rest: failed to parse created note: %w", err)
	}
	return note, nil
}

// Update implements core.NotesService.
func (c *Client) Update(ctx context.Context, token string, id core.NoteID, draft core.Draft) (core.Note, error) {
	body, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/notes/%d", id), token, draft)
	if err != nil {
		return core.Note{}, err
	}
	var note core.Note
	if err := json.Unmarshal(body, &note); err != nil {
		return core.Note{}, fmt.Errorf("rest: failed to parse updated note: %w", err)
	}
	return note, nil
}

// Delete implements core.NotesService. The ack body is discarded.
func (c *Client) Delete(ctx context.Context, token string, id core.NoteID) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/notes/%d", id), token, nil)
	return err
}

var _ core.NotesService = (*Client)(nil)

// authPayload is the flat object the auth endpoints return.
type authPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

func (p authPayload) credentials() core.Credentials {
	return core.Credentials{
		Token: p.Token,
		User:  core.User{ID: p.ID, Username: p.Username, Email: p.Email},
	}
}

// Login implements core.AuthService.
func (c *Client) Login(ctx context.Context, email, password string) (core.Credentials, error) {
	request := map[string]string{"email": email, "password": password}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", "", request)
	if err != nil {
		return core.Credentials{}, fmt.Errorf("rest: login failed: %w", err)
	}
	var payload authPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return core.Credentials{}, fmt.Errorf("rest: failed to parse login response: %w", err)
	}
	return payload.credentials(), nil
}

// Signup implements core.AuthService.
func (c *Client) Signup(ctx context.Context, username, email, password string) (core.Credentials, error) {
	request := map[string]string{"username": username, "email": email, "password": password}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/auth/signup", "", request)
	if err != nil {
		return core.Credentials{}, fmt.Errorf("rest: signup failed: %w", err)
	}
	var payload authPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return core.Credentials{}, fmt.Errorf("rest: failed to parse signup response: %w", err)
	}
	return payload.credentials(), nil
}

var _ core.AuthService = (*Client)(nil)

// doRequest performs an HTTP request and returns the response body. On
// 2xx, returns the body. Status codes are folded into the error taxonomy
// here so the controller never sees HTTP.
func (c *Client) doRequest(ctx context.Context, method, path, token string, requestBody any) ([]byte, error) {
	requestURL := c.baseURL + path

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("rest: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("rest: failed to create request: %w", err)
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	c.requests.Add(1)
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("rest: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("rest: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	if c.logger != nil {
		c.logger.Debug("request rejected",
			"method", method, "path", path, "status", response.StatusCode)
	}

	// 401/403 on a protected call means the session is gone. The auth
	// endpoints carry no token; their 401 is a credential problem, not a
	// session one, and stays an APIError.
	switch response.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if token != "" {
			return nil, fmt.Errorf("rest: %s %s: %w", method, path, core.ErrUnauthorized)
		}
	case http.StatusNotFound:
		return nil, fmt.Errorf("rest: %s %s: %w", method, path, core.ErrNotFound)
	}

	return nil, newAPIError(response.StatusCode, responseBody)
}
