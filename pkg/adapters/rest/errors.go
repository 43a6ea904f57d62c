package rest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response that is neither an authorization failure
// nor a missing note. It preserves the status code and whatever message
// the server offered.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rest: server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("rest: server returned %d: %s", e.StatusCode, e.Message)
}

// newAPIError extracts the {"error": "..."} shape the service uses, or
// falls back to the raw body.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	message := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			message = payload.Error
		} else {
			message = payload.Message
		}
	}
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	return &APIError{StatusCode: status, Message: message}
}
