package rest

import (
	"github.com/aretw0/introspection"
)

// ClientState exposes internal state for observability.
type ClientState struct {
	BaseURL  string `json:"base_url"`
	Requests int64  `json:"requests"`
}

// State implements introspection.Introspectable.
func (c *Client) State() any {
	return ClientState{
		BaseURL:  c.baseURL,
		Requests: c.requests.Load(),
	}
}

// ComponentType implements introspection.Component.
func (c *Client) ComponentType() string {
	return "rest-client"
}

var _ introspection.Introspectable = (*Client)(nil)
var _ introspection.Component = (*Client)(nil)
