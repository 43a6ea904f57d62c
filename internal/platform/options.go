package platform

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/quill/pkg/core"
)

// options holds the internal configuration for the quill client.
type options struct {
	remote     core.NotesService
	auth       core.AuthService
	navigator  core.Navigator
	logger     *slog.Logger
	httpClient *http.Client
	config     map[string]interface{}
}

// Option defines a functional option for configuring the client.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: make(map[string]interface{}),
	}
}

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHTTPClient sets the transport used by the REST adapter. Useful for
// timeouts and for test doubles.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithRemote injects a custom note-service adapter. If provided, the
// default REST adapter is skipped.
func WithRemote(remote core.NotesService) Option {
	return func(o *options) {
		o.remote = remote
	}
}

// WithAuth injects a custom auth-service adapter.
func WithAuth(auth core.AuthService) Option {
	return func(o *options) {
		o.auth = auth
	}
}

// WithNavigator sets the redirect sink. The UI layer supplies this; tests
// usually pass a recording stub.
func WithNavigator(nav core.Navigator) Option {
	return func(o *options) {
		o.navigator = nav
	}
}

// WithEventBuffer sets the per-subscriber snapshot buffer size.
// Zero means default.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}
