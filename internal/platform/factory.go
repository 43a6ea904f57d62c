package platform

import (
	"fmt"

	"github.com/aretw0/quill/pkg/adapters/rest"
	"github.com/aretw0/quill/pkg/core"
)

// New wires a client against the service at serverURL. The session store
// is constructed here, once, and shared by reference with the guard and
// the controller; nothing else holds authentication state.
//
// When a remote is injected via WithRemote, serverURL may be empty.
func New(serverURL string, opts ...Option) (*core.App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	remote := o.remote
	auth := o.auth
	if remote == nil || auth == nil {
		if serverURL == "" {
			return nil, fmt.Errorf("platform: server URL is required unless a remote is injected")
		}
		client, err := rest.NewClient(rest.Config{
			BaseURL:    serverURL,
			HTTPClient: o.httpClient,
			Logger:     o.logger,
		})
		if err != nil {
			return nil, err
		}
		if remote == nil {
			remote = client
		}
		if auth == nil {
			auth = client
		}
	}

	sessions := core.NewSessionStore(o.logger)
	buffer, _ := o.config["event_buffer"].(int)

	controller := core.NewController(core.ControllerConfig{
		Remote:      remote,
		Sessions:    sessions,
		Navigator:   o.navigator,
		Logger:      o.logger,
		EventBuffer: buffer,
	})

	return &core.App{
		Sessions: sessions,
		Guard:    core.NewGuard(sessions),
		Notes:    controller,
		Auth:     auth,
		Remote:   remote,
	}, nil
}
