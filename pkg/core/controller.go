package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aretw0/lifecycle"
)

// ListState is one snapshot of the notes view. Snapshots are immutable:
// every transition produces a fresh copy, and subscribers only ever see
// copies. At most one note is in edit mode at a time.
type ListState struct {
	Notes      []Note
	EditTarget *NoteID
	EditDraft  *Draft
}

func (s ListState) clone() ListState {
	out := ListState{}
	if s.Notes != nil {
		out.Notes = make([]Note, len(s.Notes))
		copy(out.Notes, s.Notes)
	}
	if s.EditTarget != nil {
		id := *s.EditTarget
		out.EditTarget = &id
	}
	if s.EditDraft != nil {
		d := *s.EditDraft
		out.EditDraft = &d
	}
	return out
}

// Editing reports whether the given note is the current edit target.
func (s ListState) Editing(id NoteID) bool {
	return s.EditTarget != nil && *s.EditTarget == id
}

// ControllerConfig holds the collaborators of a Controller. Remote and
// Sessions are required; Navigator and Logger may be nil.
type ControllerConfig struct {
	Remote      NotesService
	Sessions    *SessionStore
	Navigator   Navigator
	Logger      *slog.Logger
	EventBuffer int // snapshot channel buffer per subscriber, default 16
}

const defaultEventBuffer = 16

// Controller owns the in-memory note list and the edit cursor. Each remote
// operation is a suspension point: the request runs without holding the
// state lock, so nothing stops a Load and an Add from being in flight at
// the same time. Whichever response lands last wins; there is no request
// sequencing. Overlapping writes resolve by last-write-wins.
//
// A response that indicates an invalid or expired token takes the same
// path regardless of the operation: the session is cleared and the
// navigator is pointed at the login view. No local state was touched
// before the check, so there is nothing to roll back.
type Controller struct {
	remote NotesService
	// sessions is read for the token on every remote call, never cached.
	sessions *SessionStore
	nav      Navigator
	logger   *slog.Logger
	buffer   int

	mu      sync.Mutex
	state   ListState
	subs    map[int]chan ListState
	nextSub int
	closed  bool
}

// NewController wires a controller. The state starts empty; call Load to
// populate it.
func NewController(cfg ControllerConfig) *Controller {
	buffer := cfg.EventBuffer
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	return &Controller{
		remote:   cfg.Remote,
		sessions: cfg.Sessions,
		nav:      cfg.Navigator,
		logger:   cfg.Logger,
		buffer:   buffer,
		subs:     make(map[int]chan ListState),
	}
}

// Load fetches the full note list and replaces the local list wholesale.
// On any failure other than an expired session the prior list is left
// untouched and the error is returned to the caller.
func (c *Controller) Load(ctx context.Context) error {
	notes, err := c.remote.List(ctx, c.token())
	if err != nil {
		return c.remoteFailure("load", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.state.Notes = notes
	c.publishLocked()
	return nil
}

// Add creates a note from title and content. An empty title or content
// (after trimming) is rejected locally: no request is sent and the state
// does not change. The client never appends a placeholder before the
// response; the server-returned record carries the only valid identity.
func (c *Controller) Add(ctx context.Context, title, content string) error {
	draft := Draft{Title: title, Content: content}
	if !draft.Valid() {
		c.debug("add rejected, empty draft")
		return nil
	}

	created, err := c.remote.Create(ctx, c.token(), draft)
	if err != nil {
		return c.remoteFailure("add", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.state.Notes = append(c.state.Notes, created)
	c.publishLocked()
	return nil
}

// StartEdit puts the note into edit mode, seeding the draft from its
// current values. Any other in-progress draft is discarded without
// confirmation; the single edit slot is the only exclusivity mechanism.
func (c *Controller) StartEdit(n Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	id := n.ID
	c.state.EditTarget = &id
	c.state.EditDraft = &Draft{Title: n.Title, Content: n.Content}
	c.publishLocked()
}

// UpdateDraft replaces the in-progress draft values. No-op when nothing is
// being edited.
func (c *Controller) UpdateDraft(title, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.EditTarget == nil {
		return
	}
	c.state.EditDraft = &Draft{Title: title, Content: content}
	c.publishLocked()
}

// SaveEdit submits the current draft for the note with the given ID. An
// empty draft is rejected locally. On success the server record replaces
// the local entry in place — the server, not the draft, is authoritative
// for the stored value — and the edit slot is cleared.
func (c *Controller) SaveEdit(ctx context.Context, id NoteID) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state.EditDraft == nil {
		c.mu.Unlock()
		return nil
	}
	draft := *c.state.EditDraft
	c.mu.Unlock()

	if !draft.Valid() {
		c.debug("save rejected, empty draft")
		return nil
	}

	updated, err := c.remote.Update(ctx, c.token(), id, draft)
	if err != nil {
		return c.remoteFailure("save", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	for i := range c.state.Notes {
		if c.state.Notes[i].ID == updated.ID {
			c.state.Notes[i] = updated
			break
		}
	}
	c.state.EditTarget = nil
	c.state.EditDraft = nil
	c.publishLocked()
	return nil
}

// CancelEdit abandons the draft without a network call.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.state.EditTarget = nil
	c.state.EditDraft = nil
	c.publishLocked()
}

// Delete removes the note remotely first. The local entry survives until
// the server confirms; a failed delete leaves the note visible.
func (c *Controller) Delete(ctx context.Context, id NoteID) error {
	if err := c.remote.Delete(ctx, c.token(), id); err != nil {
		return c.remoteFailure("delete", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	kept := c.state.Notes[:0:0]
	for _, n := range c.state.Notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	c.state.Notes = kept
	c.publishLocked()
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers a snapshot channel. The current state is delivered
// immediately, then one snapshot per transition. A subscriber that falls
// behind its buffer misses intermediate snapshots rather than blocking the
// controller. The channel closes when ctx is cancelled or the controller
// is closed.
func (c *Controller) Subscribe(ctx context.Context) <-chan ListState {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		ch := make(chan ListState)
		close(ch)
		return ch
	}
	id := c.nextSub
	c.nextSub++
	ch := make(chan ListState, c.buffer)
	c.subs[id] = ch
	ch <- c.state.clone()
	c.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		c.unsubscribe(id)
		return nil
	})

	return ch
}

// Close tears the controller down. State is never written afterwards: a
// response still in flight finds closed set and is discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
	c.debug("controller closed")
}

func (c *Controller) unsubscribe(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ch, ok := c.subs[id]; ok {
		close(ch)
		delete(c.subs, id)
	}
}

func (c *Controller) token() string {
	return c.sessions.Current().Token
}

// remoteFailure funnels every remote error through the uniform policy: an
// authorization failure clears the session and redirects to login without
// surfacing a distinct error; anything else is handed back to the caller
// with the prior state intact.
func (c *Controller) remoteFailure(op string, err error) error {
	if errors.Is(err, ErrUnauthorized) {
		c.debug("session rejected by server", "op", op)
		c.sessions.Clear()
		if c.nav != nil {
			c.nav.Navigate(RouteLogin)
		}
		return nil
	}
	return err
}

func (c *Controller) publishLocked() {
	snapshot := c.state.clone()
	for _, ch := range c.subs {
		select {
		case ch <- snapshot:
		default:
			// Subscriber buffer full; it will catch up on the next
			// transition it manages to receive.
		}
	}
}

func (c *Controller) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
