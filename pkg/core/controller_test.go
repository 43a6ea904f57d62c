package core_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/quill/pkg/core"
)

// mockRemote implements core.NotesService in memory. It counts calls so
// tests can prove that local validation never reaches the network, and it
// can be forced to fail with an arbitrary error.
type mockRemote struct {
	mu     sync.Mutex
	notes  []core.Note
	nextID int64
	calls  int
	err    error
	// blockCreate, when set, is received from before Create returns.
	// Used to hold a response in flight while the view is torn down.
	blockCreate chan struct{}
}

func newMockRemote(seed ...core.Note) *mockRemote {
	m := &mockRemote{notes: seed}
	for _, n := range seed {
		if int64(n.ID) > m.nextID {
			m.nextID = int64(n.ID)
		}
	}
	return m
}

func (m *mockRemote) List(ctx context.Context, token string) ([]core.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]core.Note, len(m.notes))
	copy(out, m.notes)
	return out, nil
}

func (m *mockRemote) Create(ctx context.Context, token string, draft core.Draft) (core.Note, error) {
	m.mu.Lock()
	m.calls++
	err := m.err
	block := m.blockCreate
	m.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return core.Note{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	note := core.Note{ID: core.NoteID(m.nextID), Title: draft.Title, Content: draft.Content}
	m.notes = append(m.notes, note)
	return note, nil
}

func (m *mockRemote) Update(ctx context.Context, token string, id core.NoteID, draft core.Draft) (core.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return core.Note{}, m.err
	}
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes[i].Title = draft.Title
			m.notes[i].Content = draft.Content
			return m.notes[i], nil
		}
	}
	return core.Note{}, core.ErrNotFound
}

func (m *mockRemote) Delete(ctx context.Context, token string, id core.NoteID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (m *mockRemote) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockRemote) failWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// navRecorder captures redirect instructions.
type navRecorder struct {
	mu     sync.Mutex
	routes []core.Route
}

func (n *navRecorder) Navigate(route core.Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *navRecorder) last() (core.Route, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return "", false
	}
	return n.routes[len(n.routes)-1], true
}

func setup(remote core.NotesService) (*core.Controller, *core.SessionStore, *navRecorder) {
	sessions := core.NewSessionStore(nil)
	sessions.Set("tok", core.User{ID: 1, Username: "gopher"})
	nav := &navRecorder{}
	controller := core.NewController(core.ControllerConfig{
		Remote:    remote,
		Sessions:  sessions,
		Navigator: nav,
	})
	return controller, sessions, nav
}

func TestController_AddAppendsServerRecord(t *testing.T) {
	remote := newMockRemote()
	remote.nextID = 6 // so the created note gets id 7
	controller, _, _ := setup(remote)
	ctx := context.TODO()

	if err := controller.Add(ctx, "Groceries", "Milk, eggs"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	state := controller.Snapshot()
	if len(state.Notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(state.Notes))
	}
	got := state.Notes[0]
	want := core.Note{ID: 7, Title: "Groceries", Content: "Milk, eggs"}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestController_AddRejectsEmptyDraftLocally(t *testing.T) {
	remote := newMockRemote()
	controller, _, _ := setup(remote)
	ctx := context.TODO()

	if err := controller.Add(ctx, "", "x"); err != nil {
		t.Fatalf("empty-title add must be a silent no-op, got %v", err)
	}
	if err := controller.Add(ctx, "x", "  "); err != nil {
		t.Fatalf("whitespace-content add must be a silent no-op, got %v", err)
	}

	if remote.callCount() != 0 {
		t.Errorf("validation failures must not reach the network, got %d calls", remote.callCount())
	}
	if len(controller.Snapshot().Notes) != 0 {
		t.Error("notes must be unchanged after rejected adds")
	}
}

func TestController_StartEditIsSingleSlot(t *testing.T) {
	noteA := core.Note{ID: 1, Title: "A", Content: "aaa"}
	noteB := core.Note{ID: 2, Title: "B", Content: "bbb"}
	remote := newMockRemote(noteA, noteB)
	controller, _, _ := setup(remote)

	controller.StartEdit(noteA)
	controller.StartEdit(noteB)

	state := controller.Snapshot()
	if state.EditTarget == nil || *state.EditTarget != noteB.ID {
		t.Fatalf("expected edit target %d, got %+v", noteB.ID, state.EditTarget)
	}
	if state.EditDraft == nil || state.EditDraft.Title != "B" {
		t.Errorf("switching targets must discard the prior draft, got %+v", state.EditDraft)
	}
	if remote.callCount() != 0 {
		t.Errorf("startEdit is local, got %d remote calls", remote.callCount())
	}
}

func TestController_SaveEditReplacesInPlace(t *testing.T) {
	remote := newMockRemote(
		core.Note{ID: 1, Title: "first", Content: "one"},
		core.Note{ID: 2, Title: "second", Content: "two"},
		core.Note{ID: 3, Title: "third", Content: "three"},
	)
	controller, _, _ := setup(remote)
	ctx := context.TODO()

	if err := controller.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	controller.StartEdit(core.Note{ID: 2, Title: "second", Content: "two"})
	controller.UpdateDraft("second, revised", "two and a half")
	if err := controller.SaveEdit(ctx, 2); err != nil {
		t.Fatalf("SaveEdit failed: %v", err)
	}

	state := controller.Snapshot()
	if len(state.Notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(state.Notes))
	}
	// Order preserved, middle entry replaced by the server record.
	if state.Notes[0].ID != 1 || state.Notes[1].ID != 2 || state.Notes[2].ID != 3 {
		t.Errorf("list order must be preserved, got %+v", state.Notes)
	}
	if state.Notes[1].Title != "second, revised" {
		t.Errorf("expected updated title, got %q", state.Notes[1].Title)
	}
	if state.EditTarget != nil || state.EditDraft != nil {
		t.Error("edit slot must be cleared after a successful save")
	}
}

func TestController_SaveEditRejectsEmptyDraft(t *testing.T) {
	note := core.Note{ID: 1, Title: "keep", Content: "me"}
	remote := newMockRemote(note)
	controller, _, _ := setup(remote)
	ctx := context.TODO()

	controller.StartEdit(note)
	controller.UpdateDraft("  ", "")
	if err := controller.SaveEdit(ctx, 1); err != nil {
		t.Fatalf("empty-draft save must be a silent no-op, got %v", err)
	}

	if remote.callCount() != 0 {
		t.Errorf("expected no remote call, got %d", remote.callCount())
	}
	state := controller.Snapshot()
	if state.EditTarget == nil {
		t.Error("a rejected save keeps the edit slot open")
	}
}

func TestController_CancelEdit(t *testing.T) {
	note := core.Note{ID: 1, Title: "t", Content: "c"}
	remote := newMockRemote(note)
	controller, _, _ := setup(remote)

	controller.StartEdit(note)
	controller.CancelEdit()

	state := controller.Snapshot()
	if state.EditTarget != nil || state.EditDraft != nil {
		t.Error("cancel must clear the edit slot without a network call")
	}
	if remote.callCount() != 0 {
		t.Errorf("expected no remote call, got %d", remote.callCount())
	}
}

func TestController_DeleteRemovesOnSuccess(t *testing.T) {
	remote := newMockRemote(core.Note{ID: 7, Title: "Groceries", Content: "Milk, eggs"})
	controller, _, _ := setup(remote)
	ctx := context.TODO()

	if err := controller.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := controller.Delete(ctx, 7); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if got := controller.Snapshot().Notes; len(got) != 0 {
		t.Errorf("expected empty list, got %+v", got)
	}
}

func TestController_DeleteFailureKeepsNote(t *testing.T) {
	remote := newMockRemote(core.Note{ID: 7, Title: "Groceries", Content: "Milk, eggs"})
	controller, _, _ := setup(remote)
	ctx := context.TODO()

	if err := controller.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	remote.failWith(errors.New("the server is on fire"))
	err := controller.Delete(ctx, 7)
	if err == nil {
		t.Fatal("a non-authorization failure must surface to the caller")
	}

	state := controller.Snapshot()
	if len(state.Notes) != 1 || state.Notes[0].ID != 7 {
		t.Errorf("a failed delete must leave the note visible, got %+v", state.Notes)
	}
}

func TestController_LoadReplacesWholesale(t *testing.T) {
	remote := newMockRemote(
		core.Note{ID: 1, Title: "a", Content: "1"},
		core.Note{ID: 2, Title: "b", Content: "2"},
	)
	controller, _, _ := setup(remote)
	ctx := context.TODO()

	if err := controller.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := controller.Snapshot().Notes; len(got) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(got))
	}
}

func TestController_AuthFailureIsUniform(t *testing.T) {
	seed := core.Note{ID: 7, Title: "Groceries", Content: "Milk, eggs"}

	operations := map[string]func(ctx context.Context, c *core.Controller) error{
		"load": func(ctx context.Context, c *core.Controller) error {
			return c.Load(ctx)
		},
		"add": func(ctx context.Context, c *core.Controller) error {
			return c.Add(ctx, "title", "content")
		},
		"save": func(ctx context.Context, c *core.Controller) error {
			c.StartEdit(seed)
			return c.SaveEdit(ctx, seed.ID)
		},
		"delete": func(ctx context.Context, c *core.Controller) error {
			return c.Delete(ctx, seed.ID)
		},
	}

	for name, op := range operations {
		t.Run(name, func(t *testing.T) {
			remote := newMockRemote(seed)
			controller, sessions, nav := setup(remote)
			ctx := context.TODO()

			if err := controller.Load(ctx); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			before := controller.Snapshot()

			remote.failWith(core.ErrUnauthorized)
			if err := op(ctx, controller); err != nil {
				t.Fatalf("authorization failure is recovered, not surfaced, got %v", err)
			}

			if sessions.Current().Token != "" {
				t.Error("session must be cleared on authorization failure")
			}
			if route, ok := nav.last(); !ok || route != core.RouteLogin {
				t.Errorf("expected redirect to login, got %q", route)
			}
			if got := controller.Snapshot().Notes; len(got) != len(before.Notes) {
				t.Errorf("notes must be unchanged, had %d got %d", len(before.Notes), len(got))
			}
		})
	}
}

func TestController_CloseDropsLateResponse(t *testing.T) {
	remote := newMockRemote()
	remote.blockCreate = make(chan struct{})
	controller, _, _ := setup(remote)
	ctx := context.TODO()

	result := make(chan error, 1)
	go func() {
		result <- controller.Add(ctx, "late", "response")
	}()

	// Tear the view down while the request is in flight, then let the
	// response land.
	controller.Close()
	close(remote.blockCreate)

	if err := <-result; !errors.Is(err, core.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if got := controller.Snapshot().Notes; len(got) != 0 {
		t.Errorf("a torn-down controller must not be written to, got %+v", got)
	}
}

func TestController_LocalOpsAfterCloseAreNoOps(t *testing.T) {
	remote := newMockRemote()
	controller, _, _ := setup(remote)

	controller.Close()
	controller.StartEdit(core.Note{ID: 1, Title: "t", Content: "c"})
	controller.CancelEdit()

	state := controller.Snapshot()
	if state.EditTarget != nil {
		t.Error("local transitions after Close must not mutate state")
	}
}
