package quill_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/adapters/memory"
)

// Example demonstrates wiring a client against the in-memory service,
// authenticating, and working with notes.
func Example() {
	// The in-memory adapter stands in for a real server.
	svc := memory.NewService()

	app, err := quill.New("",
		quill.WithRemote(svc),
		quill.WithAuth(svc),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	ctx := context.Background()

	// The notes view is gated until a session exists.
	if d := app.Guard.Admit(quill.RouteNotes); !d.Allowed {
		fmt.Printf("denied, redirected to %s\n", d.RedirectTo)
	}

	if err := app.Signup(ctx, "gopher", "gopher@example.com", "secret"); err != nil {
		log.Fatal(err)
	}
	if err := app.Login(ctx, "gopher@example.com", "secret"); err != nil {
		log.Fatal(err)
	}

	if err := app.Notes.Load(ctx); err != nil {
		log.Fatal(err)
	}
	if err := app.Notes.Add(ctx, "Groceries", "Milk, eggs"); err != nil {
		log.Fatal(err)
	}

	for _, n := range app.Notes.Snapshot().Notes {
		fmt.Printf("%d %s: %s\n", n.ID, n.Title, n.Content)
	}
	// Output:
	// denied, redirected to login
	// 1 Groceries: Milk, eggs
}
