package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/term"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/internal/platform"
	"github.com/aretw0/quill/pkg/adapters/memory"
)

// shell drives the three views the way the browser client did: login and
// signup are open, the notes view is admitted by the guard on every
// navigation. One goroutine, one user, one session.
type shell struct {
	app   *quill.App
	in    *bufio.Scanner
	out   io.Writer
	route quill.Route
	quit  bool
}

func runShell(ctx context.Context) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}
	applyLogLevel(cfg)
	logger := slog.Default()

	sh := &shell{
		in:    bufio.NewScanner(os.Stdin),
		out:   os.Stdout,
		route: quill.RouteLogin,
	}

	// Redirect instructions land here: guard denials and mid-use session
	// expiry both point the shell back at the login view.
	nav := quill.NavigatorFunc(func(r quill.Route) {
		sh.route = r
		fmt.Fprintln(sh.out, "session ended, back to login")
	})

	opts := []quill.Option{
		quill.WithLogger(logger),
		quill.WithNavigator(nav),
	}
	if offline {
		svc := memory.NewService()
		opts = append(opts, quill.WithRemote(svc), quill.WithAuth(svc))
	}

	app, err := quill.New(cfg.Server, opts...)
	if err != nil {
		return err
	}
	sh.app = app
	defer app.Close()

	// Log level follows the config file while the shell runs.
	if cfgPath != "" {
		if err := platform.WatchConfig(ctx, cfgPath, logger, applyLogLevel); err != nil {
			logger.Debug("config watch unavailable", "error", err)
		}
	}

	fmt.Fprintln(sh.out, "quill — type 'help' for commands")
	for !sh.quit {
		if decision := app.Guard.Admit(sh.route); !decision.Allowed {
			sh.route = decision.RedirectTo
			continue
		}
		switch sh.route {
		case quill.RouteNotes:
			sh.notesView(ctx)
		case quill.RouteSignup:
			sh.signupView(ctx)
		default:
			sh.loginView(ctx)
		}
	}
	return nil
}

func (sh *shell) loginView(ctx context.Context) {
	line := sh.prompt("[login] (login, signup, quit)> ")
	switch line {
	case "login":
		email := sh.prompt("email: ")
		password := sh.promptSecret("password: ")
		if err := sh.app.Login(ctx, email, password); err != nil {
			fmt.Fprintf(sh.out, "login failed: %v\n", err)
			return
		}
		sh.route = quill.RouteNotes
		if err := sh.app.Notes.Load(ctx); err != nil {
			fmt.Fprintf(sh.out, "could not load notes: %v\n", err)
		}
	case "signup":
		sh.route = quill.RouteSignup
	case "quit", "exit":
		sh.quit = true
	case "", "help":
		fmt.Fprintln(sh.out, "commands: login, signup, quit")
	default:
		fmt.Fprintf(sh.out, "unknown command %q\n", line)
	}
}

func (sh *shell) signupView(ctx context.Context) {
	username := sh.prompt("username: ")
	email := sh.prompt("email: ")
	password := sh.promptSecret("password: ")
	if err := sh.app.Signup(ctx, username, email, password); err != nil {
		fmt.Fprintf(sh.out, "signup failed: %v\n", err)
	} else {
		fmt.Fprintln(sh.out, "account created, please log in")
	}
	sh.route = quill.RouteLogin
}

func (sh *shell) notesView(ctx context.Context) {
	line := sh.prompt("[notes]> ")
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "list":
		sh.printNotes(arg)
	case "add":
		title := sh.prompt("title: ")
		content := sh.prompt("content: ")
		if err := sh.app.Notes.Add(ctx, title, content); err != nil {
			fmt.Fprintf(sh.out, "add failed: %v\n", err)
		}
	case "edit":
		sh.startEdit(arg)
	case "save":
		sh.saveEdit(ctx)
	case "cancel":
		sh.app.Notes.CancelEdit()
	case "delete":
		sh.deleteNote(ctx, arg)
	case "reload":
		if err := sh.app.Notes.Load(ctx); err != nil {
			fmt.Fprintf(sh.out, "reload failed: %v\n", err)
		}
	case "whoami":
		sh.whoami()
	case "logout":
		sh.app.Logout()
		sh.route = quill.RouteLogin
	case "quit", "exit":
		sh.quit = true
	case "", "help":
		fmt.Fprintln(sh.out, "commands: list [glob], add, edit <id>, save, cancel, delete <id>, reload, whoami, logout, quit")
	default:
		fmt.Fprintf(sh.out, "unknown command %q\n", cmd)
	}
}

// printNotes lists the current snapshot, optionally filtered by a glob
// pattern matched against titles.
func (sh *shell) printNotes(pattern string) {
	state := sh.app.Notes.Snapshot()
	if len(state.Notes) == 0 {
		fmt.Fprintln(sh.out, "no notes yet, start by adding one")
		return
	}
	for _, n := range state.Notes {
		if pattern != "" {
			ok, err := doublestar.Match(pattern, n.Title)
			if err != nil {
				fmt.Fprintf(sh.out, "bad pattern %q: %v\n", pattern, err)
				return
			}
			if !ok {
				continue
			}
		}
		marker := " "
		if state.Editing(n.ID) {
			marker = "*"
		}
		fmt.Fprintf(sh.out, "%s%4d  %s — %s\n", marker, n.ID, n.Title, n.Content)
	}
}

func (sh *shell) startEdit(arg string) {
	id, ok := sh.parseID(arg)
	if !ok {
		return
	}
	state := sh.app.Notes.Snapshot()
	for _, n := range state.Notes {
		if n.ID == id {
			sh.app.Notes.StartEdit(n)
			title := sh.prompt(fmt.Sprintf("title [%s]: ", n.Title))
			content := sh.prompt(fmt.Sprintf("content [%s]: ", n.Content))
			if title == "" {
				title = n.Title
			}
			if content == "" {
				content = n.Content
			}
			sh.app.Notes.UpdateDraft(title, content)
			fmt.Fprintln(sh.out, "draft staged, 'save' to persist or 'cancel' to discard")
			return
		}
	}
	fmt.Fprintf(sh.out, "no note with id %d\n", id)
}

func (sh *shell) saveEdit(ctx context.Context) {
	state := sh.app.Notes.Snapshot()
	if state.EditTarget == nil {
		fmt.Fprintln(sh.out, "nothing is being edited")
		return
	}
	if err := sh.app.Notes.SaveEdit(ctx, *state.EditTarget); err != nil {
		fmt.Fprintf(sh.out, "save failed: %v\n", err)
	}
}

func (sh *shell) deleteNote(ctx context.Context, arg string) {
	id, ok := sh.parseID(arg)
	if !ok {
		return
	}
	if err := sh.app.Notes.Delete(ctx, id); err != nil {
		fmt.Fprintf(sh.out, "delete failed: %v\n", err)
	}
}

func (sh *shell) whoami() {
	session := sh.app.Sessions.Current()
	if session.User == nil {
		fmt.Fprintln(sh.out, "not logged in")
		return
	}
	fmt.Fprintf(sh.out, "%s <%s>\n", session.User.Username, session.User.Email)
}

func (sh *shell) parseID(arg string) (quill.NoteID, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(sh.out, "expected a note id, got %q\n", arg)
		return 0, false
	}
	return quill.NoteID(id), true
}

func (sh *shell) prompt(label string) string {
	fmt.Fprint(sh.out, label)
	if !sh.in.Scan() {
		sh.quit = true
		return ""
	}
	return strings.TrimSpace(sh.in.Text())
}

// promptSecret reads without echo when stdin is a terminal, and falls back
// to a plain read when it is piped.
func (sh *shell) promptSecret(label string) string {
	fmt.Fprint(sh.out, label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(sh.out)
		if err == nil {
			return string(secret)
		}
	}
	if !sh.in.Scan() {
		sh.quit = true
		return ""
	}
	return strings.TrimSpace(sh.in.Text())
}
