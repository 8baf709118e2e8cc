// ABOUTME: Non-interactive subcommands: login, post a markdown draft, import a backup
// ABOUTME: Each command signs in with remembered credentials since the session cookie is per process

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/auth"
	"github.com/mauromedda/blinko-go/internal/importer"
	"github.com/mauromedda/blinko-go/internal/notes"
	"github.com/mauromedda/blinko-go/internal/prefs"
	"github.com/mauromedda/blinko-go/internal/upload"
)

var (
	errSignIn     = errors.New("sign in failed")
	errEmptyDraft = errors.New("draft has no content and no attachments")
)

// backend is the server surface the subcommands use; *api.Client satisfies it.
type backend interface {
	auth.Client
	upload.Client
	importer.Client
	UpsertNote(ctx context.Context, in api.UpsertNote) (api.Note, error)
}

var _ backend = (*api.Client)(nil)

type translator interface {
	T(key string) string
}

// console reports toasts as lines on a writer. Navigation is a no-op.
type console struct{ w io.Writer }

func (c console) Error(msg string) string   { fmt.Fprintln(c.w, "error:", msg); return "" }
func (c console) Success(msg string) string { fmt.Fprintln(c.w, msg); return "" }
func (console) Push(string)                 {}

type cli struct {
	be     backend
	store  *prefs.Store
	tr     translator
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	// readPassword reads without echo; nil reads a plain line from in.
	readPassword func() (string, error)
}

func (c *cli) flow() *auth.Flow {
	msgs := console{c.errOut}
	return auth.NewFlow(c.be, c.store, msgs, msgs, c.tr)
}

// login prompts for credentials and remembers them on success.
func (c *cli) login(ctx context.Context) error {
	flow := c.flow()
	user, _ := flow.Prefill()
	r := bufio.NewReader(c.in)

	if user != "" {
		fmt.Fprintf(c.out, "%s [%s]: ", c.tr.T("username"), user)
	} else {
		fmt.Fprintf(c.out, "%s: ", c.tr.T("username"))
	}
	line, err := readLine(r)
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}
	if line != "" {
		user = line
	}

	fmt.Fprintf(c.out, "%s: ", c.tr.T("password"))
	var pass string
	if c.readPassword != nil {
		pass, err = c.readPassword()
		fmt.Fprintln(c.out)
	} else {
		pass, err = readLine(r)
	}
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	if !flow.SignIn(ctx, user, pass) {
		return errSignIn
	}
	fmt.Fprintln(c.out, c.tr.T("sign-in-success"))
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// signIn opens a session with the remembered credentials.
func (c *cli) signIn(ctx context.Context) error {
	flow := c.flow()
	user, pass := flow.Prefill()
	if user == "" {
		return errors.New(c.tr.T("not-signed-in"))
	}
	if !flow.SignIn(ctx, user, pass) {
		return errSignIn
	}
	return nil
}

// post creates a note from a markdown draft. Attachment paths in the front
// matter are relative to the draft.
func (c *cli) post(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading draft: %w", err)
	}
	meta, body, err := notes.ParseDraft(string(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var srcs []upload.Source
	for _, a := range meta.Attachments {
		if !filepath.IsAbs(a) {
			a = filepath.Join(filepath.Dir(path), a)
		}
		src, err := upload.FromPath(a)
		if err != nil {
			return err
		}
		srcs = append(srcs, src)
	}
	body = strings.TrimSpace(body)
	if body == "" && len(srcs) == 0 {
		return errEmptyDraft
	}

	if err := c.signIn(ctx); err != nil {
		return err
	}

	queue := upload.NewQueue(upload.Options{Client: c.be})
	queue.Enqueue(srcs...)
	if err := queue.Wait(ctx); err != nil {
		return fmt.Errorf("uploading attachments: %w", err)
	}

	typ := meta.NoteType()
	in := api.UpsertNote{Content: &body, Type: &typ, Attachments: queue.Attachments()}
	if meta.Pinned {
		in.IsTop = &meta.Pinned
	}
	if meta.Public {
		in.IsShare = &meta.Public
	}
	n, err := c.be.UpsertNote(ctx, in)
	if err != nil {
		if msg := api.Message(err); msg != "" {
			return fmt.Errorf("posting note: %s", msg)
		}
		return fmt.Errorf("posting note: %w", err)
	}
	fmt.Fprintf(c.out, "%s #%d\n", c.tr.T("create-successfully"), n.ID)
	return nil
}

// importFile runs a Blinko restore or Memos import and prints its progress.
func (c *cli) importFile(ctx context.Context, kind, path string) error {
	k := api.ImportKind(strings.ToLower(kind))
	if k != api.ImportBlinko && k != api.ImportMemos {
		return fmt.Errorf("unknown import kind %q (want %s or %s)", kind, api.ImportBlinko, api.ImportMemos)
	}
	if err := c.signIn(ctx); err != nil {
		return err
	}
	im := importer.New(c.be, console{c.errOut}, c.tr)
	return im.Import(ctx, k, path, func(p api.ImportProgress) {
		if p.Total > 0 {
			fmt.Fprintf(c.out, "[%d/%d] %s\n", p.Current, p.Total, p.Content)
			return
		}
		fmt.Fprintln(c.out, p.Content)
	})
}
