// ABOUTME: Sign-in flow: prefill remembered credentials, post them, persist on success
// ABOUTME: Failures surface as error toasts and leave navigation and storage untouched

package auth

import (
	"context"
	"strings"

	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/log"
	"github.com/mauromedda/blinko-go/internal/prefs"
)

// Storage keys for remembered credentials.
const (
	KeyUsername = "username"
	KeyPassword = "password"
)

// Client is the server surface used by sign-in.
type Client interface {
	SignIn(ctx context.Context, username, password string) (api.SignInResult, error)
	CanRegister(ctx context.Context) (bool, error)
}

// Navigator moves the UI to a path.
type Navigator interface {
	Push(path string)
}

// Notifier shows error toasts.
type Notifier interface {
	Error(msg string) string
}

// Translator resolves message keys.
type Translator interface {
	T(key string) string
}

// Flow drives the sign-in page.
type Flow struct {
	client Client
	nav    Navigator
	notify Notifier
	tr     Translator
	user   *prefs.State[string]
	pass   *prefs.State[string]
}

// NewFlow creates a flow backed by store for remembered credentials.
func NewFlow(client Client, store *prefs.Store, nav Navigator, notify Notifier, tr Translator) *Flow {
	return &Flow{
		client: client,
		nav:    nav,
		notify: notify,
		tr:     tr,
		user:   prefs.NewState(store, KeyUsername, ""),
		pass:   prefs.NewState(store, KeyPassword, ""),
	}
}

// Prefill returns the remembered credentials, empty when none.
func (f *Flow) Prefill() (username, password string) {
	return f.user.Value, f.pass.Value
}

// CanRegister reports whether the server offers sign-up. Errors read as no.
func (f *Flow) CanRegister(ctx context.Context) bool {
	ok, err := f.client.CanRegister(ctx)
	if err != nil {
		log.Debug("canRegister: %v", err)
		return false
	}
	return ok
}

// SignIn posts the trimmed credentials. On success they are remembered and
// the UI goes home. It reports whether the login was accepted.
func (f *Flow) SignIn(ctx context.Context, username, password string) bool {
	username, password = strings.TrimSpace(username), strings.TrimSpace(password)

	res, err := f.client.SignIn(ctx, username, password)
	if err != nil {
		log.Warn("sign in: %v", err)
		f.notify.Error(f.failure(api.Message(err)))
		return false
	}
	if !res.OK {
		f.notify.Error(f.failure(res.Error))
		return false
	}

	if err := f.user.Save(username); err != nil {
		log.Warn("remembering username: %v", err)
	}
	if err := f.pass.Save(password); err != nil {
		log.Warn("remembering password: %v", err)
	}
	f.nav.Push("/")
	return true
}

func (f *Flow) failure(msg string) string {
	if msg != "" {
		return msg
	}
	return f.tr.T("user-or-password-error")
}
