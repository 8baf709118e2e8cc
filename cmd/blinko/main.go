// ABOUTME: CLI entry point for blinko with terminal background fix applied first
// ABOUTME: Loads config and local storage, then runs a subcommand or the interactive client

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	// termfix must be imported before any package that imports bubbletea so
	// lipgloss never sends the OSC 10/11 background query.
	"github.com/mauromedda/blinko-go/internal/termfix"

	"golang.org/x/term"

	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/config"
	"github.com/mauromedda/blinko-go/internal/eventbus"
	"github.com/mauromedda/blinko-go/internal/i18n"
	"github.com/mauromedda/blinko-go/internal/log"
	"github.com/mauromedda/blinko-go/internal/nav"
	"github.com/mauromedda/blinko-go/internal/prefs"
	"github.com/mauromedda/blinko-go/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("blinko %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads settings and storage and dispatches to the selected command.
func run(args cliArgs) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	ov := args.overrides()
	settings, err := config.Load(cwd, ov)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.SetLevel(log.ParseLevel(settings.LogLevel))

	if err := config.EnsureDir(config.GlobalDir()); err != nil {
		return fmt.Errorf("creating %s: %w", config.GlobalDir(), err)
	}
	store, err := prefs.Open(config.StorageFile())
	if err != nil {
		return fmt.Errorf("opening local storage: %w", err)
	}
	applyStored(settings, store, ov)

	client, err := api.New(settings.Endpoint, settings.Timeout)
	if err != nil {
		return err
	}
	cat, err := i18n.New(settings.Locale)
	if err != nil {
		return fmt.Errorf("loading messages: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := &cli{
		be:     client,
		store:  store,
		tr:     cat,
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		c.readPassword = func() (string, error) {
			b, err := term.ReadPassword(fd)
			return string(b), err
		}
	}

	switch cmd := args.command(); cmd {
	case "":
		return runUI(cwd, ov, settings, store, client, cat)
	case "login":
		return c.login(ctx)
	case "post":
		if len(args.rest) != 2 {
			return errors.New("usage: blinko post <file.md>")
		}
		return c.post(ctx, args.rest[1])
	case "import":
		if len(args.rest) != 3 {
			return errors.New("usage: blinko import <blinko|memos> <file>")
		}
		return c.importFile(ctx, args.rest[1], args.rest[2])
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// applyStored lets choices saved from the settings page win over config
// files. Explicit flags still win over both.
func applyStored(s *config.Settings, store *prefs.Store, ov config.Overrides) {
	if v := store.GetString(tui.PrefTheme); v != "" && ov.Theme == "" {
		s.Theme = v
	}
	if v := store.GetString(nav.KeyLocale); v != "" && ov.Locale == "" {
		s.Locale = v
	}
}

// runUI starts the interactive client. Logs go to a file while the
// alternate screen is up.
func runUI(cwd string, ov config.Overrides, settings *config.Settings, store *prefs.Store, client *api.Client, cat *i18n.Catalog) error {
	closeLog, err := log.OpenFile(config.LogFile())
	if err != nil {
		return err
	}
	defer closeLog()

	tui.SetTheme(settings.Theme)
	termfix.SetTheme(settings.Theme)

	hub := eventbus.NewHub()
	w := config.NewWatcher(cwd, ov, func(s *config.Settings) {
		log.Debug("config reloaded: theme=%s locale=%s", s.Theme, s.Locale)
		eventbus.Emit(hub, tui.SettingsReloaded, s)
	})
	w.Start()
	defer w.Stop()

	return tui.Run(tui.AppDeps{
		Backend:  client,
		Settings: settings,
		Prefs:    store,
		Hub:      hub,
		Catalog:  cat,
		Version:  version,
	})
}
