// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --endpoint, --locale, --theme, --verbose, --version before the subcommand

package main

import (
	"flag"
	"io"

	"github.com/mauromedda/blinko-go/internal/config"
)

type cliArgs struct {
	endpoint string
	locale   string
	theme    string
	verbose  bool
	version  bool
	rest     []string
}

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("blinko", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&args.endpoint, "endpoint", "", "Blinko server URL (e.g., http://127.0.0.1:1111)")
	fs.StringVar(&args.locale, "locale", "", "UI language (en, zh, ...)")
	fs.StringVar(&args.theme, "theme", "", "Color theme: dark or light")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.Usage = func() {
		io.WriteString(stderr, "usage: blinko [flags] [login | post <file.md> | import <blinko|memos> <file>]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	args.rest = fs.Args()
	return args, nil
}

// command returns the subcommand name, empty for the interactive UI.
func (a cliArgs) command() string {
	if len(a.rest) == 0 {
		return ""
	}
	return a.rest[0]
}

func (a cliArgs) overrides() config.Overrides {
	return config.Overrides{
		Endpoint: a.endpoint,
		Locale:   a.locale,
		Theme:    a.theme,
		Verbose:  a.verbose,
	}
}
