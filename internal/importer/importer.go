// ABOUTME: Import settings: restore a .bko backup or import a Memos .db file
// ABOUTME: Validates the extension, uploads the file, then follows the server's progress stream

package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/log"
)

// ErrWrongKind is returned when the file extension does not match the import kind.
var ErrWrongKind = errors.New("file does not match import kind")

// Client is the server surface used by imports.
type Client interface {
	Upload(ctx context.Context, name string, r io.Reader) (api.UploadResult, error)
	StreamImport(ctx context.Context, kind api.ImportKind, filePath string, fn func(api.ImportProgress)) error
}

// Notifier reports outcomes to the user.
type Notifier interface {
	Success(msg string) string
	Error(msg string) string
}

// Translator resolves message keys.
type Translator interface {
	T(key string) string
}

type kindRule struct {
	ext      string
	errorKey string
}

var rules = map[api.ImportKind]kindRule{
	api.ImportBlinko: {ext: ".bko", errorKey: "not-a-bko-file"},
	api.ImportMemos:  {ext: ".db", errorKey: "not-a-memos-db-file"},
}

// Importer runs imports.
type Importer struct {
	client Client
	notify Notifier
	tr     Translator
}

// New creates an Importer.
func New(client Client, notify Notifier, tr Translator) *Importer {
	return &Importer{client: client, notify: notify, tr: tr}
}

// Extension returns the file extension kind accepts.
func Extension(kind api.ImportKind) string {
	return rules[kind].ext
}

// Import uploads path and runs the kind import, calling progress for every
// stream line. progress may be nil.
func (im *Importer) Import(ctx context.Context, kind api.ImportKind, path string, progress func(api.ImportProgress)) error {
	rule, ok := rules[kind]
	if !ok {
		return fmt.Errorf("unknown import kind %q", kind)
	}
	name := filepath.Base(path)
	if !strings.HasSuffix(strings.ToLower(name), rule.ext) {
		im.notify.Error(im.tr.T(rule.errorKey))
		return fmt.Errorf("%s: %w", name, ErrWrongKind)
	}

	f, err := os.Open(path)
	if err != nil {
		im.notify.Error(err.Error())
		return fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	up, err := im.client.Upload(ctx, name, f)
	if err != nil {
		im.notify.Error(im.message(err))
		return fmt.Errorf("uploading %s: %w", name, err)
	}
	log.Info("import %s: uploaded %s as %s", kind, name, up.FilePath)

	var last api.ImportProgress
	err = im.client.StreamImport(ctx, kind, up.FilePath, func(p api.ImportProgress) {
		last = p
		if progress != nil {
			progress(p)
		}
	})
	if err != nil {
		im.notify.Error(im.message(err))
		return fmt.Errorf("import %s: %w", kind, err)
	}
	if last.Type == "error" {
		im.notify.Error(last.Content)
		return fmt.Errorf("import %s: %s", kind, last.Content)
	}
	im.notify.Success(im.tr.T("import-done"))
	return nil
}

func (im *Importer) message(err error) string {
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return im.tr.T("operation-failed")
}
