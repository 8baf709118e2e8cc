// ABOUTME: Tests for import extension checks, upload hand-off and progress reporting
// ABOUTME: A fake client records uploads and replays scripted progress lines

package importer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mauromedda/blinko-go/internal/api"
)

type fakeClient struct {
	uploaded  []string
	body      string
	lines     []api.ImportProgress
	uploadErr error
	gotKind   api.ImportKind
	gotPath   string
}

func (c *fakeClient) Upload(_ context.Context, name string, r io.Reader) (api.UploadResult, error) {
	if c.uploadErr != nil {
		return api.UploadResult{}, c.uploadErr
	}
	data, _ := io.ReadAll(r)
	c.uploaded = append(c.uploaded, name)
	c.body = string(data)
	return api.UploadResult{FilePath: "/api/file/" + name}, nil
}

func (c *fakeClient) StreamImport(_ context.Context, kind api.ImportKind, path string, fn func(api.ImportProgress)) error {
	c.gotKind, c.gotPath = kind, path
	for _, l := range c.lines {
		fn(l)
	}
	return nil
}

type notes struct{ ok, bad []string }

func (n *notes) Success(m string) string { n.ok = append(n.ok, m); return "" }
func (n *notes) Error(m string) string { n.bad = append(n.bad, m); return "" }

type keyTr struct{}

func (keyTr) T(key string) string { return key }

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestImport_WrongExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind  api.ImportKind
		file  string
		toast string
	}{
		{api.ImportBlinko, "backup.zip", "not-a-bko-file"},
		{api.ImportMemos, "memos_prod.sqlite", "not-a-memos-db-file"},
		{api.ImportMemos, "backup.bko", "not-a-memos-db-file"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()
			fc := &fakeClient{}
			n := &notes{}
			err := New(fc, n, keyTr{}).Import(context.Background(), tt.kind, writeFile(t, tt.file, "x"), nil)
			if !errors.Is(err, ErrWrongKind) {
				t.Fatalf("err = %v, want ErrWrongKind", err)
			}
			if len(fc.uploaded) != 0 {
				t.Error("wrong file must not be uploaded")
			}
			if !reflect.DeepEqual(n.bad, []string{tt.toast}) {
				t.Errorf("toasts = %v", n.bad)
			}
		})
	}
}

func TestImport_Success(t *testing.T) {
	t.Parallel()
	fc := &fakeClient{lines: []api.ImportProgress{
		{Type: "info", Content: "note 1", Current: 1, Total: 2},
		{Type: "info", Content: "note 2", Current: 2, Total: 2},
		{Type: "done"},
	}}
	n := &notes{}
	var seen []int

	path := writeFile(t, "Backup.BKO", "payload")
	err := New(fc, n, keyTr{}).Import(context.Background(), api.ImportBlinko, path, func(p api.ImportProgress) {
		seen = append(seen, p.Current)
	})
	if err != nil {
		t.Fatal(err)
	}
	if fc.body != "payload" || fc.gotPath != "/api/file/Backup.BKO" || fc.gotKind != api.ImportBlinko {
		t.Errorf("upload/import mismatch: %+v", fc)
	}
	if !reflect.DeepEqual(seen, []int{1, 2, 0}) {
		t.Errorf("progress = %v", seen)
	}
	if !reflect.DeepEqual(n.ok, []string{"import-done"}) || len(n.bad) != 0 {
		t.Errorf("toasts ok=%v bad=%v", n.ok, n.bad)
	}
}

func TestImport_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fc    *fakeClient
		toast string
	}{
		{"stream error line", &fakeClient{lines: []api.ImportProgress{{Type: "error", Content: "bad archive"}}}, "bad archive"},
		{"upload api error", &fakeClient{uploadErr: &api.Error{Status: 413, Message: "too large"}}, "too large"},
		{"upload transport error", &fakeClient{uploadErr: errors.New("eof")}, "operation-failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n := &notes{}
			err := New(tt.fc, n, keyTr{}).Import(context.Background(), api.ImportMemos, writeFile(t, "memos_prod.db", "x"), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !reflect.DeepEqual(n.bad, []string{tt.toast}) || len(n.ok) != 0 {
				t.Errorf("toasts ok=%v bad=%v", n.ok, n.bad)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	t.Parallel()
	if Extension(api.ImportBlinko) != ".bko" || Extension(api.ImportMemos) != ".db" {
		t.Error("unexpected extensions")
	}
}
