// ABOUTME: Tests for tag path flattening, fuzzy matching and extraction
// ABOUTME: Uses a static lister in place of the server

package tags

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/mauromedda/blinko-go/internal/api"
)

type staticLister struct {
	tags []api.Tag
	err  error
}

func (s staticLister) ListTags(context.Context) ([]api.Tag, error) { return s.tags, s.err }

func TestPaths(t *testing.T) {
	t.Parallel()
	got := Paths([]api.Tag{
		{ID: 1, Name: "work"},
		{ID: 2, Name: "project", ParentID: 1},
		{ID: 3, Name: "alpha", ParentID: 2},
		{ID: 4, Name: "orphan", ParentID: 99},
		{ID: 5, Name: "loop", ParentID: 5},
	})
	want := []string{"work", "work/project", "work/project/alpha", "orphan", "loop"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestCatalog_Match(t *testing.T) {
	t.Parallel()
	c := NewCatalog(staticLister{tags: []api.Tag{
		{ID: 1, Name: "Hello"},
		{ID: 2, Name: "help"},
		{ID: 3, Name: "reading"},
		{ID: 4, Name: "caf\u00e9"},
	}})
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		query    string
		limit    int
		anyOrder bool
		want     []string
	}{
		{"empty lists all", "", 0, false, []string{"Hello", "caf\u00e9", "help", "reading"}},
		{"limit", "", 2, false, []string{"Hello", "caf\u00e9"}},
		{"case insensitive", "HEL", 0, true, []string{"Hello", "help"}},
		{"decomposed query", "cafe\u0301", 0, false, []string{"caf\u00e9"}},
		{"no match", "zzz", 0, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := c.Match(tt.query, tt.limit)
			if tt.anyOrder {
				sort.Strings(got)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Match(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestCatalog_LoadError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	c := NewCatalog(staticLister{err: boom})
	if err := c.Load(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Load() error = %v", err)
	}
	if len(c.All()) != 0 {
		t.Error("catalogue should stay empty")
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"none", "plain text", []string{}},
		{"simple", "#idea and #todo", []string{"idea", "todo"}},
		{"nested", "see #work/project/alpha", []string{"work", "work/project", "work/project/alpha"}},
		{"not mid-word", "email a#b", []string{}},
		{"cjk", "今天 #读书", []string{"读书"}},
		{"after nbsp", "#one\u00a0#two", []string{"one", "two"}},
		{"dedupe", "#a\n#a", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Extract(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
