// ABOUTME: Note list state: current filter, loaded notes, selection and multi-select
// ABOUTME: Mutations go through the server client and trigger a list refresh

package notes

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mauromedda/blinko-go/internal/api"
)

// Client is the server surface used by notes.
type Client interface {
	ListNotes(ctx context.Context, in api.ListNotes) ([]api.Note, error)
	UpsertNote(ctx context.Context, in api.UpsertNote) (api.Note, error)
	DeleteNotes(ctx context.Context, ids ...int) error
	DeleteEmbedding(ctx context.Context, id int) error
	AutoTag(ctx context.Context, id int, content string) ([]string, error)
	Config(ctx context.Context) (api.ServerConfig, error)
}

// Filter picks which notes the list shows.
type Filter struct {
	Type     *api.NoteType
	Archived bool
	Search   string
}

// FilterForPath maps a route to its list filter.
func FilterForPath(path string) Filter {
	blinko, note := api.TypeBlinko, api.TypeNote
	switch path {
	case "/":
		return Filter{Type: &blinko}
	case "/notes":
		return Filter{Type: &note}
	case "/archived":
		return Filter{Archived: true}
	default:
		return Filter{}
	}
}

// Store is the note list model.
type Store struct {
	client   Client
	onChange func()

	mu       sync.Mutex
	filter   Filter
	notes    []api.Note
	selected int
	multi    bool
	picked   map[int]bool
	config   api.ServerConfig
}

// NewStore creates a store. onChange may be nil.
func NewStore(client Client, onChange func()) *Store {
	if onChange == nil {
		onChange = func() {}
	}
	return &Store{client: client, onChange: onChange, picked: make(map[int]bool)}
}

// SetFilter replaces the filter; call Refresh to reload.
func (s *Store) SetFilter(f Filter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// Refresh reloads the list for the current filter.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	f := s.filter
	s.mu.Unlock()

	notes, err := s.client.ListNotes(ctx, api.ListNotes{Type: f.Type, IsArchived: f.Archived, SearchText: f.Search})
	if err != nil {
		return fmt.Errorf("listing notes: %w", err)
	}
	sortNotes(notes)

	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()
	s.onChange()
	return nil
}

// sortNotes puts pinned notes first, then newest first.
func sortNotes(notes []api.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].IsTop != notes[j].IsTop {
			return notes[i].IsTop
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
}

// LoadConfig fetches server feature flags.
func (s *Store) LoadConfig(ctx context.Context) error {
	cfg, err := s.client.Config(ctx)
	if err != nil {
		return fmt.Errorf("loading server config: %w", err)
	}
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	s.onChange()
	return nil
}

// Config returns the last loaded server config.
func (s *Store) Config() api.ServerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Notes returns a copy of the loaded list.
func (s *Store) Notes() []api.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Note(nil), s.notes...)
}

// Select marks the note the menu acts on.
func (s *Store) Select(id int) {
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
}

// Selected returns the selected note if it is still loaded.
func (s *Store) Selected() (api.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notes {
		if n.ID == s.selected {
			return n, true
		}
	}
	return api.Note{}, false
}

// EnterMultiSelect turns on multi-select with id picked.
func (s *Store) EnterMultiSelect(id int) {
	s.mu.Lock()
	s.multi = true
	s.picked = map[int]bool{id: true}
	s.mu.Unlock()
	s.onChange()
}

// TogglePick flips id in the multi-select set.
func (s *Store) TogglePick(id int) {
	s.mu.Lock()
	if s.picked[id] {
		delete(s.picked, id)
	} else {
		s.picked[id] = true
	}
	s.mu.Unlock()
	s.onChange()
}

// ExitMultiSelect clears multi-select.
func (s *Store) ExitMultiSelect() {
	s.mu.Lock()
	s.multi = false
	s.picked = make(map[int]bool)
	s.mu.Unlock()
	s.onChange()
}

// MultiSelect reports whether multi-select is on and the picked ids, sorted.
func (s *Store) MultiSelect() (bool, []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.picked))
	for id := range s.picked {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return s.multi, ids
}

// Draft is the content of a compose or edit submission.
type Draft struct {
	ID          *int
	Content     string
	Type        api.NoteType
	Attachments []api.Attachment
}

// Save creates or updates a note from a draft and refreshes the list.
func (s *Store) Save(ctx context.Context, d Draft) (api.Note, error) {
	content, typ := d.Content, d.Type
	n, err := s.client.UpsertNote(ctx, api.UpsertNote{
		ID:          d.ID,
		Content:     &content,
		Type:        &typ,
		Attachments: d.Attachments,
	})
	if err != nil {
		return api.Note{}, fmt.Errorf("saving note: %w", err)
	}
	return n, s.Refresh(ctx)
}

// Update applies a partial upsert and refreshes the list.
func (s *Store) Update(ctx context.Context, in api.UpsertNote) error {
	if _, err := s.client.UpsertNote(ctx, in); err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	return s.Refresh(ctx)
}

// DeleteMany removes notes in one call and refreshes the list.
func (s *Store) DeleteMany(ctx context.Context, ids ...int) error {
	if err := s.client.DeleteNotes(ctx, ids...); err != nil {
		return fmt.Errorf("deleting notes: %w", err)
	}
	return s.Refresh(ctx)
}
