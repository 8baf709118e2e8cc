// ABOUTME: Context menu actions for the selected note
// ABOUTME: Builds the visible item list and runs the chosen action against the store

package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/log"
)

// ActionKind identifies a menu entry.
type ActionKind int

const (
	ActEdit ActionKind = iota
	ActMultiSelect
	ActConvert
	ActPin
	ActShare
	ActArchive
	ActAITag
	ActDelete
)

// ErrNoSelection is returned when an action runs with no selected note.
var ErrNoSelection = errors.New("no note selected")

// Translator resolves message keys.
type Translator interface {
	T(key string) string
}

// Notifier reports outcomes to the user.
type Notifier interface {
	Success(msg string) string
	Error(msg string) string
}

// Action is one visible menu entry.
type Action struct {
	Kind   ActionKind
	Key    string
	Suffix string
	Danger bool
}

// Label renders the entry text.
func (a Action) Label(tr Translator) string {
	if a.Suffix == "" {
		return tr.T(a.Key)
	}
	return tr.T(a.Key) + " " + tr.T(a.Suffix)
}

// Menu lists entries for n. Multi-select is hidden on the detail page and
// AI tagging only appears when the server has AI enabled.
func Menu(n api.Note, detailPage, useAI bool) []Action {
	items := []Action{{Kind: ActEdit, Key: "edit"}}
	if !detailPage {
		items = append(items, Action{Kind: ActMultiSelect, Key: "multiple-select"})
	}

	convert := Action{Kind: ActConvert, Key: "convert-to", Suffix: "note"}
	if n.Type == api.TypeNote {
		convert.Suffix = "blinko"
	}
	items = append(items, convert)

	items = append(items,
		toggle(ActPin, n.IsTop, "cancel-top", "top"),
		toggle(ActShare, n.IsShare, "unset-as-public", "set-as-public"),
		toggle(ActArchive, n.IsArchived, "recovery", "archive"),
	)
	if useAI {
		items = append(items, Action{Kind: ActAITag, Key: "ai-tag"})
	}
	return append(items, Action{Kind: ActDelete, Key: "delete", Danger: true})
}

func toggle(kind ActionKind, on bool, onKey, offKey string) Action {
	if on {
		return Action{Kind: kind, Key: onKey}
	}
	return Action{Kind: kind, Key: offKey}
}

// Result tells the UI what to do after an action.
type Result struct {
	// OpenEditor asks the UI to open the edit dialog for Note.
	OpenEditor bool
	Note       api.Note
}

// Actions runs menu entries against the store.
type Actions struct {
	store  *Store
	client Client
	notify Notifier
	tr     Translator
	// cleanupTimeout bounds the fire-and-forget embedding cleanup.
	cleanupTimeout time.Duration
}

// NewActions wires the menu to store, client and notifier.
func NewActions(store *Store, client Client, notify Notifier, tr Translator) *Actions {
	return &Actions{store: store, client: client, notify: notify, tr: tr, cleanupTimeout: 30 * time.Second}
}

// Run executes kind on the selected note.
func (a *Actions) Run(ctx context.Context, kind ActionKind) (Result, error) {
	n, ok := a.store.Selected()
	if !ok {
		return Result{}, ErrNoSelection
	}
	id := n.ID

	var err error
	switch kind {
	case ActEdit:
		return Result{OpenEditor: true, Note: n}, nil
	case ActMultiSelect:
		a.store.EnterMultiSelect(id)
		return Result{}, nil
	case ActConvert:
		typ := api.TypeNote
		if n.Type == api.TypeNote {
			typ = api.TypeBlinko
		}
		err = a.store.Update(ctx, api.UpsertNote{ID: &id, Type: &typ})
	case ActPin:
		v := !n.IsTop
		err = a.store.Update(ctx, api.UpsertNote{ID: &id, IsTop: &v})
	case ActShare:
		v := !n.IsShare
		err = a.store.Update(ctx, api.UpsertNote{ID: &id, IsShare: &v})
	case ActArchive:
		v := !n.IsArchived
		err = a.store.Update(ctx, api.UpsertNote{ID: &id, IsArchived: &v})
	case ActAITag:
		err = a.autoTag(ctx, n)
	case ActDelete:
		err = a.store.DeleteMany(ctx, id)
		if err == nil {
			a.notify.Success(a.tr.T("delete-success"))
		}
		a.dropEmbedding(id)
	default:
		return Result{}, fmt.Errorf("unknown action %d", kind)
	}

	if err != nil {
		a.notify.Error(errorMessage(err, a.tr))
		return Result{}, err
	}
	return Result{}, nil
}

// DeletePicked deletes every multi-selected note and leaves multi-select.
func (a *Actions) DeletePicked(ctx context.Context) error {
	_, ids := a.store.MultiSelect()
	if len(ids) == 0 {
		return nil
	}
	if err := a.store.DeleteMany(ctx, ids...); err != nil {
		a.notify.Error(errorMessage(err, a.tr))
		return err
	}
	for _, id := range ids {
		a.dropEmbedding(id)
	}
	a.store.ExitMultiSelect()
	a.notify.Success(a.tr.T("delete-success"))
	return nil
}

// dropEmbedding removes the note's vector entry without waiting.
func (a *Actions) dropEmbedding(id int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.cleanupTimeout)
		defer cancel()
		if err := a.client.DeleteEmbedding(ctx, id); err != nil {
			log.Debug("embedding cleanup for note %d: %v", id, err)
		}
	}()
}

// autoTag appends suggested tags that the note does not carry yet.
func (a *Actions) autoTag(ctx context.Context, n api.Note) error {
	tags, err := a.client.AutoTag(ctx, n.ID, n.Content)
	if err != nil {
		return fmt.Errorf("auto tag: %w", err)
	}
	content := AppendTags(n.Content, tags)
	if content == n.Content {
		return nil
	}
	id := n.ID
	return a.store.Update(ctx, api.UpsertNote{ID: &id, Content: &content})
}

// AppendTags adds "#tag" for each tag not already present in content.
func AppendTags(content string, tags []string) string {
	var missing []string
	for _, t := range tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t == "" || hasTag(content, t) {
			continue
		}
		missing = append(missing, "#"+t)
	}
	if len(missing) == 0 {
		return content
	}
	sep := " "
	if content == "" || strings.HasSuffix(content, "\n") || strings.HasSuffix(content, " ") {
		sep = ""
	}
	return content + sep + strings.Join(missing, " ")
}

func hasTag(content, tag string) bool {
	for _, f := range strings.Fields(content) {
		if strings.EqualFold(strings.TrimPrefix(f, "#"), tag) && strings.HasPrefix(f, "#") {
			return true
		}
	}
	return false
}

func errorMessage(err error, tr Translator) string {
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return tr.T("operation-failed")
}
