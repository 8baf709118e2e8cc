// ABOUTME: Queue tracks concurrent attachment uploads and aggregate send readiness
// ABOUTME: One goroutine per file, no cancellation; failures stay unresolved and block sending

package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/log"
)

// ErrNotFound is returned when an entry id is not in the queue.
var ErrNotFound = errors.New("upload: entry not found")

// Client is the server surface the queue needs.
type Client interface {
	Upload(ctx context.Context, name string, r io.Reader) (api.UploadResult, error)
	SpeechToText(ctx context.Context, filePath string) (api.SpeechSegments, error)
}

// Options configure a Queue.
type Options struct {
	Client Client
	// AIEnabled gates speech-to-text for audio uploads.
	AIEnabled func() bool
	// OnTranscript receives the first transcript segment of an audio upload.
	OnTranscript func(text string)
	// OnChange fires after every membership or status change.
	OnChange func()
}

type batch struct {
	done chan struct{}
	err  error
}

// Queue holds the attachments of one compose area.
type Queue struct {
	client       Client
	aiEnabled    func() bool
	onTranscript func(string)
	onChange     func()

	mu      sync.Mutex
	files   []*PendingFile
	batches []*batch
}

// NewQueue creates an empty queue.
func NewQueue(opts Options) *Queue {
	q := &Queue{
		client:       opts.Client,
		aiEnabled:    opts.AIEnabled,
		onTranscript: opts.OnTranscript,
		onChange:     opts.OnChange,
	}
	if q.aiEnabled == nil {
		q.aiEnabled = func() bool { return false }
	}
	if q.onTranscript == nil {
		q.onTranscript = func(string) {}
	}
	if q.onChange == nil {
		q.onChange = func() {}
	}
	return q
}

// Enqueue adds one entry per source and starts its upload. It returns the
// new entry ids without waiting for any upload.
func (q *Queue) Enqueue(srcs ...Source) []string {
	if len(srcs) == 0 {
		return nil
	}
	entries := make([]*PendingFile, len(srcs))
	ids := make([]string, len(srcs))
	for i, src := range srcs {
		entries[i] = &PendingFile{
			ID:          uuid.NewString(),
			Name:        src.Name,
			Size:        src.Size,
			PreviewType: Classify(src.Type, src.Name),
			Extension:   Extension(src.Name),
			Preview:     src.LocalPath,
			Type:        src.Type,
		}
		ids[i] = entries[i].ID
	}

	b := &batch{done: make(chan struct{})}
	q.mu.Lock()
	q.files = append(q.files, entries...)
	q.batches = append(q.pruneLocked(), b)
	q.mu.Unlock()
	q.onChange()

	var g errgroup.Group
	for i, src := range srcs {
		entry := entries[i]
		g.Go(func() error { return q.run(entry, src) })
	}
	go func() {
		b.err = g.Wait()
		if b.err != nil {
			log.Debug("upload batch finished with error: %v", b.err)
		}
		close(b.done)
		q.onChange()
	}()
	return ids
}

// pruneLocked drops batches that finished cleanly; they add nothing to Wait.
func (q *Queue) pruneLocked() []*batch {
	live := q.batches[:0]
	for _, b := range q.batches {
		select {
		case <-b.done:
			if b.err == nil {
				continue
			}
		default:
		}
		live = append(live, b)
	}
	clear(q.batches[len(live):])
	return live
}

func (q *Queue) run(entry *PendingFile, src Source) error {
	ctx := context.Background()

	if entry.PreviewType == PreviewImage && src.Open != nil {
		if dims, err := probeDimensions(src.Open); err == nil {
			q.mu.Lock()
			entry.Dimensions = dims
			q.mu.Unlock()
		}
	}

	path, err := q.upload(ctx, src)
	q.mu.Lock()
	if err != nil {
		entry.Status = StatusFailed
		entry.Err = err
	} else {
		entry.Status = StatusResolved
		entry.Path = path
	}
	q.mu.Unlock()
	q.onChange()

	if err != nil {
		log.Debug("upload %s failed: %v", src.Name, err)
		return err
	}
	q.transcribe(ctx, path)
	return nil
}

func (q *Queue) upload(ctx context.Context, src Source) (string, error) {
	if q.client == nil {
		return "", errors.New("upload: no client configured")
	}
	if src.Open == nil {
		return "", fmt.Errorf("upload %s: no content", src.Name)
	}
	rc, err := src.Open()
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", src.Name, err)
	}
	defer rc.Close()
	res, err := q.client.Upload(ctx, src.Name, rc)
	if err != nil {
		return "", err
	}
	return res.FilePath, nil
}

// transcribe inserts speech-to-text output for audio uploads. Errors are
// swallowed.
func (q *Queue) transcribe(ctx context.Context, path string) {
	if !q.aiEnabled() || !IsTranscribable(path) {
		return
	}
	segs, err := q.client.SpeechToText(ctx, path)
	if err != nil {
		log.Debug("speech to text for %s: %v", path, err)
		return
	}
	if text := segs.Text(); text != "" {
		q.onTranscript(text)
	}
}

// AddExisting adds attachments already stored on the server, resolved.
func (q *Queue) AddExisting(atts []api.Attachment) {
	if len(atts) == 0 {
		return
	}
	q.mu.Lock()
	for _, a := range atts {
		q.files = append(q.files, &PendingFile{
			ID:          uuid.NewString(),
			Name:        a.Name,
			Size:        a.Size,
			PreviewType: Classify(a.Type, a.Name),
			Extension:   Extension(a.Name),
			Preview:     a.Path,
			Type:        a.Type,
			Status:      StatusResolved,
			Path:        a.Path,
		})
	}
	q.mu.Unlock()
	q.onChange()
}

// Remove drops an entry. An in-flight upload for it still completes but
// no longer affects the queue.
func (q *Queue) Remove(id string) error {
	q.mu.Lock()
	idx := -1
	for i, f := range q.files {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	q.files = append(q.files[:idx:idx], q.files[idx+1:]...)
	q.mu.Unlock()
	q.onChange()
	return nil
}

// Reset empties the queue, typically after a send. Uploads still running
// are abandoned: Wait no longer waits for them.
func (q *Queue) Reset() {
	q.mu.Lock()
	q.files = nil
	q.batches = nil
	q.mu.Unlock()
	q.onChange()
}

// Len returns the number of entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.files)
}

// Files returns copies of every entry in insertion order.
func (q *Queue) Files() []PendingFile {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]PendingFile, len(q.files))
	for i, f := range q.files {
		out[i] = *f
	}
	return out
}

// Sendable reports whether a note with text and the queued files may be
// sent. An empty queue needs non-empty text; otherwise every entry must be
// resolved to a non-empty path.
func (q *Queue) Sendable(text string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.files) == 0 {
		return text != ""
	}
	for _, f := range q.files {
		if !f.Ready() {
			return false
		}
	}
	return true
}

// Attachments lists resolved entries in the server's attachment shape.
func (q *Queue) Attachments() []api.Attachment {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []api.Attachment
	for _, f := range q.files {
		if !f.Ready() {
			continue
		}
		out = append(out, api.Attachment{Name: f.Name, Path: f.Path, Size: f.Size, Type: f.Type})
	}
	return out
}

// Wait blocks until every batch enqueued so far has finished, or ctx ends.
// It returns the joined upload errors.
func (q *Queue) Wait(ctx context.Context) error {
	q.mu.Lock()
	batches := append([]*batch(nil), q.batches...)
	q.mu.Unlock()

	var errs []error
	for _, b := range batches {
		select {
		case <-b.done:
			if b.err != nil {
				errs = append(errs, b.err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return errors.Join(errs...)
}
