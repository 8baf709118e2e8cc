// ABOUTME: Tests for the upload queue: readiness rules, failures, transcripts and removal
// ABOUTME: A gated fake client lets tests decide when each upload completes

package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mauromedda/blinko-go/internal/api"
)

type fakeClient struct {
	mu      sync.Mutex
	gates   map[string]chan error
	stt     api.SpeechSegments
	sttErr  error
	sttSeen []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{gates: make(map[string]chan error)}
}

func (c *fakeClient) gate(name string) chan error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.gates[name]
	if !ok {
		ch = make(chan error, 1)
		c.gates[name] = ch
	}
	return ch
}

func (c *fakeClient) Upload(_ context.Context, name string, r io.Reader) (api.UploadResult, error) {
	_, _ = io.Copy(io.Discard, r)
	if err := <-c.gate(name); err != nil {
		return api.UploadResult{}, err
	}
	return api.UploadResult{FilePath: "/api/file/" + name}, nil
}

func (c *fakeClient) SpeechToText(_ context.Context, path string) (api.SpeechSegments, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sttSeen = append(c.sttSeen, path)
	return c.stt, c.sttErr
}

func memSource(name, content string) Source {
	return Source{
		Name: name,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(content)), nil },
	}
}

func waitAll(t *testing.T, q *Queue) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := q.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("uploads did not finish")
	}
	return err
}

func TestSendable_EmptyQueue(t *testing.T) {
	t.Parallel()
	q := NewQueue(Options{})
	if q.Sendable("") {
		t.Error("Sendable(\"\") = true for empty queue")
	}
	if !q.Sendable("hi") {
		t.Error("Sendable(\"hi\") = false for empty queue")
	}
}

func TestSendable_BlockedUntilResolved(t *testing.T) {
	t.Parallel()
	fc := newFakeClient()
	q := NewQueue(Options{Client: fc})

	ids := q.Enqueue(memSource("a.txt", "aaa"))
	if len(ids) != 1 {
		t.Fatalf("ids = %v", ids)
	}
	if q.Sendable("text") {
		t.Error("Sendable = true right after enqueue")
	}

	fc.gate("a.txt") <- nil
	if err := waitAll(t, q); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !q.Sendable("") {
		t.Error("Sendable(\"\") = false after the only upload resolved")
	}
	files := q.Files()
	if files[0].Path != "/api/file/a.txt" || files[0].Status != StatusResolved {
		t.Errorf("entry = %+v", files[0])
	}
}

func TestSendable_FailureBlocksForever(t *testing.T) {
	t.Parallel()
	fc := newFakeClient()
	q := NewQueue(Options{Client: fc})

	q.Enqueue(memSource("ok.png", "x"), memSource("bad.png", "y"))
	fc.gate("ok.png") <- nil
	fc.gate("bad.png") <- errors.New("boom")

	if err := waitAll(t, q); err == nil {
		t.Error("Wait returned nil despite a failed upload")
	}
	if q.Sendable("still text") {
		t.Error("Sendable = true with a failed entry")
	}
	time.Sleep(10 * time.Millisecond)
	if q.Sendable("still text") {
		t.Error("Sendable became true later")
	}

	var failed PendingFile
	for _, f := range q.Files() {
		if f.Name == "bad.png" {
			failed = f
		}
	}
	if failed.Status != StatusFailed || failed.Err == nil || failed.Ready() {
		t.Errorf("failed entry = %+v", failed)
	}
}

func TestEnqueue_ReturnsBeforeUpload(t *testing.T) {
	t.Parallel()
	fc := newFakeClient()
	q := NewQueue(Options{Client: fc})

	done := make(chan struct{})
	go func() {
		q.Enqueue(memSource("slow.bin", "z"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on the upload")
	}
	if q.Len() != 1 || q.Files()[0].Status != StatusPending {
		t.Errorf("files = %+v", q.Files())
	}
	fc.gate("slow.bin") <- nil
	_ = waitAll(t, q)
}

func TestOnChange_Fires(t *testing.T) {
	t.Parallel()
	fc := newFakeClient()
	var changes atomic.Int32
	q := NewQueue(Options{Client: fc, OnChange: func() { changes.Add(1) }})

	q.Enqueue(memSource("f.txt", "1"))
	fc.gate("f.txt") <- nil
	_ = waitAll(t, q)

	// enqueue, resolve, batch finish
	if got := changes.Load(); got < 3 {
		t.Errorf("OnChange fired %d times, want >= 3", got)
	}
}

func TestTranscript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		ai       bool
		sttErr   error
		wantText string
	}{
		{"audio with ai", "memo.webm", true, nil, "hello there"},
		{"mp3 with ai", "memo.mp3", true, nil, "hello there"},
		{"ai disabled", "memo.wav", false, nil, ""},
		{"not audio", "memo.png", true, nil, ""},
		{"stt error swallowed", "memo.wav", true, errors.New("down"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fc := newFakeClient()
			fc.stt = api.SpeechSegments{{PageContent: "hello there"}, {PageContent: "ignored"}}
			fc.sttErr = tt.sttErr

			var mu sync.Mutex
			var got string
			q := NewQueue(Options{
				Client:       fc,
				AIEnabled:    func() bool { return tt.ai },
				OnTranscript: func(s string) { mu.Lock(); got = s; mu.Unlock() },
			})
			q.Enqueue(memSource(tt.file, "data"))
			fc.gate(tt.file) <- nil
			_ = waitAll(t, q)

			mu.Lock()
			defer mu.Unlock()
			if got != tt.wantText {
				t.Errorf("transcript = %q, want %q", got, tt.wantText)
			}
			if !q.Sendable("") {
				t.Error("transcription outcome must not block sending")
			}
		})
	}
}

func TestAddExisting(t *testing.T) {
	t.Parallel()
	q := NewQueue(Options{})
	q.AddExisting([]api.Attachment{{Name: "cat.jpg", Path: "/api/file/cat.jpg", Type: "image/jpeg", Size: 2048}})

	if !q.Sendable("") {
		t.Error("existing attachments should be sendable immediately")
	}
	f := q.Files()[0]
	if f.PreviewType != PreviewImage || f.Preview != "/api/file/cat.jpg" || f.HumanSize() != "2.048kB" {
		t.Errorf("entry = %+v size=%q", f, f.HumanSize())
	}
	if atts := q.Attachments(); len(atts) != 1 || atts[0].Path != "/api/file/cat.jpg" {
		t.Errorf("Attachments() = %+v", atts)
	}
}

func TestRemoveAndReset(t *testing.T) {
	t.Parallel()
	fc := newFakeClient()
	q := NewQueue(Options{Client: fc})

	ids := q.Enqueue(memSource("keep.txt", "k"), memSource("drop.txt", "d"))
	if err := q.Remove(ids[1]); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := q.Remove("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(missing) = %v, want ErrNotFound", err)
	}

	fc.gate("keep.txt") <- nil
	fc.gate("drop.txt") <- errors.New("late failure")
	_ = waitAll(t, q)

	if !q.Sendable("") {
		t.Error("late failure of a removed entry blocked sending")
	}

	q.Reset()
	if q.Len() != 0 || q.Sendable("") {
		t.Errorf("after Reset: len=%d sendable=%v", q.Len(), q.Sendable(""))
	}
}

func TestReset_AbandonsPendingBatches(t *testing.T) {
	t.Parallel()
	fc := newFakeClient()
	q := NewQueue(Options{Client: fc})
	q.Enqueue(memSource("slow.txt", "s"))

	q.Reset()
	if err := waitAll(t, q); err != nil {
		t.Errorf("Wait after Reset = %v", err)
	}

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		q.Enqueue(memSource(name, "x"))
		fc.gate(name) <- nil
		if err := waitAll(t, q); err != nil {
			t.Errorf("Wait = %v", err)
		}
	}
	q.mu.Lock()
	n := len(q.batches)
	q.mu.Unlock()
	if n > 1 {
		t.Errorf("finished batches kept: %d", n)
	}
	fc.gate("slow.txt") <- nil
}

func TestWait_ContextCancelled(t *testing.T) {
	t.Parallel()
	fc := newFakeClient()
	q := NewQueue(Options{Client: fc})
	q.Enqueue(memSource("hang.txt", "h"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait = %v, want context.Canceled", err)
	}
	fc.gate("hang.txt") <- nil
}

func TestImageDimensionsProbe(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.White)
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	src, err := FromPath(path)
	if err != nil {
		t.Fatalf("FromPath: %v", err)
	}
	fc := newFakeClient()
	q := NewQueue(Options{Client: fc})
	q.Enqueue(src)
	fc.gate("shot.png") <- nil
	_ = waitAll(t, q)

	f := q.Files()[0]
	if f.Dimensions == nil || f.Dimensions.Width != 3 || f.Dimensions.Height != 2 {
		t.Errorf("Dimensions = %+v", f.Dimensions)
	}
	if f.Type != "image/png" || f.Preview != path {
		t.Errorf("entry = %+v", f)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mime, name string
		want       PreviewType
	}{
		{"image/png", "x", PreviewImage},
		{"", "clip.MP4", PreviewVideo},
		{"audio/mpeg", "a.bin", PreviewAudio},
		{"", "voice.webm", PreviewAudio},
		{"application/pdf", "doc.pdf", PreviewOther},
		{"", "noext", PreviewOther},
	}

	for _, tt := range tests {
		if got := Classify(tt.mime, tt.name); got != tt.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", tt.mime, tt.name, got, tt.want)
		}
	}
}

func TestHumanSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size int64
		want string
	}{
		{0, ""},
		{1500, "1.5kB"},
		{2_500_000, "2.5MB"},
	}
	for _, tt := range tests {
		if got := (PendingFile{Size: tt.size}).HumanSize(); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestFromPath_Directory(t *testing.T) {
	t.Parallel()
	if _, err := FromPath(t.TempDir()); err == nil {
		t.Error("expected error for directory")
	}
}
