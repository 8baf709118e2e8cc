// ABOUTME: PendingFile describes one attachment in the compose area
// ABOUTME: Classification by MIME type and extension; header-only image dimension probe

package upload

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	units "github.com/docker/go-units"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// PreviewType is the coarse kind used to pick an attachment preview.
type PreviewType string

const (
	PreviewImage PreviewType = "image"
	PreviewVideo PreviewType = "video"
	PreviewAudio PreviewType = "audio"
	PreviewOther PreviewType = "other"
)

// Status is the state of an entry's upload task.
type Status int

const (
	StatusPending Status = iota
	StatusResolved
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Dimensions are pixel sizes of an image attachment.
type Dimensions struct {
	Width  int
	Height int
}

// PendingFile is a copy of one queue entry.
type PendingFile struct {
	ID          string
	Name        string
	Size        int64
	PreviewType PreviewType
	Extension   string
	// Preview is a local path before upload, or the server path for
	// attachments that already exist.
	Preview    string
	Type       string
	Dimensions *Dimensions

	Status Status
	Path   string
	Err    error
}

// Ready reports whether the upload resolved to a usable server path.
func (f PendingFile) Ready() bool {
	return f.Status == StatusResolved && f.Path != ""
}

// HumanSize formats Size for display ("1.2MB").
func (f PendingFile) HumanSize() string {
	if f.Size <= 0 {
		return ""
	}
	return units.HumanSize(float64(f.Size))
}

var (
	imageExts = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true, "bmp": true, "svg": true, "ico": true}
	videoExts = map[string]bool{"mp4": true, "mov": true, "mkv": true, "avi": true, "m4v": true}
	audioExts = map[string]bool{"mp3": true, "wav": true, "ogg": true, "m4a": true, "flac": true, "aac": true, "webm": true}
)

// Extension returns the lower-cased extension of name without the dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Classify picks a PreviewType from the MIME type, falling back to the
// file extension when the MIME type is empty or generic.
func Classify(mimeType, name string) PreviewType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return PreviewImage
	case strings.HasPrefix(mimeType, "video/"):
		return PreviewVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return PreviewAudio
	}
	ext := Extension(name)
	switch {
	case imageExts[ext]:
		return PreviewImage
	case videoExts[ext]:
		return PreviewVideo
	case audioExts[ext]:
		return PreviewAudio
	default:
		return PreviewOther
	}
}

// IsTranscribable reports whether a stored path is audio the server can
// transcribe.
func IsTranscribable(path string) bool {
	switch Extension(path) {
	case "webm", "mp3", "wav":
		return true
	}
	return false
}

// Source is something to upload.
type Source struct {
	Name string
	Size int64
	Type string
	// LocalPath is shown as the preview and used for the dimension probe.
	LocalPath string
	Open      func() (io.ReadCloser, error)
}

// FromPath builds a Source for a file on disk.
func FromPath(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Source{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("%s is a directory", path)
	}
	return Source{
		Name:      filepath.Base(path),
		Size:      info.Size(),
		Type:      mime.TypeByExtension(filepath.Ext(path)),
		LocalPath: path,
		Open:      func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// probeDimensions decodes only the image header.
func probeDimensions(open func() (io.ReadCloser, error)) (*Dimensions, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	cfg, _, err := image.DecodeConfig(rc)
	if err != nil {
		return nil, err
	}
	return &Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
