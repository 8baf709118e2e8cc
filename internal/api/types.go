// ABOUTME: Domain payloads exchanged with the note server
// ABOUTME: Notes, attachments, tags, server config and link previews

package api

import "time"

// NoteType distinguishes long-form notes from quick "blinko" jots.
type NoteType int

const (
	TypeBlinko NoteType = 0
	TypeNote   NoteType = 1
)

func (t NoteType) String() string {
	if t == TypeNote {
		return "NOTE"
	}
	return "BLINKO"
}

// Attachment is a file already stored on the server.
type Attachment struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size,omitempty"`
	Type string `json:"type,omitempty"`
}

// Note is a server-side note record.
type Note struct {
	ID          int          `json:"id"`
	Content     string       `json:"content"`
	Type        NoteType     `json:"type"`
	IsTop       bool         `json:"isTop"`
	IsShare     bool         `json:"isShare"`
	IsArchived  bool         `json:"isArchived"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Tags        []NoteTag    `json:"tags,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NoteTag links a note to a tag.
type NoteTag struct {
	Tag Tag `json:"tag"`
}

// Tag is a hierarchical label ("work/project").
type Tag struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID int    `json:"parent,omitempty"`
	Icon     string `json:"icon,omitempty"`
}

// UpsertNote is the notes.upsert input. Nil fields are left unchanged.
type UpsertNote struct {
	ID          *int         `json:"id,omitempty"`
	Content     *string      `json:"content,omitempty"`
	Type        *NoteType    `json:"type,omitempty"`
	IsTop       *bool        `json:"isTop,omitempty"`
	IsShare     *bool        `json:"isShare,omitempty"`
	IsArchived  *bool        `json:"isArchived,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// ListNotes is the notes.list input.
type ListNotes struct {
	Type       *NoteType `json:"type,omitempty"`
	IsArchived bool      `json:"isArchived"`
	SearchText string    `json:"searchText,omitempty"`
	Page       int       `json:"page,omitempty"`
	Size       int       `json:"size,omitempty"`
}

// ServerConfig is the subset of config.list the client consumes.
type ServerConfig struct {
	IsUseAI bool `json:"isUseAI"`
}

// LinkPreview is the metadata shown under a note link.
type LinkPreview struct {
	URL         string `json:"url,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
}

// WriteKind selects the ai.writing mode.
type WriteKind string

const (
	WriteExpand  WriteKind = "expand"
	WritePolish  WriteKind = "polish"
	WriteCustom  WriteKind = "custom"
	WriteSummary WriteKind = "summary"
)
