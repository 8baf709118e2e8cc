// ABOUTME: Note, tag, config and AI procedures of the note server
// ABOUTME: Thin typed wrappers over the tRPC query and mutate helpers

package api

import "context"

// UpsertNote creates or updates a note.
func (c *Client) UpsertNote(ctx context.Context, in UpsertNote) (Note, error) {
	var n Note
	err := c.mutate(ctx, "notes.upsert", in, &n)
	return n, err
}

// ListNotes returns notes matching the filter.
func (c *Client) ListNotes(ctx context.Context, in ListNotes) ([]Note, error) {
	var notes []Note
	err := c.mutate(ctx, "notes.list", in, &notes)
	return notes, err
}

// DeleteNotes removes notes by id.
func (c *Client) DeleteNotes(ctx context.Context, ids ...int) error {
	return c.mutate(ctx, "notes.deleteMany", map[string]any{"ids": ids}, nil)
}

// DeleteEmbedding drops the vector index entry of a note.
func (c *Client) DeleteEmbedding(ctx context.Context, id int) error {
	return c.mutate(ctx, "ai.embeddingDelete", map[string]any{"id": id}, nil)
}

// AutoTag asks the server to suggest tags for a note.
func (c *Client) AutoTag(ctx context.Context, id int, content string) ([]string, error) {
	var tags []string
	err := c.mutate(ctx, "ai.autoTag", map[string]any{"id": id, "content": content}, &tags)
	return tags, err
}

// AIWrite runs an AI writing transformation over content.
func (c *Client) AIWrite(ctx context.Context, kind WriteKind, content string) (string, error) {
	var out struct {
		Content string `json:"content"`
	}
	err := c.mutate(ctx, "ai.writing", map[string]any{"type": kind, "content": content}, &out)
	return out.Content, err
}

// ListTags returns every tag known to the server.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	err := c.query(ctx, "tags.list", nil, &tags)
	return tags, err
}

// Config returns the server feature flags.
func (c *Client) Config(ctx context.Context) (ServerConfig, error) {
	var cfg ServerConfig
	err := c.query(ctx, "config.list", nil, &cfg)
	return cfg, err
}

// CanRegister reports whether the server accepts new accounts.
func (c *Client) CanRegister(ctx context.Context) (bool, error) {
	var ok bool
	err := c.query(ctx, "users.canRegister", nil, &ok)
	return ok, err
}

// LinkPreview asks the server to fetch metadata for rawURL.
func (c *Client) LinkPreview(ctx context.Context, rawURL string) (LinkPreview, error) {
	var p LinkPreview
	err := c.query(ctx, "public.linkPreview", map[string]string{"url": rawURL}, &p)
	p.URL = rawURL
	return p, err
}
