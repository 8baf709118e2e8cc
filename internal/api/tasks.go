// ABOUTME: Import task stream reader for Blinko backups and Memos databases
// ABOUTME: Consumes NDJSON progress lines until a terminal line or EOF

package api

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mailru/easyjson"
)

// ImportKind selects the server-side importer.
type ImportKind string

const (
	ImportBlinko ImportKind = "blinko"
	ImportMemos  ImportKind = "memos"
)

// StreamImport starts an import of an uploaded file and calls fn for each
// progress line. It returns when the stream ends or ctx is cancelled.
func (c *Client) StreamImport(ctx context.Context, kind ImportKind, filePath string, fn func(ImportProgress)) error {
	q := url.Values{"kind": {string(kind)}, "filePath": {filePath}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/task/import", q), nil)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{Status: resp.StatusCode, Procedure: "task.import", Message: truncate(data)}
	}

	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var p ImportProgress
		if err := easyjson.Unmarshal(line, &p); err != nil {
			return fmt.Errorf("import: decoding progress: %w", err)
		}
		fn(p)
		if p.Done() {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("import: reading stream: %w", err)
	}
	return nil
}
