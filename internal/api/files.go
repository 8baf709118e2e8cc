// ABOUTME: Multipart file upload and speech-to-text procedures
// ABOUTME: Upload streams the body through an io.Pipe so large files are never buffered whole

package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/mailru/easyjson"
)

// Upload sends r as a multipart "file" part and returns the stored path.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (UploadResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", name)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/file/upload", nil), pr)
	if err != nil {
		pr.CloseWithError(err)
		return UploadResult{}, fmt.Errorf("upload %s: %w", name, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload %s: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload %s: reading response: %w", name, err)
	}
	if resp.StatusCode >= 300 {
		return UploadResult{}, &Error{Status: resp.StatusCode, Procedure: "file.upload", Message: truncate(data)}
	}

	var res UploadResult
	if err := easyjson.Unmarshal(data, &res); err != nil {
		return UploadResult{}, fmt.Errorf("upload %s: decoding response: %w", name, err)
	}
	if res.FilePath == "" {
		return UploadResult{}, fmt.Errorf("upload %s: server returned no filePath", name)
	}
	return res, nil
}

// SpeechToText transcribes an uploaded audio file.
func (c *Client) SpeechToText(ctx context.Context, filePath string) (SpeechSegments, error) {
	var segs SpeechSegments
	err := c.mutate(ctx, "ai.speechToText", map[string]string{"filePath": filePath}, &segs)
	return segs, err
}
