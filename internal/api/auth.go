// ABOUTME: Credential sign-in against the server's auth callback
// ABOUTME: Session cookies land in the client's jar for later calls

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mailru/easyjson"
)

// SignIn posts credentials. A rejected login is reported in the result,
// not as an error; err is reserved for transport and decoding failures.
func (c *Client) SignIn(ctx context.Context, username, password string) (SignInResult, error) {
	body, err := easyjson.Marshal(Credentials{Username: username, Password: password, CallbackURL: "/"})
	if err != nil {
		return SignInResult{}, fmt.Errorf("sign in: encoding credentials: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/auth/callback/credentials", nil), bytes.NewReader(body))
	if err != nil {
		return SignInResult{}, fmt.Errorf("sign in: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return SignInResult{}, fmt.Errorf("sign in: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return SignInResult{}, fmt.Errorf("sign in: reading response: %w", err)
	}

	var res SignInResult
	if len(bytes.TrimSpace(data)) > 0 {
		if err := easyjson.Unmarshal(data, &res); err != nil {
			if resp.StatusCode >= 300 {
				return SignInResult{OK: false, Status: resp.StatusCode, Error: truncate(data)}, nil
			}
			return SignInResult{}, fmt.Errorf("sign in: decoding response: %w", err)
		}
	}
	if res.Status == 0 {
		res.Status = resp.StatusCode
	}
	if resp.StatusCode >= 300 {
		res.OK = false
	}
	return res, nil
}
