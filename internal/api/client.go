// ABOUTME: HTTP client for the note server's tRPC and REST endpoints
// ABOUTME: Cookie-jar session, JSON envelopes, typed errors; safe for concurrent use

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mailru/easyjson"

	"github.com/mauromedda/blinko-go/internal/httpclient"
	"github.com/mauromedda/blinko-go/internal/log"
)

// maxErrorBody caps how much of an error response is read into memory.
const maxErrorBody = 64 << 10

// Client talks to one note server.
type Client struct {
	base *url.URL
	http *http.Client
}

// New creates a client for endpoint (e.g. "http://127.0.0.1:1111").
func New(endpoint string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q: scheme must be http or https", endpoint)
	}
	hc, err := httpclient.NewSession(timeout)
	if err != nil {
		return nil, err
	}
	return &Client{base: base, http: hc}, nil
}

// Endpoint returns the server base URL.
func (c *Client) Endpoint() string { return c.base.String() }

// HTTPClient exposes the underlying client (shared cookie jar).
func (c *Client) HTTPClient() *http.Client { return c.http }

func (c *Client) url(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// trpcRequest wraps tRPC inputs ({"json": input}).
type trpcRequest struct {
	JSON any `json:"json"`
}

type trpcResponse struct {
	Result *struct {
		Data struct {
			JSON json.RawMessage `json:"json"`
		} `json:"data"`
	} `json:"result"`
	Error *struct {
		JSON struct {
			Message string `json:"message"`
			Data    struct {
				HTTPStatus int `json:"httpStatus"`
			} `json:"data"`
		} `json:"json"`
	} `json:"error"`
}

// mutate POSTs input to a tRPC procedure and decodes the result into out.
// out may be nil, an easyjson.Unmarshaler, or any json target.
func (c *Client) mutate(ctx context.Context, proc string, input, out any) error {
	body, err := json.Marshal(trpcRequest{JSON: input})
	if err != nil {
		return fmt.Errorf("%s: encoding input: %w", proc, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/trpc/"+proc, nil), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", proc, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.roundTrip(req, proc, out)
}

// query GETs a tRPC procedure with an optional input.
func (c *Client) query(ctx context.Context, proc string, input, out any) error {
	var q url.Values
	if input != nil {
		raw, err := json.Marshal(trpcRequest{JSON: input})
		if err != nil {
			return fmt.Errorf("%s: encoding input: %w", proc, err)
		}
		q = url.Values{"input": {string(raw)}}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/api/trpc/"+proc, q), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", proc, err)
	}
	return c.roundTrip(req, proc, out)
}

func (c *Client) roundTrip(req *http.Request, proc string, out any) error {
	req.Header.Set("Accept", "application/json")
	log.Debug("api %s %s", req.Method, proc)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", proc, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: reading response: %w", proc, err)
	}

	var env trpcResponse
	if jerr := json.Unmarshal(data, &env); jerr != nil {
		if resp.StatusCode >= 300 {
			return &Error{Status: resp.StatusCode, Procedure: proc, Message: truncate(data)}
		}
		return fmt.Errorf("%s: decoding envelope: %w", proc, jerr)
	}
	if env.Error != nil || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode, Procedure: proc}
		if env.Error != nil {
			apiErr.Message = env.Error.JSON.Message
			if s := env.Error.JSON.Data.HTTPStatus; s != 0 {
				apiErr.Status = s
			}
		}
		return apiErr
	}
	if out == nil || env.Result == nil {
		return nil
	}
	return decodeInto(proc, env.Result.Data.JSON, out)
}

func decodeInto(proc string, raw json.RawMessage, out any) error {
	if u, ok := out.(easyjson.Unmarshaler); ok {
		if err := easyjson.Unmarshal(raw, u); err != nil {
			return fmt.Errorf("%s: decoding result: %w", proc, err)
		}
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decoding result: %w", proc, err)
	}
	return nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody]
	}
	return strings.TrimSpace(string(b))
}
