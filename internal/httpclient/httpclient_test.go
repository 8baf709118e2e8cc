// ABOUTME: Tests for the shared HTTP client settings
// ABOUTME: Checks header timeout clamping and that the session client replays cookies

package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew_HeaderTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		timeout time.Duration
		want    time.Duration
	}{
		{5 * time.Second, 5 * time.Second},
		{time.Minute, 30 * time.Second},
		{0, 30 * time.Second},
	}
	for _, tt := range tests {
		hc := New(tt.timeout)
		if hc.Timeout != tt.timeout {
			t.Errorf("Timeout = %v, want %v", hc.Timeout, tt.timeout)
		}
		tr := hc.Transport.(*http.Transport)
		if tr.ResponseHeaderTimeout != tt.want {
			t.Errorf("timeout %v: header timeout = %v, want %v", tt.timeout, tr.ResponseHeaderTimeout, tt.want)
		}
		if hc.Jar != nil {
			t.Error("plain client has a cookie jar")
		}
	}
}

func TestNewSession_KeepsCookies(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
			return
		}
		if c, err := r.Cookie("session"); err != nil || c.Value != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	hc, err := NewSession(time.Second)
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{"/login", "/notes"} {
		resp, err := hc.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d", path, resp.StatusCode)
		}
	}
}
