// ABOUTME: HTTP client configuration shared by the note server client and direct page fetches
// ABOUTME: Bounded handshake and header timeouts, proxies from env, optional cookie session

package httpclient

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// New creates a client whose whole request is bounded by timeout.
func New(timeout time.Duration) *http.Client {
	header := timeout
	if header <= 0 || header > 30*time.Second {
		header = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: header,
			IdleConnTimeout:       30 * time.Second,
			MaxIdleConns:          10,
			MaxIdleConnsPerHost:   4,
		},
	}
}

// NewSession is New with an in-memory cookie jar, so a sign-in cookie is
// sent on every later request of the process.
func NewSession(timeout time.Duration) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	hc := New(timeout)
	hc.Jar = jar
	return hc, nil
}
