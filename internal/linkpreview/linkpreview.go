// ABOUTME: Link preview lookup for URLs found in notes, cached in local preferences
// ABOUTME: Previews come from the server endpoint or, when configured, from parsing the page directly

package linkpreview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/httpclient"
	"github.com/mauromedda/blinko-go/internal/log"
	"github.com/mauromedda/blinko-go/internal/prefs"
)

const (
	keyPrefix    = "linkpreview:"
	maxPageBytes = 1 << 20
	prefetchJobs = 4
)

// Remote fetches previews through the note server.
type Remote interface {
	LinkPreview(ctx context.Context, rawURL string) (api.LinkPreview, error)
}

// Options configures a Service.
type Options struct {
	Remote Remote
	Store  *prefs.Store
	// Direct fetches pages locally instead of asking the server.
	Direct bool
	// HTTP is used for direct fetches; defaults to a 10s-timeout client.
	HTTP *http.Client
}

// Service resolves previews with a two-level cache.
type Service struct {
	remote Remote
	store  *prefs.Store
	direct bool
	http   *http.Client

	mu  sync.Mutex
	mem map[string]api.LinkPreview
}

// New creates a Service.
func New(opts Options) *Service {
	hc := opts.HTTP
	if hc == nil {
		hc = httpclient.New(10 * time.Second)
	}
	store := opts.Store
	if store == nil {
		store = prefs.NewMemory()
	}
	return &Service{
		remote: opts.Remote,
		store:  store,
		direct: opts.Direct,
		http:   hc,
		mem:    make(map[string]api.LinkPreview),
	}
}

// Get returns the preview for rawURL, fetching it on a cache miss.
func (s *Service) Get(ctx context.Context, rawURL string) (api.LinkPreview, error) {
	if p, ok := s.cached(rawURL); ok {
		return p, nil
	}

	var (
		p   api.LinkPreview
		err error
	)
	if s.direct || s.remote == nil {
		p, err = s.fetchDirect(ctx, rawURL)
	} else {
		p, err = s.remote.LinkPreview(ctx, rawURL)
	}
	if err != nil {
		return api.LinkPreview{}, fmt.Errorf("link preview %s: %w", rawURL, err)
	}
	p.URL = rawURL

	s.mu.Lock()
	s.mem[rawURL] = p
	s.mu.Unlock()
	if err := s.store.Set(keyPrefix+rawURL, p); err != nil {
		log.Debug("caching link preview: %v", err)
	}
	return p, nil
}

func (s *Service) cached(rawURL string) (api.LinkPreview, bool) {
	s.mu.Lock()
	p, ok := s.mem[rawURL]
	s.mu.Unlock()
	if ok {
		return p, true
	}
	if ok, err := s.store.Get(keyPrefix+rawURL, &p); ok && err == nil {
		s.mu.Lock()
		s.mem[rawURL] = p
		s.mu.Unlock()
		return p, true
	}
	return api.LinkPreview{}, false
}

// Prefetch resolves every URL concurrently. Failures are logged and left out
// of the result.
func (s *Service) Prefetch(ctx context.Context, urls []string) map[string]api.LinkPreview {
	var (
		mu  sync.Mutex
		out = make(map[string]api.LinkPreview, len(urls))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchJobs)
	for _, u := range urls {
		g.Go(func() error {
			p, err := s.Get(gctx, u)
			if err != nil {
				log.Warn("%v", err)
				return nil
			}
			mu.Lock()
			out[u] = p
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *Service) fetchDirect(ctx context.Context, rawURL string) (api.LinkPreview, error) {
	base, err := url.Parse(rawURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") {
		return api.LinkPreview{}, fmt.Errorf("unsupported url %q", rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return api.LinkPreview{}, err
	}
	req.Header.Set("User-Agent", "blinko-go/1.0")
	resp, err := s.http.Do(req)
	if err != nil {
		return api.LinkPreview{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return api.LinkPreview{}, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return api.LinkPreview{}, fmt.Errorf("parsing page: %w", err)
	}
	return parsePage(doc, base), nil
}

// parsePage pulls title, description and favicon out of a document head.
// Open Graph values win over the plain ones.
func parsePage(doc *html.Node, base *url.URL) api.LinkPreview {
	var p api.LinkPreview
	var ogTitle, ogDesc, icon string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if p.Title == "" {
					p.Title = strings.TrimSpace(textOf(n))
				}
			case "meta":
				content := attr(n, "content")
				switch strings.ToLower(attr(n, "property") + attr(n, "name")) {
				case "og:title":
					ogTitle = content
				case "og:description":
					ogDesc = content
				case "description":
					p.Description = content
				}
			case "link":
				rel := strings.ToLower(attr(n, "rel"))
				if icon == "" && strings.Contains(rel, "icon") {
					icon = attr(n, "href")
				}
			case "body":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if ogTitle != "" {
		p.Title = ogTitle
	}
	if ogDesc != "" {
		p.Description = ogDesc
	}
	if icon == "" {
		icon = "/favicon.ico"
	}
	if ref, err := url.Parse(icon); err == nil {
		p.Favicon = base.ResolveReference(ref).String()
	}
	return p
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}
