// Package clone fetches third-party pages server-side and rewrites them so
// they can be previewed from another origin.
package clone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ikkim/landing-studio/internal/htmlsafe"
	"github.com/ikkim/landing-studio/pkg/logger"
)

const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage = "es-PE,es;q=0.9,en;q=0.8"
	maxRedirects   = 10

	// PreviewMaxBytes caps pages returned for iframe preview.
	PreviewMaxBytes int64 = 2 << 20
	// StoreMaxBytes caps pages destined for persistence.
	StoreMaxBytes int64 = 1 << 20
)

var (
	headOpenTag = regexp.MustCompile(`(?i)<head(?:\s[^>]*)?>`)
	baseTag     = regexp.MustCompile(`(?i)<base[\s>/]`)
)

// Page is a fetched and rewritten document.
type Page struct {
	URL       string
	HTML      string
	Truncated bool
	Status    int
}

// Fetcher performs the outbound GET. It holds no per-call state and is safe
// for concurrent use.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher whose requests are bounded by timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return NewFetcherWithClient(&http.Client{Timeout: timeout})
}

// NewFetcherWithClient wraps an existing client. Redirects are limited and
// restricted to http and https targets.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	c := *client
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
			return fmt.Errorf("redirect to unsupported scheme %q", req.URL.Scheme)
		}
		return nil
	}
	return &Fetcher{client: &c}
}

// ValidateURL accepts only absolute http or https URLs with a host.
func ValidateURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &Error{Kind: KindInvalidURL, Err: errors.New("url is required")}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &Error{Kind: KindInvalidURL, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &Error{Kind: KindInvalidURL, Err: errors.New("url has no host")}
	}
	return u, nil
}

// Fetch downloads rawURL, truncates the body to maxBytes and injects a base
// tag pointing at the requested URL. A maxBytes of zero or less means
// PreviewMaxBytes.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, maxBytes int64) (*Page, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}
	if maxBytes <= 0 {
		maxBytes = PreviewMaxBytes
	}
	target := u.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguage)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &Error{Kind: KindUpstream, Status: resp.StatusCode, Err: fmt.Errorf("GET %s: %s", target, resp.Status)}
	}

	body, truncated, err := readCapped(resp.Body, maxBytes)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}

	logger.Debug("Fetched remote page", map[string]interface{}{
		"url":         target,
		"status":      resp.StatusCode,
		"bytes":       len(body),
		"truncated":   truncated,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return &Page{
		URL:       target,
		HTML:      InjectBase(string(body), target),
		Truncated: truncated,
		Status:    resp.StatusCode,
	}, nil
}

// readCapped reads at most max bytes and reports whether more were available.
func readCapped(r io.Reader, max int64) ([]byte, bool, error) {
	body, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, false, err
	}
	if int64(len(body)) > max {
		return body[:max], true, nil
	}
	return body, false, nil
}

// InjectBase inserts <base href> right after the opening head tag. Without a
// head tag it prepends the base tag unless the document already has one.
func InjectBase(html, baseURL string) string {
	tag := `<base href="` + htmlsafe.Escape(baseURL) + `">`
	if loc := headOpenTag.FindStringIndex(html); loc != nil {
		return html[:loc[1]] + tag + html[loc[1]:]
	}
	if baseTag.MatchString(html) {
		return html
	}
	return tag + html
}
