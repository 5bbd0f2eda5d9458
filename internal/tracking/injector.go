// Package tracking instruments generated documents with a small analytics
// script that reports page views, clicks, conversions and session length.
package tracking

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/ikkim/landing-studio/internal/htmlsafe"
)

// Marker is the attribute that identifies an instrumented document.
const Marker = "data-lp-metrics"

// EventPath is the ingestion route the tracker posts to.
const EventPath = "/metrics/event"

//go:embed assets/tracker.js
var trackerSource string

var (
	bodyCloseTag   = regexp.MustCompile(`(?i)</body\s*>`)
	trackerOpenTag = regexp.MustCompile(`(?i)<script\b[^>]*\s` + Marker + `(?:[\s=/>])`)
)

// Injector inserts the tracker script. Endpoint must be absolute: injected
// documents are often rendered from srcdoc or under a foreign base URL.
type Injector struct {
	Endpoint string
}

// NewInjector builds an Injector posting to baseURL + EventPath.
func NewInjector(baseURL string) *Injector {
	return &Injector{Endpoint: strings.TrimRight(baseURL, "/") + EventPath}
}

// Instrumented reports whether html already carries the tracker, that is a
// script element with the marker attribute. The marker text elsewhere in the
// document does not count.
func Instrumented(html string) bool {
	return trackerOpenTag.MatchString(html)
}

// Inject returns html with the tracker placed before the last closing body
// tag, or appended when there is none. Empty input, an empty site id or an
// already instrumented document are returned unchanged.
func (i *Injector) Inject(html, siteID string) string {
	if html == "" || strings.TrimSpace(siteID) == "" || Instrumented(html) {
		return html
	}

	snippet := i.Snippet(siteID)
	matches := bodyCloseTag.FindAllStringIndex(html, -1)
	if len(matches) == 0 {
		return html + snippet
	}
	at := matches[len(matches)-1][0]
	return html[:at] + snippet + html[at:]
}

// Snippet renders the script element for siteID. Values travel in
// attributes so the script body stays a fixed fragment.
func (i *Injector) Snippet(siteID string) string {
	return `<script ` + Marker + ` data-site-id="` + htmlsafe.Escape(siteID) +
		`" data-endpoint="` + htmlsafe.Escape(i.Endpoint) + `">` + trackerSource + `</script>`
}

// Source returns the tracker fragment.
func Source() string {
	return trackerSource
}
