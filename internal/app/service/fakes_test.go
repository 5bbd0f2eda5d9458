package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ikkim/landing-studio/internal/clone"
)

type fakeCache struct {
	mu      sync.Mutex
	pages   map[string][]byte
	gets    int
	deletes []string
	// beforeSet runs ahead of each SetPage, outside the lock.
	beforeSet func(siteID string)
}

func newFakeCache() *fakeCache {
	return &fakeCache{pages: map[string][]byte{}}
}

func (c *fakeCache) GetPage(_ context.Context, siteID string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	data, ok := c.pages[siteID]
	return data, ok, nil
}

func (c *fakeCache) SetPage(_ context.Context, siteID string, data []byte) error {
	if c.beforeSet != nil {
		c.beforeSet(siteID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[siteID] = data
	return nil
}

func (c *fakeCache) DeletePage(_ context.Context, siteID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pages, siteID)
	c.deletes = append(c.deletes, siteID)
	return nil
}

type fakePublisher struct {
	fail      bool
	published map[string]string
	removed   []string
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{published: map[string]string{}}
}

func (p *fakePublisher) PublishHTML(_ context.Context, siteID, html string) (string, error) {
	if p.fail {
		return "", errors.New("bucket unavailable")
	}
	p.published[siteID] = html
	return "https://cdn.example.com/sites/" + siteID + "/index.html", nil
}

func (p *fakePublisher) RemoveHTML(_ context.Context, siteID string) error {
	p.removed = append(p.removed, siteID)
	return nil
}

type fakeFetcher struct {
	page     *clone.Page
	err      error
	maxBytes int64
	url      string
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string, maxBytes int64) (*clone.Page, error) {
	f.url = rawURL
	f.maxBytes = maxBytes
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

type fakeBroadcaster struct {
	mu       sync.Mutex
	messages map[string][]interface{}
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{messages: map[string][]interface{}{}}
}

func (b *fakeBroadcaster) BroadcastMetric(siteID string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages[siteID] = append(b.messages[siteID], payload)
}
