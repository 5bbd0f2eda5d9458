package service

import (
	"context"

	"github.com/ikkim/landing-studio/internal/clone"
	"github.com/ikkim/landing-studio/pkg/logger"
)

type CloneService interface {
	Preview(ctx context.Context, rawURL string) (*clone.Page, error)
}

type cloneService struct {
	fetcher  PageFetcher
	maxBytes int64
}

// NewCloneService returns the preview service. maxBytes <= 0 uses
// clone.PreviewMaxBytes.
func NewCloneService(fetcher PageFetcher, maxBytes int64) CloneService {
	if maxBytes <= 0 {
		maxBytes = clone.PreviewMaxBytes
	}
	return &cloneService{fetcher: fetcher, maxBytes: maxBytes}
}

// Preview fetches rawURL for display in a sandboxed frame. Nothing is stored.
func (s *cloneService) Preview(ctx context.Context, rawURL string) (*clone.Page, error) {
	page, err := s.fetcher.Fetch(ctx, rawURL, s.maxBytes)
	if err != nil {
		logger.Warn("Clone preview failed", map[string]interface{}{
			"url":    rawURL,
			"kind":   string(clone.KindOf(err)),
			"status": clone.StatusOf(err),
		})
		return nil, err
	}
	return page, nil
}
