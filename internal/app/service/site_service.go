package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/landing-studio/internal/app/model"
	"github.com/ikkim/landing-studio/internal/app/repository"
	"github.com/ikkim/landing-studio/internal/clone"
	"github.com/ikkim/landing-studio/internal/landing"
	"github.com/ikkim/landing-studio/internal/storefront"
	"github.com/ikkim/landing-studio/internal/tracking"
	"github.com/ikkim/landing-studio/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSiteNotFound    = errors.New("site not found")
	ErrNotStorefront   = errors.New("site is not a storefront")
	ErrSiteForbidden   = errors.New("site belongs to another user")
	ErrEmptyDocument   = errors.New("document is empty")
	ErrPublishDisabled = errors.New("static publishing is not configured")
)

// InvalidStoreConfigError carries per-field validation problems.
type InvalidStoreConfigError struct {
	Fields map[string]string
}

func (e *InvalidStoreConfigError) Error() string {
	return fmt.Sprintf("invalid store config: %d field(s)", len(e.Fields))
}

// PageCache stores rendered public pages. Implementations must treat a miss
// as ok=false with a nil error.
type PageCache interface {
	GetPage(ctx context.Context, siteID string) ([]byte, bool, error)
	SetPage(ctx context.Context, siteID string, data []byte) error
	DeletePage(ctx context.Context, siteID string) error
}

// Publisher mirrors published documents to static hosting.
type Publisher interface {
	PublishHTML(ctx context.Context, siteID, html string) (string, error)
	RemoveHTML(ctx context.Context, siteID string) error
}

// PageFetcher retrieves and sanitizes a remote page.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string, maxBytes int64) (*clone.Page, error)
}

// PublicPage is what visitors receive for a published site.
type PublicPage struct {
	Kind model.SiteKind `json:"kind"`
	HTML string         `json:"html"`
}

// StorefrontInput is the editor payload for storefront sites.
type StorefrontInput struct {
	Config   storefront.StoreConfig
	Products []storefront.StoreProduct
}

type SiteService interface {
	CreateStorefront(userID string, in StorefrontInput) (*model.Site, error)
	SaveStorefront(id, userID string, in StorefrontInput) (*model.Site, error)
	CreateLanding(userID string, req landing.Request) (*model.Site, error)
	CreateFromClone(ctx context.Context, userID, rawURL string) (*model.Site, error)
	UpdateHTML(id, userID, html string) (*model.Site, error)
	Get(id, userID string) (*model.Site, error)
	ListByUser(userID string) ([]model.Site, error)
	Delete(ctx context.Context, id, userID string) error
	Publish(ctx context.Context, id, userID string) (*model.Site, error)
	Unpublish(ctx context.Context, id, userID string) (*model.Site, error)
	RenderPublic(ctx context.Context, id string) (*PublicPage, error)
	StorefrontProducts(site *model.Site) (StorefrontInput, error)
}

// SiteServiceOptions are the optional collaborators of the site service.
// Nil cache or publisher disables that feature.
type SiteServiceOptions struct {
	Cache         PageCache
	Publisher     Publisher
	Backend       storefront.BackendParams
	StoreMaxBytes int64
	Now           func() time.Time
}

type siteService struct {
	siteRepo   repository.SiteRepository
	metricRepo repository.MetricRepository
	fetcher    PageFetcher
	injector   *tracking.Injector
	opts       SiteServiceOptions
}

func NewSiteService(
	siteRepo repository.SiteRepository,
	metricRepo repository.MetricRepository,
	fetcher PageFetcher,
	injector *tracking.Injector,
	opts SiteServiceOptions,
) SiteService {
	if opts.StoreMaxBytes <= 0 {
		opts.StoreMaxBytes = clone.StoreMaxBytes
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &siteService{
		siteRepo:   siteRepo,
		metricRepo: metricRepo,
		fetcher:    fetcher,
		injector:   injector,
		opts:       opts,
	}
}

// prepareProducts assigns ids to new products and clamps prices.
func prepareProducts(products []storefront.StoreProduct) []storefront.StoreProduct {
	out := make([]storefront.StoreProduct, 0, len(products))
	for _, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			p.ID = uuid.New().String()
		}
		p.PriceCents = storefront.ClampPrice(float64(p.PriceCents))
		out = append(out, p)
	}
	return out
}

func encodeJSON(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func (s *siteService) renderStorefront(site *model.Site, in StorefrontInput) error {
	if fields := in.Config.Validate(); len(fields) > 0 {
		return &InvalidStoreConfigError{Fields: fields}
	}

	products := prepareProducts(in.Products)
	html := storefront.Render(site.ID, in.Config, products, s.opts.Backend, s.opts.Now().Year())

	cfgJSON, err := encodeJSON(in.Config)
	if err != nil {
		return err
	}
	productsJSON, err := encodeJSON(products)
	if err != nil {
		return err
	}

	site.Title = strings.TrimSpace(in.Config.StoreName)
	site.HTML = s.injector.Inject(html, site.ID)
	site.StoreConfig = cfgJSON
	site.StoreProducts = productsJSON
	return nil
}

func (s *siteService) CreateStorefront(userID string, in StorefrontInput) (*model.Site, error) {
	site := &model.Site{
		ID:     uuid.New().String(),
		UserID: userID,
		Kind:   model.SiteKindStorefront,
	}
	if err := s.renderStorefront(site, in); err != nil {
		return nil, err
	}
	if err := s.siteRepo.Create(site); err != nil {
		return nil, err
	}

	logger.Info("Storefront created", map[string]interface{}{
		"site_id":  site.ID,
		"user_id":  userID,
		"products": len(in.Products),
	})
	return site, nil
}

// SaveStorefront regenerates the whole document and replaces the record.
func (s *siteService) SaveStorefront(id, userID string, in StorefrontInput) (*model.Site, error) {
	site, err := s.load(id, userID)
	if err != nil {
		return nil, err
	}
	if site.Kind != model.SiteKindStorefront {
		return nil, ErrNotStorefront
	}
	if err := s.renderStorefront(site, in); err != nil {
		return nil, err
	}
	if site.Published {
		site.PublishedURL = s.mirror(context.Background(), site)
	}
	if err := s.siteRepo.Save(site); err != nil {
		return nil, err
	}
	s.invalidate(context.Background(), site.ID)
	return site, nil
}

func (s *siteService) CreateLanding(userID string, req landing.Request) (*model.Site, error) {
	id := uuid.New().String()
	html := landing.Render(req, s.opts.Now().Year())

	title := strings.TrimSpace(req.BusinessName)
	if title == "" {
		seed, _ := landing.Resolve(req.Category, req.Specialty)
		title = seed.SpecialtyLabel + " Pro"
	}

	site := &model.Site{
		ID:     id,
		UserID: userID,
		Kind:   model.SiteKindLanding,
		Title:  title,
		HTML:   s.injector.Inject(html, id),
	}
	if err := s.siteRepo.Create(site); err != nil {
		return nil, err
	}

	logger.Info("Landing page created", map[string]interface{}{
		"site_id":   id,
		"category":  req.Category,
		"specialty": req.Specialty,
	})
	return site, nil
}

func (s *siteService) CreateFromClone(ctx context.Context, userID, rawURL string) (*model.Site, error) {
	page, err := s.fetcher.Fetch(ctx, rawURL, s.opts.StoreMaxBytes)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	site := &model.Site{
		ID:     id,
		UserID: userID,
		Kind:   model.SiteKindClone,
		Title:  page.URL,
		URL:    page.URL,
		HTML:   s.injector.Inject(page.HTML, id),
	}
	if err := s.siteRepo.Create(site); err != nil {
		return nil, err
	}

	logger.Info("Cloned site stored", map[string]interface{}{
		"site_id":   id,
		"url":       page.URL,
		"truncated": page.Truncated,
	})
	return site, nil
}

// UpdateHTML stores an editor-modified document. Tracking is re-injected,
// which is a no-op when the editor kept the existing snippet.
func (s *siteService) UpdateHTML(id, userID, html string) (*model.Site, error) {
	if strings.TrimSpace(html) == "" {
		return nil, ErrEmptyDocument
	}
	site, err := s.load(id, userID)
	if err != nil {
		return nil, err
	}

	site.HTML = s.injector.Inject(html, site.ID)
	if site.Published {
		site.PublishedURL = s.mirror(context.Background(), site)
	}
	if err := s.siteRepo.Save(site); err != nil {
		return nil, err
	}
	s.invalidate(context.Background(), site.ID)
	return site, nil
}

func (s *siteService) Get(id, userID string) (*model.Site, error) {
	return s.load(id, userID)
}

func (s *siteService) ListByUser(userID string) ([]model.Site, error) {
	return s.siteRepo.FindByUser(userID)
}

func (s *siteService) Delete(ctx context.Context, id, userID string) error {
	site, err := s.load(id, userID)
	if err != nil {
		return err
	}
	if err := s.siteRepo.Delete(site.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSiteNotFound
		}
		return err
	}
	if err := s.metricRepo.DeleteSite(site.ID); err != nil {
		logger.Warn("Failed to delete site metrics", map[string]interface{}{
			"site_id": site.ID,
			"error":   err.Error(),
		})
	}
	if (site.Published || site.PublishedURL != "") && s.opts.Publisher != nil {
		if err := s.opts.Publisher.RemoveHTML(ctx, site.ID); err != nil {
			logger.Warn("Failed to remove published document", map[string]interface{}{
				"site_id": site.ID,
				"error":   err.Error(),
			})
		}
	}
	s.invalidate(ctx, site.ID)
	return nil
}

// mirror uploads the current document to static hosting and returns its URL,
// or "" when the site is served from this server only. Cloned pages are never
// mirrored: static hosting cannot send the sandbox policy they are served with.
// Upload failures are logged, not returned.
func (s *siteService) mirror(ctx context.Context, site *model.Site) string {
	if s.opts.Publisher == nil || site.Kind == model.SiteKindClone {
		return ""
	}
	url, err := s.opts.Publisher.PublishHTML(ctx, site.ID, site.HTML)
	if err != nil {
		logger.Warn("Static publish failed, serving from origin only", map[string]interface{}{
			"site_id": site.ID,
			"error":   err.Error(),
		})
		return ""
	}
	return url
}

// Publish marks the site public. The static mirror is best effort: a failed
// upload is logged and the site is still published on this server.
func (s *siteService) Publish(ctx context.Context, id, userID string) (*model.Site, error) {
	site, err := s.load(id, userID)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now().UTC()
	publishedURL := s.mirror(ctx, site)

	if err := s.siteRepo.SetPublished(site.ID, true, &now, publishedURL); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, site.ID)

	site.Published = true
	site.PublishedAt = &now
	site.PublishedURL = publishedURL

	logger.Info("Site published", map[string]interface{}{
		"site_id":       site.ID,
		"published_url": publishedURL,
	})
	return site, nil
}

func (s *siteService) Unpublish(ctx context.Context, id, userID string) (*model.Site, error) {
	site, err := s.load(id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.siteRepo.SetPublished(site.ID, false, nil, ""); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}
	if s.opts.Publisher != nil {
		if err := s.opts.Publisher.RemoveHTML(ctx, site.ID); err != nil {
			logger.Warn("Failed to remove published document", map[string]interface{}{
				"site_id": site.ID,
				"error":   err.Error(),
			})
		}
	}
	s.invalidate(ctx, site.ID)

	site.Published = false
	site.PublishedAt = nil
	site.PublishedURL = ""
	return site, nil
}

// RenderPublic returns a published document, cache first.
func (s *siteService) RenderPublic(ctx context.Context, id string) (*PublicPage, error) {
	if s.opts.Cache != nil {
		if data, ok, err := s.opts.Cache.GetPage(ctx, id); err == nil && ok {
			var page PublicPage
			if err := json.Unmarshal(data, &page); err == nil {
				return &page, nil
			}
		}
	}

	site, err := s.siteRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}
	if !site.Published {
		return nil, ErrSiteNotFound
	}

	page := &PublicPage{Kind: site.Kind, HTML: site.HTML}
	if s.opts.Cache != nil {
		if err := s.fillCache(ctx, page, site); err != nil {
			return nil, err
		}
	}
	return page, nil
}

// fillCache stores page and then re-reads the row. A concurrent save,
// unpublish or delete may have invalidated the entry between the read and
// the write; in that case the entry is dropped again.
func (s *siteService) fillCache(ctx context.Context, page *PublicPage, read *model.Site) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	if err := s.opts.Cache.SetPage(ctx, read.ID, data); err != nil {
		logger.Warn("Failed to cache public page", map[string]interface{}{
			"site_id": read.ID,
			"error":   err.Error(),
		})
		return nil
	}

	current, err := s.siteRepo.FindByID(read.ID)
	if err == nil && current.Published && current.HTML == read.HTML {
		return nil
	}
	s.invalidate(ctx, read.ID)
	if (err == nil && !current.Published) || errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSiteNotFound
	}
	return nil
}

// StorefrontProducts decodes the stored storefront input of site.
func (s *siteService) StorefrontProducts(site *model.Site) (StorefrontInput, error) {
	var in StorefrontInput
	if site.Kind != model.SiteKindStorefront {
		return in, ErrNotStorefront
	}
	if len(site.StoreConfig) > 0 {
		if err := json.Unmarshal(site.StoreConfig, &in.Config); err != nil {
			return in, err
		}
	}
	products, err := storefront.DecodeProducts(site.StoreProducts)
	if err != nil {
		return in, err
	}
	in.Products = products
	return in, nil
}

// load fetches a site owned by userID. An empty userID skips the ownership check.
func (s *siteService) load(id, userID string) (*model.Site, error) {
	site, err := s.siteRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, err
	}
	if userID != "" && site.UserID != "" && site.UserID != userID {
		return nil, ErrSiteForbidden
	}
	return site, nil
}

func (s *siteService) invalidate(ctx context.Context, siteID string) {
	if s.opts.Cache == nil {
		return
	}
	if err := s.opts.Cache.DeletePage(ctx, siteID); err != nil {
		logger.Warn("Failed to invalidate cached page", map[string]interface{}{
			"site_id": siteID,
			"error":   err.Error(),
		})
	}
}
