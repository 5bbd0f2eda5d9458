package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ikkim/landing-studio/internal/app/model"
	"github.com/ikkim/landing-studio/internal/app/repository"
	"github.com/ikkim/landing-studio/internal/clone"
	"github.com/ikkim/landing-studio/internal/db"
	"github.com/ikkim/landing-studio/internal/landing"
	"github.com/ikkim/landing-studio/internal/storefront"
	"github.com/ikkim/landing-studio/internal/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type siteFixture struct {
	service   SiteService
	siteRepo  repository.SiteRepository
	cache     *fakeCache
	publisher *fakePublisher
	fetcher   *fakeFetcher
}

func setupSiteServiceTest(t *testing.T) *siteFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	fx := &siteFixture{
		siteRepo:  repository.NewSiteRepository(testDB),
		cache:     newFakeCache(),
		publisher: newFakePublisher(),
		fetcher:   &fakeFetcher{},
	}
	fx.service = NewSiteService(
		fx.siteRepo,
		repository.NewMetricRepository(testDB),
		fx.fetcher,
		tracking.NewInjector("https://studio.example.com"),
		SiteServiceOptions{
			Cache:     fx.cache,
			Publisher: fx.publisher,
			Now: func() time.Time {
				return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
			},
		},
	)
	return fx
}

func sampleStorefront() StorefrontInput {
	return StorefrontInput{
		Config: storefront.StoreConfig{
			StoreName: "Dulce Lima",
			Currency:  "PEN",
			ThemeID:   "coral",
		},
		Products: []storefront.StoreProduct{
			{Name: "Torta de chocolate", PriceCents: 4500, Active: true},
			{ID: "keep-me", Name: "Alfajores", PriceCents: 1200, Active: true},
		},
	}
}

func TestSiteService_CreateStorefront(t *testing.T) {
	fx := setupSiteServiceTest(t)

	site, err := fx.service.CreateStorefront("user-1", sampleStorefront())
	require.NoError(t, err)

	assert.NotEmpty(t, site.ID)
	assert.Equal(t, model.SiteKindStorefront, site.Kind)
	assert.Equal(t, "Dulce Lima", site.Title)
	assert.Contains(t, site.HTML, "Dulce Lima")
	assert.Contains(t, site.HTML, "&copy; 2026")
	assert.True(t, tracking.Instrumented(site.HTML))
	assert.Contains(t, site.HTML, `data-site-id="`+site.ID+`"`)

	stored, err := fx.siteRepo.FindByID(site.ID)
	require.NoError(t, err)
	in, err := fx.service.StorefrontProducts(stored)
	require.NoError(t, err)
	require.Len(t, in.Products, 2)
	assert.NotEmpty(t, in.Products[0].ID)
	assert.Equal(t, "keep-me", in.Products[1].ID)
	assert.Equal(t, "Dulce Lima", in.Config.StoreName)
}

func TestSiteService_CreateStorefront_InvalidConfig(t *testing.T) {
	fx := setupSiteServiceTest(t)

	in := sampleStorefront()
	in.Config.StoreName = "  "
	in.Config.Currency = "XYZ"

	_, err := fx.service.CreateStorefront("user-1", in)
	require.Error(t, err)

	var cfgErr *InvalidStoreConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Fields, "storeName")
	assert.Contains(t, cfgErr.Fields, "currency")
}

func TestSiteService_SaveStorefront(t *testing.T) {
	fx := setupSiteServiceTest(t)

	site, err := fx.service.CreateStorefront("user-1", sampleStorefront())
	require.NoError(t, err)

	in := sampleStorefront()
	in.Config.StoreName = "Dulce Lima Express"
	in.Products = in.Products[:1]

	saved, err := fx.service.SaveStorefront(site.ID, "user-1", in)
	require.NoError(t, err)
	assert.Contains(t, saved.HTML, "Dulce Lima Express")
	assert.Equal(t, 1, strings.Count(saved.HTML, "<script "+tracking.Marker))
	assert.Contains(t, fx.cache.deletes, site.ID)

	_, err = fx.service.SaveStorefront(site.ID, "user-2", in)
	assert.ErrorIs(t, err, ErrSiteForbidden)

	_, err = fx.service.SaveStorefront("missing", "user-1", in)
	assert.ErrorIs(t, err, ErrSiteNotFound)

	landingSite, err := fx.service.CreateLanding("user-1", landing.Request{Category: "restaurant", Specialty: "pizzeria"})
	require.NoError(t, err)
	_, err = fx.service.SaveStorefront(landingSite.ID, "user-1", in)
	assert.ErrorIs(t, err, ErrNotStorefront)
}

func TestSiteService_CreateStorefront_MarkerTextInName(t *testing.T) {
	fx := setupSiteServiceTest(t)
	in := sampleStorefront()
	in.Config.StoreName = "Tienda data-lp-metrics"

	site, err := fx.service.CreateStorefront("user-1", in)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(site.HTML, "<script "+tracking.Marker))
}

func TestSiteService_CreateLanding(t *testing.T) {
	fx := setupSiteServiceTest(t)

	site, err := fx.service.CreateLanding("user-1", landing.Request{Category: "space", Specialty: "rockets"})
	require.NoError(t, err)

	assert.Equal(t, model.SiteKindLanding, site.Kind)
	assert.Equal(t, "rockets Pro", site.Title)
	assert.Contains(t, site.HTML, "rockets")
	assert.True(t, tracking.Instrumented(site.HTML))
}

func TestSiteService_CreateFromClone(t *testing.T) {
	fx := setupSiteServiceTest(t)
	fx.fetcher.page = &clone.Page{
		URL:  "https://example.com/",
		HTML: `<html><head><base href="https://example.com/"></head><body><h1>Hola</h1></body></html>`,
	}

	site, err := fx.service.CreateFromClone(context.Background(), "user-1", "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, clone.StoreMaxBytes, fx.fetcher.maxBytes)
	assert.Equal(t, model.SiteKindClone, site.Kind)
	assert.Equal(t, "https://example.com/", site.URL)
	assert.True(t, tracking.Instrumented(site.HTML))

	fx.fetcher.err = &clone.Error{Kind: clone.KindUpstream, Status: 404}
	_, err = fx.service.CreateFromClone(context.Background(), "user-1", "https://example.com/missing")
	assert.Equal(t, clone.KindUpstream, clone.KindOf(err))
}

func TestSiteService_UpdateHTML(t *testing.T) {
	fx := setupSiteServiceTest(t)

	site, err := fx.service.CreateLanding("user-1", landing.Request{Category: "beauty", Specialty: "spa"})
	require.NoError(t, err)

	edited := strings.Replace(site.HTML, "</h1>", " editado</h1>", 1)
	updated, err := fx.service.UpdateHTML(site.ID, "user-1", edited)
	require.NoError(t, err)
	assert.Contains(t, updated.HTML, "editado")
	assert.Equal(t, 1, strings.Count(updated.HTML, "<script "+tracking.Marker))

	plain, err := fx.service.UpdateHTML(site.ID, "user-1", "<html><body><p>nuevo</p></body></html>")
	require.NoError(t, err)
	assert.True(t, tracking.Instrumented(plain.HTML))

	_, err = fx.service.UpdateHTML(site.ID, "user-1", "   ")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestSiteService_PublishAndRenderPublic(t *testing.T) {
	fx := setupSiteServiceTest(t)
	ctx := context.Background()

	site, err := fx.service.CreateStorefront("user-1", sampleStorefront())
	require.NoError(t, err)

	_, err = fx.service.RenderPublic(ctx, site.ID)
	assert.ErrorIs(t, err, ErrSiteNotFound)

	published, err := fx.service.Publish(ctx, site.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, published.Published)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, "https://cdn.example.com/sites/"+site.ID+"/index.html", published.PublishedURL)
	assert.Equal(t, site.HTML, fx.publisher.published[site.ID])

	page, err := fx.service.RenderPublic(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, site.HTML, page.HTML)
	assert.Equal(t, model.SiteKindStorefront, page.Kind)
	assert.Contains(t, fx.cache.pages, site.ID)

	// second read is served from the cache
	require.NoError(t, fx.siteRepo.SetPublished(site.ID, false, nil, ""))
	page, err = fx.service.RenderPublic(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, site.HTML, page.HTML)

	_, err = fx.service.Unpublish(ctx, site.ID, "user-1")
	require.NoError(t, err)
	assert.NotContains(t, fx.cache.pages, site.ID)
	assert.Contains(t, fx.publisher.removed, site.ID)

	_, err = fx.service.RenderPublic(ctx, site.ID)
	assert.ErrorIs(t, err, ErrSiteNotFound)
}

func TestSiteService_PublishMirrorFailureIsBestEffort(t *testing.T) {
	fx := setupSiteServiceTest(t)
	fx.publisher.fail = true

	site, err := fx.service.CreateLanding("user-1", landing.Request{Category: "pets", Specialty: "grooming"})
	require.NoError(t, err)

	published, err := fx.service.Publish(context.Background(), site.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, published.Published)
	assert.Empty(t, published.PublishedURL)
}

func TestSiteService_SaveRefreshesStaticMirror(t *testing.T) {
	fx := setupSiteServiceTest(t)
	ctx := context.Background()

	site, err := fx.service.CreateStorefront("user-1", sampleStorefront())
	require.NoError(t, err)
	_, err = fx.service.Publish(ctx, site.ID, "user-1")
	require.NoError(t, err)

	in := sampleStorefront()
	in.Config.StoreName = "Nuevo Nombre"
	saved, err := fx.service.SaveStorefront(site.ID, "user-1", in)
	require.NoError(t, err)
	assert.Contains(t, fx.publisher.published[site.ID], "Nuevo Nombre")
	assert.Equal(t, saved.HTML, fx.publisher.published[site.ID])
	assert.True(t, saved.Published)
	assert.Equal(t, "https://cdn.example.com/sites/"+site.ID+"/index.html", saved.PublishedURL)

	edited, err := fx.service.UpdateHTML(site.ID, "user-1", "<html><body><p>a mano</p></body></html>")
	require.NoError(t, err)
	assert.Equal(t, edited.HTML, fx.publisher.published[site.ID])

	// a failed upload drops the static URL so shares point at this server
	fx.publisher.fail = true
	edited, err = fx.service.UpdateHTML(site.ID, "user-1", "<html><body><p>otra vez</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, edited.PublishedURL)
	stored, err := fx.siteRepo.FindByID(site.ID)
	require.NoError(t, err)
	assert.True(t, stored.Published)
	assert.Empty(t, stored.PublishedURL)
}

func TestSiteService_SaveUnpublishedSkipsMirror(t *testing.T) {
	fx := setupSiteServiceTest(t)

	site, err := fx.service.CreateStorefront("user-1", sampleStorefront())
	require.NoError(t, err)
	_, err = fx.service.SaveStorefront(site.ID, "user-1", sampleStorefront())
	require.NoError(t, err)
	assert.NotContains(t, fx.publisher.published, site.ID)
}

func TestSiteService_ClonesAreNotMirrored(t *testing.T) {
	fx := setupSiteServiceTest(t)
	ctx := context.Background()
	fx.fetcher.page = &clone.Page{
		URL:  "https://example.com/",
		HTML: `<html><head></head><body><script>steal(localStorage)</script></body></html>`,
	}

	site, err := fx.service.CreateFromClone(ctx, "user-1", "https://example.com/")
	require.NoError(t, err)

	published, err := fx.service.Publish(ctx, site.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, published.Published)
	assert.Empty(t, published.PublishedURL)
	assert.NotContains(t, fx.publisher.published, site.ID)

	_, err = fx.service.UpdateHTML(site.ID, "user-1", "<html><body><script>again()</script></body></html>")
	require.NoError(t, err)
	assert.NotContains(t, fx.publisher.published, site.ID)

	page, err := fx.service.RenderPublic(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SiteKindClone, page.Kind)
}

func TestSiteService_RenderPublicDropsCacheFillRacingUnpublish(t *testing.T) {
	fx := setupSiteServiceTest(t)
	ctx := context.Background()

	site, err := fx.service.CreateLanding("user-1", landing.Request{Category: "pets", Specialty: "grooming"})
	require.NoError(t, err)
	_, err = fx.service.Publish(ctx, site.ID, "user-1")
	require.NoError(t, err)

	fx.cache.beforeSet = func(siteID string) {
		fx.cache.beforeSet = nil
		require.NoError(t, fx.siteRepo.SetPublished(siteID, false, nil, ""))
	}

	_, err = fx.service.RenderPublic(ctx, site.ID)
	assert.ErrorIs(t, err, ErrSiteNotFound)
	assert.NotContains(t, fx.cache.pages, site.ID)

	_, err = fx.service.RenderPublic(ctx, site.ID)
	assert.ErrorIs(t, err, ErrSiteNotFound)
}

func TestSiteService_RenderPublicDropsCacheFillRacingSave(t *testing.T) {
	fx := setupSiteServiceTest(t)
	ctx := context.Background()

	site, err := fx.service.CreateLanding("user-1", landing.Request{Category: "pets", Specialty: "grooming"})
	require.NoError(t, err)
	_, err = fx.service.Publish(ctx, site.ID, "user-1")
	require.NoError(t, err)

	fx.cache.beforeSet = func(string) {
		fx.cache.beforeSet = nil
		_, err := fx.service.UpdateHTML(site.ID, "user-1", "<html><body><p>nuevo</p></body></html>")
		require.NoError(t, err)
	}

	page, err := fx.service.RenderPublic(ctx, site.ID)
	require.NoError(t, err)
	assert.NotContains(t, page.HTML, "nuevo")
	assert.NotContains(t, fx.cache.pages, site.ID)

	page, err = fx.service.RenderPublic(ctx, site.ID)
	require.NoError(t, err)
	assert.Contains(t, page.HTML, "nuevo")
}

func TestSiteService_ListAndDelete(t *testing.T) {
	fx := setupSiteServiceTest(t)
	ctx := context.Background()

	first, err := fx.service.CreateLanding("user-1", landing.Request{Category: "fitness", Specialty: "yoga"})
	require.NoError(t, err)
	_, err = fx.service.CreateStorefront("user-1", sampleStorefront())
	require.NoError(t, err)
	_, err = fx.service.CreateStorefront("user-2", sampleStorefront())
	require.NoError(t, err)

	sites, err := fx.service.ListByUser("user-1")
	require.NoError(t, err)
	assert.Len(t, sites, 2)

	assert.ErrorIs(t, fx.service.Delete(ctx, first.ID, "user-2"), ErrSiteForbidden)
	require.NoError(t, fx.service.Delete(ctx, first.ID, "user-1"))

	_, err = fx.service.Get(first.ID, "user-1")
	assert.ErrorIs(t, err, ErrSiteNotFound)
	assert.ErrorIs(t, fx.service.Delete(ctx, first.ID, "user-1"), ErrSiteNotFound)
}
