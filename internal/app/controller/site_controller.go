package controller

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/landing-studio/internal/app/model"
	"github.com/ikkim/landing-studio/internal/app/service"
	"github.com/ikkim/landing-studio/internal/clone"
	"github.com/ikkim/landing-studio/internal/errors"
	"github.com/ikkim/landing-studio/internal/landing"
	"github.com/ikkim/landing-studio/internal/middleware"
	"github.com/ikkim/landing-studio/internal/storefront"
	"github.com/skip2/go-qrcode"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SiteController struct {
	siteService    service.SiteService
	metricsService service.MetricsService
	publicBaseURL  string
}

func NewSiteController(siteService service.SiteService, metricsService service.MetricsService, publicBaseURL string) *SiteController {
	return &SiteController{
		siteService:    siteService,
		metricsService: metricsService,
		publicBaseURL:  publicBaseURL,
	}
}

// StorefrontRequest is the editor payload for storefront sites. Products are
// decoded leniently.
type StorefrontRequest struct {
	StoreConfig storefront.StoreConfig `json:"storeConfig"`
	Products    json.RawMessage        `json:"products"`
}

func (r StorefrontRequest) input() (service.StorefrontInput, error) {
	products, err := storefront.DecodeProducts(r.Products)
	if err != nil {
		return service.StorefrontInput{}, err
	}
	return service.StorefrontInput{Config: r.StoreConfig, Products: products}, nil
}

type CloneSiteRequest struct {
	URL string `json:"url" binding:"required"`
}

type UpdateHTMLRequest struct {
	HTML string `json:"html" binding:"required"`
}

// SiteResponse is a site with its public address.
type SiteResponse struct {
	*model.Site
	PublicURL string `json:"publicUrl"`
}

func (ctrl *SiteController) publicURL(id string) string {
	return fmt.Sprintf("%s/s/%s", ctrl.publicBaseURL, id)
}

func (ctrl *SiteController) siteResponse(site *model.Site) SiteResponse {
	return SiteResponse{Site: site, PublicURL: ctrl.publicURL(site.ID)}
}

// respondSiteError maps service errors onto HTTP responses.
func respondSiteError(c *gin.Context, err error, action string) {
	log := middleware.GetLoggerFromContext(c)

	var cfgErr *service.InvalidStoreConfigError
	switch {
	case stderrors.As(err, &cfgErr):
		errors.RespondWithValidationError(c, cfgErr.Fields)
	case stderrors.Is(err, service.ErrSiteNotFound):
		errors.NotFound(c, errors.SiteNotFound, "Site not found")
	case stderrors.Is(err, service.ErrSiteForbidden):
		errors.RespondWithError(c, http.StatusForbidden, errors.AuthzOwnerOnly, "You do not own this site")
	case stderrors.Is(err, service.ErrNotStorefront):
		errors.BadRequest(c, errors.SiteNotStorefront, "Site is not a storefront")
	case stderrors.Is(err, service.ErrEmptyDocument):
		errors.BadRequest(c, errors.ValidationRequired, "html is required")
	case clone.KindOf(err) == clone.KindInvalidURL:
		errors.BadRequest(c, errors.CloneInvalidURL, "Invalid URL")
	case clone.KindOf(err) == clone.KindUpstream:
		errors.RespondWithError(c, http.StatusBadGateway, errors.CloneUpstream,
			fmt.Sprintf("Upstream responded with status %d", clone.StatusOf(err)))
	case clone.KindOf(err) == clone.KindNetwork:
		errors.RespondWithError(c, http.StatusInternalServerError, errors.CloneNetwork, "Failed to fetch the page")
	default:
		log.Error("Failed to "+action, err)
		errors.ParseAndRespond(c, http.StatusInternalServerError, err, action)
	}
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "")
		return "", false
	}
	return userID, true
}

// CreateStorefront creates a storefront site
// POST /api/v1/sites/storefront
func (ctrl *SiteController) CreateStorefront(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req StorefrontRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid storefront request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request body")
		return
	}
	in, err := req.input()
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidFormat, "products must be an array")
		return
	}

	site, err := ctrl.siteService.CreateStorefront(userID, in)
	if err != nil {
		respondSiteError(c, err, "create storefront")
		return
	}

	log.Info("Storefront created", map[string]interface{}{
		"site_id": site.ID,
	})
	c.JSON(http.StatusCreated, gin.H{"site": ctrl.siteResponse(site)})
}

// CreateLanding creates a marketing page
// POST /api/v1/sites/landing
func (ctrl *SiteController) CreateLanding(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req landing.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid landing request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request body")
		return
	}

	site, err := ctrl.siteService.CreateLanding(userID, req)
	if err != nil {
		respondSiteError(c, err, "create landing page")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"site": ctrl.siteResponse(site)})
}

// CreateFromClone stores a copy of a remote page
// POST /api/v1/sites/clone
func (ctrl *SiteController) CreateFromClone(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req CloneSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationRequired, "url is required")
		return
	}

	site, err := ctrl.siteService.CreateFromClone(c.Request.Context(), userID, req.URL)
	if err != nil {
		respondSiteError(c, err, "clone site")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"site": ctrl.siteResponse(site)})
}

// ListSites lists the caller's sites without document bodies
// GET /api/v1/sites
func (ctrl *SiteController) ListSites(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	sites, err := ctrl.siteService.ListByUser(userID)
	if err != nil {
		respondSiteError(c, err, "list sites")
		return
	}

	summaries := make([]model.SiteSummary, 0, len(sites))
	for i := range sites {
		summaries = append(summaries, sites[i].Summary())
	}
	c.JSON(http.StatusOK, gin.H{
		"sites": summaries,
		"count": len(summaries),
	})
}

// GetSite returns one site with its document
// GET /api/v1/sites/:id
func (ctrl *SiteController) GetSite(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	site, err := ctrl.siteService.Get(c.Param("id"), userID)
	if err != nil {
		respondSiteError(c, err, "load site")
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": ctrl.siteResponse(site)})
}

// UpdateHTML saves an editor-modified document
// PUT /api/v1/sites/:id/html
func (ctrl *SiteController) UpdateHTML(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req UpdateHTMLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationRequired, "html is required")
		return
	}

	site, err := ctrl.siteService.UpdateHTML(c.Param("id"), userID, req.HTML)
	if err != nil {
		respondSiteError(c, err, "save site")
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": ctrl.siteResponse(site)})
}

// SaveStorefront regenerates a storefront from new config and products
// PUT /api/v1/sites/:id/storefront
func (ctrl *SiteController) SaveStorefront(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req StorefrontRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request body")
		return
	}
	in, err := req.input()
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidFormat, "products must be an array")
		return
	}

	site, err := ctrl.siteService.SaveStorefront(c.Param("id"), userID, in)
	if err != nil {
		respondSiteError(c, err, "save storefront")
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": ctrl.siteResponse(site)})
}

// Publish makes a site public
// POST /api/v1/sites/:id/publish
func (ctrl *SiteController) Publish(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	site, err := ctrl.siteService.Publish(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondSiteError(c, err, "publish site")
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": site.Summary(), "publicUrl": ctrl.publicURL(site.ID)})
}

// Unpublish takes a site offline
// POST /api/v1/sites/:id/unpublish
func (ctrl *SiteController) Unpublish(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	site, err := ctrl.siteService.Unpublish(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondSiteError(c, err, "unpublish site")
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": site.Summary()})
}

// DeleteSite removes a site and its metrics
// DELETE /api/v1/sites/:id
func (ctrl *SiteController) DeleteSite(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := ctrl.siteService.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondSiteError(c, err, "delete site")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Site deleted"})
}

func summaryDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", "0"))
	if err != nil {
		return 0
	}
	return days
}

// GetMetrics returns daily counters and totals
// GET /api/v1/sites/:id/metrics?days=30
func (ctrl *SiteController) GetMetrics(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	site, err := ctrl.siteService.Get(c.Param("id"), userID)
	if err != nil {
		respondSiteError(c, err, "load site")
		return
	}

	summary, err := ctrl.metricsService.Summary(site.ID, summaryDays(c))
	if err != nil {
		respondSiteError(c, err, "load metrics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": summary})
}

// ExportMetrics downloads the metrics as a spreadsheet
// GET /api/v1/sites/:id/metrics/export?days=30
func (ctrl *SiteController) ExportMetrics(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	site, err := ctrl.siteService.Get(c.Param("id"), userID)
	if err != nil {
		respondSiteError(c, err, "load site")
		return
	}

	data, err := ctrl.metricsService.Export(site.ID, summaryDays(c))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to export metrics", err, map[string]interface{}{
			"site_id": site.ID,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, errors.MetricExportFailed, "Failed to export metrics")
		return
	}

	filename := fmt.Sprintf("metricas-%s-%s.xlsx", site.ID, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ShareQR renders a QR code pointing at the public page
// GET /api/v1/sites/:id/qr?size=256
func (ctrl *SiteController) ShareQR(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	site, err := ctrl.siteService.Get(c.Param("id"), userID)
	if err != nil {
		respondSiteError(c, err, "load site")
		return
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "256"))
	if err != nil || size < 128 || size > 1024 {
		size = 256
	}

	target := site.PublishedURL
	if target == "" {
		target = ctrl.publicURL(site.ID)
	}
	png, err := qrcode.Encode(target, qrcode.Medium, size)
	if err != nil {
		respondSiteError(c, err, "render QR code")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
