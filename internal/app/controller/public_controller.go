package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/landing-studio/internal/app/model"
	"github.com/ikkim/landing-studio/internal/app/service"
	"github.com/ikkim/landing-studio/internal/middleware"
	"github.com/ikkim/landing-studio/internal/storefront"
)

// CloneSandboxPolicy isolates third-party markup served from our origin.
const CloneSandboxPolicy = "sandbox allow-scripts allow-forms allow-popups allow-modals"

const notFoundPage = `<!DOCTYPE html><html lang="es"><head><meta charset="utf-8"><title>Página no encontrada</title></head><body><h1>Página no encontrada</h1></body></html>`

// PublicController serves published sites to visitors.
type PublicController struct {
	siteService service.SiteService
}

func NewPublicController(siteService service.SiteService) *PublicController {
	return &PublicController{siteService: siteService}
}

// ServeSite returns a published document
// GET /s/:id
func (ctrl *PublicController) ServeSite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	page, err := ctrl.siteService.RenderPublic(c.Request.Context(), id)
	if err != nil {
		if stderrors.Is(err, service.ErrSiteNotFound) {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
			return
		}
		log.Error("Failed to render public site", err, map[string]interface{}{
			"site_id": id,
		})
		c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("internal error"))
		return
	}

	if page.Kind == model.SiteKindClone {
		c.Header("Content-Security-Policy", CloneSandboxPolicy)
	}
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Cache-Control", "public, max-age=60")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page.HTML))
}

// RuntimeScript serves the storefront runtime fragment
// GET /assets/storefront-runtime.js
func (ctrl *PublicController) RuntimeScript(c *gin.Context) {
	c.Header("X-Runtime-Version", storefront.RuntimeVersion)
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", []byte(storefront.RuntimeSource()))
}
