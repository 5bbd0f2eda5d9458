package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/landing-studio/internal/app/service"
	"github.com/ikkim/landing-studio/internal/clone"
	"github.com/ikkim/landing-studio/internal/errors"
	"github.com/ikkim/landing-studio/internal/middleware"
)

type CloneController struct {
	cloneService service.CloneService
}

func NewCloneController(cloneService service.CloneService) *CloneController {
	return &CloneController{cloneService: cloneService}
}

// Clone returns a remote page rewritten for preview in a sandboxed frame
// GET /clone?url=
func (ctrl *CloneController) Clone(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	rawURL := c.Query("url")

	page, err := ctrl.cloneService.Preview(c.Request.Context(), rawURL)
	if err != nil {
		switch clone.KindOf(err) {
		case clone.KindInvalidURL:
			errors.RespondPublic(c, http.StatusBadRequest, errors.CloneInvalidURL, "Invalid URL")
		case clone.KindUpstream:
			errors.RespondPublic(c, http.StatusBadGateway, errors.CloneUpstream,
				fmt.Sprintf("Upstream responded with status %d", clone.StatusOf(err)))
		default:
			log.Error("Clone fetch failed", err, map[string]interface{}{
				"url": rawURL,
			})
			errors.RespondPublic(c, http.StatusInternalServerError, errors.CloneNetwork, "Failed to fetch the page")
		}
		return
	}

	log.Info("Clone preview served", map[string]interface{}{
		"url":       page.URL,
		"bytes":     len(page.HTML),
		"truncated": page.Truncated,
	})
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page.HTML))
}
