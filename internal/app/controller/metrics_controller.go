package controller

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/landing-studio/internal/app/model"
	"github.com/ikkim/landing-studio/internal/app/service"
	"github.com/ikkim/landing-studio/internal/errors"
	"github.com/ikkim/landing-studio/internal/middleware"
)

// maxEventBodyBytes bounds a single beacon body.
const maxEventBodyBytes = 8 << 10

type MetricsController struct {
	metricsService service.MetricsService
}

func NewMetricsController(metricsService service.MetricsService) *MetricsController {
	return &MetricsController{metricsService: metricsService}
}

// MetricEventRequest is the beacon body.
type MetricEventRequest struct {
	SiteID     string   `json:"siteId"`
	Type       string   `json:"type"`
	Label      string   `json:"label"`
	DurationMs *float64 `json:"durationMs"`
}

// RecordEvent ingests one tracker event. Beacons arrive as text/plain, so
// the raw body is decoded regardless of content type.
// POST /metrics/event
func (ctrl *MetricsController) RecordEvent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxEventBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		errors.RespondPublic(c, http.StatusBadRequest, errors.MetricInvalidEvent, "Invalid body")
		return
	}

	var req MetricEventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("Malformed metric event", map[string]interface{}{
			"error": err.Error(),
		})
		errors.RespondPublic(c, http.StatusBadRequest, errors.MetricInvalidEvent, "Invalid JSON body")
		return
	}

	event := service.MetricEvent{
		SiteID: req.SiteID,
		Type:   model.MetricEventType(req.Type),
		Label:  req.Label,
	}
	if req.DurationMs != nil {
		event.DurationMs = *req.DurationMs
	}

	if err := ctrl.metricsService.Record(c.Request.Context(), event); err != nil {
		switch {
		case stderrors.Is(err, service.ErrInvalidMetricEvent):
			errors.RespondPublic(c, http.StatusBadRequest, errors.MetricInvalidEvent, "siteId and a valid type are required")
		case stderrors.Is(err, service.ErrSiteNotFound):
			errors.RespondPublic(c, http.StatusNotFound, errors.MetricSiteNotFound, "Site not found")
		default:
			log.Error("Failed to record metric event", err, map[string]interface{}{
				"site_id": req.SiteID,
				"type":    req.Type,
			})
			errors.RespondPublic(c, http.StatusInternalServerError, errors.InternalServerError, "Failed to record event")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
