package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ikkim/landing-studio/internal/app/service"
	"github.com/ikkim/landing-studio/internal/middleware"
	ws "github.com/ikkim/landing-studio/internal/websocket"
)

// LiveController streams metric events of one site to its owner.
type LiveController struct {
	siteService service.SiteService
	hub         *ws.Hub
	upgrader    websocket.Upgrader
}

// NewLiveController only accepts upgrades from the given origins. A "*"
// entry allows any origin.
func NewLiveController(siteService service.SiteService, hub *ws.Hub, allowedOrigins []string) *LiveController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimSpace(o)] = true
	}

	return &LiveController{
		siteService: siteService,
		hub:         hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowed["*"] {
					return true
				}
				return allowed[r.Header.Get("Origin")]
			},
		},
	}
}

// Watch upgrades to a WebSocket carrying live metric events
// GET /ws/sites/:id/metrics?token=
func (ctrl *LiveController) Watch(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	site, err := ctrl.siteService.Get(c.Param("id"), userID)
	if err != nil {
		respondSiteError(c, err, "open live metrics")
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err)
		return
	}

	client := ws.NewClient(ctrl.hub, &ws.Conn{Conn: conn}, site.ID, userID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("Live metrics connection established", map[string]interface{}{
		"site_id": site.ID,
		"user_id": userID,
	})
}

// LiveStatus reports how many dashboards watch a site
// GET /api/v1/sites/:id/live
func (ctrl *LiveController) LiveStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	site, err := ctrl.siteService.Get(c.Param("id"), userID)
	if err != nil {
		respondSiteError(c, err, "read live status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"siteId": site.ID, "watchers": ctrl.hub.Watchers(site.ID)})
}
