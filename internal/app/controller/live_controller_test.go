package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ikkim/landing-studio/internal/app/model"
	"github.com/ikkim/landing-studio/internal/app/repository"
	"github.com/ikkim/landing-studio/internal/app/service"
	"github.com/ikkim/landing-studio/internal/db"
	"github.com/ikkim/landing-studio/internal/middleware"
	"github.com/ikkim/landing-studio/internal/tracking"
	ws "github.com/ikkim/landing-studio/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type liveFixture struct {
	server         *httptest.Server
	hub            *ws.Hub
	metricsService service.MetricsService
}

func setupLiveControllerTest(t *testing.T) *liveFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	siteRepo := repository.NewSiteRepository(testDB)
	metricRepo := repository.NewMetricRepository(testDB)
	require.NoError(t, siteRepo.Create(&model.Site{
		ID:     "live-site",
		UserID: "owner",
		Kind:   model.SiteKindLanding,
		HTML:   "<html></html>",
	}))

	hub := ws.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	siteService := service.NewSiteService(siteRepo, metricRepo, nil, tracking.NewInjector(testBaseURL), service.SiteServiceOptions{})
	metricsService := service.NewMetricsService(siteRepo, metricRepo, hub)
	ctrl := NewLiveController(siteService, hub, []string{"https://editor.example.com"})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if user := c.Query("user"); user != "" {
			c.Set(middleware.UserIDKey, user)
		}
		c.Next()
	})
	router.GET("/ws/sites/:id/metrics", ctrl.Watch)
	router.GET("/sites/:id/live", ctrl.LiveStatus)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &liveFixture{server: server, hub: hub, metricsService: metricsService}
}

func (fx *liveFixture) wsURL(path string) string {
	return "ws" + strings.TrimPrefix(fx.server.URL, "http") + path
}

func TestLiveController_StreamsMetrics(t *testing.T) {
	fx := setupLiveControllerTest(t)

	header := http.Header{"Origin": []string{"https://editor.example.com"}}
	conn, _, err := websocket.DefaultDialer.Dial(fx.wsURL("/ws/sites/live-site/metrics?user=owner"), header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return fx.hub.Watchers("live-site") == 1
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(fx.server.URL + "/sites/live-site/live?user=owner")
	require.NoError(t, err)
	var status struct {
		Watchers int `json:"watchers"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	resp.Body.Close()
	assert.Equal(t, 1, status.Watchers)

	require.NoError(t, fx.metricsService.Record(t.Context(), service.MetricEvent{
		SiteID: "live-site",
		Type:   model.EventClick,
		Label:  "  Ver   carta ",
	}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg service.LiveMetric
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "metric", msg.Type)
	assert.Equal(t, model.EventClick, msg.Event)
	assert.Equal(t, "Ver carta", msg.Label)
}

func TestLiveController_Rejections(t *testing.T) {
	fx := setupLiveControllerTest(t)
	origin := http.Header{"Origin": []string{"https://editor.example.com"}}

	tests := []struct {
		name     string
		path     string
		header   http.Header
		wantCode int
	}{
		{"no user", "/ws/sites/live-site/metrics", origin, http.StatusUnauthorized},
		{"not the owner", "/ws/sites/live-site/metrics?user=other", origin, http.StatusForbidden},
		{"unknown site", "/ws/sites/nope/metrics?user=owner", origin, http.StatusNotFound},
		{"foreign origin", "/ws/sites/live-site/metrics?user=owner", http.Header{"Origin": []string{"https://evil.example.com"}}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, resp, err := websocket.DefaultDialer.Dial(fx.wsURL(tt.path), tt.header)
			if conn != nil {
				conn.Close()
			}
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}

	assert.Equal(t, 0, fx.hub.Watchers("live-site"))
}
