package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/landing-studio/config"
	"github.com/ikkim/landing-studio/internal/app/controller"
	"github.com/ikkim/landing-studio/internal/middleware"
)

// Controllers groups every HTTP handler set the router mounts.
type Controllers struct {
	Site      *controller.SiteController
	Generator *controller.GeneratorController
	Clone     *controller.CloneController
	Metrics   *controller.MetricsController
	Public    *controller.PublicController
	Upload    *controller.UploadController
	Live      *controller.LiveController
}

type Router struct {
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

func NewRouter(controllers Controllers, authMiddleware *middleware.AuthMiddleware, cfg *config.Config) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		config:         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Landing Studio API is running",
		})
	})

	// Visitor-facing routes are loaded from arbitrary origins.
	router.GET("/s/:id", r.controllers.Public.ServeSite)
	router.GET("/assets/storefront-runtime.js", r.controllers.Public.RuntimeScript)

	router.POST(beaconPath, r.controllers.Metrics.RecordEvent)

	router.GET("/clone", r.controllers.Clone.Clone)

	// Browsers cannot set headers on WebSocket upgrades; the token comes in the query.
	router.GET("/ws/sites/:id/metrics", r.authMiddleware.Authenticate(), r.controllers.Live.Watch)

	v1 := router.Group("/api/v1")
	{
		storefront := v1.Group("/storefront")
		{
			storefront.GET("/themes", r.controllers.Generator.ListThemes)
			storefront.POST("/preview", r.controllers.Generator.PreviewStorefront)
		}

		landing := v1.Group("/landing")
		{
			landing.GET("/catalog", r.controllers.Generator.LandingCatalog)
			landing.GET("/preview", r.controllers.Generator.PreviewLanding)
		}

		sites := v1.Group("/sites")
		sites.Use(r.authMiddleware.Authenticate())
		{
			sites.POST("/storefront", r.controllers.Site.CreateStorefront)
			sites.POST("/landing", r.controllers.Site.CreateLanding)
			sites.POST("/clone", r.controllers.Site.CreateFromClone)
			sites.GET("", r.controllers.Site.ListSites)
			sites.GET("/:id", r.controllers.Site.GetSite)
			sites.PUT("/:id/html", r.controllers.Site.UpdateHTML)
			sites.PUT("/:id/storefront", r.controllers.Site.SaveStorefront)
			sites.POST("/:id/publish", r.controllers.Site.Publish)
			sites.POST("/:id/unpublish", r.controllers.Site.Unpublish)
			sites.DELETE("/:id", r.controllers.Site.DeleteSite)
			sites.GET("/:id/metrics", r.controllers.Site.GetMetrics)
			sites.GET("/:id/metrics/export", r.controllers.Site.ExportMetrics)
			sites.GET("/:id/qr", r.controllers.Site.ShareQR)
			sites.GET("/:id/live", r.controllers.Live.LiveStatus)
		}

		uploads := v1.Group("/uploads")
		uploads.Use(r.authMiddleware.Authenticate())
		{
			uploads.POST("/presigned-url", r.controllers.Upload.GeneratePresignedURL)
		}
	}

	return router
}

// beaconPath receives events from published pages on any origin.
const beaconPath = "/metrics/event"

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		beacon := c.Request.URL.Path == beaconPath

		allowed := beacon
		for _, allowedOrigin := range allowedOrigins {
			allowedOrigin = strings.TrimSpace(allowedOrigin)
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed && origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}

		if !beacon {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
