package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayharvest/stayharvest/api/handler"
	"github.com/stayharvest/stayharvest/api/middleware"
	"github.com/stayharvest/stayharvest/browser"
	"github.com/stayharvest/stayharvest/config"
	"github.com/stayharvest/stayharvest/crawl"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(runner *crawl.Runner, manager *browser.Manager, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(manager, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Search-only crawl (async).
	protected.POST("/search", handler.PostSearch(runner))

	// Search + detail fan-out (async).
	protected.POST("/scrape", handler.PostScrape(runner))

	// Single listing (sync).
	protected.POST("/listing", handler.PostListing(runner))

	// Job polling.
	protected.GET("/jobs/:id", handler.GetJob())

	return r
}
