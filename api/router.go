package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/herdscout/herdscout/api/handler"
	"github.com/herdscout/herdscout/api/middleware"
	"github.com/herdscout/herdscout/config"
)

// Version reported by the health endpoint.
const Version = "0.1.0"

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(svc handler.Service, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health: no auth required.
	v1.GET("/health", handler.Health(startTime, Version))

	// Protected group: auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Searches
	protected.POST("/search/ranch", handler.SearchRanch(svc))
	protected.POST("/search/animal", handler.SearchAnimal(svc))
	protected.POST("/search/epd", handler.SearchEPD(svc))

	// Form introspection
	protected.GET("/locations", handler.Locations(svc))
	protected.GET("/form/:kind", handler.FormInfo(svc))

	return r
}
