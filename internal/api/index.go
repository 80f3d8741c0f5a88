package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/api/auth"
	"github.com/sharifianco/XToofan/internal/api/generate"
	"github.com/sharifianco/XToofan/internal/api/links"
	"github.com/sharifianco/XToofan/internal/api/middleware"
	"github.com/sharifianco/XToofan/internal/api/stats"
	"github.com/sharifianco/XToofan/internal/api/suggestions"
	"github.com/sharifianco/XToofan/internal/api/trendsapi"
	"github.com/sharifianco/XToofan/internal/api/tweets"
	"github.com/sharifianco/XToofan/internal/clicks"
	"github.com/sharifianco/XToofan/internal/config"
	"github.com/sharifianco/XToofan/internal/loaders"
	"github.com/sharifianco/XToofan/internal/shortlink"
	"github.com/sharifianco/XToofan/internal/trends"
	"github.com/sharifianco/XToofan/internal/verify"
)

// Deps carries the shared services every feature router draws from.
type Deps struct {
	Cfg      *config.Config
	DB       *loaders.PostgresClient
	Links    *shortlink.Service
	Clicks   *clicks.WorkerPool
	Generate *generate.Service
	Verifier *verify.Turnstile
	Trends   *trends.Fetcher
}

// RegisterRoutes wires every feature under /api, with admin routes behind the
// JWT middleware.
func RegisterRoutes(router *gin.Engine, deps Deps) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	root := router.Group("/")
	public := router.Group("/api")
	admin := router.Group("/api/admin")
	admin.Use(middleware.RequireAdmin(deps.Cfg.JwtSecret))

	auth.RegisterRoutes(public, deps.Cfg)
	tweets.RegisterRoutes(public, admin, deps.DB, deps.Links)
	suggestions.RegisterRoutes(public, admin, deps.DB, deps.Links, deps.Verifier)
	links.RegisterRoutes(public, root, deps.DB, deps.Links, deps.Verifier)
	stats.RegisterRoutes(public, deps.DB, deps.Clicks)
	trendsapi.RegisterRoutes(public, deps.Trends)
	generate.RegisterRoutes(admin, deps.Generate)
}
