package links

import (
	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/loaders"
	"github.com/sharifianco/XToofan/internal/shortlink"
	"github.com/sharifianco/XToofan/internal/verify"
)

func RegisterRoutes(public, root *gin.RouterGroup, db *loaders.PostgresClient, linkService *shortlink.Service, verifier *verify.Turnstile) {
	service := NewService(db, linkService)
	controller := NewController(service, verifier)

	public.POST("/links", controller.Create)
	public.GET("/links/:code", controller.Resolve)

	root.GET("/l/:code", controller.Redirect)
}
