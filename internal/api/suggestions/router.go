package suggestions

import (
	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/loaders"
	"github.com/sharifianco/XToofan/internal/shortlink"
	"github.com/sharifianco/XToofan/internal/verify"
)

func RegisterRoutes(public, admin *gin.RouterGroup, db *loaders.PostgresClient, links *shortlink.Service, verifier *verify.Turnstile) {
	service := NewService(db, links)
	controller := NewController(service, verifier)

	public.POST("/suggestions", controller.Submit)

	admin.GET("/suggestions", controller.List)
	admin.PUT("/suggestions/:id", controller.SetStatus)
	admin.DELETE("/suggestions/:id", controller.Delete)
}
