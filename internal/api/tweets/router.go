package tweets

import (
	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/loaders"
	"github.com/sharifianco/XToofan/internal/shortlink"
)

func RegisterRoutes(public, admin *gin.RouterGroup, db *loaders.PostgresClient, links *shortlink.Service) {
	service := NewService(db, links)
	controller := NewController(service)

	public.GET("/tweets", controller.List)

	admin.GET("/tweets", controller.ListAll)
	admin.POST("/tweets", controller.Create)
	admin.PUT("/tweets/:id", controller.Update)
	admin.DELETE("/tweets/:id", controller.Delete)
	admin.POST("/backfill", controller.Backfill)
}
