package stats

import (
	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/clicks"
	"github.com/sharifianco/XToofan/internal/loaders"
)

func RegisterRoutes(public *gin.RouterGroup, db *loaders.PostgresClient, ticker *clicks.WorkerPool) {
	controller := NewController(db, ticker)

	public.POST("/stats", controller.Record)
	public.GET("/stats", controller.Totals)
}
