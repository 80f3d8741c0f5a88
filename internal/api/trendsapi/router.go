package trendsapi

import (
	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/trends"
)

func RegisterRoutes(public *gin.RouterGroup, fetcher *trends.Fetcher) {
	controller := NewController(fetcher)
	public.GET("/trends", controller.List)
}
