package generate

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(admin *gin.RouterGroup, service *Service) {
	controller := NewController(service)
	admin.POST("/generate", controller.Generate)
}
