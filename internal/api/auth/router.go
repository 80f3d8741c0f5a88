package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/config"
)

func RegisterRoutes(router *gin.RouterGroup, cfg *config.Config) {
	controller := NewController(cfg.AdminPassword, cfg.JwtSecret)
	router.POST("/admin/login", controller.Login)
}
