package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/api/middleware"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/sharifianco/XToofan/internal/utils"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Controller handles admin authentication
type Controller struct {
	adminPassword string
	jwtSecret     string
}

func NewController(adminPassword, jwtSecret string) *Controller {
	return &Controller{adminPassword: adminPassword, jwtSecret: jwtSecret}
}

// Login exchanges the shared admin password for a signed admin token.
func (ctrl *Controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   "password is required",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(ctrl.adminPassword)) != 1 {
		c.JSON(http.StatusUnauthorized, types.ErrorResponse{
			Error:     "Unauthorized",
			Message:   "Invalid password",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	token, err := middleware.NewAdminToken(ctrl.jwtSecret)
	if err != nil {
		utils.Zlog.Error("Failed to sign admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   "could not issue token",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Success: true, Token: token})
}
