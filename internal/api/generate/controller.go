package generate

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/sharifianco/XToofan/internal/utils"
	"go.uber.org/zap"
)

type GenerateRequest struct {
	Count    int    `json:"count"`
	Persona  string `json:"persona"`
	Topic    string `json:"topic"`
	Category string `json:"category"`
	AutoSave bool   `json:"auto_save"`
}

// Controller handles admin post-generation requests
type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	result, err := ctrl.service.Generate(c.Request.Context(), Params{
		Count:    req.Count,
		Persona:  req.Persona,
		Topic:    req.Topic,
		Category: req.Category,
		AutoSave: req.AutoSave,
	})
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
				Error:     "Service Unavailable",
				Message:   "post generation is not configured",
				Timestamp: time.Now().UTC(),
			})
			return
		}
		utils.Zlog.Error("Post generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error:     "Bad Gateway",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"generated": result.Generated,
		"saved":     result.Saved,
		"texts":     result.Texts,
		"tweets":    result.Tweets,
	})
}
