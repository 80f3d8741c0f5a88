package tweets

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/sharifianco/XToofan/internal/utils"
	"go.uber.org/zap"
)

// Controller handles HTTP requests for tweets
type Controller struct {
	service *Service
}

// NewController creates a new tweets controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// List serves the public feed of active tweets.
func (ctrl *Controller) List(c *gin.Context) {
	tweets, err := ctrl.service.ListActive(c.Request.Context())
	if err != nil {
		utils.Zlog.Error("Failed to list tweets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   "خطا در دریافت توییت‌ها",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusOK, TweetListResponse{Tweets: tweets})
}

// ListAll serves every tweet, active or not, for the admin panel.
func (ctrl *Controller) ListAll(c *gin.Context) {
	tweets, err := ctrl.service.ListAll(c.Request.Context())
	if err != nil {
		utils.Zlog.Error("Failed to list all tweets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusOK, TweetListResponse{Tweets: tweets})
}

func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}
	if err := ValidateText(req.Text); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	tweet, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		utils.Zlog.Error("Failed to create tweet", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusCreated, TweetResponse{Success: true, Tweet: *tweet})
}

func (ctrl *Controller) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}
	if err := ValidateText(req.Text); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	tweet, err := ctrl.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Error:     "Not Found",
				Message:   "tweet not found",
				Timestamp: time.Now().UTC(),
			})
			return
		}
		utils.Zlog.Error("Failed to update tweet", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusOK, TweetResponse{Success: true, Tweet: *tweet})
}

func (ctrl *Controller) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		utils.Zlog.Error("Failed to delete tweet", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Backfill repairs tweets that are missing short links and refreshes stale
// link content.
func (ctrl *Controller) Backfill(c *gin.Context) {
	var req BackfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}
	if req.Action != "backfill-links" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   "unknown action: " + req.Action,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	summary := ctrl.service.Backfill(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"generated": summary.Generated,
		"updated":   summary.Updated,
		"errors":    summary.Errors,
	})
}
