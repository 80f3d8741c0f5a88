package stats

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/clicks"
	"github.com/sharifianco/XToofan/internal/loaders"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/sharifianco/XToofan/internal/utils"
	"go.uber.org/zap"
)

type RecordClickRequest struct {
	TweetID string `json:"tweet_id" binding:"required"`
}

type TotalsResponse struct {
	TweetClicks int `json:"tweet_clicks"`
	LinkClicks  int `json:"link_clicks"`
	TotalClicks int `json:"total_clicks"`
}

// Controller handles click accounting endpoints
type Controller struct {
	db     *loaders.PostgresClient
	ticker *clicks.WorkerPool
}

func NewController(db *loaders.PostgresClient, ticker *clicks.WorkerPool) *Controller {
	return &Controller{db: db, ticker: ticker}
}

// Record queues a tweet click for asynchronous persistence. Accounting is
// best-effort, so the ack only means accepted.
func (ctrl *Controller) Record(c *gin.Context) {
	var req RecordClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   "tweet_id is required",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	ctrl.ticker.TweetClicked(req.TweetID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Totals reports campaign-wide click counters.
func (ctrl *Controller) Totals(c *gin.Context) {
	tweetClicks, err := ctrl.db.CountClickEvents(c.Request.Context())
	if err != nil {
		utils.Zlog.Error("Failed to count click events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	linkClicks, err := ctrl.db.SumLinkClicks(c.Request.Context())
	if err != nil {
		utils.Zlog.Error("Failed to sum link clicks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, TotalsResponse{
		TweetClicks: tweetClicks,
		LinkClicks:  linkClicks,
		TotalClicks: tweetClicks + linkClicks,
	})
}
