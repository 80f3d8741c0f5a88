package suggestions

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/api/tweets"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/sharifianco/XToofan/internal/utils"
	"github.com/sharifianco/XToofan/internal/verify"
	"go.uber.org/zap"
)

// Controller handles HTTP requests for suggestions
type Controller struct {
	service  *Service
	verifier *verify.Turnstile
}

func NewController(service *Service, verifier *verify.Turnstile) *Controller {
	return &Controller{service: service, verifier: verifier}
}

// Submit accepts a public suggestion after bot verification. User-facing
// messages on this path are Persian.
func (ctrl *Controller) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   "متن پیشنهاد الزامی است",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	if err := tweets.ValidateText(req.Text); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   "متن پیشنهاد باید حداکثر ۲۸۰ کاراکتر باشد",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if ctrl.verifier.Enabled() && !ctrl.verifier.Verify(c.Request.Context(), req.TurnstileToken, c.ClientIP()) {
		c.JSON(http.StatusForbidden, types.ErrorResponse{
			Error:     "Forbidden",
			Message:   "تأیید امنیتی ناموفق بود، لطفاً دوباره تلاش کنید",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	suggestion, err := ctrl.service.Submit(c.Request.Context(), req)
	if err != nil {
		utils.Zlog.Error("Failed to store suggestion", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   "خطا در ثبت پیشنهاد",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusCreated, SuggestionResponse{Success: true, Suggestion: *suggestion})
}

func (ctrl *Controller) List(c *gin.Context) {
	items, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		utils.Zlog.Error("Failed to list suggestions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusOK, SuggestionListResponse{Suggestions: items})
}

// SetStatus moves a suggestion through its review states. Setting the status
// to published also creates the tweet.
func (ctrl *Controller) SetStatus(c *gin.Context) {
	id := c.Param("id")

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	status := types.SuggestionStatus(strings.ToLower(req.Status))
	switch status {
	case types.SuggestionPending, types.SuggestionApproved, types.SuggestionRejected:
	case types.SuggestionPublished:
		tweet, err := ctrl.service.Publish(c.Request.Context(), id)
		if err != nil {
			ctrl.respondStatusError(c, id, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "tweet": tweet})
		return
	default:
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   "invalid status: " + req.Status,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	updated, err := ctrl.service.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		ctrl.respondStatusError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, SuggestionResponse{Success: true, Suggestion: *updated})
}

func (ctrl *Controller) respondStatusError(c *gin.Context, id string, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:     "Not Found",
			Message:   "suggestion not found",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	utils.Zlog.Error("Failed to update suggestion", zap.String("id", id), zap.Error(err))
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{
		Error:     "Internal Server Error",
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	})
}

func (ctrl *Controller) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		utils.Zlog.Error("Failed to delete suggestion", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
