package links

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/api/tweets"
	"github.com/sharifianco/XToofan/internal/shortlink"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/sharifianco/XToofan/internal/utils"
	"github.com/sharifianco/XToofan/internal/verify"
	"go.uber.org/zap"
)

// Controller handles HTTP requests for short links
type Controller struct {
	service  *Service
	verifier *verify.Turnstile
}

func NewController(service *Service, verifier *verify.Turnstile) *Controller {
	return &Controller{service: service, verifier: verifier}
}

// Create issues a short link for user-authored text. Public path, Persian
// user-facing messages.
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   "متن توییت الزامی است",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	if err := tweets.ValidateText(req.Text); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Bad Request",
			Message:   "متن توییت باید حداکثر ۲۸۰ کاراکتر باشد",
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

	code, shortURL, err := ctrl.service.CreateStoryLink(c.Request.Context(), req)
	if err != nil {
		utils.Zlog.Error("Failed to create story link", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   "خطا در ساخت لینک کوتاه",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusCreated, CreateLinkResponse{
		Success:   true,
		ShortCode: code,
		ShortURL:  shortURL,
	})
}

// Redirect is the browser-facing short-link hop: it resolves the code and
// sends the visitor to the web intent URL.
func (ctrl *Controller) Redirect(c *gin.Context) {
	code := c.Param("code")

	resolved, err := ctrl.service.Resolve(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, shortlink.ErrNotFound) {
			c.String(http.StatusNotFound, "لینک مورد نظر یافت نشد")
			return
		}
		utils.Zlog.Error("Failed to resolve short link", zap.String("code", code), zap.Error(err))
		c.String(http.StatusInternalServerError, "خطا در بازیابی لینک")
		return
	}
	c.Redirect(http.StatusFound, resolved.DeepLinks.Fallback)
}

// Resolve returns the deep-link targets for a short code and records the
// click.
func (ctrl *Controller) Resolve(c *gin.Context) {
	code := c.Param("code")

	resolved, err := ctrl.service.Resolve(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, shortlink.ErrNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Error:     "Not Found",
				Message:   "لینک مورد نظر یافت نشد",
				Timestamp: time.Now().UTC(),
			})
			return
		}
		utils.Zlog.Error("Failed to resolve short link", zap.String("code", code), zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:     "Internal Server Error",
			Message:   "خطا در بازیابی لینک",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	c.JSON(http.StatusOK, resolved)
}
