package trendsapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sharifianco/XToofan/internal/trends"
	"github.com/sharifianco/XToofan/internal/types"
)

type TrendsResponse struct {
	Trends    map[string][]types.Trend `json:"trends"`
	Countries []trends.Country         `json:"countries"`
	Outcome   types.TrendOutcome       `json:"outcome"`
	Source    string                   `json:"source"`
	Period    string                   `json:"period"`
}

// Controller serves the trending-topics feed
type Controller struct {
	fetcher *trends.Fetcher
}

func NewController(fetcher *trends.Fetcher) *Controller {
	return &Controller{fetcher: fetcher}
}

// List scrapes the per-country trend lists. The fetch never fails outright:
// partial or fallback outcomes are reported in the payload.
func (ctrl *Controller) List(c *gin.Context) {
	result := ctrl.fetcher.Fetch(c.Request.Context())
	c.JSON(http.StatusOK, TrendsResponse{
		Trends:    result.Trends,
		Countries: trends.Countries,
		Outcome:   result.Outcome,
		Source:    result.Source,
		Period:    "24h",
	})
}
