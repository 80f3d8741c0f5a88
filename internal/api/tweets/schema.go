package tweets

import (
	"fmt"
	"strings"

	"github.com/sharifianco/XToofan/internal/types"
)

type CreateTweetRequest struct {
	Text            string `json:"text" binding:"required"`
	Category        string `json:"category"`
	CommentTweetURL string `json:"comment_tweet_url"`
}

type UpdateTweetRequest struct {
	Text            string `json:"text" binding:"required"`
	Category        string `json:"category"`
	CommentTweetURL string `json:"comment_tweet_url"`
	Active          bool   `json:"active"`
}

type BackfillRequest struct {
	Action string `json:"action" binding:"required"`
}

type TweetListResponse struct {
	Tweets []types.Tweet `json:"tweets"`
}

type TweetResponse struct {
	Success bool        `json:"success"`
	Tweet   types.Tweet `json:"tweet"`
}

// ValidateText enforces the 280-character cap on authored content before any
// write happens.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("tweet text is required")
	}
	if len([]rune(text)) > types.MaxTweetLength {
		return fmt.Errorf("tweet text must be %d characters or less", types.MaxTweetLength)
	}
	return nil
}
