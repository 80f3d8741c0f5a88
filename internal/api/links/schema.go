package links

import "github.com/sharifianco/XToofan/internal/types"

type CreateLinkRequest struct {
	Text           string `json:"text" binding:"required"`
	ReplyURL       string `json:"reply_url"`
	TurnstileToken string `json:"turnstile_token"`
}

type CreateLinkResponse struct {
	Success   bool   `json:"success"`
	ShortCode string `json:"short_code"`
	ShortURL  string `json:"short_url"`
}

type ResolveResponse struct {
	ShortCode string              `json:"short_code"`
	TweetText string              `json:"tweet_text"`
	Clicks    int                 `json:"clicks"`
	Legacy    bool                `json:"legacy,omitempty"`
	DeepLinks types.IntentTargets `json:"deep_links"`
}
