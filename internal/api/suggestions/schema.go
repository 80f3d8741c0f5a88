package suggestions

import "github.com/sharifianco/XToofan/internal/types"

type SubmitRequest struct {
	Text           string `json:"text" binding:"required"`
	ReplyURL       string `json:"reply_url"`
	SubmitterName  string `json:"submitter_name"`
	TurnstileToken string `json:"turnstile_token"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SuggestionListResponse struct {
	Suggestions []types.Suggestion `json:"suggestions"`
}

type SuggestionResponse struct {
	Success    bool             `json:"success"`
	Suggestion types.Suggestion `json:"suggestion"`
}
