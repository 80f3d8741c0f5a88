package types

import (
	"time"
)

// ====== ENUMS ======

type SuggestionStatus string

const (
	SuggestionPending   SuggestionStatus = "pending"
	SuggestionApproved  SuggestionStatus = "approved"
	SuggestionRejected  SuggestionStatus = "rejected"
	SuggestionPublished SuggestionStatus = "published"
)

// TrendOutcome reports how a trends response was produced.
type TrendOutcome string

const (
	TrendsLive     TrendOutcome = "live"
	TrendsPartial  TrendOutcome = "partial"
	TrendsFallback TrendOutcome = "fallback"
)

// ====== CORE TYPES ======

// Tweet is a unit of pre-authored or AI-generated text intended for outbound
// posting. ShortCode is empty until a deep link has been allocated for it.
type Tweet struct {
	ID              string    `json:"id"`
	Text            string    `json:"text"`
	Category        string    `json:"category,omitempty"`
	CommentTweetURL string    `json:"comment_tweet_url,omitempty"`
	ShortCode       string    `json:"short_code,omitempty"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	LinkClicks      int       `json:"link_clicks"`
}

// DeepLink binds a short code to a resolvable posting intent. IntentURL holds
// either the JSON-encoded IntentTargets triple (current rows) or a single plain
// intent URL (legacy rows); shortlink.DecodeIntent disambiguates.
type DeepLink struct {
	ID        string    `json:"id"`
	ShortCode string    `json:"short_code"`
	TweetID   *string   `json:"tweet_id,omitempty"`
	TweetText string    `json:"tweet_text,omitempty"`
	IntentURL string    `json:"intent_url"`
	Clicks    int       `json:"clicks"`
	CreatedAt time.Time `json:"created_at"`
}

// IntentTargets is the platform deep-link triple for one posting intent.
type IntentTargets struct {
	IOS      string `json:"ios"`
	Android  string `json:"android"`
	Fallback string `json:"fallback"`
}

type Suggestion struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	ReplyURL      string           `json:"reply_url,omitempty"`
	SubmitterName string           `json:"submitter_name,omitempty"`
	Status        SuggestionStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
}

type Trend struct {
	Name   string `json:"name"`
	Volume *int   `json:"volume"`
	Rank   int    `json:"rank"`
}

// ====== RESPONSE TYPES ======

type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MaxTweetLength caps all user/admin-authored content before persistence.
const MaxTweetLength = 280
