package shortlink

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/sharifianco/XToofan/internal/utils"
	"go.uber.org/zap"
)

const (
	codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
	maxAttempts  = 10
)

var (
	// ErrNotFound is returned by Resolve for an unknown short code.
	ErrNotFound = errors.New("link not found")
	// ErrCodeExhausted is returned when every allocation attempt collided.
	// Callers treat it as a soft failure: the parent operation proceeds
	// without a link.
	ErrCodeExhausted = errors.New("could not allocate a unique short code")
)

// Store is the persistence surface the allocator, resolver and backfill need.
// InsertDeepLink must be an atomic conditional insert: it reports false, not an
// error, when the code is already bound to another record.
type Store interface {
	InsertDeepLink(ctx context.Context, link types.DeepLink) (bool, error)
	GetDeepLinkByCode(ctx context.Context, code string) (*types.DeepLink, error)
	GetDeepLinkByTweetID(ctx context.Context, tweetID string) (*types.DeepLink, error)
	UpdateDeepLinkContent(ctx context.Context, code, tweetText, intentURL string) error
	IncrementLinkClicks(ctx context.Context, code string) error
	ListTweetsWithoutCode(ctx context.Context) ([]types.Tweet, error)
	GetTweetByID(ctx context.Context, id string) (*types.Tweet, error)
	SetTweetShortCode(ctx context.Context, tweetID, code string) error
	ListDeepLinks(ctx context.Context) ([]types.DeepLink, error)
}

// ClickSink receives best-effort click notifications for resolved links.
type ClickSink interface {
	LinkClicked(code string)
}

type Service struct {
	store   Store
	clicks  ClickSink
	dedupe  bool
	baseURL string
}

// NewService creates the short-link service. clicks may be nil, in which case
// resolve increments the counter inline. When dedupe is on, allocating for a
// tweet that already has a link returns the existing code.
func NewService(store Store, clicks ClickSink, dedupe bool, baseURL string) *Service {
	return &Service{store: store, clicks: clicks, dedupe: dedupe, baseURL: baseURL}
}

// newCode draws a candidate code: independent uniform picks from the 62-symbol
// alphabet. Not cryptographically secured; uniqueness comes from the insert.
func newCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// ShortURL renders the public URL for a code.
func (s *Service) ShortURL(code string) string {
	return s.baseURL + "/l/" + code
}

type AllocateParams struct {
	TweetID  *string
	Text     string
	ReplyURL string
}

// Allocate mints a unique code and persists the link record under it. The
// uniqueness guard is the storage layer's unique constraint: each attempt is a
// conditional insert, and a conflicting candidate just means another draw.
func (s *Service) Allocate(ctx context.Context, params AllocateParams) (string, error) {
	if s.dedupe && params.TweetID != nil {
		existing, err := s.store.GetDeepLinkByTweetID(ctx, *params.TweetID)
		if err != nil {
			return "", err
		}
		if existing != nil {
			return existing.ShortCode, nil
		}
	}

	intentURL := EncodeIntent(BuildIntentTargets(params.Text, params.ReplyURL))

	for attempt := 0; attempt < maxAttempts; attempt++ {
		link := types.DeepLink{
			ID:        uuid.New().String(),
			ShortCode: newCode(),
			TweetID:   params.TweetID,
			TweetText: params.Text,
			IntentURL: intentURL,
			CreatedAt: time.Now().UTC(),
		}

		inserted, err := s.store.InsertDeepLink(ctx, link)
		if err != nil {
			return "", err
		}
		if inserted {
			return link.ShortCode, nil
		}

		utils.Zlog.Warn("Short code collision, retrying",
			zap.String("code", link.ShortCode),
			zap.Int("attempt", attempt+1))
	}

	return "", ErrCodeExhausted
}

// AllocateForTweet allocates a link for a tweet and binds the code back onto
// the tweet row.
func (s *Service) AllocateForTweet(ctx context.Context, tweet types.Tweet) (string, error) {
	code, err := s.Allocate(ctx, AllocateParams{
		TweetID:  &tweet.ID,
		Text:     tweet.Text,
		ReplyURL: tweet.CommentTweetURL,
	})
	if err != nil {
		return "", err
	}
	if err := s.store.SetTweetShortCode(ctx, tweet.ID, code); err != nil {
		return "", err
	}
	return code, nil
}

// Resolve maps a code back to its record and deep-link triple, counting the
// visit. Click accounting is best-effort: a failed increment never blocks the
// response.
func (s *Service) Resolve(ctx context.Context, code string) (*types.DeepLink, types.IntentTargets, error) {
	link, err := s.store.GetDeepLinkByCode(ctx, code)
	if err != nil {
		return nil, types.IntentTargets{}, err
	}
	if link == nil {
		return nil, types.IntentTargets{}, ErrNotFound
	}

	if s.clicks != nil {
		s.clicks.LinkClicked(code)
	} else if err := s.store.IncrementLinkClicks(ctx, code); err != nil {
		utils.Zlog.Warn("Failed to count link click", zap.String("code", code), zap.Error(err))
	}

	targets, legacy := DecodeIntent(link.IntentURL)
	if legacy {
		utils.Zlog.Debug("Resolved legacy intent record", zap.String("code", code))
	}
	return link, targets, nil
}

// BackfillSummary reports one backfill run. Errors is keyed by the item id
// that failed; per-item failures never abort the batch.
type BackfillSummary struct {
	Generated int               `json:"generated"`
	Updated   int               `json:"updated"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// Backfill repairs link data in two phases: allocate links for tweets that
// have none, then recompute every link's text and intent triple from its
// source tweet. Safe to re-run; a second run with no intervening writes
// generates nothing and rewrites identical content.
func (s *Service) Backfill(ctx context.Context) BackfillSummary {
	summary := BackfillSummary{Errors: map[string]string{}}

	tweets, err := s.store.ListTweetsWithoutCode(ctx)
	if err != nil {
		summary.Errors["phase1"] = err.Error()
	} else {
		for _, tweet := range tweets {
			if _, err := s.AllocateForTweet(ctx, tweet); err != nil {
				summary.Errors[tweet.ID] = err.Error()
				continue
			}
			summary.Generated++
		}
	}

	links, err := s.store.ListDeepLinks(ctx)
	if err != nil {
		summary.Errors["phase2"] = err.Error()
		return summary
	}
	for _, link := range links {
		if link.TweetID == nil {
			continue
		}
		tweet, err := s.store.GetTweetByID(ctx, *link.TweetID)
		if err != nil {
			summary.Errors[*link.TweetID] = err.Error()
			continue
		}
		if tweet == nil {
			continue
		}
		intentURL := EncodeIntent(BuildIntentTargets(tweet.Text, tweet.CommentTweetURL))
		if err := s.store.UpdateDeepLinkContent(ctx, link.ShortCode, tweet.Text, intentURL); err != nil {
			summary.Errors[*link.TweetID] = err.Error()
			continue
		}
		summary.Updated++
	}

	utils.Zlog.Info("Backfill completed",
		zap.Int("generated", summary.Generated),
		zap.Int("updated", summary.Updated),
		zap.Int("errors", len(summary.Errors)))

	if len(summary.Errors) == 0 {
		summary.Errors = nil
	}
	return summary
}
