package tweets

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sharifianco/XToofan/internal/loaders"
	"github.com/sharifianco/XToofan/internal/shortlink"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/sharifianco/XToofan/internal/utils"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("tweet not found")

type Service struct {
	db    *loaders.PostgresClient
	links *shortlink.Service
}

func NewService(db *loaders.PostgresClient, links *shortlink.Service) *Service {
	return &Service{db: db, links: links}
}

// ListActive returns the public feed, newest first, with each tweet's link
// click counter filled in.
func (s *Service) ListActive(ctx context.Context) ([]types.Tweet, error) {
	tweets, err := s.db.ListActiveTweets(ctx)
	if err != nil {
		return nil, err
	}

	var codes []string
	for _, t := range tweets {
		if t.ShortCode != "" {
			codes = append(codes, t.ShortCode)
		}
	}

	counts, err := s.db.GetLinkClicksByCodes(ctx, codes)
	if err != nil {
		// Click annotation is cosmetic; serve the feed without it.
		utils.Zlog.Warn("Failed to load link click counts", zap.Error(err))
		counts = map[string]int{}
	}

	for i := range tweets {
		tweets[i].LinkClicks = counts[tweets[i].ShortCode]
	}
	return tweets, nil
}

func (s *Service) ListAll(ctx context.Context) ([]types.Tweet, error) {
	return s.db.ListAllTweets(ctx)
}

// Create persists a tweet and allocates its short link. Allocation exhaustion
// is a soft failure: the tweet is kept without a code and backfill can repair
// it later.
func (s *Service) Create(ctx context.Context, req CreateTweetRequest) (*types.Tweet, error) {
	tweet := types.Tweet{
		ID:              uuid.New().String(),
		Text:            req.Text,
		Category:        req.Category,
		CommentTweetURL: req.CommentTweetURL,
		Active:          true,
	}

	created, err := s.db.CreateTweet(ctx, tweet)
	if err != nil {
		return nil, fmt.Errorf("failed to create tweet: %w", err)
	}

	code, err := s.links.AllocateForTweet(ctx, *created)
	if err != nil {
		utils.Zlog.Warn("Short link not created for tweet",
			zap.String("tweetId", created.ID),
			zap.Error(err))
		return created, nil
	}
	created.ShortCode = code
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateTweetRequest) (*types.Tweet, error) {
	updated, err := s.db.UpdateTweet(ctx, id, req.Text, req.Category, req.CommentTweetURL, req.Active)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.db.DeleteTweet(ctx, id)
}

func (s *Service) Backfill(ctx context.Context) shortlink.BackfillSummary {
	return s.links.Backfill(ctx)
}
