package suggestions

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

var ErrNotFound = errors.New("suggestion not found")

type Service struct {
	db    *loaders.PostgresClient
	links *shortlink.Service
}

func NewService(db *loaders.PostgresClient, links *shortlink.Service) *Service {
	return &Service{db: db, links: links}
}

func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*types.Suggestion, error) {
	suggestion := types.Suggestion{
		ID:            uuid.New().String(),
		Text:          req.Text,
		ReplyURL:      req.ReplyURL,
		SubmitterName: req.SubmitterName,
		Status:        types.SuggestionPending,
	}
	return s.db.CreateSuggestion(ctx, suggestion)
}

func (s *Service) List(ctx context.Context) ([]types.Suggestion, error) {
	return s.db.ListSuggestions(ctx)
}

func (s *Service) SetStatus(ctx context.Context, id string, status types.SuggestionStatus) (*types.Suggestion, error) {
	updated, err := s.db.UpdateSuggestionStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// Publish promotes a suggestion into an active tweet and marks it published.
// The new tweet gets a short link; allocation failure is logged, not fatal,
// since backfill repairs missing codes.
func (s *Service) Publish(ctx context.Context, id string) (*types.Tweet, error) {
	suggestion, err := s.db.GetSuggestionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if suggestion == nil {
		return nil, ErrNotFound
	}

	tweet := types.Tweet{
		ID:              uuid.New().String(),
		Text:            suggestion.Text,
		Category:        "community",
		CommentTweetURL: suggestion.ReplyURL,
		Active:          true,
	}
	created, err := s.db.CreateTweet(ctx, tweet)
	if err != nil {
		return nil, fmt.Errorf("failed to publish suggestion: %w", err)
	}

	if code, err := s.links.AllocateForTweet(ctx, *created); err != nil {
		utils.Zlog.Warn("Short link not created for published suggestion",
			zap.String("suggestionId", id),
			zap.Error(err))
	} else {
		created.ShortCode = code
	}

	if _, err := s.db.UpdateSuggestionStatus(ctx, id, types.SuggestionPublished); err != nil {
		utils.Zlog.Warn("Suggestion published but status not updated",
			zap.String("suggestionId", id),
			zap.Error(err))
	}
	return created, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.db.DeleteSuggestion(ctx, id)
}
