package links

import (
	"context"

	"github.com/google/uuid"
	"github.com/sharifianco/XToofan/internal/loaders"
	"github.com/sharifianco/XToofan/internal/shortlink"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/sharifianco/XToofan/internal/utils"
	"go.uber.org/zap"
)

// storyLinkSubmitter tags suggestion rows created through the story-link flow.
const storyLinkSubmitter = "Story Link User"

type Service struct {
	db    *loaders.PostgresClient
	links *shortlink.Service
}

func NewService(db *loaders.PostgresClient, links *shortlink.Service) *Service {
	return &Service{db: db, links: links}
}

// CreateStoryLink allocates a standalone short link for user-authored text and
// files the text as a pending suggestion so admins can review it later. The
// suggestion record is best-effort.
func (s *Service) CreateStoryLink(ctx context.Context, req CreateLinkRequest) (string, string, error) {
	code, err := s.links.Allocate(ctx, shortlink.AllocateParams{
		Text:     req.Text,
		ReplyURL: req.ReplyURL,
	})
	if err != nil {
		return "", "", err
	}

	suggestion := types.Suggestion{
		ID:            uuid.New().String(),
		Text:          req.Text,
		ReplyURL:      req.ReplyURL,
		SubmitterName: storyLinkSubmitter,
		Status:        types.SuggestionPending,
	}
	if _, err := s.db.CreateSuggestion(ctx, suggestion); err != nil {
		utils.Zlog.Warn("Story link created but suggestion not recorded",
			zap.String("code", code),
			zap.Error(err))
	}

	return code, s.links.ShortURL(code), nil
}

// Resolve looks up a code and returns the stored record with its decoded
// intent targets. The resolve itself counts as a click.
func (s *Service) Resolve(ctx context.Context, code string) (*ResolveResponse, error) {
	link, targets, err := s.links.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}

	_, legacy := shortlink.DecodeIntent(link.IntentURL)
	return &ResolveResponse{
		ShortCode: link.ShortCode,
		TweetText: link.TweetText,
		Clicks:    link.Clicks + 1,
		Legacy:    legacy,
		DeepLinks: targets,
	}, nil
}
