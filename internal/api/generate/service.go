package generate

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sharifianco/XToofan/internal/genai"
	"github.com/sharifianco/XToofan/internal/loaders"
	"github.com/sharifianco/XToofan/internal/shortlink"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/sharifianco/XToofan/internal/utils"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no Gemini API key was provided.
var ErrNotConfigured = errors.New("post generation is not configured")

type Params struct {
	Count    int
	Persona  string
	Topic    string
	Category string
	AutoSave bool
}

type Result struct {
	Generated int           `json:"generated"`
	Saved     int           `json:"saved"`
	Texts     []string      `json:"texts"`
	Tweets    []types.Tweet `json:"tweets,omitempty"`
}

type Service struct {
	db     *loaders.PostgresClient
	links  *shortlink.Service
	gemini *genai.GeminiClient
}

// NewService creates the generation service. gemini may be nil when no API key
// is configured; Generate then fails with ErrNotConfigured.
func NewService(db *loaders.PostgresClient, links *shortlink.Service, gemini *genai.GeminiClient) *Service {
	return &Service{db: db, links: links, gemini: gemini}
}

// Generate asks the model for a batch of posts and, when autosave is on,
// persists each as an active tweet with a short link. Saving is per-post:
// one failed insert does not abort the batch.
func (s *Service) Generate(ctx context.Context, params Params) (*Result, error) {
	if s.gemini == nil {
		return nil, ErrNotConfigured
	}

	texts, err := s.gemini.GeneratePosts(ctx, genai.GenerateParams{
		Count:   params.Count,
		Persona: params.Persona,
		Topic:   params.Topic,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Generated: len(texts), Texts: texts}
	if !params.AutoSave {
		return result, nil
	}

	category := strings.TrimSpace(params.Category)
	if category == "" {
		category = "generated"
	}

	for _, text := range texts {
		tweet := types.Tweet{
			ID:       uuid.New().String(),
			Text:     text,
			Category: category,
			Active:   true,
		}
		created, err := s.db.CreateTweet(ctx, tweet)
		if err != nil {
			utils.Zlog.Warn("Failed to save generated tweet", zap.Error(err))
			continue
		}
		if code, err := s.links.AllocateForTweet(ctx, *created); err != nil {
			utils.Zlog.Warn("Short link not created for generated tweet",
				zap.String("tweetId", created.ID),
				zap.Error(err))
		} else {
			created.ShortCode = code
		}
		result.Saved++
		result.Tweets = append(result.Tweets, *created)
	}
	return result, nil
}

// RunScheduled is the cron entrypoint: a fixed-size autosaved batch with the
// default persona.
func (s *Service) RunScheduled(ctx context.Context, count int) {
	result, err := s.Generate(ctx, Params{Count: count, AutoSave: true})
	if err != nil {
		utils.Zlog.Error("Scheduled generation failed", zap.Error(err))
		return
	}
	utils.Zlog.Info("Scheduled generation finished",
		zap.Int("generated", result.Generated),
		zap.Int("saved", result.Saved))
}
