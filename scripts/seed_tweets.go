package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sharifianco/XToofan/internal/loaders"
	"github.com/sharifianco/XToofan/internal/shortlink"
	"github.com/sharifianco/XToofan/internal/types"
	"go.uber.org/zap"
)

// JSONRecord represents the structure of each record in the JSON file
type JSONRecord struct {
	Text            string `json:"text"`
	Category        string `json:"category"`
	CommentTweetURL string `json:"comment_tweet_url"`
	Active          *bool  `json:"active"`
}

func main() {
	// Command line flags
	jsonFile := flag.String("file", "tweets.json", "Path to the JSON file")
	dbDSN := flag.String("db", "", "PostgreSQL DSN connection string")
	baseURL := flag.String("base-url", "https://xtoofan.site", "Public base URL for short links")
	flag.Parse()

	if *dbDSN == "" {
		fmt.Println("Error: Database DSN is required. Use -db flag")
		flag.Usage()
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	logger.Info("Loading JSON file", zap.String("file", *jsonFile))
	records, err := loadJSONFile(*jsonFile)
	if err != nil {
		logger.Fatal("Failed to load JSON file", zap.Error(err))
	}
	logger.Info("Loaded records from JSON", zap.Int("count", len(records)))

	logger.Info("Connecting to PostgreSQL database")
	connCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	pgClient, err := loaders.NewPostgresClient(connCtx, *dbDSN)
	cancel()
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()

	if err := pgClient.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to ensure schema", zap.Error(err))
	}

	linkService := shortlink.NewService(pgClient, nil, true, *baseURL)

	seeded := 0
	failed := 0
	for i, record := range records {
		if err := seedRecord(ctx, record, pgClient, linkService, logger); err != nil {
			logger.Error("Failed to seed tweet",
				zap.Int("index", i),
				zap.Error(err))
			failed++
			continue
		}
		seeded++
	}

	logger.Info("Completed seeding",
		zap.Int("totalRecords", len(records)),
		zap.Int("successful", seeded),
		zap.Int("failed", failed))
}

// loadJSONFile reads and parses the JSON file
func loadJSONFile(filePath string) ([]JSONRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var records []JSONRecord
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	return records, nil
}

// seedRecord inserts one tweet and allocates its short link.
func seedRecord(
	ctx context.Context,
	record JSONRecord,
	pgClient *loaders.PostgresClient,
	linkService *shortlink.Service,
	logger *zap.Logger,
) error {
	if record.Text == "" {
		return fmt.Errorf("text field is empty")
	}
	if len([]rune(record.Text)) > types.MaxTweetLength {
		return fmt.Errorf("text exceeds %d characters", types.MaxTweetLength)
	}

	active := true
	if record.Active != nil {
		active = *record.Active
	}

	tweet := types.Tweet{
		ID:              uuid.New().String(),
		Text:            record.Text,
		Category:        record.Category,
		CommentTweetURL: record.CommentTweetURL,
		Active:          active,
	}

	insertCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	created, err := pgClient.CreateTweet(insertCtx, tweet)
	if err != nil {
		return fmt.Errorf("failed to insert tweet: %w", err)
	}

	code, err := linkService.AllocateForTweet(insertCtx, *created)
	if err != nil {
		// Backfill repairs missing codes later.
		logger.Warn("Tweet seeded without a short link",
			zap.String("tweetId", created.ID),
			zap.Error(err))
		return nil
	}

	logger.Info("Seeded tweet",
		zap.String("tweetId", created.ID),
		zap.String("shortCode", code))
	return nil
}
