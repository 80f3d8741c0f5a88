package loaders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/sharifianco/XToofan/internal/utils"
	"go.uber.org/zap"
)

// PostgresClient wraps the pgx pool with typed queries for the campaign
// tables: tweets, deep_links, suggestions and click_events.
type PostgresClient struct {
	pool *pgxpool.Pool
}

func NewPostgresClient(ctx context.Context, databaseURL string) (*PostgresClient, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	utils.Zlog.Info("Connected to Postgres")
	return &PostgresClient{pool: pool}, nil
}

func (c *PostgresClient) Close() {
	c.pool.Close()
}

// EnsureSchema creates the campaign tables. The unique index on
// deep_links.short_code is the uniqueness guard the allocator relies on.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tweets (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			comment_tweet_url TEXT NOT NULL DEFAULT '',
			short_code TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS deep_links (
			id TEXT PRIMARY KEY,
			short_code TEXT NOT NULL,
			tweet_id TEXT,
			tweet_text TEXT NOT NULL DEFAULT '',
			intent_url TEXT NOT NULL,
			clicks INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS deep_links_short_code_key ON deep_links (short_code)`,
		`CREATE TABLE IF NOT EXISTS suggestions (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			reply_url TEXT NOT NULL DEFAULT '',
			submitter_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS click_events (
			id TEXT PRIMARY KEY,
			tweet_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := c.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// ====== TWEETS ======

const tweetColumns = `id, text, category, comment_tweet_url, short_code, active, created_at`

func scanTweet(row pgx.Row) (*types.Tweet, error) {
	var t types.Tweet
	err := row.Scan(&t.ID, &t.Text, &t.Category, &t.CommentTweetURL, &t.ShortCode, &t.Active, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (c *PostgresClient) listTweets(ctx context.Context, query string, args ...interface{}) ([]types.Tweet, error) {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tweets []types.Tweet
	for rows.Next() {
		var t types.Tweet
		if err := rows.Scan(&t.ID, &t.Text, &t.Category, &t.CommentTweetURL, &t.ShortCode, &t.Active, &t.CreatedAt); err != nil {
			return nil, err
		}
		tweets = append(tweets, t)
	}
	return tweets, rows.Err()
}

func (c *PostgresClient) ListActiveTweets(ctx context.Context) ([]types.Tweet, error) {
	return c.listTweets(ctx,
		`SELECT `+tweetColumns+` FROM tweets WHERE active ORDER BY created_at DESC`)
}

func (c *PostgresClient) ListAllTweets(ctx context.Context) ([]types.Tweet, error) {
	return c.listTweets(ctx,
		`SELECT `+tweetColumns+` FROM tweets ORDER BY created_at DESC`)
}

func (c *PostgresClient) ListTweetsWithoutCode(ctx context.Context) ([]types.Tweet, error) {
	return c.listTweets(ctx,
		`SELECT `+tweetColumns+` FROM tweets WHERE short_code = '' ORDER BY created_at`)
}

func (c *PostgresClient) CreateTweet(ctx context.Context, t types.Tweet) (*types.Tweet, error) {
	row := c.pool.QueryRow(ctx,
		`INSERT INTO tweets (id, text, category, comment_tweet_url, active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+tweetColumns,
		t.ID, t.Text, t.Category, t.CommentTweetURL, t.Active)
	return scanTweet(row)
}

func (c *PostgresClient) GetTweetByID(ctx context.Context, id string) (*types.Tweet, error) {
	row := c.pool.QueryRow(ctx,
		`SELECT `+tweetColumns+` FROM tweets WHERE id = $1`, id)
	return scanTweet(row)
}

func (c *PostgresClient) UpdateTweet(ctx context.Context, id, text, category, commentTweetURL string, active bool) (*types.Tweet, error) {
	row := c.pool.QueryRow(ctx,
		`UPDATE tweets SET text = $2, category = $3, comment_tweet_url = $4, active = $5
		 WHERE id = $1
		 RETURNING `+tweetColumns,
		id, text, category, commentTweetURL, active)
	return scanTweet(row)
}

func (c *PostgresClient) DeleteTweet(ctx context.Context, id string) error {
	_, err := c.pool.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	return err
}

func (c *PostgresClient) SetTweetShortCode(ctx context.Context, tweetID, code string) error {
	_, err := c.pool.Exec(ctx,
		`UPDATE tweets SET short_code = $2 WHERE id = $1`, tweetID, code)
	return err
}

// ====== DEEP LINKS ======

const deepLinkColumns = `id, short_code, tweet_id, tweet_text, intent_url, clicks, created_at`

// InsertDeepLink is an atomic conditional insert: it reports false when the
// short code is already bound to another record, without raising an error.
func (c *PostgresClient) InsertDeepLink(ctx context.Context, link types.DeepLink) (bool, error) {
	tag, err := c.pool.Exec(ctx,
		`INSERT INTO deep_links (id, short_code, tweet_id, tweet_text, intent_url)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (short_code) DO NOTHING`,
		link.ID, link.ShortCode, link.TweetID, link.TweetText, link.IntentURL)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanDeepLink(row pgx.Row) (*types.DeepLink, error) {
	var l types.DeepLink
	err := row.Scan(&l.ID, &l.ShortCode, &l.TweetID, &l.TweetText, &l.IntentURL, &l.Clicks, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (c *PostgresClient) GetDeepLinkByCode(ctx context.Context, code string) (*types.DeepLink, error) {
	row := c.pool.QueryRow(ctx,
		`SELECT `+deepLinkColumns+` FROM deep_links WHERE short_code = $1`, code)
	return scanDeepLink(row)
}

func (c *PostgresClient) GetDeepLinkByTweetID(ctx context.Context, tweetID string) (*types.DeepLink, error) {
	row := c.pool.QueryRow(ctx,
		`SELECT `+deepLinkColumns+` FROM deep_links WHERE tweet_id = $1 LIMIT 1`, tweetID)
	return scanDeepLink(row)
}

func (c *PostgresClient) ListDeepLinks(ctx context.Context) ([]types.DeepLink, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT `+deepLinkColumns+` FROM deep_links ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []types.DeepLink
	for rows.Next() {
		var l types.DeepLink
		if err := rows.Scan(&l.ID, &l.ShortCode, &l.TweetID, &l.TweetText, &l.IntentURL, &l.Clicks, &l.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (c *PostgresClient) UpdateDeepLinkContent(ctx context.Context, code, tweetText, intentURL string) error {
	_, err := c.pool.Exec(ctx,
		`UPDATE deep_links SET tweet_text = $2, intent_url = $3 WHERE short_code = $1`,
		code, tweetText, intentURL)
	return err
}

func (c *PostgresClient) IncrementLinkClicks(ctx context.Context, code string) error {
	_, err := c.pool.Exec(ctx,
		`UPDATE deep_links SET clicks = clicks + 1 WHERE short_code = $1`, code)
	return err
}

// GetLinkClicksByCodes returns the click counters for a set of short codes.
func (c *PostgresClient) GetLinkClicksByCodes(ctx context.Context, codes []string) (map[string]int, error) {
	counts := make(map[string]int, len(codes))
	if len(codes) == 0 {
		return counts, nil
	}

	rows, err := c.pool.Query(ctx,
		`SELECT short_code, clicks FROM deep_links WHERE short_code = ANY($1)`, codes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var clicks int
		if err := rows.Scan(&code, &clicks); err != nil {
			return nil, err
		}
		counts[code] = clicks
	}
	return counts, rows.Err()
}

func (c *PostgresClient) SumLinkClicks(ctx context.Context) (int, error) {
	var total int
	err := c.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(clicks), 0) FROM deep_links`).Scan(&total)
	return total, err
}

// ====== SUGGESTIONS ======

const suggestionColumns = `id, text, reply_url, submitter_name, status, created_at`

func scanSuggestion(row pgx.Row) (*types.Suggestion, error) {
	var s types.Suggestion
	err := row.Scan(&s.ID, &s.Text, &s.ReplyURL, &s.SubmitterName, &s.Status, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (c *PostgresClient) CreateSuggestion(ctx context.Context, s types.Suggestion) (*types.Suggestion, error) {
	row := c.pool.QueryRow(ctx,
		`INSERT INTO suggestions (id, text, reply_url, submitter_name, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+suggestionColumns,
		s.ID, s.Text, s.ReplyURL, s.SubmitterName, s.Status)
	return scanSuggestion(row)
}

func (c *PostgresClient) ListSuggestions(ctx context.Context) ([]types.Suggestion, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT `+suggestionColumns+` FROM suggestions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []types.Suggestion
	for rows.Next() {
		var s types.Suggestion
		if err := rows.Scan(&s.ID, &s.Text, &s.ReplyURL, &s.SubmitterName, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

func (c *PostgresClient) GetSuggestionByID(ctx context.Context, id string) (*types.Suggestion, error) {
	row := c.pool.QueryRow(ctx,
		`SELECT `+suggestionColumns+` FROM suggestions WHERE id = $1`, id)
	return scanSuggestion(row)
}

func (c *PostgresClient) UpdateSuggestionStatus(ctx context.Context, id string, status types.SuggestionStatus) (*types.Suggestion, error) {
	row := c.pool.QueryRow(ctx,
		`UPDATE suggestions SET status = $2 WHERE id = $1 RETURNING `+suggestionColumns,
		id, status)
	return scanSuggestion(row)
}

func (c *PostgresClient) DeleteSuggestion(ctx context.Context, id string) error {
	_, err := c.pool.Exec(ctx, `DELETE FROM suggestions WHERE id = $1`, id)
	return err
}

// ====== CLICK EVENTS ======

func (c *PostgresClient) InsertClickEvent(ctx context.Context, id, tweetID string) error {
	_, err := c.pool.Exec(ctx,
		`INSERT INTO click_events (id, tweet_id) VALUES ($1, $2)`, id, tweetID)
	if err != nil {
		utils.Zlog.Error("Failed to insert click event", zap.String("tweetId", tweetID), zap.Error(err))
	}
	return err
}

func (c *PostgresClient) CountClickEvents(ctx context.Context) (int, error) {
	var count int
	err := c.pool.QueryRow(ctx, `SELECT COUNT(*) FROM click_events`).Scan(&count)
	return count, err
}
