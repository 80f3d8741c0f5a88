package shortlink

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/sharifianco/XToofan/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store with the same conditional-insert semantics as
// the Postgres client.
type memStore struct {
	mu     sync.Mutex
	links  map[string]*types.DeepLink // by short code
	tweets map[string]*types.Tweet
}

func newMemStore() *memStore {
	return &memStore{
		links:  map[string]*types.DeepLink{},
		tweets: map[string]*types.Tweet{},
	}
}

func (m *memStore) InsertDeepLink(_ context.Context, link types.DeepLink) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.links[link.ShortCode]; ok {
		return false, nil
	}
	copied := link
	m.links[link.ShortCode] = &copied
	return true, nil
}

func (m *memStore) GetDeepLinkByCode(_ context.Context, code string) (*types.DeepLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if link, ok := m.links[code]; ok {
		copied := *link
		return &copied, nil
	}
	return nil, nil
}

func (m *memStore) GetDeepLinkByTweetID(_ context.Context, tweetID string) (*types.DeepLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, link := range m.links {
		if link.TweetID != nil && *link.TweetID == tweetID {
			copied := *link
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpdateDeepLinkContent(_ context.Context, code, tweetText, intentURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if link, ok := m.links[code]; ok {
		link.TweetText = tweetText
		link.IntentURL = intentURL
	}
	return nil
}

func (m *memStore) IncrementLinkClicks(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if link, ok := m.links[code]; ok {
		link.Clicks++
	}
	return nil
}

func (m *memStore) ListTweetsWithoutCode(_ context.Context) ([]types.Tweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.Tweet
	for _, tw := range m.tweets {
		if tw.ShortCode == "" {
			out = append(out, *tw)
		}
	}
	return out, nil
}

func (m *memStore) GetTweetByID(_ context.Context, id string) (*types.Tweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tw, ok := m.tweets[id]; ok {
		copied := *tw
		return &copied, nil
	}
	return nil, nil
}

func (m *memStore) SetTweetShortCode(_ context.Context, tweetID, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tw, ok := m.tweets[tweetID]; ok {
		tw.ShortCode = code
	}
	return nil
}

func (m *memStore) ListDeepLinks(_ context.Context) ([]types.DeepLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.DeepLink
	for _, link := range m.links {
		out = append(out, *link)
	}
	return out, nil
}

func TestNewCodeShape(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := newCode()
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, c), "unexpected character %q", c)
		}
	}
}

func TestAllocateAndResolveRoundTrip(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, false, "https://xtoofan.site")
	ctx := context.Background()

	code, err := svc.Allocate(ctx, AllocateParams{
		Text:     "Hello #Test",
		ReplyURL: "https://x.com/u/status/12345",
	})
	require.NoError(t, err)
	require.Len(t, code, 6)
	assert.Equal(t, "https://xtoofan.site/l/"+code, svc.ShortURL(code))

	link, targets, err := svc.Resolve(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, code, link.ShortCode)
	assert.Equal(t, "Hello #Test", link.TweetText)
	assert.Contains(t, targets.Fallback, "text=Hello%20%23Test")
	assert.Contains(t, targets.Fallback, "in_reply_to=12345")

	// One resolve counted exactly one click.
	stored, _, err := svc.Resolve(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Clicks)
}

func TestAllocateRetriesOnCollision(t *testing.T) {
	// The first two candidate inserts conflict regardless of the drawn code.
	wrapped := &conflictingStore{memStore: newMemStore(), conflicts: 2}
	svc := NewService(wrapped, nil, false, "")
	ctx := context.Background()

	code, err := svc.Allocate(ctx, AllocateParams{Text: "retry me"})
	require.NoError(t, err)
	assert.Equal(t, 3, wrapped.attempts)

	link, _, err := svc.Resolve(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, "retry me", link.TweetText)
}

func TestAllocateExhaustion(t *testing.T) {
	store := newMemStore()
	wrapped := &conflictingStore{memStore: store, conflicts: 100}
	svc := NewService(wrapped, nil, false, "")

	_, err := svc.Allocate(context.Background(), AllocateParams{Text: "never lands"})
	require.ErrorIs(t, err, ErrCodeExhausted)
	assert.Equal(t, 10, wrapped.attempts)
}

// conflictingStore reports conflicts for the first n inserts.
type conflictingStore struct {
	*memStore
	conflicts int
	attempts  int
}

func (c *conflictingStore) InsertDeepLink(ctx context.Context, link types.DeepLink) (bool, error) {
	c.attempts++
	if c.attempts <= c.conflicts {
		return false, nil
	}
	return c.memStore.InsertDeepLink(ctx, link)
}

func TestResolveUnknownCode(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, false, "")

	_, _, err := svc.Resolve(context.Background(), "zzzzzz")
	require.ErrorIs(t, err, ErrNotFound)

	// No counter was touched anywhere.
	links, _ := store.ListDeepLinks(context.Background())
	assert.Empty(t, links)
}

func TestResolveCountsEveryCall(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, false, "")
	ctx := context.Background()

	code, err := svc.Allocate(ctx, AllocateParams{Text: "count me"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _, err := svc.Resolve(ctx, code)
		require.NoError(t, err)
	}

	link, _ := store.GetDeepLinkByCode(ctx, code)
	assert.Equal(t, 3, link.Clicks)
}

func TestDedupeBySource(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	tweetID := "tweet-1"
	store.tweets[tweetID] = &types.Tweet{ID: tweetID, Text: "original"}

	dedupe := NewService(store, nil, true, "")
	first, err := dedupe.AllocateForTweet(ctx, *store.tweets[tweetID])
	require.NoError(t, err)
	second, err := dedupe.Allocate(ctx, AllocateParams{TweetID: &tweetID, Text: "original"})
	require.NoError(t, err)
	assert.Equal(t, first, second, "dedupe on: same source yields same code")

	noDedupe := NewService(store, nil, false, "")
	third, err := noDedupe.Allocate(ctx, AllocateParams{TweetID: &tweetID, Text: "original"})
	require.NoError(t, err)
	assert.NotEqual(t, first, third, "dedupe off: a fresh code is minted")
}

func TestResolveLegacyRecord(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, false, "")
	ctx := context.Background()

	legacyID := "legacy1"
	store.links[legacyID] = &types.DeepLink{
		ShortCode: legacyID,
		IntentURL: "https://twitter.com/intent/tweet?text=old",
	}

	_, targets, err := svc.Resolve(ctx, legacyID)
	require.NoError(t, err)
	assert.Equal(t, "https://x.com/intent/tweet?text=old", targets.Fallback)
	assert.Equal(t, "https://x.com/intent/post?text=old", targets.IOS)
}

func TestBackfillIdempotent(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, true, "")
	ctx := context.Background()

	store.tweets["t1"] = &types.Tweet{ID: "t1", Text: "first tweet"}
	store.tweets["t2"] = &types.Tweet{ID: "t2", Text: "second tweet", CommentTweetURL: "https://x.com/u/status/777"}

	first := svc.Backfill(ctx)
	assert.Equal(t, 2, first.Generated)
	assert.Equal(t, 2, first.Updated)
	assert.Empty(t, first.Errors)

	intentsAfterFirst := map[string]string{}
	links, _ := store.ListDeepLinks(ctx)
	for _, link := range links {
		intentsAfterFirst[link.ShortCode] = link.IntentURL
	}

	second := svc.Backfill(ctx)
	assert.Equal(t, 0, second.Generated, "second run allocates nothing")
	assert.Equal(t, 2, second.Updated)

	links, _ = store.ListDeepLinks(ctx)
	for _, link := range links {
		assert.Equal(t, intentsAfterFirst[link.ShortCode], link.IntentURL,
			"recomputed intent is identical with no intervening writes")
	}
}

func TestBackfillRefreshesStaleContent(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, true, "")
	ctx := context.Background()

	store.tweets["t1"] = &types.Tweet{ID: "t1", Text: "old text"}
	summary := svc.Backfill(ctx)
	require.Equal(t, 1, summary.Generated)

	store.tweets["t1"].Text = "new text"
	svc.Backfill(ctx)

	link, err := store.GetDeepLinkByTweetID(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, "new text", link.TweetText)
	targets, legacy := DecodeIntent(link.IntentURL)
	assert.False(t, legacy)
	assert.Contains(t, targets.Fallback, "text=new%20text")
}
