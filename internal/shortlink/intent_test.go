package shortlink

import (
	"testing"

	"github.com/sharifianco/XToofan/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIntentTargets(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		replyURL     string
		wantFallback string
		wantIOS      string
	}{
		{
			name:         "plain text",
			text:         "Hello world",
			wantFallback: "https://x.com/intent/post?text=Hello%20world",
			wantIOS:      "twitter://post?message=Hello%20world",
		},
		{
			name:         "hashtag and reply target",
			text:         "Hello #Test",
			replyURL:     "https://x.com/u/status/12345",
			wantFallback: "https://x.com/intent/post?text=Hello%20%23Test&in_reply_to=12345",
			wantIOS:      "twitter://post?message=Hello%20%23Test&in_reply_to=12345",
		},
		{
			name:         "reply URL without status id is ignored",
			text:         "hi",
			replyURL:     "https://x.com/someuser",
			wantFallback: "https://x.com/intent/post?text=hi",
			wantIOS:      "twitter://post?message=hi",
		},
		{
			name:         "ampersand is escaped",
			text:         "a&b",
			wantFallback: "https://x.com/intent/post?text=a%26b",
			wantIOS:      "twitter://post?message=a%26b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildIntentTargets(tt.text, tt.replyURL)
			assert.Equal(t, tt.wantFallback, got.Fallback)
			assert.Equal(t, tt.wantIOS, got.IOS)
			assert.Equal(t, got.IOS, got.Android)
		})
	}
}

func TestReplyID(t *testing.T) {
	assert.Equal(t, "12345", ReplyID("https://x.com/u/status/12345"))
	assert.Equal(t, "987", ReplyID("https://twitter.com/a/status/987?s=20"))
	assert.Equal(t, "", ReplyID("https://x.com/u"))
	assert.Equal(t, "", ReplyID(""))
}

func TestDecodeIntentStructured(t *testing.T) {
	triple := types.IntentTargets{
		IOS:      "twitter://post?message=hi",
		Android:  "twitter://post?message=hi",
		Fallback: "https://x.com/intent/post?text=hi",
	}

	got, legacy := DecodeIntent(EncodeIntent(triple))
	require.False(t, legacy)
	assert.Equal(t, triple, got)
}

func TestDecodeIntentLegacy(t *testing.T) {
	got, legacy := DecodeIntent("https://twitter.com/intent/tweet?text=hi")
	require.True(t, legacy)
	assert.Equal(t, "https://x.com/intent/post?text=hi", got.IOS)
	assert.Equal(t, "https://x.com/intent/post?text=hi", got.Android)
	assert.Equal(t, "https://x.com/intent/tweet?text=hi", got.Fallback)
}
