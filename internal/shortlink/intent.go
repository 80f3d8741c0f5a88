package shortlink

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/sharifianco/XToofan/internal/types"
)

var statusIDPattern = regexp.MustCompile(`status/(\d+)`)

// encodeComponent percent-encodes like encodeURIComponent, with spaces as %20
// rather than '+' so the text survives inside app deep-link URIs.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ReplyID extracts the parent post id from a reply-target URL, or "" when the
// URL has no status segment.
func ReplyID(replyURL string) string {
	if replyURL == "" {
		return ""
	}
	if m := statusIDPattern.FindStringSubmatch(replyURL); m != nil {
		return m[1]
	}
	return ""
}

// BuildIntentTargets composes the app/web deep-link triple for a posting
// intent. Pure function, no I/O.
func BuildIntentTargets(text, replyURL string) types.IntentTargets {
	encoded := encodeComponent(text)

	replyParam := ""
	if id := ReplyID(replyURL); id != "" {
		replyParam = "&in_reply_to=" + id
	}

	return types.IntentTargets{
		IOS:      "twitter://post?message=" + encoded + replyParam,
		Android:  "twitter://post?message=" + encoded + replyParam,
		Fallback: "https://x.com/intent/post?text=" + encoded + replyParam,
	}
}

// EncodeIntent serializes a triple into the form stored in deep_links.intent_url.
func EncodeIntent(t types.IntentTargets) string {
	raw, _ := json.Marshal(t)
	return string(raw)
}

// DecodeIntent decodes a stored intent_url value into the triple. The stored
// shape is polymorphic: current rows hold the JSON triple, rows written before
// the triple existed hold a single plain intent URL. For legacy rows the triple
// is derived by domain/path substitution and legacy reports true.
func DecodeIntent(raw string) (types.IntentTargets, bool) {
	var t types.IntentTargets
	if err := json.Unmarshal([]byte(raw), &t); err == nil && t.Fallback != "" {
		return t, false
	}
	return deriveLegacyTargets(raw), true
}

// deriveLegacyTargets maps an old-format plain intent URL onto a best-effort
// triple. The app URIs reuse the web intent path rewritten to the current
// domain; the fallback only swaps the domain.
func deriveLegacyTargets(intentURL string) types.IntentTargets {
	return types.IntentTargets{
		IOS:      strings.ReplaceAll(intentURL, "twitter.com/intent/tweet", "x.com/intent/post"),
		Android:  strings.ReplaceAll(intentURL, "twitter.com/intent/tweet", "x.com/intent/post"),
		Fallback: strings.ReplaceAll(intentURL, "twitter.com", "x.com"),
	}
}
