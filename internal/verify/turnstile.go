package verify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sharifianco/XToofan/internal/utils"
	"go.uber.org/zap"
)

// Turnstile checks client challenge tokens against Cloudflare's siteverify
// endpoint. The verdict is advisory: with no secret configured every token
// passes; a failed upstream call counts as a failed verification.
type Turnstile struct {
	secret    string
	client    *http.Client
	verifyURL string
}

func NewTurnstile(secret string) *Turnstile {
	return &Turnstile{
		secret:    secret,
		client:    &http.Client{Timeout: 10 * time.Second},
		verifyURL: "https://challenges.cloudflare.com/turnstile/v0/siteverify",
	}
}

// Enabled reports whether verification is configured at all.
func (t *Turnstile) Enabled() bool {
	return t.secret != ""
}

type siteverifyResponse struct {
	Success bool `json:"success"`
}

// Verify returns the upstream verdict for a challenge token. remoteIP is
// optional and forwarded when set.
func (t *Turnstile) Verify(ctx context.Context, token, remoteIP string) bool {
	if !t.Enabled() {
		return true
	}

	form := url.Values{}
	form.Set("secret", t.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		utils.Zlog.Warn("Turnstile verification request failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	var verdict siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return false
	}
	return verdict.Success
}
