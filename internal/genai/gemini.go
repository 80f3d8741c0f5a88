package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sharifianco/XToofan/internal/types"
)

// GenerateRequest represents the request payload for the Gemini generateContent API
type GenerateRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

// Part represents a single part of the content
type Part struct {
	Text string `json:"text"`
}

type GenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// GenerateResponse represents the response from the Gemini generateContent API
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content Content `json:"content"`
}

// GeminiClient generates campaign post batches with rotating API keys.
type GeminiClient struct {
	apiKeys []string
	client  *http.Client
	baseURL string
}

const generateModel = "gemini-2.0-flash"

// maxBatchSize caps how many posts one request may ask for.
const maxBatchSize = 20

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// NewGeminiClient creates a new client with API keys
func NewGeminiClient(keys []string) (*GeminiClient, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one API key is required")
	}
	return &GeminiClient{
		apiKeys: keys,
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: "https://generativelanguage.googleapis.com/v1beta/models",
	}, nil
}

// getRandomKey returns a random API key from the pool
func (g *GeminiClient) getRandomKey() string {
	if len(g.apiKeys) == 1 {
		return g.apiKeys[0]
	}
	return g.apiKeys[rand.Intn(len(g.apiKeys))]
}

type GenerateParams struct {
	Count   int
	Persona string
	Topic   string
}

// GeneratePosts asks the model for a batch of post texts. The model is
// instructed to answer with a bare JSON array of strings; the reply is still
// freeform text, so the array is located and parsed out of the surrounding
// prose. Returned posts are filtered to non-empty strings within the length
// cap and trimmed to the requested count.
func (g *GeminiClient) GeneratePosts(ctx context.Context, params GenerateParams) ([]string, error) {
	count := params.Count
	if count <= 0 {
		count = 10
	}
	if count > maxBatchSize {
		count = maxBatchSize
	}

	prompt := BuildPrompt(count, params.Persona, params.Topic)

	reqBody := GenerateRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			Temperature:     0.8,
			MaxOutputTokens: 2048,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	apiKey := g.getRandomKey()
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, generateModel, apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content in model response")
	}

	posts, err := ExtractPosts(genResp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}
	if len(posts) > count {
		posts = posts[:count]
	}
	return posts, nil
}

// ExtractPosts locates the JSON array of strings inside freeform model output
// and keeps only usable entries.
func ExtractPosts(text string) ([]string, error) {
	match := jsonArrayPattern.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("could not locate a JSON array in model response")
	}

	var raw []string
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse posts array: %w", err)
	}

	posts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" || len([]rune(p)) > types.MaxTweetLength {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}
