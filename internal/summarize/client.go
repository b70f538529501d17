// Package summarize turns documentation diffs into human-readable changelog
// summaries using the Gemini generateContent API. The model contract filters
// trivial changes (the model returns an empty list) and consolidates
// meaningful ones into a single Overview item per page.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the Gemini API endpoint. Overridable for testing.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultRequestTimeout bounds a single generateContent call.
const DefaultRequestTimeout = 60 * time.Second

// initialBackoff is the first retry delay on rate limiting; it doubles per
// attempt.
const initialBackoff = 2 * time.Second

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	maxRetries int
	httpClient *http.Client
	// sleep is swappable in tests to avoid real backoff delays.
	sleep func(time.Duration)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint (for tests).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMaxRetries sets the attempt limit for rate-limited requests.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		if n >= 1 {
			c.maxRetries = n
		}
	}
}

// NewClient creates a Gemini client for the given model.
func NewClient(apiKey, model string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    DefaultBaseURL,
		maxRetries: 3,
		httpClient: &http.Client{Timeout: DefaultRequestTimeout},
		sleep:      time.Sleep,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// generateContent request/response wire types. Only the fields docpulse
// reads are modeled.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"response_mime_type"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// RateLimitError indicates the API rejected a request with HTTP 429.
type RateLimitError struct {
	Body string
}

func (e *RateLimitError) Error() string {
	return "rate limited by Gemini API"
}

// Generate sends the prompt and parses the JSON summary list the model
// returns. Rate-limited requests are retried with exponential backoff up to
// the configured attempt limit.
func (c *Client) Generate(ctx context.Context, prompt string) ([]Summary, error) {
	backoff := initialBackoff

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		summaries, err := c.generateOnce(ctx, prompt)
		if err == nil {
			return summaries, nil
		}
		lastErr = err

		var rateLimited *RateLimitError
		if !errors.As(err, &rateLimited) || attempt == c.maxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		c.sleep(backoff)
		backoff *= 2
	}

	return nil, lastErr
}

// generateOnce performs a single generateContent call.
func (c *Client) generateOnce(ctx context.Context, prompt string) ([]Summary, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{Body: string(body)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, truncateBody(body))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text

	var summaries []Summary
	if err := json.Unmarshal([]byte(text), &summaries); err != nil {
		return nil, fmt.Errorf("decoding summary list: %w", err)
	}

	return summaries, nil
}

// truncateBody keeps error messages readable when the API returns a long body.
func truncateBody(body []byte) string {
	const max = 300
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
