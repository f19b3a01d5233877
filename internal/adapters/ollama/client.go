// Package ollama provides an adapter for a local Ollama LLM service.
// It labels tracks with a mood and journal entries with a sentiment by
// prompting the model for a single word from a closed label set.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/ewilliams-labs/cognia/internal/core/ports"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3"

	defaultAttempts = 3
	defaultDelay    = 500 * time.Millisecond
)

// errStatus is a non-2xx reply from the model server.
var errStatus = errors.New("ollama: unexpected status")

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
}

var (
	_ ports.MoodInferrer    = (*Client)(nil)
	_ ports.JournalAnalyzer = (*Client)(nil)
)

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Option configures a Client.
type Option func(*Client)

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRetry sets the attempt budget and the initial jittered backoff.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		if delay > 0 {
			c.delay = delay
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		model:   defaultModel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		attempts: defaultAttempts,
		delay:    defaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// generate sends a single non-streaming prompt and returns the raw answer.
// Transport errors, 429 and 5xx are retried; other statuses are not.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("ollama: marshal request: %w", err)
	}

	var parsed generateResponse
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("ollama: build request: %w", err))
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("ollama: request failed: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				statusErr := fmt.Errorf("%w %d", errStatus, resp.StatusCode)
				if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
					return statusErr
				}
				return retry.Unrecoverable(statusErr)
			}

			parsed = generateResponse{}
			if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
				return retry.Unrecoverable(fmt.Errorf("ollama: decode response: %w", err))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("WARN ollama: retry attempt %d/%d: %v", n+1, c.attempts, err)
		}),
	)
	if err != nil {
		return "", err
	}

	if parsed.Error != "" {
		return "", fmt.Errorf("ollama: %s", parsed.Error)
	}
	if strings.TrimSpace(parsed.Response) == "" {
		return "", fmt.Errorf("ollama: empty response")
	}
	return parsed.Response, nil
}
