package spotify

import (
	"net/http"
	"strings"
	"time"

	"github.com/ewilliams-labs/cognia/internal/core/ports"
)

// DefaultBaseURL is the Spotify Web API root.
const DefaultBaseURL = "https://api.spotify.com/v1"

// Client is an HTTP client for the Spotify adapter.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.ListeningProvider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithRetry sets the attempt budget and the base of the exponential backoff.
func WithRetry(maxRetries int, baseBackoff time.Duration) Option {
	return func(c *Client) {
		if maxRetries > 0 {
			c.maxRetries = maxRetries
		}
		if baseBackoff > 0 {
			c.baseBackoff = baseBackoff
		}
	}
}

// NewClient constructs a new Spotify client. httpClient is expected to
// authorize requests, see NewAuthorizedHTTPClient.
func NewClient(httpClient *http.Client, baseURL string, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  defaultMaxRetries,
		baseBackoff: time.Duration(defaultBackoffMs) * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
