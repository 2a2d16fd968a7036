package ikb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultBaseURL is the production IKB API endpoint prefix.
const DefaultBaseURL = "https://api.ikb.gg/ai"

// Client performs authenticated requests against the IKB sports API.
// Every call re-fetches; the client holds no cache and never retries.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint prefix (used in tests).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the underlying HTTP client. Timeout and
// cancellation policy belong to the supplied client, not this package.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates an IKB API client. The key is validated eagerly so a
// misconfigured plugin fails at startup rather than on first query.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key required for IKB client")
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GamesURL returns the request URL for a sport/date pair.
func (c *Client) GamesURL(sport, date string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, sport, date)
}

// FetchGames issues one GET for the given sport and date and decodes the
// JSON body. Non-2xx statuses yield an *UpstreamError; transport failures
// are wrapped with ErrNetwork.
func (c *Client) FetchGames(ctx context.Context, sport, date string) (*GamesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.GamesURL(sport, date), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var games GamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &games, nil
}
