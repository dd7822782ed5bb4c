package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	dateFormat = "2006-01-02"
)

// Client talks to the aggregator's REST API. Authentication uses a
// developer ID plus API key to mint a short-lived token, which is then
// presented on data requests.
type Client struct {
	baseURL    string
	devID      string
	apiKey     string
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

// ClientParams holds configuration for creating a Client.
type ClientParams struct {
	BaseURL string
	DevID   string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates an aggregator client.
func NewClient(p ClientParams) *Client {
	timeout := p.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(p.BaseURL, "/"),
		devID:      p.DevID,
		apiKey:     p.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Connected reports whether an auth token is held.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != ""
}

// Connect mints an auth token and initializes the connection for the
// given source.
func (c *Client) Connect(ctx context.Context, source SourceType) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/auth/generateAuthToken", nil)
	if err != nil {
		return fmt.Errorf("building auth request: %w", err)
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("generating auth token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("generating auth token: server returned status %d", resp.StatusCode)
	}

	var auth struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return fmt.Errorf("decoding auth token: %w", err)
	}
	if auth.Token == "" {
		return fmt.Errorf("auth response missing token")
	}

	c.mu.Lock()
	c.token = auth.Token
	c.mu.Unlock()
	return nil
}

// Activity fetches activity data for the window.
func (c *Client) Activity(ctx context.Context, source SourceType, start, end time.Time) (*ActivityPayload, error) {
	var payload ActivityPayload
	if err := c.get(ctx, "/v2/activity", source, start, end, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Daily fetches the daily rollup for the window.
func (c *Client) Daily(ctx context.Context, source SourceType, start, end time.Time) (*DailyPayload, error) {
	var payload DailyPayload
	if err := c.get(ctx, "/v2/daily", source, start, end, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Sleep fetches the sleep rollup for the window.
func (c *Client) Sleep(ctx context.Context, source SourceType, start, end time.Time) (*SleepPayload, error) {
	var payload SleepPayload
	if err := c.get(ctx, "/v2/sleep", source, start, end, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, source SourceType, start, end time.Time, out any) error {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == "" {
		return fmt.Errorf("%s: not connected", path)
	}

	q := url.Values{}
	q.Set("source", string(source))
	q.Set("start_date", start.Format(dateFormat))
	q.Set("end_date", end.Format(dateFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%s: building request: %w", path, err)
	}
	c.setAuthHeaders(req)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: server returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", path, err)
	}
	return nil
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("dev-id", c.devID)
	req.Header.Set("x-api-key", c.apiKey)
}
