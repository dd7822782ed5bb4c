// Package api provides the client for the flowstate backend service.
// Every feature panel submits user input through it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the development backend address.
	DefaultBaseURL = "http://127.0.0.1:5002"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second
)

// Outcome is the result of one submission. It is consumed only for a
// transient toast; it is never persisted.
type Outcome struct {
	OK      bool
	Status  int
	Message string
}

func success(status int) Outcome {
	return Outcome{OK: true, Status: status}
}

func failure(status int, format string, args ...any) Outcome {
	return Outcome{Status: status, Message: fmt.Sprintf(format, args...)}
}

// HeartRiskResponse is the decoded body of /heart_disease_prediction.
type HeartRiskResponse struct {
	Prediction    string    `json:"prediction"`
	Probabilities []float64 `json:"probabilities"`
	Status        string    `json:"status"`
}

// DestressorRequest is the body of /get_destresser_recommendations.
type DestressorRequest struct {
	StressLevel         int      `json:"stress_level"`
	AvailableTime       int      `json:"available_time"`
	PreferredActivities []string `json:"preferred_activities"`
}

// API is the backend surface the views depend on.
type API interface {
	CreateEvent(ctx context.Context, userInput string) Outcome
	HeartRiskPrediction(ctx context.Context) (*HeartRiskResponse, Outcome)
	ScheduleWorkout(ctx context.Context) Outcome
	ScheduleDestressor(ctx context.Context, req DestressorRequest) Outcome
}

// Client talks to the flowstate backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL sets the backend base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a backend client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// post issues one JSON POST and returns the response body with an
// Outcome. Success iff the status is 2xx; a transport error or non-2xx
// status yields a failure carrying a human-readable message. At most
// one delivery attempt; no retries.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, Outcome) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, failure(0, "%s: encoding request: %v", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, failure(0, "%s: building request: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, failure(0, "%s: %v", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, failure(resp.StatusCode, "%s: reading response: %v", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return data, failure(resp.StatusCode, "%s: server returned status %d", path, resp.StatusCode)
	}
	return data, success(resp.StatusCode)
}

// postRaw issues a POST with a pre-encoded JSON body.
func (c *Client) postRaw(ctx context.Context, path string, body []byte) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return failure(0, "%s: building request: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(0, "%s: %v", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failure(resp.StatusCode, "%s: server returned status %d", path, resp.StatusCode)
	}
	return success(resp.StatusCode)
}

// CreateEvent submits free-text schedule input to /create-event.
func (c *Client) CreateEvent(ctx context.Context, userInput string) Outcome {
	_, out := c.post(ctx, "/create-event", map[string]string{"user_input": userInput})
	return out
}

// HeartRiskPrediction requests a heart disease prediction. The response
// must decode to {prediction, probabilities, status}.
func (c *Client) HeartRiskPrediction(ctx context.Context) (*HeartRiskResponse, Outcome) {
	data, out := c.post(ctx, "/heart_disease_prediction", map[string]string{})
	if !out.OK {
		return nil, out
	}
	var result HeartRiskResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, failure(out.Status, "/heart_disease_prediction: decoding response: %v", err)
	}
	if len(result.Probabilities) < 2 {
		return nil, failure(out.Status, "/heart_disease_prediction: response missing probabilities")
	}
	return &result, out
}

// ScheduleWorkout is the two-step workout submission: fetch a generated
// plan, then post its raw bytes to the calendar endpoint. A failed fetch
// aborts before the calendar call; each step's failure names the step.
func (c *Client) ScheduleWorkout(ctx context.Context) Outcome {
	plan, out := c.post(ctx, "/get_workout_plan", nil)
	if !out.OK {
		out.Message = "fetching workout plan: " + out.Message
		return out
	}

	out = c.postRaw(ctx, "/add_workout_to_calendar", plan)
	if !out.OK {
		out.Message = "adding workout to calendar: " + out.Message
	}
	return out
}

// ScheduleDestressor is the two-step destressor submission: fetch
// recommendations, then post them with a scheduling timestamp to the
// calendar endpoint. A failed fetch aborts before the calendar call.
func (c *Client) ScheduleDestressor(ctx context.Context, req DestressorRequest) Outcome {
	data, out := c.post(ctx, "/get_destresser_recommendations", req)
	if !out.OK {
		out.Message = "fetching recommendations: " + out.Message
		return out
	}

	var recs []json.RawMessage
	if err := json.Unmarshal(data, &recs); err != nil {
		return failure(out.Status, "fetching recommendations: decoding response: %v", err)
	}

	payload := map[string]any{
		"destresser_data": recs,
		"date_time":       randomTimeNextWeek(c.now()).Format("2006-01-02T15:04:05"),
	}

	_, out = c.post(ctx, "/add_destresser_to_calendar", payload)
	if !out.OK {
		out.Message = "adding destressor to calendar: " + out.Message
	}
	return out
}

// randomTimeNextWeek picks a moment between now and seven days out, the
// scheduling window the backend expects.
func randomTimeNextWeek(now time.Time) time.Time {
	window := 7 * 24 * time.Hour
	return now.Add(time.Duration(rand.Int63n(int64(window))))
}
