package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newAggregatorServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("dev-id") != "dev-123" {
			t.Errorf("missing dev-id header on %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "key-456" {
			t.Errorf("missing x-api-key header on %s", r.URL.Path)
		}

		switch r.URL.Path {
		case "/v2/auth/generateAuthToken":
			json.NewEncoder(w).Encode(map[string]string{"token": "tok-789"})
		case "/v2/activity":
			if r.Header.Get("Authorization") != "Bearer tok-789" {
				t.Error("missing bearer token on data request")
			}
			if r.URL.Query().Get("source") != string(SourceAppleHealth) {
				t.Errorf("unexpected source: %s", r.URL.Query().Get("source"))
			}
			json.NewEncoder(w).Encode(ActivityPayload{
				Metadata: Metadata{Name: "morning run"},
			})
		case "/v2/daily":
			json.NewEncoder(w).Encode(DailyPayload{Steps: 8421})
		case "/v2/sleep":
			json.NewEncoder(w).Encode(SleepPayload{DurationSeconds: 7.5 * 3600})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestClient(url string) *Client {
	return NewClient(ClientParams{
		BaseURL: url,
		DevID:   "dev-123",
		APIKey:  "key-456",
	})
}

func TestConnect(t *testing.T) {
	server := newAggregatorServer(t)
	defer server.Close()

	c := newTestClient(server.URL)
	if c.Connected() {
		t.Error("expected not connected before Connect")
	}

	if err := c.Connect(context.Background(), SourceAppleHealth); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Connected() {
		t.Error("expected connected after Connect")
	}
}

func TestConnect_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if err := c.Connect(context.Background(), SourceAppleHealth); err == nil {
		t.Fatal("expected error")
	}
	if c.Connected() {
		t.Error("expected not connected after failed Connect")
	}
}

func TestFetches(t *testing.T) {
	server := newAggregatorServer(t)
	defer server.Close()

	c := newTestClient(server.URL)
	ctx := context.Background()
	if err := c.Connect(ctx, SourceAppleHealth); err != nil {
		t.Fatal(err)
	}

	end := time.Now()
	start := end.AddDate(0, 0, -1)

	activity, err := c.Activity(ctx, SourceAppleHealth, start, end)
	if err != nil {
		t.Fatalf("Activity: %v", err)
	}
	if activity.Metadata.Name != "morning run" {
		t.Errorf("unexpected activity: %+v", activity)
	}

	daily, err := c.Daily(ctx, SourceAppleHealth, start, end)
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if daily.Steps != 8421 {
		t.Errorf("expected 8421 steps, got %d", daily.Steps)
	}

	sleep, err := c.Sleep(ctx, SourceAppleHealth, start, end)
	if err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	if sleep.DurationSeconds != 7.5*3600 {
		t.Errorf("unexpected sleep duration: %v", sleep.DurationSeconds)
	}
}

func TestFetch_RequiresConnect(t *testing.T) {
	server := newAggregatorServer(t)
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Activity(context.Background(), SourceAppleHealth, time.Now(), time.Now())
	if err == nil {
		t.Fatal("expected error before Connect")
	}
}
