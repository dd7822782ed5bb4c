package views_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/flowstate-health/flowstate-tui/health"
	"github.com/flowstate-health/flowstate-tui/views"
)

func connectedHealthView(t *testing.T, mock *health.MockProvider) (*views.HealthView, *eventRecorder) {
	t.Helper()
	rec := newEventRecorder()
	hv := views.NewHealthView(mock, health.SourceAppleHealth, rec.post)
	hv.Connect()
	hv.HandleConnected(rec.next(t).(views.HealthConnected))
	return hv, rec
}

func TestHealthView_ConnectAndLoad(t *testing.T) {
	mock := &health.MockProvider{
		DailyFunc: func(ctx context.Context, source health.SourceType, start, end time.Time) (*health.DailyPayload, error) {
			return &health.DailyPayload{Steps: 8421, RestingBPM: 58}, nil
		},
	}

	hv, rec := connectedHealthView(t, mock)
	ev, ok := rec.next(t).(views.HealthLoaded)
	if !ok {
		t.Fatal("expected HealthLoaded")
	}
	hv.HandleLoaded(ev)

	if !hv.Loaded() {
		t.Error("expected loaded")
	}
	s, err := hv.Draw(testDrawContext(80, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size.Width != 80 {
		t.Errorf("expected width=80, got %d", s.Size.Width)
	}
}

func TestHealthView_ConnectError(t *testing.T) {
	mock := &health.MockProvider{
		ConnectFunc: func(ctx context.Context, source health.SourceType) error {
			return errors.New("auth token request failed")
		},
	}

	rec := newEventRecorder()
	hv := views.NewHealthView(mock, health.SourceGarmin, rec.post)
	hv.Connect()
	hv.HandleConnected(rec.next(t).(views.HealthConnected))

	if hv.Connected() {
		t.Error("expected not connected")
	}
	rec.none(t, 50*time.Millisecond)
}

func TestHealthView_LoadErrorNamesFetch(t *testing.T) {
	mock := &health.MockProvider{
		SleepFunc: func(ctx context.Context, source health.SourceType, start, end time.Time) (*health.SleepPayload, error) {
			return nil, errors.New("bad gateway")
		},
	}

	hv, rec := connectedHealthView(t, mock)
	ev := rec.next(t).(views.HealthLoaded)
	if ev.Err == nil {
		t.Fatal("expected load error")
	}
	if !strings.Contains(ev.Err.Error(), "sleep:") {
		t.Errorf("expected error naming the sleep fetch, got %v", ev.Err)
	}
	hv.HandleLoaded(ev)
	if hv.Loaded() {
		t.Error("expected not loaded after failure")
	}
}

func TestHealthView_SecondConnectIgnoredWhileConnecting(t *testing.T) {
	release := make(chan struct{})
	calls := 0
	mock := &health.MockProvider{
		ConnectFunc: func(ctx context.Context, source health.SourceType) error {
			calls++
			<-release
			return nil
		},
	}

	rec := newEventRecorder()
	hv := views.NewHealthView(mock, health.SourceFitbit, rec.post)
	hv.Connect()
	hv.Connect()
	close(release)

	rec.next(t)
	rec.none(t, 50*time.Millisecond)
	if calls != 1 {
		t.Errorf("expected one connect attempt, got %d", calls)
	}
}

func TestHealthView_Draw_Disconnected(t *testing.T) {
	hv := views.NewHealthView(&health.MockProvider{}, health.SourceAppleHealth, nil)
	s, err := hv.Draw(testDrawContext(80, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Size.Width != 80 {
		t.Errorf("expected width=80, got %d", s.Size.Width)
	}
}
