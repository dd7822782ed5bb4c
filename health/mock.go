package health

import (
	"context"
	"time"
)

// MockProvider is a test double for Provider.
type MockProvider struct {
	ConnectFunc  func(ctx context.Context, source SourceType) error
	ActivityFunc func(ctx context.Context, source SourceType, start, end time.Time) (*ActivityPayload, error)
	DailyFunc    func(ctx context.Context, source SourceType, start, end time.Time) (*DailyPayload, error)
	SleepFunc    func(ctx context.Context, source SourceType, start, end time.Time) (*SleepPayload, error)
}

func (m *MockProvider) Connect(ctx context.Context, source SourceType) error {
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx, source)
	}
	return nil
}

func (m *MockProvider) Activity(ctx context.Context, source SourceType, start, end time.Time) (*ActivityPayload, error) {
	if m.ActivityFunc != nil {
		return m.ActivityFunc(ctx, source, start, end)
	}
	return &ActivityPayload{}, nil
}

func (m *MockProvider) Daily(ctx context.Context, source SourceType, start, end time.Time) (*DailyPayload, error) {
	if m.DailyFunc != nil {
		return m.DailyFunc(ctx, source, start, end)
	}
	return &DailyPayload{}, nil
}

func (m *MockProvider) Sleep(ctx context.Context, source SourceType, start, end time.Time) (*SleepPayload, error) {
	if m.SleepFunc != nil {
		return m.SleepFunc(ctx, source, start, end)
	}
	return &SleepPayload{}, nil
}
