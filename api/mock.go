package api

import "context"

// MockBackend is a test double for API. Unset funcs return success.
type MockBackend struct {
	CreateEventFunc         func(ctx context.Context, userInput string) Outcome
	HeartRiskPredictionFunc func(ctx context.Context) (*HeartRiskResponse, Outcome)
	ScheduleWorkoutFunc     func(ctx context.Context) Outcome
	ScheduleDestressorFunc  func(ctx context.Context, req DestressorRequest) Outcome
}

func (m *MockBackend) CreateEvent(ctx context.Context, userInput string) Outcome {
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(ctx, userInput)
	}
	return Outcome{OK: true, Status: 200}
}

func (m *MockBackend) HeartRiskPrediction(ctx context.Context) (*HeartRiskResponse, Outcome) {
	if m.HeartRiskPredictionFunc != nil {
		return m.HeartRiskPredictionFunc(ctx)
	}
	return &HeartRiskResponse{
		Prediction:    "0",
		Probabilities: []float64{0.9, 0.1},
		Status:        "ok",
	}, Outcome{OK: true, Status: 200}
}

func (m *MockBackend) ScheduleWorkout(ctx context.Context) Outcome {
	if m.ScheduleWorkoutFunc != nil {
		return m.ScheduleWorkoutFunc(ctx)
	}
	return Outcome{OK: true, Status: 200}
}

func (m *MockBackend) ScheduleDestressor(ctx context.Context, req DestressorRequest) Outcome {
	if m.ScheduleDestressorFunc != nil {
		return m.ScheduleDestressorFunc(ctx, req)
	}
	return Outcome{OK: true, Status: 200}
}
