package views

import (
	"github.com/google/uuid"

	"github.com/flowstate-health/flowstate-tui/api"
	"github.com/flowstate-health/flowstate-tui/scene"
)

// PanelClosed is posted when a panel's fade-out completes. The app
// clears the panel's flag in the scene controller on receipt.
type PanelClosed struct {
	Kind scene.PanelKind
}

// SubmissionDone is posted from submission goroutines after the backend
// call resolves. The originating panel is usually gone by then, so the
// outcome is delivered to the app's toast queue instead of a view.
type SubmissionDone struct {
	ID      uuid.UUID
	Kind    scene.PanelKind
	Op      string
	Outcome api.Outcome
}

// HeartRiskResult is posted when the prediction call resolves. Unlike
// the other panels, the heart risk panel stays open to display it.
type HeartRiskResult struct {
	Result  *api.HeartRiskResponse
	Outcome api.Outcome
}

// TranscriptReady is posted when a voice capture finishes.
type TranscriptReady struct {
	Text string
	Err  error
}

// HealthConnected is posted when the aggregator connection attempt
// resolves.
type HealthConnected struct {
	Err error
}

// HealthLoaded is posted when the health view finishes loading data.
type HealthLoaded struct {
	Err error
}
