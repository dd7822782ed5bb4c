package views

import (
	"context"
	"fmt"
	"sync"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"

	"github.com/flowstate-health/flowstate-tui/api"
	"github.com/flowstate-health/flowstate-tui/scene"
)

// HealthScore maps the model's risk probability to a 0-100 score.
func HealthScore(riskProbability float64) int {
	return int(100 - riskProbability*100)
}

// HealthMessage returns the user-facing summary for a prediction label.
func HealthMessage(prediction string) string {
	if prediction == "1" {
		return "Your heart health needs attention"
	}
	return "Your heart health is regular"
}

// HeartRiskView runs the heart disease prediction and, unlike the other
// panels, stays open to display the result before allowing dismissal.
type HeartRiskView struct {
	PanelCore
	backend api.API

	// Loading is invoked with true when the check starts and false when
	// the result arrives. The app wires it to the scene's loading
	// rotation.
	Loading func(bool)

	mu      sync.Mutex
	result  *api.HeartRiskResponse
	outcome api.Outcome
}

// NewHeartRiskView creates a HeartRiskView backed by the given backend.
func NewHeartRiskView(backend api.API, postEvent func(vaxis.Event)) *HeartRiskView {
	return &HeartRiskView{
		PanelCore: newPanelCore(scene.PanelHeartRisk, postEvent, 0),
		backend:   backend,
	}
}

// Check dispatches the prediction call. A second check while one is in
// flight is ignored. The result arrives as a HeartRiskResult event.
func (hv *HeartRiskView) Check() {
	if !hv.TryAcquire() {
		return
	}
	hv.setState(PanelSubmitting)
	if hv.Loading != nil {
		hv.Loading(true)
	}

	go func() {
		res, out := hv.backend.HeartRiskPrediction(context.Background())
		hv.Release()
		hv.post(HeartRiskResult{Result: res, Outcome: out})
	}()
}

// HandleResult stores the finished prediction and moves the panel to
// its result state.
func (hv *HeartRiskView) HandleResult(ev HeartRiskResult) {
	if hv.Loading != nil {
		hv.Loading(false)
	}
	hv.mu.Lock()
	hv.result = ev.Result
	hv.outcome = ev.Outcome
	hv.mu.Unlock()
	hv.setState(PanelResult)
}

// Result returns the stored prediction, or nil before one arrives.
func (hv *HeartRiskView) Result() *api.HeartRiskResponse {
	hv.mu.Lock()
	defer hv.mu.Unlock()
	return hv.result
}

// Dismiss begins the fade-out. No-op while the check is in flight.
func (hv *HeartRiskView) Dismiss() {
	if hv.State() == PanelSubmitting {
		return
	}
	hv.PanelCore.Dismiss()
}

// HandleKey applies one key to the panel, reporting whether it was
// consumed. Enter runs the check, or dismisses once a result is shown.
func (hv *HeartRiskView) HandleKey(key vaxis.Key) bool {
	if !key.Matches(vaxis.KeyEnter) {
		return false
	}
	switch hv.State() {
	case PanelVisible:
		hv.Check()
	case PanelResult:
		hv.Dismiss()
	}
	return true
}

// Draw renders the panel for the current lifecycle state.
func (hv *HeartRiskView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	switch hv.State() {
	case PanelSubmitting:
		return drawWaitingState(ctx, hv, "Analyzing your heart data...")
	case PanelResult:
		return hv.drawResult(ctx)
	}
	return hv.drawFrame(ctx, hv, "Heart Health Check", [][]vaxis.Segment{
		{{Text: "Run a heart disease risk check on your recent data."}},
		nil,
		{{Text: "Enter run check · Esc cancel", Style: vaxis.Style{Attribute: vaxis.AttrDim}}},
	})
}

func (hv *HeartRiskView) drawResult(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	hv.mu.Lock()
	res := hv.result
	out := hv.outcome
	hv.mu.Unlock()

	if res == nil {
		return hv.drawFrame(ctx, hv, "Heart Health Check", [][]vaxis.Segment{
			{{Text: "Check failed: " + out.Message, Style: vaxis.Style{Foreground: vaxis.IndexColor(1)}}},
			nil,
			{{Text: "Enter close", Style: vaxis.Style{Attribute: vaxis.AttrDim}}},
		})
	}

	score := HealthScore(res.Probabilities[1])
	scoreColor := vaxis.IndexColor(2)
	if res.Prediction == "1" {
		scoreColor = vaxis.IndexColor(1)
	}
	return hv.drawFrame(ctx, hv, "Heart Health Check", [][]vaxis.Segment{
		{
			{Text: "Health score  ", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
			{Text: fmt.Sprintf("%d / 100", score), Style: vaxis.Style{Foreground: scoreColor, Attribute: vaxis.AttrBold}},
		},
		{{Text: HealthMessage(res.Prediction)}},
		nil,
		{{Text: "Enter close", Style: vaxis.Style{Attribute: vaxis.AttrDim}}},
	})
}
