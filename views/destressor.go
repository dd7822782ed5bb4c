package views

import (
	"context"
	"fmt"
	"strings"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/google/uuid"

	"github.com/flowstate-health/flowstate-tui/api"
	"github.com/flowstate-health/flowstate-tui/scene"
)

const (
	minStressLevel = 1
	maxStressLevel = 10
	minMinutes     = 5
	maxMinutes     = 120
	minutesStep    = 5
)

// DestressorView gathers a stress level and an available time window,
// then requests destressor recommendations and commits them to the
// calendar (two-step flow in the backend client). Preferred activities
// come from the profile.
type DestressorView struct {
	PanelCore
	backend    api.API
	activities []string

	stress  int
	minutes int
}

// NewDestressorView creates a DestressorView. The initial stress level
// is derived from the dashboard's stress score (0-100 mapped to 1-10).
func NewDestressorView(backend api.API, postEvent func(vaxis.Event), activities []string, score int) *DestressorView {
	stress := score / 10
	if stress < minStressLevel {
		stress = minStressLevel
	}
	if stress > maxStressLevel {
		stress = maxStressLevel
	}
	return &DestressorView{
		PanelCore:  newPanelCore(scene.PanelDestressor, postEvent, 0),
		backend:    backend,
		activities: activities,
		stress:     stress,
		minutes:    30,
	}
}

// StressLevel returns the selected stress level.
func (dv *DestressorView) StressLevel() int { return dv.stress }

// Minutes returns the selected time window in minutes.
func (dv *DestressorView) Minutes() int { return dv.minutes }

// Submit dispatches the recommend-and-schedule flow and begins
// dismissal.
func (dv *DestressorView) Submit() {
	if !dv.TryAcquire() {
		return
	}
	req := api.DestressorRequest{
		StressLevel:         dv.stress,
		AvailableTime:       dv.minutes,
		PreferredActivities: dv.activities,
	}
	dv.setState(PanelSubmitting)
	dv.Dismiss()

	go func() {
		out := dv.backend.ScheduleDestressor(context.Background(), req)
		dv.Release()
		dv.post(SubmissionDone{
			ID:      uuid.New(),
			Kind:    scene.PanelDestressor,
			Op:      "destressor",
			Outcome: out,
		})
	}()
}

// HandleKey applies one key to the panel, reporting whether it was
// consumed. Up/Down adjust the stress level, Left/Right the time
// window, Enter submits.
func (dv *DestressorView) HandleKey(key vaxis.Key) bool {
	switch {
	case key.Matches(vaxis.KeyEnter):
		dv.Submit()
		return true
	case key.Matches(vaxis.KeyUp):
		if dv.stress < maxStressLevel {
			dv.stress++
		}
		return true
	case key.Matches(vaxis.KeyDown):
		if dv.stress > minStressLevel {
			dv.stress--
		}
		return true
	case key.Matches(vaxis.KeyRight):
		if dv.minutes < maxMinutes {
			dv.minutes += minutesStep
		}
		return true
	case key.Matches(vaxis.KeyLeft):
		if dv.minutes > minMinutes {
			dv.minutes -= minutesStep
		}
		return true
	}
	return false
}

// Draw renders the panel.
func (dv *DestressorView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	activities := strings.Join(dv.activities, ", ")
	if activities == "" {
		activities = "any"
	}
	return dv.drawFrame(ctx, dv, "Destressor", [][]vaxis.Segment{
		{
			{Text: "Stress level    ", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
			{Text: fmt.Sprintf("%2d / %d", dv.stress, maxStressLevel)},
		},
		{
			{Text: "Available time  ", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
			{Text: fmt.Sprintf("%2d min", dv.minutes)},
		},
		{
			{Text: "Activities      ", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
			{Text: activities},
		},
		nil,
		{{Text: "↑/↓ stress · ←/→ time · Enter schedule · Esc cancel", Style: vaxis.Style{Attribute: vaxis.AttrDim}}},
	})
}
