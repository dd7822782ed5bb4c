package views

import (
	"context"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/google/uuid"

	"github.com/flowstate-health/flowstate-tui/api"
	"github.com/flowstate-health/flowstate-tui/scene"
)

// WorkoutView requests a generated workout plan and commits it to the
// calendar (the two-step flow lives in the backend client).
type WorkoutView struct {
	PanelCore
	backend api.API
}

// NewWorkoutView creates a WorkoutView backed by the given backend.
func NewWorkoutView(backend api.API, postEvent func(vaxis.Event)) *WorkoutView {
	return &WorkoutView{
		PanelCore: newPanelCore(scene.PanelWorkout, postEvent, 0),
		backend:   backend,
	}
}

// Submit dispatches the plan-and-schedule flow and begins dismissal.
func (wv *WorkoutView) Submit() {
	if !wv.TryAcquire() {
		return
	}
	wv.setState(PanelSubmitting)
	wv.Dismiss()

	go func() {
		out := wv.backend.ScheduleWorkout(context.Background())
		wv.Release()
		wv.post(SubmissionDone{
			ID:      uuid.New(),
			Kind:    scene.PanelWorkout,
			Op:      "workout",
			Outcome: out,
		})
	}()
}

// HandleKey applies one key to the panel, reporting whether it was
// consumed.
func (wv *WorkoutView) HandleKey(key vaxis.Key) bool {
	if key.Matches(vaxis.KeyEnter) {
		wv.Submit()
		return true
	}
	return false
}

// Draw renders the panel.
func (wv *WorkoutView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	return wv.drawFrame(ctx, wv, "Workout", [][]vaxis.Segment{
		{{Text: "Generate a workout plan and add it to your calendar."}},
		nil,
		{{Text: "Enter schedule · Esc cancel", Style: vaxis.Style{Attribute: vaxis.AttrDim}}},
	})
}
