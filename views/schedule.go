package views

import (
	"context"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/google/uuid"

	"github.com/flowstate-health/flowstate-tui/api"
	"github.com/flowstate-health/flowstate-tui/scene"
	"github.com/flowstate-health/flowstate-tui/widgets"
)

// ScheduleView gathers a free-text event description and submits it to
// the calendar endpoint. The panel dismisses itself on submit without
// waiting for the outcome.
type ScheduleView struct {
	PanelCore
	backend api.API
	input   widgets.Input
}

// NewScheduleView creates a ScheduleView backed by the given backend.
func NewScheduleView(backend api.API, postEvent func(vaxis.Event)) *ScheduleView {
	sv := &ScheduleView{
		PanelCore: newPanelCore(scene.PanelSchedule, postEvent, 0),
		backend:   backend,
	}
	sv.input.Placeholder = "Dentist appointment tomorrow at 3pm"
	return sv
}

// Value returns the current input text.
func (sv *ScheduleView) Value() string {
	return sv.input.Value()
}

// Submit dispatches the event creation and begins dismissal. Empty
// input and in-flight submissions are ignored.
func (sv *ScheduleView) Submit() {
	if sv.input.Empty() {
		return
	}
	if !sv.TryAcquire() {
		return
	}
	text := sv.input.Value()
	sv.setState(PanelSubmitting)
	sv.Dismiss()

	go func() {
		out := sv.backend.CreateEvent(context.Background(), text)
		sv.Release()
		sv.post(SubmissionDone{
			ID:      uuid.New(),
			Kind:    scene.PanelSchedule,
			Op:      "schedule",
			Outcome: out,
		})
	}()
}

// HandleKey applies one key to the panel, reporting whether it was
// consumed. Enter submits; everything else edits the input.
func (sv *ScheduleView) HandleKey(key vaxis.Key) bool {
	if key.Matches(vaxis.KeyEnter) {
		sv.Submit()
		return true
	}
	return sv.input.HandleKey(key)
}

// Draw renders the panel.
func (sv *ScheduleView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s, err := sv.drawFrame(ctx, sv, "Create Event", [][]vaxis.Segment{
		{{Text: "Describe the event to add to your calendar."}},
		nil,
		nil,
		{{Text: "Enter submit · Esc cancel", Style: vaxis.Style{Attribute: vaxis.AttrDim}}},
	})
	if err != nil {
		return vxfw.Surface{}, err
	}

	inputSurf, err := sv.input.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 4, inputSurf)
	return s, nil
}
