package views

import (
	"context"
	"sync"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"github.com/google/uuid"

	"github.com/flowstate-health/flowstate-tui/api"
	"github.com/flowstate-health/flowstate-tui/internal"
	"github.com/flowstate-health/flowstate-tui/scene"
	"github.com/flowstate-health/flowstate-tui/widgets"
)

// VoiceView captures speech through the configured transcriber, lets
// the user edit the transcript, and submits it as a calendar event.
type VoiceView struct {
	PanelCore
	backend    api.API
	transcribe internal.Transcriber
	input      widgets.Input

	capMu     sync.Mutex
	capturing bool
	capErr    error
}

// NewVoiceView creates a VoiceView backed by the given collaborators.
func NewVoiceView(backend api.API, transcribe internal.Transcriber, postEvent func(vaxis.Event)) *VoiceView {
	vv := &VoiceView{
		PanelCore:  newPanelCore(scene.PanelVoiceInput, postEvent, 0),
		backend:    backend,
		transcribe: transcribe,
	}
	vv.input.Placeholder = "Press Ctrl+R to capture, or type"
	return vv
}

// Value returns the current transcript text.
func (vv *VoiceView) Value() string {
	return vv.input.Value()
}

// Capturing reports whether a voice capture is in progress.
func (vv *VoiceView) Capturing() bool {
	vv.capMu.Lock()
	defer vv.capMu.Unlock()
	return vv.capturing
}

// StartCapture runs the transcriber in the background. A second capture
// while one is running is ignored. The transcript arrives as a
// TranscriptReady event.
func (vv *VoiceView) StartCapture() {
	vv.capMu.Lock()
	if vv.capturing || vv.transcribe == nil {
		vv.capMu.Unlock()
		return
	}
	vv.capturing = true
	vv.capErr = nil
	vv.capMu.Unlock()

	go func() {
		text, err := vv.transcribe.Capture(context.Background())
		vv.post(TranscriptReady{Text: text, Err: err})
	}()
}

// HandleTranscript applies a finished capture to the input.
func (vv *VoiceView) HandleTranscript(ev TranscriptReady) {
	vv.capMu.Lock()
	vv.capturing = false
	vv.capErr = ev.Err
	vv.capMu.Unlock()
	if ev.Err == nil && ev.Text != "" {
		vv.input.SetValue(ev.Text)
	}
}

// Submit dispatches the transcript as an event and begins dismissal.
func (vv *VoiceView) Submit() {
	if vv.input.Empty() {
		return
	}
	if !vv.TryAcquire() {
		return
	}
	text := vv.input.Value()
	vv.setState(PanelSubmitting)
	vv.Dismiss()

	go func() {
		out := vv.backend.CreateEvent(context.Background(), text)
		vv.Release()
		vv.post(SubmissionDone{
			ID:      uuid.New(),
			Kind:    scene.PanelVoiceInput,
			Op:      "voice",
			Outcome: out,
		})
	}()
}

// HandleKey applies one key to the panel, reporting whether it was
// consumed.
func (vv *VoiceView) HandleKey(key vaxis.Key) bool {
	switch {
	case key.Matches(vaxis.KeyEnter):
		vv.Submit()
		return true
	case key.Matches('r', vaxis.ModCtrl):
		vv.StartCapture()
		return true
	}
	return vv.input.HandleKey(key)
}

// Draw renders the panel.
func (vv *VoiceView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	vv.capMu.Lock()
	capturing := vv.capturing
	capErr := vv.capErr
	vv.capMu.Unlock()

	status := []vaxis.Segment{{Text: ""}}
	switch {
	case capturing:
		status = []vaxis.Segment{{Text: "Listening...", Style: vaxis.Style{Foreground: vaxis.IndexColor(3)}}}
	case capErr != nil:
		status = []vaxis.Segment{{Text: "Capture failed: " + capErr.Error(), Style: vaxis.Style{Foreground: vaxis.IndexColor(1)}}}
	}

	s, err := vv.drawFrame(ctx, vv, "Voice Input", [][]vaxis.Segment{
		{{Text: "Speak an event and it will be added to your calendar."}},
		nil,
		nil,
		status,
		{{Text: "Ctrl+R capture · Enter submit · Esc cancel", Style: vaxis.Style{Attribute: vaxis.AttrDim}}},
	})
	if err != nil {
		return vxfw.Surface{}, err
	}

	inputSurf, err := vv.input.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 4, inputSurf)
	return s, nil
}
