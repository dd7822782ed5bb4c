package scene_test

import (
	"sync"
	"testing"
	"time"

	"github.com/flowstate-health/flowstate-tui/scene"
)

// commandLog collects emitted commands from controller goroutines.
type commandLog struct {
	mu   sync.Mutex
	cmds []scene.Command
}

func (l *commandLog) sink(cmd scene.Command) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cmds = append(l.cmds, cmd)
}

func (l *commandLog) all() []scene.Command {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]scene.Command, len(l.cmds))
	copy(out, l.cmds)
	return out
}

func (l *commandLog) count(match func(scene.Command) bool) int {
	n := 0
	for _, cmd := range l.all() {
		if match(cmd) {
			n++
		}
	}
	return n
}

func isRotateBack(cmd scene.Command) bool {
	r, ok := cmd.(scene.RotateBy)
	return ok && r.Quarters < 0
}

// fastParams returns controller params with millisecond-scale timings so
// timer behavior can be observed without real animation delays.
func fastParams(sink func(scene.Command)) scene.Params {
	return scene.Params{
		Sink:           sink,
		RotateDuration: 5 * time.Millisecond,
		BlinkPeriod:    10 * time.Millisecond,
		BlinkFade:      time.Millisecond,
		HideDelays: map[scene.PanelKind]time.Duration{
			scene.PanelSchedule:   20 * time.Millisecond,
			scene.PanelHeartRisk:  20 * time.Millisecond,
			scene.PanelVoiceInput: 30 * time.Millisecond,
			scene.PanelWorkout:    40 * time.Millisecond,
			scene.PanelDestressor: 60 * time.Millisecond,
		},
	}
}

func TestController_ToggleTwiceRestoresState(t *testing.T) {
	log := &commandLog{}
	c := scene.NewController(fastParams(log.sink))
	defer c.Close()

	for _, k := range scene.Kinds {
		if c.Active() != scene.PanelNone {
			t.Fatalf("expected no active panel before toggle of %v", k)
		}
		c.Toggle(k)
		if c.Active() != k {
			t.Fatalf("expected %v active after toggle, got %v", k, c.Active())
		}
		c.Toggle(k)
		if c.Active() != scene.PanelNone {
			t.Fatalf("expected no active panel after second toggle of %v, got %v", k, c.Active())
		}
	}
}

func TestController_ActivateReplacesActivePanel(t *testing.T) {
	log := &commandLog{}
	c := scene.NewController(fastParams(log.sink))
	defer c.Close()

	c.Activate(scene.PanelSchedule)
	c.Activate(scene.PanelWorkout)

	if c.Active() != scene.PanelWorkout {
		t.Errorf("expected Workout active, got %v", c.Active())
	}
}

func TestController_DeactivateOtherPanelKeepsActive(t *testing.T) {
	c := scene.NewController(fastParams(nil))
	defer c.Close()

	c.Activate(scene.PanelSchedule)
	c.Deactivate(scene.PanelWorkout)

	if c.Active() != scene.PanelSchedule {
		t.Errorf("expected Schedule still active, got %v", c.Active())
	}
}

func TestController_OverlappingHidesBothRotateBack(t *testing.T) {
	log := &commandLog{}
	c := scene.NewController(fastParams(log.sink))
	defer c.Close()

	// Two hides inside the shorter panel's delay window. Each schedules
	// its own rotate-back; neither may be lost.
	c.Deactivate(scene.PanelSchedule)   // fires at +20ms
	c.Deactivate(scene.PanelDestressor) // fires at +60ms

	deadline := time.After(500 * time.Millisecond)
	for log.count(isRotateBack) < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected 2 rotate-back commands, got %d", log.count(isRotateBack))
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestController_CloseCancelsPendingHideEffects(t *testing.T) {
	log := &commandLog{}
	c := scene.NewController(fastParams(log.sink))

	c.Deactivate(scene.PanelSchedule)
	c.Close()

	before := log.count(isRotateBack)
	time.Sleep(100 * time.Millisecond)
	if after := log.count(isRotateBack); after != before {
		t.Errorf("rotate-back fired after Close: before=%d after=%d", before, after)
	}
	if c.Blinking() {
		t.Error("expected blinking stopped after Close")
	}
}

func TestController_ConcurrentRotationsDropped(t *testing.T) {
	log := &commandLog{}
	c := scene.NewController(scene.Params{
		Sink:           log.sink,
		RotateDuration: 200 * time.Millisecond,
	})
	defer c.Close()

	c.RotateForward()
	c.RotateForward()
	c.RotateBack()

	rotations := log.count(func(cmd scene.Command) bool {
		_, ok := cmd.(scene.RotateBy)
		return ok
	})
	if rotations != 1 {
		t.Errorf("expected 1 rotation while animating, got %d", rotations)
	}
	if !c.Animating() {
		t.Error("expected animating during rotation window")
	}
}

func TestController_AnimatingClearsAfterDuration(t *testing.T) {
	log := &commandLog{}
	c := scene.NewController(fastParams(log.sink))
	defer c.Close()

	c.RotateForward()

	deadline := time.After(500 * time.Millisecond)
	for c.Animating() {
		select {
		case <-deadline:
			t.Fatal("animating never cleared")
		case <-time.After(2 * time.Millisecond):
		}
	}

	c.RotateBack()
	if n := log.count(isRotateBack); n != 1 {
		t.Errorf("expected rotate-back accepted after window, got %d", n)
	}
}

func TestController_BlinkTogglesOpacity(t *testing.T) {
	log := &commandLog{}
	c := scene.NewController(fastParams(log.sink))
	defer c.Close()

	c.StartBlinking()
	if !c.Blinking() {
		t.Fatal("expected blinking after StartBlinking")
	}

	// First blink is immediate; the ticker produces more.
	deadline := time.After(500 * time.Millisecond)
	opacities := func() int {
		return log.count(func(cmd scene.Command) bool {
			_, ok := cmd.(scene.SetOpacity)
			return ok
		})
	}
	for opacities() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 opacity toggles, got %d", opacities())
		case <-time.After(2 * time.Millisecond):
		}
	}

	c.StopBlinking()
	if c.Blinking() {
		t.Error("expected blinking stopped")
	}

	// Stop restores full opacity.
	cmds := log.all()
	last, ok := cmds[len(cmds)-1].(scene.SetOpacity)
	if !ok || last.Level != 1.0 {
		t.Errorf("expected final SetOpacity level 1.0, got %#v", cmds[len(cmds)-1])
	}
}

func TestController_StartBlinkingIsIdempotent(t *testing.T) {
	log := &commandLog{}
	c := scene.NewController(scene.Params{Sink: log.sink, BlinkPeriod: time.Hour})
	defer c.Close()

	c.StartBlinking()
	c.StartBlinking()

	n := log.count(func(cmd scene.Command) bool {
		_, ok := cmd.(scene.SetOpacity)
		return ok
	})
	if n != 1 {
		t.Errorf("expected 1 immediate opacity toggle, got %d", n)
	}
}

func TestController_LoadingRotationRestoresOrientation(t *testing.T) {
	log := &commandLog{}
	c := scene.NewController(fastParams(log.sink))
	defer c.Close()

	c.StartLoadingRotation()
	if !c.Loading() {
		t.Fatal("expected loading after StartLoadingRotation")
	}

	time.Sleep(20 * time.Millisecond)
	c.StopLoadingRotation()
	if c.Loading() {
		t.Error("expected loading cleared after StopLoadingRotation")
	}

	resets := log.count(func(cmd scene.Command) bool {
		_, ok := cmd.(scene.ResetOrientation)
		return ok
	})
	if resets != 1 {
		t.Errorf("expected 1 ResetOrientation, got %d", resets)
	}
}

func TestController_NilSinkIsNoOp(t *testing.T) {
	c := scene.NewController(scene.Params{})
	defer c.Close()

	// Animation effects are best-effort: without a sink nothing runs,
	// but panel bookkeeping still works.
	c.RotateForward()
	c.StartBlinking()
	c.StartLoadingRotation()

	if c.Animating() || c.Blinking() || c.Loading() {
		t.Error("expected all animation flags false with nil sink")
	}

	c.Toggle(scene.PanelSchedule)
	if c.Active() != scene.PanelSchedule {
		t.Errorf("expected toggle to work without sink, got %v", c.Active())
	}
}

func TestController_OpsAfterCloseAreNoOps(t *testing.T) {
	log := &commandLog{}
	c := scene.NewController(fastParams(log.sink))
	c.Close()

	c.Toggle(scene.PanelWorkout)
	c.RotateForward()
	c.StartBlinking()

	if c.Active() != scene.PanelNone {
		t.Errorf("expected no active panel after Close, got %v", c.Active())
	}
	if len(log.all()) != 0 {
		t.Errorf("expected no commands after Close, got %d", len(log.all()))
	}
}
