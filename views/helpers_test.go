package views_test

import (
	"testing"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

func testDrawContext(w, h uint16) vxfw.DrawContext {
	return vxfw.DrawContext{
		Max: vxfw.Size{Width: w, Height: h},
		Min: vxfw.Size{},
		Characters: func(s string) []vaxis.Character {
			chars := make([]vaxis.Character, 0, len(s))
			for _, r := range s {
				chars = append(chars, vaxis.Character{Grapheme: string(r), Width: 1})
			}
			return chars
		},
	}
}

// eventRecorder collects events posted by background goroutines, the
// way the UI loop would receive them.
type eventRecorder struct {
	ch chan vaxis.Event
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{ch: make(chan vaxis.Event, 16)}
}

func (r *eventRecorder) post(ev vaxis.Event) {
	r.ch <- ev
}

// next waits for the next posted event.
func (r *eventRecorder) next(t *testing.T) vaxis.Event {
	t.Helper()
	select {
	case ev := <-r.ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

// none asserts no event arrives within the window.
func (r *eventRecorder) none(t *testing.T, window time.Duration) {
	t.Helper()
	select {
	case ev := <-r.ch:
		t.Fatalf("unexpected event: %#v", ev)
	case <-time.After(window):
	}
}
