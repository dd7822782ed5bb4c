package views

import (
	"sync"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"

	"github.com/flowstate-health/flowstate-tui/scene"
)

// PanelState is one step of the shared panel lifecycle:
// Hidden → Visible → Submitting → Hidden, with a Result sub-state used
// only by the heart risk panel.
type PanelState int

const (
	PanelHidden PanelState = iota
	PanelVisible
	PanelSubmitting
	PanelResult
)

// DefaultFadeDuration is the mount/dismiss fade window.
const DefaultFadeDuration = 300 * time.Millisecond

// PanelCore implements the lifecycle every feature panel shares: fade
// in on open, fade out then report closure, and a single-flight guard
// so a second submit is ignored while one is in flight.
type PanelCore struct {
	mu sync.Mutex

	kind      scene.PanelKind
	state     PanelState
	fading    bool
	inFlight  bool
	postEvent func(vaxis.Event)
	fadeDur   time.Duration

	closeTimer *time.Timer
}

func newPanelCore(kind scene.PanelKind, postEvent func(vaxis.Event), fadeDur time.Duration) PanelCore {
	if fadeDur == 0 {
		fadeDur = DefaultFadeDuration
	}
	return PanelCore{kind: kind, postEvent: postEvent, fadeDur: fadeDur}
}

// Kind returns the panel's kind.
func (p *PanelCore) Kind() scene.PanelKind {
	return p.kind
}

// SetFadeDuration overrides the fade window. Tests set a short value.
func (p *PanelCore) SetFadeDuration(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fadeDur = d
}

// State returns the current lifecycle state.
func (p *PanelCore) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Fading reports whether a fade-out is in progress.
func (p *PanelCore) Fading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fading
}

// InFlight reports whether a submission is outstanding.
func (p *PanelCore) InFlight() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight
}

// Open mounts the panel.
func (p *PanelCore) Open() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != PanelHidden {
		return
	}
	p.state = PanelVisible
	p.fading = false
}

// setState transitions to the given state from any visible state.
func (p *PanelCore) setState(s PanelState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == PanelHidden {
		return
	}
	p.state = s
}

// BeginClose starts the fade-out. When the fade completes the panel is
// hidden and a PanelClosed event is posted so the app can clear the
// panel's flag in the controller. Safe to call repeatedly.
func (p *PanelCore) BeginClose(closed vaxis.Event) {
	p.mu.Lock()
	if p.state == PanelHidden || p.fading {
		p.mu.Unlock()
		return
	}
	p.fading = true
	p.closeTimer = time.AfterFunc(p.fadeDur, func() {
		p.mu.Lock()
		p.state = PanelHidden
		p.fading = false
		p.closeTimer = nil
		post := p.postEvent
		p.mu.Unlock()
		if post != nil {
			post(closed)
		}
	})
	p.mu.Unlock()
}

// Dismiss begins the fade-out, posting PanelClosed for this panel's
// kind when it completes.
func (p *PanelCore) Dismiss() {
	p.BeginClose(PanelClosed{Kind: p.kind})
}

// CloseNow hides the panel immediately, cancelling any fade in
// progress. Used on teardown; posts no event.
func (p *PanelCore) CloseNow() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closeTimer != nil {
		p.closeTimer.Stop()
		p.closeTimer = nil
	}
	p.state = PanelHidden
	p.fading = false
}

// TryAcquire claims the single-flight submission slot, reporting
// whether it was free. Every panel applies this guard.
func (p *PanelCore) TryAcquire() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight {
		return false
	}
	p.inFlight = true
	return true
}

// Release frees the submission slot.
func (p *PanelCore) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight = false
}

func (p *PanelCore) post(ev vaxis.Event) {
	p.mu.Lock()
	post := p.postEvent
	p.mu.Unlock()
	if post != nil {
		post(ev)
	}
}

// drawFrame renders the panel title followed by the given rows. The
// whole panel is dimmed while a fade-out is in progress.
func (p *PanelCore) drawFrame(ctx vxfw.DrawContext, owner vxfw.Widget, title string, rows [][]vaxis.Segment) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, owner)
	fading := p.Fading()

	titleStyle := vaxis.Style{Attribute: vaxis.AttrBold}
	if fading {
		titleStyle.Attribute |= vaxis.AttrDim
	}
	titleSurf, err := richtext.New([]vaxis.Segment{{Text: title, Style: titleStyle}}).
		Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, titleSurf)

	row := 2
	for _, segs := range rows {
		if len(segs) == 0 {
			row++
			continue
		}
		if fading {
			dimmed := make([]vaxis.Segment, len(segs))
			for i, seg := range segs {
				seg.Style.Attribute |= vaxis.AttrDim
				dimmed[i] = seg
			}
			segs = dimmed
		}
		rowSurf, err := richtext.New(segs).
			Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, row, rowSurf)
		row++
	}
	return s, nil
}
