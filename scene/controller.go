package scene

import (
	"sync"
	"time"
)

// Default animation timings. Tests override them through Params.
const (
	defaultRotateDuration = 2 * time.Second
	defaultBlinkPeriod    = 1500 * time.Millisecond
	defaultBlinkFade      = 750 * time.Millisecond
	dimOpacity            = 0.1
)

// defaultHideDelays is how long a panel's blink window lasts after it is
// dismissed, before the model rotates back.
var defaultHideDelays = map[PanelKind]time.Duration{
	PanelSchedule:   3 * time.Second,
	PanelHeartRisk:  3 * time.Second,
	PanelVoiceInput: 4 * time.Second,
	PanelWorkout:    5 * time.Second,
	PanelDestressor: 8 * time.Second,
}

// Params holds configuration for creating a Controller.
type Params struct {
	// Sink receives animation Commands. A nil Sink makes every animation
	// side effect a no-op; panel bookkeeping still works.
	Sink func(Command)

	// Timing overrides. Zero values use the defaults above.
	RotateDuration time.Duration
	BlinkPeriod    time.Duration
	BlinkFade      time.Duration
	HideDelays     map[PanelKind]time.Duration
}

// Controller owns which panel is active and drives the model's
// rotate/blink/loading animations. Exactly zero or one panel is active
// at any time. All delayed effects are cancellable: Close stops every
// pending timer so stale rotate-backs cannot fire after teardown.
type Controller struct {
	mu   sync.Mutex
	sink func(Command)

	active    PanelKind
	animating bool
	blinking  bool
	loading   bool
	dimmed    bool
	closed    bool

	rotateDur  time.Duration
	blinkPd    time.Duration
	blinkFade  time.Duration
	hideDelays map[PanelKind]time.Duration

	pending   map[*time.Timer]struct{}
	blinkStop chan struct{}
	loadStop  chan struct{}
}

// NewController creates a Controller emitting animation commands to p.Sink.
func NewController(p Params) *Controller {
	c := &Controller{
		sink:       p.Sink,
		rotateDur:  p.RotateDuration,
		blinkPd:    p.BlinkPeriod,
		blinkFade:  p.BlinkFade,
		hideDelays: p.HideDelays,
		pending:    make(map[*time.Timer]struct{}),
	}
	if c.rotateDur == 0 {
		c.rotateDur = defaultRotateDuration
	}
	if c.blinkPd == 0 {
		c.blinkPd = defaultBlinkPeriod
	}
	if c.blinkFade == 0 {
		c.blinkFade = defaultBlinkFade
	}
	if c.hideDelays == nil {
		c.hideDelays = defaultHideDelays
	}
	return c
}

// Active returns the currently active panel, or PanelNone.
func (c *Controller) Active() PanelKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Animating reports whether a rotation is in flight.
func (c *Controller) Animating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.animating
}

// Blinking reports whether the blink loop is running.
func (c *Controller) Blinking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blinking
}

// Loading reports whether the loading rotation loop is running.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Toggle flips panel p: activating it if inactive, deactivating it if it
// is the active panel. Activating p deactivates any other active panel.
func (c *Controller) Toggle(p PanelKind) {
	if c.Active() == p {
		c.Deactivate(p)
		return
	}
	c.Activate(p)
}

// Activate makes p the active panel, replacing any other. The previously
// active panel gets its hide effects; p gets a rotate-forward.
func (c *Controller) Activate(p PanelKind) {
	c.mu.Lock()
	if c.closed || p == PanelNone || c.active == p {
		c.mu.Unlock()
		return
	}
	prev := c.active
	c.active = p
	c.mu.Unlock()

	if prev != PanelNone {
		c.hideEffects(prev)
	}
	c.RotateForward()
}

// Deactivate clears p if it is the active panel and runs its hide
// effects either way: blink for the panel's delay window, then rotate
// back and stop blinking.
func (c *Controller) Deactivate(p PanelKind) {
	c.mu.Lock()
	if c.closed || p == PanelNone {
		c.mu.Unlock()
		return
	}
	if c.active == p {
		c.active = PanelNone
	}
	c.mu.Unlock()

	c.hideEffects(p)
}

// hideEffects starts blinking and schedules the rotate-back after the
// panel's delay window. Each hide keeps its own timer: overlapping hides
// must not lose each other's rotate-back.
func (c *Controller) hideEffects(p PanelKind) {
	c.StartBlinking()

	delay, ok := c.hideDelays[p]
	if !ok {
		delay = defaultHideDelays[PanelSchedule]
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		delete(c.pending, t)
		c.mu.Unlock()

		c.RotateBack()
		c.StopBlinking()
	})
	c.pending[t] = struct{}{}
	c.mu.Unlock()
}

// RotateForward rotates the model a quarter turn. Dropped, not queued,
// while another rotation is in flight.
func (c *Controller) RotateForward() {
	c.rotate(1)
}

// RotateBack rotates the model a quarter turn back, with the same
// in-flight guard as RotateForward.
func (c *Controller) RotateBack() {
	c.rotate(-1)
}

func (c *Controller) rotate(quarters int) {
	c.mu.Lock()
	if c.closed || c.sink == nil || c.animating {
		c.mu.Unlock()
		return
	}
	c.animating = true
	c.sink(RotateBy{Quarters: quarters, Duration: c.rotateDur})

	var t *time.Timer
	t = time.AfterFunc(c.rotateDur, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			return
		}
		delete(c.pending, t)
		c.animating = false
	})
	c.pending[t] = struct{}{}
	c.mu.Unlock()
}

// StartBlinking begins the periodic opacity toggle. No-op if already
// blinking or no sink is attached.
func (c *Controller) StartBlinking() {
	c.mu.Lock()
	if c.closed || c.sink == nil || c.blinking {
		c.mu.Unlock()
		return
	}
	c.blinking = true
	stop := make(chan struct{})
	c.blinkStop = stop
	c.toggleOpacityLocked()
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(c.blinkPd)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.mu.Lock()
				if !c.closed && c.blinking {
					c.toggleOpacityLocked()
				}
				c.mu.Unlock()
			}
		}
	}()
}

// StopBlinking ends the blink loop and fades the model back to fully
// visible.
func (c *Controller) StopBlinking() {
	c.mu.Lock()
	if !c.blinking {
		c.mu.Unlock()
		return
	}
	c.blinking = false
	c.dimmed = false
	close(c.blinkStop)
	c.blinkStop = nil
	if c.sink != nil {
		c.sink(SetOpacity{Level: 1.0, Duration: c.blinkFade})
	}
	c.mu.Unlock()
}

func (c *Controller) toggleOpacityLocked() {
	c.dimmed = !c.dimmed
	level := 1.0
	if c.dimmed {
		level = dimOpacity
	}
	c.sink(SetOpacity{Level: level, Duration: c.blinkFade})
}

// StartLoadingRotation begins a continuous rotation loop used while an
// API call is in flight.
func (c *Controller) StartLoadingRotation() {
	c.mu.Lock()
	if c.closed || c.sink == nil || c.loading {
		c.mu.Unlock()
		return
	}
	c.loading = true
	stop := make(chan struct{})
	c.loadStop = stop
	c.mu.Unlock()

	c.RotateForward()

	go func() {
		ticker := time.NewTicker(c.rotateDur)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !c.Loading() {
					return
				}
				c.RotateForward()
			}
		}
	}()
}

// StopLoadingRotation ends the loop and restores the original heading.
func (c *Controller) StopLoadingRotation() {
	c.mu.Lock()
	if !c.loading {
		c.mu.Unlock()
		return
	}
	c.loading = false
	close(c.loadStop)
	c.loadStop = nil
	if c.sink != nil {
		c.sink(ResetOrientation{Duration: c.rotateDur})
	}
	c.mu.Unlock()
}

// Close cancels every pending timer and background loop. Scheduled
// rotate-back and stop-blink effects must not fire after teardown.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for t := range c.pending {
		t.Stop()
	}
	c.pending = nil
	if c.blinkStop != nil {
		close(c.blinkStop)
		c.blinkStop = nil
	}
	c.blinking = false
	if c.loadStop != nil {
		close(c.loadStop)
		c.loadStop = nil
	}
	c.loading = false
}
