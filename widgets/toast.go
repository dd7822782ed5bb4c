package widgets

import (
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// DefaultToastTTL is how long a toast stays visible.
const DefaultToastTTL = 5 * time.Second

// maxToasts bounds the visible stack; older toasts drop off first.
const maxToasts = 4

// Toast is one transient notification. Submission outcomes arrive here
// because the panel that produced them has usually already closed.
type Toast struct {
	Text    string
	IsError bool
	expires time.Time
}

// ToastStack renders the most recent toasts, newest last.
type ToastStack struct {
	toasts []Toast
	ttl    time.Duration
	now    func() time.Time
}

// NewToastStack creates an empty ToastStack.
func NewToastStack() *ToastStack {
	return &ToastStack{ttl: DefaultToastTTL, now: time.Now}
}

// SetTTL overrides the visibility window (tests use short values).
func (ts *ToastStack) SetTTL(ttl time.Duration) {
	ts.ttl = ttl
}

// Push adds a toast, evicting the oldest beyond the stack bound.
func (ts *ToastStack) Push(text string, isError bool) {
	ts.expire()
	ts.toasts = append(ts.toasts, Toast{
		Text:    text,
		IsError: isError,
		expires: ts.now().Add(ts.ttl),
	})
	if len(ts.toasts) > maxToasts {
		ts.toasts = ts.toasts[len(ts.toasts)-maxToasts:]
	}
}

// Active returns the currently visible toasts.
func (ts *ToastStack) Active() []Toast {
	ts.expire()
	return ts.toasts
}

func (ts *ToastStack) expire() {
	now := ts.now()
	live := ts.toasts[:0]
	for _, t := range ts.toasts {
		if t.expires.After(now) {
			live = append(live, t)
		}
	}
	ts.toasts = live
}

// Draw renders one toast per row, right-aligned. Errors are red.
func (ts *ToastStack) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	active := ts.Active()

	height := uint16(len(active))
	if height > ctx.Max.Height {
		height = ctx.Max.Height
	}
	s := vxfw.NewSurface(ctx.Max.Width, height, ts)

	for i, t := range active {
		if uint16(i) >= height {
			break
		}
		style := vaxis.Style{Foreground: vaxis.IndexColor(2)}
		if t.IsError {
			style = vaxis.Style{Foreground: vaxis.IndexColor(1)}
		}

		chars := ctx.Characters(" " + t.Text + " ")
		width := 0
		for _, ch := range chars {
			width += ch.Width
		}
		col := 0
		if int(ctx.Max.Width) > width {
			col = int(ctx.Max.Width) - width
		}
		for _, ch := range chars {
			s.WriteCell(uint16(col), uint16(i), vaxis.Cell{Character: ch, Style: style})
			col += ch.Width
		}
	}

	return s, nil
}
