package widgets

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"

	"github.com/flowstate-health/flowstate-tui/scene"
)

// LauncherItem is one panel button in the launcher bar.
type LauncherItem struct {
	Key  rune
	Kind scene.PanelKind
}

// Launcher is the persistent row of panel buttons at the bottom of the
// home tab. The button for the active panel is highlighted.
type Launcher struct {
	items  []LauncherItem
	active scene.PanelKind
}

// NewLauncher creates a Launcher for the given items.
func NewLauncher(items []LauncherItem) *Launcher {
	return &Launcher{items: items}
}

// SetActive highlights the button for the given panel (PanelNone clears).
func (l *Launcher) SetActive(kind scene.PanelKind) {
	l.active = kind
}

// Active returns the highlighted panel kind.
func (l *Launcher) Active() scene.PanelKind {
	return l.active
}

// KindFor returns the panel bound to a launch key, or PanelNone.
func (l *Launcher) KindFor(key rune) scene.PanelKind {
	for _, item := range l.items {
		if item.Key == key {
			return item.Kind
		}
	}
	return scene.PanelNone
}

// Draw renders the launcher as a single row:
//
//	(d) Destressor  (w) Workout  (h) Heart Risk  (s) Schedule  (v) Voice
func (l *Launcher) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, l)

	width := 0
	for _, item := range l.items {
		width += len("(x) ") + len(item.Kind.String()) + 2
	}
	col := uint16(0)
	if int(ctx.Max.Width) > width {
		col = uint16((int(ctx.Max.Width) - width) / 2)
	}

	for _, item := range l.items {
		keyStyle := vaxis.Style{Attribute: vaxis.AttrBold}
		labelStyle := vaxis.Style{}
		if item.Kind == l.active {
			keyStyle.Attribute |= vaxis.AttrReverse
			labelStyle.Attribute |= vaxis.AttrReverse
		}

		for _, ch := range ctx.Characters("(" + string(item.Key) + ")") {
			s.WriteCell(col, 0, vaxis.Cell{Character: ch, Style: keyStyle})
			col += uint16(ch.Width)
		}
		for _, ch := range ctx.Characters(" " + item.Kind.String()) {
			s.WriteCell(col, 0, vaxis.Cell{Character: ch, Style: labelStyle})
			col += uint16(ch.Width)
		}
		for _, ch := range ctx.Characters("  ") {
			s.WriteCell(col, 0, vaxis.Cell{Character: ch})
			col += uint16(ch.Width)
		}
	}

	return s, nil
}
