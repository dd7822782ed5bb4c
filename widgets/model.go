package widgets

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"

	"github.com/flowstate-health/flowstate-tui/scene"
)

// modelFrames holds one ASCII frame per quarter turn for each model.
var modelFrames = map[string][4][]string{
	"particle-wave": {
		{
			`      .  *  .      `,
			`   *    ___    *   `,
			` .   .-'   '-.   . `,
			`    /  o   o  \    `,
			`*  |     V     |  *`,
			`    \  '---'  /    `,
			` .   '-.___.-'   . `,
			`   *     .     *   `,
			`      .  *  .      `,
		},
		{
			`      *  .  *      `,
			`   .    ___    .   `,
			` *   .-'   '-.   * `,
			`    / o       \    `,
			`.  |    V    |-.  *`,
			`    \     o /      `,
			` *   '-.___.-'   * `,
			`   .     *     .   `,
			`      *  .  *      `,
		},
		{
			`      .  *  .      `,
			`   *    ___    *   `,
			` .   .-'   '-.   . `,
			`    \  o   o  /    `,
			`*  |     A     |  *`,
			`    /  .---.  \    `,
			` .   '-.___.-'   . `,
			`   *     .     *   `,
			`      .  *  .      `,
		},
		{
			`      *  .  *      `,
			`   .    ___    .   `,
			` *   .-'   '-.   * `,
			`      /     o \    `,
			`*  .-|    V    |  .`,
			`      \ o     /    `,
			` *   '-.___.-'   * `,
			`   .     *     .   `,
			`      *  .  *      `,
		},
	},
}

// ModelView renders the centerpiece model. It applies scene Commands
// (rotation, opacity) but knows nothing about panels: the controller
// emits intent, this widget realizes it.
type ModelView struct {
	frames      [4][]string
	orientation int
	opacity     float64
}

// NewModelView creates a ModelView for the named model, falling back to
// particle-wave for unknown names.
func NewModelView(name string) *ModelView {
	frames, ok := modelFrames[name]
	if !ok {
		frames = modelFrames["particle-wave"]
	}
	return &ModelView{frames: frames, opacity: 1.0}
}

// Apply realizes one animation command. Durations are advisory in a
// cell grid; the command's end state is applied directly.
func (mv *ModelView) Apply(cmd scene.Command) {
	switch cmd := cmd.(type) {
	case scene.RotateBy:
		mv.orientation = ((mv.orientation+cmd.Quarters)%4 + 4) % 4
	case scene.SetOpacity:
		mv.opacity = cmd.Level
	case scene.ResetOrientation:
		mv.orientation = 0
	}
}

// Orientation returns the current quarter-turn index (0–3).
func (mv *ModelView) Orientation() int {
	return mv.orientation
}

// Opacity returns the current opacity level.
func (mv *ModelView) Opacity() float64 {
	return mv.opacity
}

// Draw renders the current frame centered in the available space.
func (mv *ModelView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, mv)

	frame := mv.frames[mv.orientation]
	top := 0
	if int(ctx.Max.Height) > len(frame) {
		top = (int(ctx.Max.Height) - len(frame)) / 2
	}

	style := vaxis.Style{}
	if mv.opacity < 0.75 {
		style.Attribute = vaxis.AttrDim
	}

	for row, line := range frame {
		y := top + row
		if y >= int(ctx.Max.Height) {
			break
		}
		left := 0
		if int(ctx.Max.Width) > len(line) {
			left = (int(ctx.Max.Width) - len(line)) / 2
		}
		col := uint16(left)
		for i, ch := range ctx.Characters(line) {
			// Near-invisible: keep only every third glyph so the blink
			// reads as a fade, not a blank screen.
			if mv.opacity < 0.25 && i%3 != 0 {
				col += uint16(ch.Width)
				continue
			}
			s.WriteCell(col, uint16(y), vaxis.Cell{Character: ch, Style: style})
			col += uint16(ch.Width)
		}
	}

	return s, nil
}
