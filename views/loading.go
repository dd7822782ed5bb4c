package views

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
)

// drawWaitingState renders a dim one-line message in the view. Used
// while a background call is in flight.
func drawWaitingState(ctx vxfw.DrawContext, owner vxfw.Widget, msg string) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, owner)
	label := richtext.New([]vaxis.Segment{
		{Text: msg, Style: vaxis.Style{Attribute: vaxis.AttrDim}},
	})
	labelSurf, err := label.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, labelSurf)
	return s, nil
}
