package widgets

import (
	"fmt"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// Gauge is a horizontal bar gauge for one health metric.
//
//	STEPS [████████░░░░░░░░░░░░]  8,421 / 10,000
type Gauge struct {
	Label    string  // left column, padded to 6 chars
	Value    float64 // current value
	Max      float64 // full-bar value
	Suffix   string  // text after the bar, e.g. "8,421 / 10,000"
	BarWidth int     // character width of the bar (excluding brackets)

	// HighIsBad colors high fill red (stress-like metrics). The default
	// treats a full bar as good (goal-like metrics).
	HighIsBad bool
}

const (
	gaugeFilled = '█' // U+2588
	gaugeEmpty  = '░' // U+2591
)

// fillColor returns the bar color for the given fill fraction.
func (g *Gauge) fillColor(frac float64) vaxis.Color {
	if g.HighIsBad {
		switch {
		case frac >= 0.85:
			return vaxis.IndexColor(1) // red
		case frac >= 0.6:
			return vaxis.IndexColor(3) // yellow
		default:
			return vaxis.IndexColor(2) // green
		}
	}
	switch {
	case frac >= 0.85:
		return vaxis.IndexColor(2)
	case frac >= 0.4:
		return vaxis.IndexColor(3)
	default:
		return vaxis.IndexColor(1)
	}
}

// Fraction returns the clamped fill fraction.
func (g *Gauge) Fraction() float64 {
	if g.Max <= 0 {
		return 0
	}
	frac := g.Value / g.Max
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

// Draw renders the gauge as a single row.
func (g *Gauge) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, g)

	col := uint16(0)
	label := fmt.Sprintf("%-6s ", g.Label)
	for _, ch := range ctx.Characters(label) {
		s.WriteCell(col, 0, vaxis.Cell{
			Character: ch,
			Style:     vaxis.Style{Attribute: vaxis.AttrBold},
		})
		col += uint16(ch.Width)
	}

	for _, ch := range ctx.Characters("[") {
		s.WriteCell(col, 0, vaxis.Cell{Character: ch})
		col += uint16(ch.Width)
	}

	frac := g.Fraction()
	filled := int(frac * float64(g.BarWidth))
	color := g.fillColor(frac)

	for i := 0; i < g.BarWidth; i++ {
		ch := gaugeEmpty
		style := vaxis.Style{Foreground: vaxis.IndexColor(8)}
		if i < filled {
			ch = gaugeFilled
			style = vaxis.Style{Foreground: color}
		}
		for _, c := range ctx.Characters(string(ch)) {
			s.WriteCell(col, 0, vaxis.Cell{Character: c, Style: style})
			col += uint16(c.Width)
		}
	}

	tail := "] " + g.Suffix
	for _, ch := range ctx.Characters(tail) {
		s.WriteCell(col, 0, vaxis.Cell{Character: ch})
		col += uint16(ch.Width)
	}

	return s, nil
}
