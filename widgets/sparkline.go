package widgets

import (
	"math"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// Block characters for sparkline rendering (8 levels).
var sparkBlocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a 1-row graph of sampled values using block
// characters. Samples arrive in batches (e.g. heart rate samples for a
// window), so the whole series is set at once.
type Sparkline struct {
	values []float64

	// ZoneHigh colors samples at or above this value red; ZoneMid
	// yellow. Zero disables zone coloring (everything cyan).
	ZoneHigh float64
	ZoneMid  float64
}

// NewSparkline creates an empty Sparkline.
func NewSparkline() *Sparkline {
	return &Sparkline{}
}

// SetValues replaces the rendered series.
func (sl *Sparkline) SetValues(values []float64) {
	sl.values = values
}

// Count returns the number of stored samples.
func (sl *Sparkline) Count() int {
	return len(sl.values)
}

func (sl *Sparkline) color(v float64) vaxis.Color {
	switch {
	case sl.ZoneHigh > 0 && v >= sl.ZoneHigh:
		return vaxis.IndexColor(1) // red
	case sl.ZoneMid > 0 && v >= sl.ZoneMid:
		return vaxis.IndexColor(3) // yellow
	default:
		return vaxis.IndexColor(6) // cyan
	}
}

// Draw renders the sparkline as a single row, downsampling the series
// to the available width.
func (sl *Sparkline) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, sl)

	vals := sl.values
	if len(vals) == 0 {
		return s, nil
	}

	width := int(ctx.Max.Width)
	if len(vals) > width && width > 0 {
		// Bucket-average down to the width.
		bucketed := make([]float64, width)
		per := float64(len(vals)) / float64(width)
		for i := 0; i < width; i++ {
			lo := int(float64(i) * per)
			hi := int(float64(i+1) * per)
			if hi <= lo {
				hi = lo + 1
			}
			if hi > len(vals) {
				hi = len(vals)
			}
			sum := 0.0
			for _, v := range vals[lo:hi] {
				sum += v
			}
			bucketed[i] = sum / float64(hi-lo)
		}
		vals = bucketed
	}

	minV, maxV := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	for i, v := range vals {
		level := 0
		if maxV > minV {
			level = int(math.Round((v - minV) / (maxV - minV) * 7))
			if level > 7 {
				level = 7
			}
		} else if maxV > 0 {
			level = 4 // flat non-zero line
		}

		ch := sparkBlocks[level]
		for _, c := range ctx.Characters(string(ch)) {
			s.WriteCell(uint16(i), 0, vaxis.Cell{
				Character: c,
				Style:     vaxis.Style{Foreground: sl.color(v)},
			})
		}
	}

	return s, nil
}
