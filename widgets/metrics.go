package widgets

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// MetricRow is one label/value/note line in a MetricTable.
type MetricRow struct {
	Label string
	Value string
	Note  string
}

// MetricTable renders health metrics as fixed-width columns: a bold
// label, a right-aligned value, and a dim note.
type MetricTable struct {
	Rows       []MetricRow
	LabelWidth int // default 14
	ValueWidth int // default 12
}

// writeText writes s into surf at (col, row) within maxWidth. If
// alignRight, text is padded on the left.
func writeText(surf *vxfw.Surface, ctx vxfw.DrawContext, col, row uint16, maxWidth int, s string, style vaxis.Style, alignRight bool) {
	chars := ctx.Characters(s)

	displayWidth := 0
	for _, ch := range chars {
		displayWidth += ch.Width
	}

	pos := 0
	if alignRight && displayWidth < maxWidth {
		pos = maxWidth - displayWidth
	}

	for _, ch := range chars {
		if pos+ch.Width > maxWidth {
			break
		}
		surf.WriteCell(col+uint16(pos), row, vaxis.Cell{
			Character: ch,
			Style:     style,
		})
		pos += ch.Width
	}
}

// Draw renders every row that fits in the available height.
func (t *MetricTable) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	labelW := t.LabelWidth
	if labelW == 0 {
		labelW = 14
	}
	valueW := t.ValueWidth
	if valueW == 0 {
		valueW = 12
	}

	height := uint16(len(t.Rows))
	if height > ctx.Max.Height {
		height = ctx.Max.Height
	}
	s := vxfw.NewSurface(ctx.Max.Width, height, t)

	for i, row := range t.Rows {
		if uint16(i) >= height {
			break
		}
		y := uint16(i)
		writeText(&s, ctx, 0, y, labelW, row.Label, vaxis.Style{Attribute: vaxis.AttrBold}, false)
		writeText(&s, ctx, uint16(labelW+1), y, valueW, row.Value, vaxis.Style{}, true)
		if row.Note != "" {
			noteCol := labelW + valueW + 3
			writeText(&s, ctx, uint16(noteCol), y, int(ctx.Max.Width)-noteCol, row.Note, vaxis.Style{Attribute: vaxis.AttrDim}, false)
		}
	}

	return s, nil
}
