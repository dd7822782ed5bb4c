package widgets

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// Input is a single-line text field.
type Input struct {
	Placeholder string

	runes  []rune
	cursor int
}

// Value returns the current text.
func (in *Input) Value() string {
	return string(in.runes)
}

// SetValue replaces the text and moves the cursor to the end.
func (in *Input) SetValue(s string) {
	in.runes = []rune(s)
	in.cursor = len(in.runes)
}

// Empty reports whether no text has been entered.
func (in *Input) Empty() bool {
	return len(in.runes) == 0
}

// HandleKey applies one key to the field, reporting whether it was
// consumed.
func (in *Input) HandleKey(key vaxis.Key) bool {
	switch {
	case key.Matches(vaxis.KeyBackspace):
		if in.cursor > 0 {
			in.runes = append(in.runes[:in.cursor-1], in.runes[in.cursor:]...)
			in.cursor--
		}
		return true
	case key.Matches(vaxis.KeyLeft):
		if in.cursor > 0 {
			in.cursor--
		}
		return true
	case key.Matches(vaxis.KeyRight):
		if in.cursor < len(in.runes) {
			in.cursor++
		}
		return true
	case key.Matches('u', vaxis.ModCtrl):
		in.runes = in.runes[:0]
		in.cursor = 0
		return true
	}

	if key.Text != "" {
		insert := []rune(key.Text)
		in.runes = append(in.runes[:in.cursor], append(insert, in.runes[in.cursor:]...)...)
		in.cursor += len(insert)
		return true
	}
	return false
}

// Draw renders the field with a prompt, the text (or dim placeholder),
// and a reverse-video cursor cell.
func (in *Input) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, in)

	col := uint16(0)
	for _, ch := range ctx.Characters("> ") {
		s.WriteCell(col, 0, vaxis.Cell{Character: ch, Style: vaxis.Style{Attribute: vaxis.AttrBold}})
		col += uint16(ch.Width)
	}

	if len(in.runes) == 0 && in.Placeholder != "" {
		for _, ch := range ctx.Characters(in.Placeholder) {
			if int(col)+ch.Width > int(ctx.Max.Width) {
				break
			}
			s.WriteCell(col, 0, vaxis.Cell{Character: ch, Style: vaxis.Style{Attribute: vaxis.AttrDim}})
			col += uint16(ch.Width)
		}
		return s, nil
	}

	for i, ch := range ctx.Characters(string(in.runes)) {
		if int(col)+ch.Width > int(ctx.Max.Width) {
			break
		}
		style := vaxis.Style{}
		if i == in.cursor {
			style.Attribute = vaxis.AttrReverse
		}
		s.WriteCell(col, 0, vaxis.Cell{Character: ch, Style: style})
		col += uint16(ch.Width)
	}
	if in.cursor == len(in.runes) && int(col) < int(ctx.Max.Width) {
		s.WriteCell(col, 0, vaxis.Cell{
			Character: vaxis.Character{Grapheme: " ", Width: 1},
			Style:     vaxis.Style{Attribute: vaxis.AttrReverse},
		})
	}

	return s, nil
}
