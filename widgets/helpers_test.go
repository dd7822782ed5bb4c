package widgets_test

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

func testDrawContext(w, h uint16) vxfw.DrawContext {
	return vxfw.DrawContext{
		Max: vxfw.Size{Width: w, Height: h},
		Min: vxfw.Size{},
		Characters: func(s string) []vaxis.Character {
			chars := make([]vaxis.Character, 0, len(s))
			for _, r := range s {
				chars = append(chars, vaxis.Character{Grapheme: string(r), Width: 1})
			}
			return chars
		},
	}
}

// surfaceRow flattens one surface row into a string for assertions.
func surfaceRow(s vxfw.Surface, row int) string {
	out := make([]rune, 0, int(s.Size.Width))
	for col := 0; col < int(s.Size.Width); col++ {
		cell := s.Buffer[row*int(s.Size.Width)+col]
		if cell.Character.Grapheme == "" {
			out = append(out, ' ')
			continue
		}
		out = append(out, []rune(cell.Character.Grapheme)[0])
	}
	return string(out)
}
