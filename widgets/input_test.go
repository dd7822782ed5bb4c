package widgets_test

import (
	"strings"
	"testing"

	"git.sr.ht/~rockorager/vaxis"

	"github.com/flowstate-health/flowstate-tui/widgets"
)

func typeString(in *widgets.Input, s string) {
	for _, r := range s {
		in.HandleKey(vaxis.Key{Text: string(r), Keycode: r})
	}
}

func TestInput_Typing(t *testing.T) {
	in := &widgets.Input{}
	typeString(in, "lunch at noon")
	if in.Value() != "lunch at noon" {
		t.Errorf("unexpected value: %q", in.Value())
	}
	if in.Empty() {
		t.Error("expected non-empty")
	}
}

func TestInput_Backspace(t *testing.T) {
	in := &widgets.Input{}
	typeString(in, "abc")
	in.HandleKey(vaxis.Key{Keycode: vaxis.KeyBackspace})
	if in.Value() != "ab" {
		t.Errorf("expected \"ab\", got %q", in.Value())
	}
}

func TestInput_CursorMovementAndInsert(t *testing.T) {
	in := &widgets.Input{}
	typeString(in, "ac")
	in.HandleKey(vaxis.Key{Keycode: vaxis.KeyLeft})
	typeString(in, "b")
	if in.Value() != "abc" {
		t.Errorf("expected \"abc\", got %q", in.Value())
	}
}

func TestInput_CtrlUClears(t *testing.T) {
	in := &widgets.Input{}
	typeString(in, "hello")
	in.HandleKey(vaxis.Key{Keycode: 'u', Modifiers: vaxis.ModCtrl})
	if !in.Empty() {
		t.Errorf("expected cleared, got %q", in.Value())
	}
}

func TestInput_SetValue(t *testing.T) {
	in := &widgets.Input{}
	in.SetValue("transcribed text")
	if in.Value() != "transcribed text" {
		t.Errorf("unexpected value: %q", in.Value())
	}
}

func TestInput_DrawPlaceholder(t *testing.T) {
	in := &widgets.Input{Placeholder: "Enter schedule details..."}
	s, err := in.Draw(testDrawContext(60, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row := surfaceRow(s, 0); !strings.Contains(row, "Enter schedule details") {
		t.Errorf("expected placeholder, got %q", row)
	}
}

func TestInput_DrawValue(t *testing.T) {
	in := &widgets.Input{Placeholder: "unused"}
	in.SetValue("abc")
	s, err := in.Draw(testDrawContext(60, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row := surfaceRow(s, 0); !strings.Contains(row, "abc") {
		t.Errorf("expected value, got %q", row)
	}
}
