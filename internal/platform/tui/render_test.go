package tui

import (
	"strings"
	"testing"

	"github.com/pyarcade/tui-arcade/internal/core"
)

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorSkyBlue; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for %v", c)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 3)
	s.DrawTextColor("Moves: 4", core.Pt(1, 0), core.ColorBrightWhite)
	s.DrawTextColor("Pairs: 2/6", core.Pt(1, 1), core.ColorGray)

	out := RenderScreen(s)

	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("expected 3 rows, got %d newlines", got)
	}
	for _, want := range []string{"Moves: 4", "Pairs: 2/6"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q", want)
		}
	}
}
