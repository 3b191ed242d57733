package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestFillCircleCoversCenter(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	red := RGB(255, 0, 0)
	c.FillCircle(400, 300, 25, red)

	px := int(400 * c.scaleX)
	py := int(300 * c.scaleY)
	if c.pixel(px, py) != red {
		t.Fatal("Expected center pixel set")
	}
	if c.pixel(0, 0) != 0 {
		t.Fatal("Expected far corner untouched")
	}
}

func TestFillCircleTinyStillDraws(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.FillCircle(100, 100, 0.01, White)
	if c.pixel(int(100*c.scaleX), int(100*c.scaleY)) != White {
		t.Fatal("sub-pixel circle should still set one pixel")
	}
}

func TestTerminalToLogicalRoundTrip(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.SetOffset(3, 2)

	x, y, ok := c.TerminalToLogical(4, 3)
	if !ok {
		t.Fatal("Expected top-left cell inside the canvas")
	}
	if math.Abs(x-5) > 1e-9 || math.Abs(y-10) > 1e-9 {
		t.Fatalf("Expected (5, 10), got (%f, %f)", x, y)
	}

	if _, _, ok := c.TerminalToLogical(3, 3); ok {
		t.Fatal("column left of the offset should be outside")
	}
	if _, _, ok := c.TerminalToLogical(4+80, 3); ok {
		t.Fatal("column right of the canvas should be outside")
	}

	col, row := c.LogicalToTerminal(x, y)
	if col != 1 || row != 1 {
		t.Fatalf("Expected canvas-relative (1, 1), got (%d, %d)", col, row)
	}
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := NewScaledCanvas(20, 10, 200, 200)
	c.FillRect(0, 0, 20, 20, White)

	var first bytes.Buffer
	c.Render(&first)
	if !strings.ContainsRune(first.String(), BlockFull) {
		t.Fatal("first render should draw the filled cell")
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Fatalf("unchanged frame should write nothing, got %q", second.String())
	}

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	if !strings.ContainsRune(third.String(), BlockEmpty) {
		t.Fatal("cleared cell should be erased")
	}

	c.MarkTextDirty(1, 1, 1)
	var fourth bytes.Buffer
	c.Render(&fourth)
	if fourth.Len() == 0 {
		t.Fatal("dirty cell should be repainted")
	}
}

func TestHalfBlockColours(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	red, blue := RGB(255, 0, 0), RGB(0, 0, 255)
	c.setPixel(0, 0, red)
	c.setPixel(0, 1, blue)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, "38;2;255;0;0") || !strings.Contains(out, "48;2;0;0;255") {
		t.Fatalf("Expected red over blue, got %q", out)
	}
	if !strings.ContainsRune(out, BlockUpperHalf) {
		t.Fatalf("Expected upper half block, got %q", out)
	}
}

func TestParseColorAndFade(t *testing.T) {
	if got := ParseColor("#00ff00"); got != RGB(0, 255, 0) {
		t.Fatalf("Expected green, got %06x", uint32(got)&0xffffff)
	}
	if got := ParseColor("not a colour"); got != fallbackColor {
		t.Fatalf("Expected fallback colour, got %06x", uint32(got)&0xffffff)
	}
	red := RGB(255, 0, 0)
	if Fade(red, 1) != red {
		t.Fatal("alpha 1 should keep the colour")
	}
	if Fade(red, 0) != RGB(0, 0, 0) {
		t.Fatal("alpha 0 should be black")
	}
	r, _, _ := Fade(red, 0.5).RGB()
	if r == 0 || r == 255 {
		t.Fatalf("half fade should dim red, got r=%d", r)
	}
}
