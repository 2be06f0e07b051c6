package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected dot at origin")
	}

	// Out of range is a no-op.
	c.Set(-1, 0)
	c.Set(100, 100)

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("expected clear to reset grid")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit < 5 {
		t.Errorf("expected a visible diagonal, got %d lit cells", lit)
	}
}

func TestPhasePortrait(t *testing.T) {
	xs := []float64{0, 0.5, 1, 0.5, 0, -0.5, -1, -0.5, 0}
	vs := []float64{1, 0.7, 0, -0.7, -1, -0.7, 0, 0.7, 1}

	c := PhasePortrait(xs, vs, 20, 10)

	out := c.String()
	if len(strings.Split(strings.TrimRight(out, "\n"), "\n")) != 10 {
		t.Errorf("expected 10 rows of output")
	}

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected the orbit to light up the canvas")
	}
}

func TestPhasePortraitDegenerate(t *testing.T) {
	c := PhasePortrait([]float64{1}, []float64{1}, 10, 5)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("expected empty canvas for a single point")
			}
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 8); got != strings.Repeat("─", 8) {
		t.Errorf("expected flat line for empty input, got %q", got)
	}

	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	if got := Sparkline(vals, 8); got == "" {
		t.Error("expected non-empty sparkline")
	}
}
