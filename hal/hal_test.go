package hal

import (
	"image/color"
	"math"
	"testing"
)

func TestTicksDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b uint32
		want int
	}{
		{name: "plain", a: 150, b: 100, want: 50},
		{name: "negative", a: 100, b: 150, want: -50},
		{name: "across wrap", a: 20, b: math.MaxUint32 - 9, want: 30},
		{name: "same", a: 7, b: 7, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TicksDiff(tt.a, tt.b); got != tt.want {
				t.Errorf("TicksDiff(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSystemClockMonotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.Ticks()
	c.Sleep(5)
	b := c.Ticks()
	if d := TicksDiff(b, a); d < 5 {
		t.Errorf("expected at least 5ms to pass, got %d", d)
	}
	// non-positive sleeps return at once
	c.Sleep(-10)
}

func TestFramebufferFillRect(t *testing.T) {
	fb := NewFramebuffer(20, 10)
	fb.TakeDirty()

	fb.FillRect(2, 3, 4, 2, Red)
	if !fb.TakeDirty() {
		t.Error("expected framebuffer to be dirty after FillRect")
	}
	if fb.TakeDirty() {
		t.Error("expected TakeDirty to reset the flag")
	}

	img := fb.Image()
	if got := img.RGBAAt(3, 4); got != Red {
		t.Errorf("expected red inside the rect, got %v", got)
	}
	if got := img.RGBAAt(6, 4); got != Black {
		t.Errorf("expected black outside the rect, got %v", got)
	}

	// clipped, must not panic
	fb.FillRect(18, 8, 10, 10, Green)
	if got := img.RGBAAt(19, 9); got != Green {
		t.Errorf("expected green at the clipped corner, got %v", got)
	}
}

func TestFramebufferWriteText(t *testing.T) {
	fb := NewFramebuffer(100, 20)
	fb.SetCursor(2, 2)
	fb.WriteText("88")

	lit := 0
	img := fb.Image()
	for y := 2; y < 2+fb.FontHeight(); y++ {
		for x := 2; x < 2+2*fb.FontMaxWidth(); x++ {
			if img.RGBAAt(x, y) != Black {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("expected glyph pixels to be drawn")
	}

	// rewriting with spaces clears the previous glyphs
	fb.SetCursor(2, 2)
	fb.WriteText("  ")
	for y := 2; y < 2+fb.FontHeight(); y++ {
		for x := 2; x < 2+2*fb.FontMaxWidth(); x++ {
			if c := img.RGBAAt(x, y); c != (color.RGBA{A: 0xff}) {
				t.Fatalf("pixel (%d,%d) not cleared: %v", x, y, c)
			}
		}
	}
}

func TestButtonString(t *testing.T) {
	if ButtonEnter.String() != "enter" || ButtonDown.String() != "down" || ButtonUp.String() != "up" {
		t.Error("unexpected button names")
	}
}
