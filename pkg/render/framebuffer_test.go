package render

import (
	"bytes"
	"image/png"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
)

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.SetPixel(-1, 0, ColorRed)
	fb.SetPixel(4, 0, ColorRed)
	fb.SetPixel(0, 3, ColorRed)
	for i, p := range fb.Pixels {
		if p == ColorRed {
			t.Fatalf("out of bounds write landed at %d", i)
		}
	}
	if fb.GetPixel(10, 10) != (Color{}) {
		t.Error("out of bounds read should be transparent")
	}
}

func TestDrawLine(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawLine(0, 0, 9, 9, ColorWhite)
	for i := range 10 {
		if fb.GetPixel(i, i) != ColorWhite {
			t.Errorf("diagonal pixel %d missing", i)
		}
	}
	if fb.GetPixel(1, 0) == ColorWhite {
		t.Error("line too thick")
	}
}

func TestEncodePNGScale(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(ColorBlue)
	fb.SetPixel(2, 1, ColorRed)

	var buf bytes.Buffer
	if err := fb.EncodePNG(&buf, 4); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Fatalf("scaled size = %v", b)
	}
	r, g, b, _ := img.At(11, 7).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("scaled corner = %v", img.At(11, 7))
	}
}

func TestTerminalDraw(t *testing.T) {
	cols, rows := 4, 2
	w, h := TerminalViewport(cols, rows)
	fb := NewFramebuffer(w, h)
	fb.Clear(ColorBlue)
	fb.SetPixel(1, 2, ColorRed) // top half of cell (1, 1)

	buf := uv.NewScreenBuffer(cols, rows)
	fb.Draw(buf, uv.Rect(0, 0, cols, rows))

	cell := buf.CellAt(1, 1)
	if cell == nil || cell.Content != halfBlock {
		t.Fatalf("cell = %+v", cell)
	}
	if cell.Style.Fg != ColorRed || cell.Style.Bg != ColorBlue {
		t.Errorf("cell colors fg=%v bg=%v", cell.Style.Fg, cell.Style.Bg)
	}
}
