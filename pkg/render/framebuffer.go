package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// Framebuffer is the color target: a row-major grid of RGBA pixels sized
// to the viewport.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Color
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Terminal presenters pack two pixel rows per cell, so they allocate
// twice the terminal height.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y). Out of bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c Color) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			fb.SetPixel(px, py, c)
		}
	}
}

// DrawGrid plots a dot every spacing pixels, starting at the origin.
func (fb *Framebuffer) DrawGrid(spacing int, c Color) {
	if spacing <= 0 {
		return
	}
	for y := 0; y < fb.Height; y += spacing {
		for x := 0; x < fb.Width; x += spacing {
			fb.Pixels[y*fb.Width+x] = c
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Pixels {
		img.Pix[i*4+0] = p.R
		img.Pix[i*4+1] = p.G
		img.Pix[i*4+2] = p.B
		img.Pix[i*4+3] = p.A
	}
	return img
}

// EncodePNG writes the framebuffer as a PNG, upscaled by an integer
// factor with nearest-neighbor sampling so pixels stay crisp.
func (fb *Framebuffer) EncodePNG(w io.Writer, scale int) error {
	var img image.Image = fb.ToImage()
	if scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, fb.Width*scale, fb.Height*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fb.EncodePNG(f, scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
