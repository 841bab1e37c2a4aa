package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// WrapMode determines how texel coordinates outside the image are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest-neighbor (pixelated)
	FilterBilinear                   // Bilinear interpolation (smooth)
)

// Texture holds a decoded image for texture mapping.
type Texture struct {
	Width      int
	Height     int
	Pixels     []Color    // Row-major pixel data, row 0 at the top
	WrapU      WrapMode   // Horizontal wrap mode
	WrapV      WrapMode   // Vertical wrap mode
	FilterMode FilterMode // Sampling filter mode
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// LoadTexture loads a texture from a PNG, JPEG, BMP, TIFF or WebP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	tex := NewTexture(bounds.Dx(), bounds.Dy())
	for i := range tex.Pixels {
		p := rgba.Pix[i*4 : i*4+4 : i*4+4]
		tex.Pixels[i] = Color{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.Pixels[y*width+x] = c1
			} else {
				tex.Pixels[y*width+x] = c2
			}
		}
	}
	return tex
}

// Texel returns the pixel at (x, y) after applying the wrap modes, so any
// integer coordinate, negative included, maps into the image.
func (t *Texture) Texel(x, y int) Color {
	if t.Width == 0 || t.Height == 0 {
		return Color{}
	}
	x = wrapPixelCoord(x, t.Width, t.WrapU)
	y = wrapPixelCoord(y, t.Height, t.WrapV)
	return t.Pixels[y*t.Width+x]
}

// Sample looks up the texture at (u, v) where v = 0 is the top image row.
func (t *Texture) Sample(u, v float64) Color {
	switch t.FilterMode {
	case FilterBilinear:
		return t.sampleBilinear(u, v)
	default:
		return t.Texel(int(math.Floor(u*float64(t.Width))), int(math.Floor(v*float64(t.Height))))
	}
}

func (t *Texture) sampleBilinear(u, v float64) Color {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	top := lerpColor(t.Texel(x0, y0), t.Texel(x0+1, y0), tx)
	bot := lerpColor(t.Texel(x0, y0+1), t.Texel(x0+1, y0+1), tx)
	return lerpColor(top, bot, ty)
}

func wrapPixelCoord(x, size int, mode WrapMode) int {
	switch mode {
	case WrapClamp:
		if x < 0 {
			return 0
		}
		if x >= size {
			return size - 1
		}
		return x
	default:
		return ((x % size) + size) % size
	}
}

// lerpColor linearly interpolates between two colors.
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}
