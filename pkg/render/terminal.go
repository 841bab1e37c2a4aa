package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// halfBlock paints the top pixel as foreground and the bottom as background.
const halfBlock = "▀"

// TerminalViewport returns the framebuffer size that fills a terminal of
// cols x rows cells, two pixel rows per cell.
func TerminalViewport(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Draw converts the framebuffer to half-block cells and draws them on the
// screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= fb.Height {
			break
		}
		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: halfBlock,
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(x, topY)),
					Bg: cellColor(fb.GetPixel(x, topY+1)),
				},
			})
		}
	}
}

// cellColor maps transparent pixels to the terminal default color.
func cellColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorMagenta = color.RGBA{255, 0, 255, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
	ColorDark    = color.RGBA{16, 16, 16, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return color.RGBA{r, g, b, 255}
}
