// Package draw renders to ANSI terminals using half-block characters.
package draw

import (
	"fmt"
	"io"

	"github.com/lucasb-eyer/go-colorful"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI attribute sequences.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorDim        = "\033[2m"
	ColorBrightCyan = "\033[96m"
	ColorYellow     = "\033[33m"
)

// Color is a packed 24-bit colour. The zero value means "no pixel".
type Color uint32

const colorSet = 1 << 24

// RGB packs an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color(colorSet | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB unpacks the colour channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// White is the default foreground.
var White = RGB(255, 255, 255)

// fallbackColor is used when a colour string cannot be parsed.
var fallbackColor = RGB(255, 0, 0)

// ParseColor converts a "#rrggbb" or "#rgb" string to a Color.
func ParseColor(hex string) Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallbackColor
	}
	return fromColorful(c)
}

// Fade blends c toward the black background. alpha 1 keeps c, 0 is black.
func Fade(c Color, alpha float64) Color {
	if alpha >= 1 {
		return c
	}
	if alpha < 0 {
		alpha = 0
	}
	return fromColorful(toColorful(c).BlendLab(colorful.Color{}, 1-alpha))
}

// Lighten blends c toward white by t in [0, 1].
func Lighten(c Color, t float64) Color {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return fromColorful(toColorful(c).BlendRgb(white, t))
}

func toColorful(c Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) Color {
	return RGB(c.Clamped().RGB255())
}

// writeFg emits a 24-bit foreground colour sequence.
func writeFg(w io.Writer, c Color) {
	r, g, b := c.RGB()
	fmt.Fprintf(w, "\033[38;2;%d;%d;%dm", r, g, b)
}

// writeBg emits a 24-bit background colour sequence.
func writeBg(w io.Writer, c Color) {
	r, g, b := c.RGB()
	fmt.Fprintf(w, "\033[48;2;%d;%d;%dm", r, g, b)
}

// Fg returns the 24-bit foreground sequence for c, for use in text overlays.
func Fg(c Color) string {
	r, g, b := c.RGB()
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}
