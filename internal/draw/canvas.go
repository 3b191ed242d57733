package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// cell is what a terminal cell last showed: the colours of its two
// half-block sub-pixels.
type cell struct {
	top, bottom Color
}

// dirtyCell never matches a real cell, forcing a rewrite on the next Render.
var dirtyCell = cell{top: ^Color(0), bottom: ^Color(0)}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
// Render only rewrites cells that changed since the previous frame.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x], zero if unset
	shown          []cell  // What each terminal cell displayed last frame

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder // Buffer for batching render output
	numBuf    [20]byte        // Scratch buffer for integer formatting
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.shown = make([]cell, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.ForceRedraw()
	}

	// Update scale factors
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = dirtyCell
	}
}

// MarkTextDirty marks cells overwritten by a text overlay so Render repaints
// them next frame. col and row are 1-based canvas-relative positions.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+width; x++ {
		if x >= 0 && x < c.termWidth {
			c.shown[y*c.termWidth+x] = dirtyCell
		}
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// pixel returns the colour at actual terminal coordinates.
func (c *Canvas) pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return 0
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, col Color) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	c.setPixel(px, py, col)
}

// FillCircle fills a circle given in logical coordinates. Because the axes
// scale differently the circle is drawn as an ellipse in pixel space.
// Circles smaller than a pixel still set the pixel under their center.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	pcx := cx * c.scaleX
	pcy := cy * c.scaleY
	rx := r * c.scaleX
	ry := r * c.scaleY
	if rx < 0.5 || ry < 0.5 {
		c.setPixel(int(math.Floor(pcx)), int(math.Floor(pcy)), col)
		return
	}

	yStart := int(math.Floor(pcy - ry))
	yEnd := int(math.Ceil(pcy + ry))
	xStart := int(math.Floor(pcx - rx))
	xEnd := int(math.Ceil(pcx + rx))
	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) + 0.5 - pcy) / ry
		for x := xStart; x <= xEnd; x++ {
			dx := (float64(x) + 0.5 - pcx) / rx
			if dx*dx+dy*dy <= 1 {
				c.setPixel(x, y, col)
			}
		}
	}
}

// FillRect fills a rectangle given in logical coordinates.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x + w) * c.scaleX))
	y1 := int(math.Ceil((y + h) * c.scaleY))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// Render outputs changed cells to the writer using half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			next := cell{
				top:    c.pixel(col, row*2),
				bottom: c.pixel(col, row*2+1),
			}
			idx := row*c.termWidth + col
			if c.shown[idx] == next {
				continue
			}
			c.shown[idx] = next
			c.moveTo(col+1+c.offsetCol, row+1+c.offsetRow)
			c.writeCell(next)
		}
	}

	// Write output in chunks for optimal network flow
	_ = writeChunks(w, c.renderBuf.String())
}

func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

func (c *Canvas) writeCell(cl cell) {
	b := &c.renderBuf
	switch {
	case cl.top == 0 && cl.bottom == 0:
		b.WriteRune(BlockEmpty)
		return
	case cl.top == cl.bottom:
		writeFg(b, cl.top)
		b.WriteRune(BlockFull)
	case cl.bottom == 0:
		writeFg(b, cl.top)
		b.WriteRune(BlockUpperHalf)
	case cl.top == 0:
		writeFg(b, cl.bottom)
		b.WriteRune(BlockLowerHalf)
	default:
		writeFg(b, cl.top)
		writeBg(b, cl.bottom)
		b.WriteRune(BlockUpperHalf)
	}
	b.WriteString(ColorReset)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)
	if hasV {
		if hasH {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(left) + "H┌" + line + "┐")
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(left) + "H└" + line + "┘")
		} else {
			buf.WriteString("\033[" + strconv.Itoa(top) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + line)
			buf.WriteString("\033[" + strconv.Itoa(bottom) + ";" + strconv.Itoa(c.offsetCol+1) + "H" + line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			buf.WriteString("\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(left) + "H│")
			buf.WriteString("\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(right) + "H│")
		}
	}
	io.WriteString(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas-relative position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based screen position (as reported by mouse
// events, offset included) to the logical coordinates of the cell's center.
// ok is false when the position lies outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	cx := col - 1 - c.offsetCol
	cy := row - 1 - c.offsetRow
	if cx < 0 || cx >= c.termWidth || cy < 0 || cy >= c.termHeight {
		return 0, 0, false
	}
	x = (float64(cx) + 0.5) / c.scaleX
	y = (float64(cy)*2 + 1) / c.scaleY
	return x, y, true
}
