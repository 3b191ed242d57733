package draw

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Terminal control sequences.
const (
	seqClearScreen = "\033[H\033[2J"
	seqHideCursor  = "\033[?25l"
	seqShowCursor  = "\033[?25h"
	// Any-motion tracking (1003) with SGR coordinates (1006), so presses
	// and pointer moves arrive as ESC [ < b ; col ; row M.
	seqMouseOn  = "\033[?1003h\033[?1006h"
	seqMouseOff = "\033[?1006l\033[?1003l"
)

// Fallback size when the terminal reports nothing usable.
const (
	fallbackTermWidth  = 80
	fallbackTermHeight = 24
)

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Kept below a typical 1500-byte MTU for smooth SSH transmission.
const maxChunkSize = 1400

// writeChunks writes data in pieces of at most maxChunkSize bytes.
func writeChunks(w io.Writer, data string) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := io.WriteString(w, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// ChunkWriter collects one frame of text overlay, then sends it in
// MTU-sized chunks on Flush. Positions passed to it are 1-based and
// relative to the play area; the centering offset is added on output.
type ChunkWriter struct {
	out    *bufio.Writer
	frame  strings.Builder
	num    [20]byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the play area origin, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

// MoveCursor positions the cursor at (col, row) of the play area.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.frame.WriteString("\033[")
	cw.frame.Write(strconv.AppendInt(cw.num[:0], int64(row+cw.offRow), 10))
	cw.frame.WriteByte(';')
	cw.frame.Write(strconv.AppendInt(cw.num[:0], int64(col+cw.offCol), 10))
	cw.frame.WriteByte('H')
}

// Write implements io.Writer so Canvas output can share the frame.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.frame.Write(p)
}

// WriteString appends raw text or escape sequences at the cursor.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame.WriteString(s)
}

// WriteAt writes s starting at (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.frame.WriteString(s)
}

// WriteCentered writes s so that it is centered on column center and
// returns the starting column. s must not contain escape sequences.
func (cw *ChunkWriter) WriteCentered(center, row int, s string) int {
	col := center - len(s)/2
	cw.WriteAt(col, row, s)
	return col
}

// WriteStyled writes s at (col, row) wrapped in style and a reset.
func (cw *ChunkWriter) WriteStyled(col, row int, style, s string) {
	cw.MoveCursor(col, row)
	cw.frame.WriteString(style)
	cw.frame.WriteString(s)
	cw.frame.WriteString(ColorReset)
}

// Flush sends the collected frame and starts a new one.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame.String()
	cw.frame.Reset()
	if err := writeChunks(cw.out, data); err != nil {
		return err
	}
	return cw.out.Flush()
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

var errNoSize = errors.New("terminal reported no size")

// TerminalSize asks sizeFunc for the terminal dimensions. On failure it
// returns an 80x24 fallback together with the error.
func TerminalSize(sizeFunc TermSizeFunc) (width, height int, err error) {
	width, height, err = sizeFunc()
	if err == nil && (width <= 0 || height <= 0) {
		err = errNoSize
	}
	if err != nil {
		return fallbackTermWidth, fallbackTermHeight, err
	}
	return width, height, nil
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqClearScreen)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, seqHideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, seqShowCursor)
}

// EnableMouse turns on click and motion reporting.
func EnableMouse(w io.Writer) {
	io.WriteString(w, seqMouseOn)
}

// DisableMouse turns mouse reporting off again.
func DisableMouse(w io.Writer) {
	io.WriteString(w, seqMouseOff)
}
