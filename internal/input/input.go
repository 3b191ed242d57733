// Package input turns raw terminal bytes into key and mouse events.
package input

import (
	"bufio"
	"strconv"
	"strings"
)

// Key identifies a non-printable key, or KeyRune for printable ones.
type Key int

const (
	KeyRune Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
)

// EventType distinguishes keyboard and mouse events.
type EventType int

const (
	EventKey       EventType = iota
	EventMouseDown           // Left button pressed
	EventMouseMove           // Pointer moved, with or without a button held
)

// Event is one discrete input. Col and Row are 1-based terminal positions
// for mouse events.
type Event struct {
	Type EventType
	Key  Key
	Rune rune // Lower-cased letter for KeyRune
	Col  int
	Row  int
}

// Input is everything that arrived since the previous frame.
type Input struct {
	Events  []Event
	Pressed []byte
	Quit    bool
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	pending []byte // Unfinished escape sequence carried to the next drain
}

// maxSequence bounds how long an unfinished escape sequence is held.
const maxSequence = 32

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 256)}
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them. A closed stream reports Quit.
//
// Escape sequences split across drains are joined: an unfinished CSI
// sequence waits for its remaining bytes, and a lone ESC becomes the Escape
// key only once a drain brings nothing after it.
func ReadInput(s *Stream) Input {
	var fresh []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			fresh = append(fresh, b)
		default:
			break drain
		}
	}

	buf := append(s.pending, fresh...)
	s.pending = nil
	events, rest := parse(buf)
	if len(rest) > 0 {
		if closed || (len(fresh) == 0 && !isCSI(rest)) {
			events = append(events, flush(rest)...)
		} else {
			s.pending = rest
		}
	}

	in := Input{
		Events:  events,
		Pressed: fresh,
		Quit:    closed,
	}
	for _, ev := range in.Events {
		if ev.Type == EventKey && (ev.Key == KeyCtrlC || (ev.Key == KeyRune && ev.Rune == 'q')) {
			in.Quit = true
		}
	}
	return in
}

// Parse decodes a complete byte buffer into events. Arrow keys and SGR
// mouse reports (ESC [ < b ; col ; row M/m) are recognised, other escape
// sequences are skipped, and a lone ESC is the Escape key.
func Parse(buf []byte) []Event {
	events, rest := parse(buf)
	return append(events, flush(rest)...)
}

// parse decodes buf and returns any escape sequence cut off at its end as
// rest, so it can be completed by later bytes.
func parse(buf []byte) (events []Event, rest []byte) {
	for i := 0; i < len(buf); {
		if buf[i] != '\x1b' {
			if ev, ok := keyEvent(buf[i]); ok {
				events = append(events, ev)
			}
			i++
			continue
		}
		ev, n, complete := escapeSequence(buf[i:])
		if !complete {
			return events, buf[i:]
		}
		if ev != nil {
			events = append(events, *ev)
		}
		i += n
	}
	return events, nil
}

// flush resolves an unfinished sequence once no more bytes will follow.
// Only ESC and ESC O can stand for key presses; a partial CSI is dropped.
func flush(rest []byte) []Event {
	if len(rest) == 0 || isCSI(rest) {
		return nil
	}
	events := []Event{{Type: EventKey, Key: KeyEscape}}
	if len(rest) > 1 {
		if ev, ok := keyEvent(rest[1]); ok {
			events = append(events, ev)
		}
	}
	return events
}

func isCSI(b []byte) bool {
	return len(b) >= 2 && b[0] == '\x1b' && b[1] == '['
}

// escapeSequence decodes the sequence starting with ESC at b[0]. It returns
// the event (nil when the sequence means nothing to the game), the number
// of bytes consumed, and false when b ends before the sequence does.
func escapeSequence(b []byte) (*Event, int, bool) {
	if len(b) < 2 {
		return nil, 0, false
	}
	switch b[1] {
	case '[':
		return csiSequence(b)
	case 'O': // SS3, sent for arrows in application cursor mode
		if len(b) < 3 {
			return nil, 0, false
		}
		if k, ok := arrowKey(b[2]); ok {
			return &Event{Type: EventKey, Key: k}, 3, true
		}
		return nil, 3, true
	default:
		return &Event{Type: EventKey, Key: KeyEscape}, 1, true
	}
}

// csiSequence decodes ESC [ params final.
func csiSequence(b []byte) (*Event, int, bool) {
	for i := 2; i < len(b); i++ {
		c := b[i]
		switch {
		case c >= 0x20 && c <= 0x3f: // Parameter and intermediate bytes
		case c >= 0x40 && c <= 0x7e:
			return decodeCSI(b[2:i], c), i + 1, true
		default:
			// Broken sequence; resume parsing at the offending byte.
			return nil, i, true
		}
	}
	if len(b) >= maxSequence {
		// Too long to be a real report; give up on it.
		return nil, len(b), true
	}
	return nil, 0, false
}

func decodeCSI(params []byte, final byte) *Event {
	if len(params) == 0 {
		if k, ok := arrowKey(final); ok {
			return &Event{Type: EventKey, Key: k}
		}
		return nil
	}
	if params[0] == '<' && (final == 'M' || final == 'm') {
		return sgrMouse(string(params[1:]), final == 'M')
	}
	return nil
}

func arrowKey(b byte) (Key, bool) {
	switch b {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	default:
		return 0, false
	}
}

// sgrMouse decodes "b;col;row". Releases, wheel and non-left presses
// produce no event.
func sgrMouse(params string, press bool) *Event {
	fields := strings.Split(params, ";")
	if len(fields) != 3 {
		return nil
	}
	var v [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil
		}
		v[i] = n
	}
	return mouseEvent(v[0], v[1], v[2], press)
}

const (
	mouseButtonMask = 0x03
	mouseMotion     = 0x20
	mouseWheel      = 0x40
)

func mouseEvent(code, col, row int, press bool) *Event {
	switch {
	case code&mouseWheel != 0:
		return nil
	case code&mouseMotion != 0:
		return &Event{Type: EventMouseMove, Col: col, Row: row}
	case press && code&mouseButtonMask == 0:
		return &Event{Type: EventMouseDown, Col: col, Row: row}
	default:
		return nil
	}
}

// keyEvent maps a single byte to a key event.
func keyEvent(b byte) (Event, bool) {
	switch {
	case b == '\x1b':
		return Event{Type: EventKey, Key: KeyEscape}, true
	case b == '\n' || b == '\r':
		return Event{Type: EventKey, Key: KeyEnter}, true
	case b == ' ':
		return Event{Type: EventKey, Key: KeySpace}, true
	case b == '\b' || b == '\x7f':
		return Event{Type: EventKey, Key: KeyBackspace}, true
	case b == '\x03':
		return Event{Type: EventKey, Key: KeyCtrlC}, true
	case b >= 'A' && b <= 'Z':
		return Event{Type: EventKey, Key: KeyRune, Rune: rune(b - 'A' + 'a')}, true
	case b > ' ' && b < 0x7f:
		return Event{Type: EventKey, Key: KeyRune, Rune: rune(b)}, true
	default:
		return Event{}, false
	}
}
