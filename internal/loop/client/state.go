package client

import (
	"time"

	"github.com/tomz197/popshot/internal/draw"
	"github.com/tomz197/popshot/internal/game"
	"github.com/tomz197/popshot/internal/input"
)

// Screen is the menu or view the client is showing. While on ScreenMatch
// the controller's phase decides between play, pause and results.
type Screen int

const (
	ScreenModeSelect Screen = iota // Title screen with mode and duration choice
	ScreenSettings                 // Colour, sound, break animation, osu mode
	ScreenMatch                    // A match is running, paused or finished
	ScreenShutdown                 // Server is shutting down
)

// view identifies what is on screen, so transitions can clear the terminal.
type view struct {
	screen Screen
	phase  game.Phase
}

// ClientState holds per-session state that is not part of the match itself.
type ClientState struct {
	Input         input.Input
	Screen        Screen
	Running       bool              // Client loop running
	LastSummary   *game.Summary     // Most recent finished match
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	delta         time.Duration     // Frame delta time
	prevView      view
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the client is in inactive warning state
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:   ScreenModeSelect,
		Running:  true,
		prevView: view{screen: -1},
	}
}
