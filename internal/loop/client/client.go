// Package client runs one player's session: input, the match controller,
// menus and rendering.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/popshot/internal/audio"
	"github.com/tomz197/popshot/internal/config"
	"github.com/tomz197/popshot/internal/draw"
	"github.com/tomz197/popshot/internal/game"
	"github.com/tomz197/popshot/internal/input"
	loopconfig "github.com/tomz197/popshot/internal/loop/config"
	"github.com/tomz197/popshot/internal/loop/server"
	"github.com/tomz197/popshot/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer // nil when playing locally
	handle       *server.ClientHandle
	state        *ClientState
	settings     *config.Store
	match        *game.Controller
	sound        game.SoundPlayer
	logger       *log.Logger
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	origin       time.Time // Zero point of the match clock
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	kickInactive bool
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Settings     *config.Settings // Defaults when nil
	Sound        game.SoundPlayer // Silent when nil
	Logger       *log.Logger      // Discards when nil
	Random       object.Random    // Time-seeded when nil
	KickInactive bool             // Disconnect idle players
}

// Compile-time check that Client receives match summaries.
var _ game.SummarySink = (*Client)(nil)

// NewClient creates a new client. gs may be nil for a local game.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	settings := config.DefaultSettings()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	sound := opts.Sound
	if sound == nil {
		sound = audio.Silent{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSize(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, loopconfig.FieldWidth, loopconfig.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	c := &Client{
		server:       gs,
		state:        state,
		settings:     config.NewStore(settings),
		sound:        sound,
		logger:       logger,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		inputStream:  input.StartStream(r),
		origin:       time.Now(),
		lastInput:    time.Now(),
		username:     truncateName(opts.Username),
		termSizeFunc: termSizeFunc,
		kickInactive: opts.KickInactive,
	}

	matchOpts := []game.Option{
		game.WithSound(sound),
		game.WithSummarySink(c),
	}
	if opts.Random != nil {
		matchOpts = append(matchOpts, game.WithRandom(opts.Random))
	}
	field := object.Field{Width: loopconfig.FieldWidth, Height: loopconfig.FieldHeight}
	c.match = game.NewController(field, c.settings, matchOpts...)

	if gs != nil {
		c.handle = gs.RegisterClient(c.username)
	}
	return c
}

// Run starts the client loop. Blocks until the client quits or the server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	if c.server != nil {
		defer c.server.UnregisterClient(c.handle.ID)
	}

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.Screen {
		case ScreenModeSelect:
			c.updateModeSelect()
		case ScreenSettings:
			c.updateSettings()
		case ScreenMatch:
			c.updateMatch()
		case ScreenShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < loopconfig.ClientTargetFrameTime {
			time.Sleep(loopconfig.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// MatchEnded records and logs a finished match.
func (c *Client) MatchEnded(s game.Summary) {
	c.state.LastSummary = &s
	c.logger.Info("match ended",
		"user", c.username,
		"score", s.Score,
		"bestCombo", s.BestCombo,
		"accuracy", s.Accuracy,
	)
}

// now is the match clock in milliseconds since the client started.
func (c *Client) now() float64 {
	return float64(time.Since(c.origin).Nanoseconds()) / 1e6
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	idle := time.Since(c.lastInput).Seconds()
	switch {
	case len(c.state.Input.Pressed) > 0:
		c.lastInput = time.Now()
		c.state.isInactive = false
	case c.kickInactive && idle > loopconfig.InactivityDisconnectUser:
		c.logger.Info("disconnecting inactive player", "user", c.username)
		c.state.Running = false
	case c.kickInactive && idle > loopconfig.InactivityWarnUser:
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.match.Quit()
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = loopconfig.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSize(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, loopconfig.MaxTermWidth)
	renderHeight = min(termHeight, loopconfig.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

func truncateName(name string) string {
	r := []rune(name)
	if len(r) > loopconfig.MaxUsernameLength {
		return string(r[:loopconfig.MaxUsernameLength])
	}
	return name
}

// updateModeSelect handles the title screen.
func (c *Client) updateModeSelect() {
	for _, ev := range c.state.Input.Events {
		if ev.Type != input.EventKey {
			continue
		}
		switch {
		case ev.Key == input.KeySpace || ev.Key == input.KeyEnter:
			c.startMatch(c.settings.Settings().Moving)
			return
		case ev.Key != input.KeyRune:
		case ev.Rune == '1':
			c.startMatch(true)
			return
		case ev.Rune == '2':
			c.startMatch(false)
			return
		case ev.Rune == 't':
			c.settings.ToggleDuration()
		case ev.Rune == 's':
			c.state.Screen = ScreenSettings
			return
		}
	}
}

// updateSettings handles the settings screen.
func (c *Client) updateSettings() {
	for _, ev := range c.state.Input.Events {
		if ev.Type != input.EventKey {
			continue
		}
		switch {
		case ev.Key == input.KeyEscape || ev.Key == input.KeyEnter || ev.Key == input.KeyBackspace:
			c.state.Screen = ScreenModeSelect
			return
		case ev.Key != input.KeyRune:
		case ev.Rune == 'o':
			c.settings.ToggleOsuMode()
		case ev.Rune == 'c':
			c.settings.CycleColor()
		case ev.Rune == 's':
			c.sound.Play(c.settings.CycleSound())
		case ev.Rune == 'b':
			c.settings.ToggleBreakAnim()
		}
	}
}

// startMatch begins a match with moving or static targets.
func (c *Client) startMatch(moving bool) {
	c.settings.SetMoving(moving)
	c.state.Screen = ScreenMatch
	c.match.Start(c.now())
	s := c.settings.Settings()
	c.logger.Debug("match started", "user", c.username, "moving", s.Moving, "duration", s.Duration())
}

// updateMatch feeds input to the controller and advances it one frame.
func (c *Client) updateMatch() {
	for _, ev := range c.state.Input.Events {
		switch ev.Type {
		case input.EventMouseMove:
			if x, y, ok := c.canvas.TerminalToLogical(ev.Col, ev.Row); ok {
				c.match.PointerMove(x, y)
			}
		case input.EventMouseDown:
			if x, y, ok := c.canvas.TerminalToLogical(ev.Col, ev.Row); ok {
				c.match.PointerDown(x, y)
			}
		case input.EventKey:
			if c.handleMatchKey(ev) {
				return
			}
		}
	}
	c.match.Frame(c.now())
}

// handleMatchKey applies a key press to the match. It returns true when the
// client left the match screen.
func (c *Client) handleMatchKey(ev input.Event) bool {
	pause := ev.Key == input.KeyEscape || (ev.Key == input.KeyRune && ev.Rune == 'p')
	confirm := ev.Key == input.KeyEnter || ev.Key == input.KeySpace
	r := rune(0)
	if ev.Key == input.KeyRune {
		r = ev.Rune
	}

	switch c.match.Phase() {
	case game.PhaseRunning:
		switch {
		case pause:
			c.match.TogglePause()
		case r == 'z' || r == 'x':
			c.match.KeyTrigger()
		}
	case game.PhasePaused:
		switch {
		case pause || confirm:
			c.match.TogglePause()
		case r == 'r':
			c.match.Start(c.now())
		case r == 'm':
			c.leaveMatch()
			return true
		}
	case game.PhaseEnded:
		switch {
		case confirm || r == 'r':
			c.match.Start(c.now())
		case r == 'm' || ev.Key == input.KeyEscape:
			c.leaveMatch()
			return true
		}
	}
	return false
}

func (c *Client) leaveMatch() {
	c.match.Quit()
	c.state.Screen = ScreenModeSelect
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
