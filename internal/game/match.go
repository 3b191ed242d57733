package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/popshot/internal/config"
	"github.com/tomz197/popshot/internal/object"
)

// Phase is the match state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// SettingsSource supplies the current player settings.
type SettingsSource interface {
	Settings() config.Settings
}

// SoundPlayer plays a hit sound. Play must not block.
type SoundPlayer interface {
	Play(kind config.SoundKind)
}

// SummarySink receives the final result of every match.
type SummarySink interface {
	MatchEnded(Summary)
}

// Summary is the end-of-match report.
type Summary struct {
	Score     int
	BestCombo int
	Accuracy  string // Percent with one decimal
}

// Option configures a Controller.
type Option func(*Controller)

// WithSound sets the hit sound player.
func WithSound(p SoundPlayer) Option {
	return func(c *Controller) { c.sound = p }
}

// WithSummarySink sets where match summaries are sent.
func WithSummarySink(s SummarySink) Option {
	return func(c *Controller) { c.sink = s }
}

// WithRandom sets the random source used for spawning.
func WithRandom(r object.Random) Option {
	return func(c *Controller) { c.rng = r }
}

// Controller runs matches. It is the only writer of match state and of the
// target pool; all methods must be called from one goroutine.
type Controller struct {
	settings SettingsSource
	sound    SoundPlayer
	sink     SummarySink
	rng      object.Random

	pool  *Pool
	clock frameClock
	phase Phase
	stats Stats

	duration  float64 // Seconds, fixed at match start
	remaining float64 // Seconds, may dip below zero on the final frame

	pointerX, pointerY float64
	summary            Summary
}

// NewController creates an idle controller for the given field.
func NewController(field object.Field, settings SettingsSource, opts ...Option) *Controller {
	c := &Controller{
		settings: settings,
		stats:    NewStats(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c.pool = NewPool(field, c.rng)
	return c
}

// Phase returns the current match phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Stats returns the current scoring state.
func (c *Controller) Stats() Stats {
	return c.stats
}

// Pool exposes the target pool for inspection.
func (c *Controller) Pool() *Pool {
	return c.pool
}

// Start begins a new match at timestamp now (milliseconds). Any running
// match is abandoned first.
func (c *Controller) Start(now float64) {
	c.clock.cancel()

	s := c.settings.Settings()
	c.stats = NewStats()
	c.duration = s.Duration().Seconds()
	c.remaining = c.duration
	c.summary = Summary{}
	c.pool.ResetAll()

	c.phase = PhaseRunning
	c.clock.arm(now)
}

// Frame advances the match to timestamp now (milliseconds). It reports
// whether the frame loop is still armed; it returns false once the match
// has ended or when no match is in progress.
func (c *Controller) Frame(now float64) bool {
	if !c.clock.armed {
		return false
	}
	paused := c.phase == PhasePaused
	delta := c.clock.delta(now, paused)
	if paused {
		return true
	}

	c.remaining -= delta / 1000
	if c.remaining <= 0 {
		c.end()
		return false
	}

	c.pool.Advance(delta, c.settings.Settings().Moving)
	return true
}

// TogglePause switches between running and paused. It does nothing in
// other phases. Returns true when the match is now paused.
func (c *Controller) TogglePause() bool {
	switch c.phase {
	case PhaseRunning:
		c.phase = PhasePaused
	case PhasePaused:
		c.phase = PhaseRunning
	}
	return c.phase == PhasePaused
}

// Quit abandons the match and returns to idle.
func (c *Controller) Quit() {
	c.clock.cancel()
	c.phase = PhaseIdle
}

// PointerMove records the pointer position used by key triggers.
func (c *Controller) PointerMove(x, y float64) {
	c.pointerX = x
	c.pointerY = y
}

// PointerDown fires a shot at (x, y).
func (c *Controller) PointerDown(x, y float64) (Outcome, bool) {
	c.PointerMove(x, y)
	return c.shoot(x, y)
}

// KeyTrigger fires a shot at the last pointer position. It only works when
// the osu input mode is enabled.
func (c *Controller) KeyTrigger() (Outcome, bool) {
	if !c.settings.Settings().OsuMode {
		return Outcome{Slot: -1}, false
	}
	return c.shoot(c.pointerX, c.pointerY)
}

// shoot applies one shot. It reports false, changing nothing, unless the
// match is running.
func (c *Controller) shoot(x, y float64) (Outcome, bool) {
	if c.phase != PhaseRunning {
		return Outcome{Slot: -1}, false
	}
	s := c.settings.Settings()

	c.stats = c.stats.Shot()
	out := Resolve(c.pool.Targets(), x, y)
	if out.Hit {
		if c.sound != nil {
			c.sound.Play(s.Sound)
		}
		c.pool.Hit(out.Slot, s.BreakAnim)
	}
	c.stats = c.stats.Apply(out.Hit)
	return out, true
}

func (c *Controller) end() {
	c.clock.cancel()
	c.phase = PhaseEnded
	c.summary = Summary{
		Score:     c.stats.Score,
		BestCombo: c.stats.BestCombo,
		Accuracy:  c.stats.Accuracy(),
	}
	if c.sink != nil {
		c.sink.MatchEnded(c.summary)
	}
}

// Summary returns the result of the last match once it has ended.
func (c *Controller) Summary() (Summary, bool) {
	return c.summary, c.phase == PhaseEnded
}

// Remaining is the time left in seconds, never below zero.
func (c *Controller) Remaining() float64 {
	return math.Max(0, c.remaining)
}

// Progress is the elapsed share of the match in percent, within [0, 100].
func (c *Controller) Progress() float64 {
	if c.duration <= 0 {
		return 0
	}
	p := (c.duration - c.remaining) / c.duration * 100
	return math.Min(100, math.Max(0, p))
}
