package object

import (
	"math"

	"github.com/tomz197/popshot/internal/physics"
)

// Target tuning.
const (
	TargetRadius  = 25.0
	BreakDuration = 0.3 // Seconds a broken target stays on the field
	BreakGrowth   = 0.3 // Extra radius fraction reached at the end of the break

	// speedScale converts millisecond deltas into the designed per-frame
	// cruising speed.
	speedScale = 0.06
	minSpeed   = 0.3
	speedRange = 0.9
)

// Status is a target's lifecycle state.
type Status int

const (
	StatusAlive Status = iota // Moving and hittable
	StatusDying               // Playing its break animation
)

func (s Status) String() string {
	switch s {
	case StatusAlive:
		return "alive"
	case StatusDying:
		return "dying"
	default:
		return "unknown"
	}
}

// Target is a circular clickable ball.
type Target struct {
	X, Y      float64 // Center
	Radius    float64
	VX, VY    float64 // Velocity per millisecond before speedScale
	Status    Status
	AnimTime  float64 // Seconds since entering the current status
	Particles []Particle
}

// NewTarget creates an alive target at a uniformly random position inside the
// field inset by its radius. Each velocity axis gets an independent random
// magnitude in [0.3, 1.2) and a random sign, so motion is always diagonal.
func NewTarget(field Field, rng Random) *Target {
	r := TargetRadius
	x := rng.Float64()*(field.Width-r*2) + r
	y := rng.Float64()*(field.Height-r*2) + r
	vx := randomSpeed(rng)
	vy := randomSpeed(rng)
	return &Target{
		X:      x,
		Y:      y,
		Radius: r,
		VX:     vx,
		VY:     vy,
		Status: StatusAlive,
	}
}

func randomSpeed(rng Random) float64 {
	speed := rng.Float64()*speedRange + minSpeed
	if rng.Float64() < 0.5 {
		return -speed
	}
	return speed
}

// Move integrates an alive target by deltaMs milliseconds and bounces it off
// the field edges. Each axis is reflected independently.
func (t *Target) Move(deltaMs float64, field Field) {
	if t.Status != StatusAlive {
		return
	}
	t.X += t.VX * deltaMs * speedScale
	t.Y += t.VY * deltaMs * speedScale
	physics.Bounce(&t.X, &t.VX, t.Radius, field.Width-t.Radius)
	physics.Bounce(&t.Y, &t.VY, t.Radius, field.Height-t.Radius)
}

// Break switches the target to dying and bursts it into particles.
func (t *Target) Break(rng Random) {
	t.Status = StatusDying
	t.AnimTime = 0
	t.Particles = SpawnBurst(t.X, t.Y, rng)
}

// Animate advances a dying target by dt seconds. It reports true once the
// break animation has run its full duration.
func (t *Target) Animate(dt float64) bool {
	if t.Status != StatusDying {
		return false
	}
	t.AnimTime += dt
	for i := range t.Particles {
		t.Particles[i].Update(dt)
	}
	return t.AnimTime >= BreakDuration
}

// Progress is the break animation completion in [0, 1]. Alive targets are 0.
func (t *Target) Progress() float64 {
	if t.Status != StatusDying {
		return 0
	}
	return math.Min(1, t.AnimTime/BreakDuration)
}

// Alpha is the fade-out opacity of a dying target.
func (t *Target) Alpha() float64 {
	if t.Status != StatusDying {
		return 1
	}
	return math.Max(0, 1-t.AnimTime/BreakDuration)
}

// DrawRadius grows linearly to (1+BreakGrowth)×Radius over the break.
func (t *Target) DrawRadius() float64 {
	return t.Radius * (1 + BreakGrowth*t.Progress())
}
