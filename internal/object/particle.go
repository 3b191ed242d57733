package object

import "math"

// Break burst parameters.
const (
	BurstCount    = 12
	BurstMinSpeed = 100.0 // Units per second
	BurstMaxSpeed = 250.0
)

// Particle is one fragment of a broken target.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity in units per second
	Life   float64 // Seconds remaining
}

// SpawnBurst creates BurstCount particles at (x, y) flying outward in
// uniformly random directions.
func SpawnBurst(x, y float64, rng Random) []Particle {
	particles := make([]Particle, BurstCount)
	for i := range particles {
		angle := rng.Float64() * 2 * math.Pi
		speed := BurstMinSpeed + rng.Float64()*(BurstMaxSpeed-BurstMinSpeed)
		particles[i] = Particle{
			X:    x,
			Y:    y,
			VX:   math.Cos(angle) * speed,
			VY:   math.Sin(angle) * speed,
			Life: BreakDuration,
		}
	}
	return particles
}

// Update moves the particle by dt seconds. Life counts down but the particle
// is kept until its parent target respawns.
func (p *Particle) Update(dt float64) {
	p.Life -= dt
	p.X += p.VX * dt
	p.Y += p.VY * dt
}
