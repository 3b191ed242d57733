// Package object holds the game entities: targets and their break particles.
package object

// Field is the rectangular play area in logical units.
type Field struct {
	Width  float64
	Height float64
}

// Random is the source of uniform samples in [0, 1) used when spawning.
// *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}
