// Package game implements a match: the target pool, hit resolution, scoring
// and the match state machine. It computes state only; drawing and sound
// playback happen in the caller.
package game

import "github.com/tomz197/popshot/internal/object"

// NumTargets is the fixed number of targets on the field.
const NumTargets = 3

// Pool owns the targets by slot. Slots are never removed, only replaced.
type Pool struct {
	field   object.Field
	rng     object.Random
	targets [NumTargets]*object.Target
}

// NewPool creates a pool already filled with fresh targets.
func NewPool(field object.Field, rng object.Random) *Pool {
	p := &Pool{field: field, rng: rng}
	p.ResetAll()
	return p
}

// Field returns the play area the pool spawns into.
func (p *Pool) Field() object.Field {
	return p.field
}

// Len is always NumTargets.
func (p *Pool) Len() int {
	return len(p.targets)
}

// Targets returns the targets in slot order. Callers must not modify them.
func (p *Pool) Targets() []*object.Target {
	return p.targets[:]
}

// ResetAll replaces every slot with a fresh target.
func (p *Pool) ResetAll() {
	for i := range p.targets {
		p.RespawnAt(i)
	}
}

// RespawnAt replaces the target at slot with a fresh one. Its particles go
// with the old target.
func (p *Pool) RespawnAt(slot int) {
	p.targets[slot] = object.NewTarget(p.field, p.rng)
}

// Hit handles a successful hit on slot: the target breaks when the break
// animation is enabled, otherwise it respawns immediately.
func (p *Pool) Hit(slot int, breakAnim bool) {
	if !breakAnim {
		p.RespawnAt(slot)
		return
	}
	p.targets[slot].Break(p.rng)
}

// Advance moves alive targets (when moving is on) and runs break
// animations, respawning targets whose animation has finished.
// deltaMs is the frame delta in milliseconds.
func (p *Pool) Advance(deltaMs float64, moving bool) {
	for i, t := range p.targets {
		switch t.Status {
		case object.StatusAlive:
			if moving {
				t.Move(deltaMs, p.field)
			}
		case object.StatusDying:
			if t.Animate(deltaMs / 1000) {
				p.RespawnAt(i)
			}
		}
	}
}
