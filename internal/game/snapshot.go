package game

import "github.com/tomz197/popshot/internal/object"

// Point is a position in field units.
type Point struct {
	X, Y float64
}

// TargetView is the drawable state of one target.
type TargetView struct {
	X, Y       float64
	Radius     float64
	DrawRadius float64 // Grows while dying
	Alpha      float64 // Fades while dying
	Progress   float64 // Break animation completion in [0, 1]
	Status     object.Status
	Particles  []Point
}

// HUD is the text overlay state.
type HUD struct {
	Phase      Phase
	Score      int
	Combo      int
	Multiplier int
	Remaining  float64 // Seconds
	Progress   float64 // Percent
}

// Snapshot is a read-only copy of everything the presentation layer draws.
type Snapshot struct {
	Field   object.Field
	Targets []TargetView
	HUD     HUD
	Color   string
}

// Snapshot copies the current match state for drawing.
func (c *Controller) Snapshot() Snapshot {
	targets := c.pool.Targets()
	views := make([]TargetView, len(targets))
	for i, t := range targets {
		v := TargetView{
			X:          t.X,
			Y:          t.Y,
			Radius:     t.Radius,
			DrawRadius: t.DrawRadius(),
			Alpha:      t.Alpha(),
			Progress:   t.Progress(),
			Status:     t.Status,
		}
		if len(t.Particles) > 0 {
			v.Particles = make([]Point, len(t.Particles))
			for j, p := range t.Particles {
				v.Particles[j] = Point{X: p.X, Y: p.Y}
			}
		}
		views[i] = v
	}
	return Snapshot{
		Field:   c.pool.Field(),
		Targets: views,
		HUD: HUD{
			Phase:      c.phase,
			Score:      c.stats.Score,
			Combo:      c.stats.Combo,
			Multiplier: c.stats.Multiplier,
			Remaining:  c.Remaining(),
			Progress:   c.Progress(),
		},
		Color: c.settings.Settings().Color,
	}
}
