package game

import (
	"github.com/tomz197/popshot/internal/object"
	"github.com/tomz197/popshot/internal/physics"
)

// Outcome is the result of one shot.
type Outcome struct {
	Hit  bool
	Slot int // -1 on a miss
}

// Resolve finds the target under (x, y). Later slots are checked first so the
// highest slot wins when targets overlap. Dying targets cannot be hit, and at
// most one target is hit per shot.
func Resolve(targets []*object.Target, x, y float64) Outcome {
	for i := len(targets) - 1; i >= 0; i-- {
		t := targets[i]
		if t.Status == object.StatusDying {
			continue
		}
		if physics.PointInCircle(x, y, t.X, t.Y, t.Radius) {
			return Outcome{Hit: true, Slot: i}
		}
	}
	return Outcome{Slot: -1}
}
