package object

import (
	"math"
	"math/rand"
	"testing"
)

// fixedRandom replays a fixed sequence of samples, wrapping at the end.
type fixedRandom struct {
	values []float64
	i      int
}

func (f *fixedRandom) Float64() float64 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

var testField = Field{Width: 800, Height: 600}

func TestNewTargetSampling(t *testing.T) {
	// x, y, |vx|, sign(vx), |vy|, sign(vy)
	rng := &fixedRandom{values: []float64{0, 1 - 1e-12, 0.5, 0.2, 0, 0.9}}
	tg := NewTarget(testField, rng)

	if tg.X != TargetRadius {
		t.Errorf("Expected X=%f, got %f", TargetRadius, tg.X)
	}
	if tg.Y > testField.Height-TargetRadius || tg.Y < testField.Height-TargetRadius-1e-6 {
		t.Errorf("Expected Y near %f, got %f", testField.Height-TargetRadius, tg.Y)
	}
	if math.Abs(tg.VX-(-0.75)) > 1e-9 {
		t.Errorf("Expected VX=-0.75, got %f", tg.VX)
	}
	if math.Abs(tg.VY-0.3) > 1e-9 {
		t.Errorf("Expected VY=0.3, got %f", tg.VY)
	}
	if tg.Status != StatusAlive || tg.Radius != TargetRadius {
		t.Errorf("Expected fresh alive target, got %+v", tg)
	}
}

func TestNewTargetRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		tg := NewTarget(testField, rng)
		if tg.X < tg.Radius || tg.X > testField.Width-tg.Radius {
			t.Fatalf("X out of range: %f", tg.X)
		}
		if tg.Y < tg.Radius || tg.Y > testField.Height-tg.Radius {
			t.Fatalf("Y out of range: %f", tg.Y)
		}
		for _, v := range []float64{tg.VX, tg.VY} {
			if a := math.Abs(v); a < 0.3 || a >= 1.2 {
				t.Fatalf("speed component out of range: %f", v)
			}
		}
	}
}

func TestMoveScalesMilliseconds(t *testing.T) {
	tg := &Target{X: 400, Y: 300, Radius: TargetRadius, VX: 1, VY: -0.5}
	tg.Move(100, testField)
	if math.Abs(tg.X-406) > 1e-9 || math.Abs(tg.Y-297) > 1e-9 {
		t.Fatalf("Expected (406, 297), got (%f, %f)", tg.X, tg.Y)
	}
}

func TestMoveBouncesOffWalls(t *testing.T) {
	tg := &Target{X: 30, Y: 570, Radius: TargetRadius, VX: -1, VY: 1}
	tg.Move(1000, testField)
	if tg.X != TargetRadius || tg.VX != 1 {
		t.Errorf("Expected left bounce, got X=%f VX=%f", tg.X, tg.VX)
	}
	if tg.Y != testField.Height-TargetRadius || tg.VY != -1 {
		t.Errorf("Expected bottom bounce, got Y=%f VY=%f", tg.Y, tg.VY)
	}
}

func TestMoveStaysInsideAfterManyBounces(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tg := NewTarget(testField, rng)
	for i := 0; i < 5000; i++ {
		tg.Move(float64(rng.Intn(200)), testField)
		if tg.X < tg.Radius || tg.X > testField.Width-tg.Radius ||
			tg.Y < tg.Radius || tg.Y > testField.Height-tg.Radius {
			t.Fatalf("step %d: center escaped field: (%f, %f)", i, tg.X, tg.Y)
		}
	}
}

func TestDyingTargetDoesNotMove(t *testing.T) {
	tg := &Target{X: 400, Y: 300, Radius: TargetRadius, VX: 1, VY: 1}
	tg.Break(rand.New(rand.NewSource(1)))
	tg.Move(100, testField)
	if tg.X != 400 || tg.Y != 300 {
		t.Fatalf("dying target moved to (%f, %f)", tg.X, tg.Y)
	}
}

func TestBreakSpawnsBurst(t *testing.T) {
	tg := &Target{X: 100, Y: 200, Radius: TargetRadius}
	tg.Break(rand.New(rand.NewSource(3)))

	if tg.Status != StatusDying || tg.AnimTime != 0 {
		t.Fatalf("Expected dying with reset timer, got %v %f", tg.Status, tg.AnimTime)
	}
	if len(tg.Particles) != BurstCount {
		t.Fatalf("Expected %d particles, got %d", BurstCount, len(tg.Particles))
	}
	for _, p := range tg.Particles {
		if p.X != 100 || p.Y != 200 {
			t.Errorf("particle should start at target center, got (%f, %f)", p.X, p.Y)
		}
		speed := math.Hypot(p.VX, p.VY)
		if speed < BurstMinSpeed-1e-9 || speed >= BurstMaxSpeed {
			t.Errorf("particle speed out of range: %f", speed)
		}
		if p.Life != BreakDuration {
			t.Errorf("Expected life %f, got %f", BreakDuration, p.Life)
		}
	}
}

func TestAnimateRunsForBreakDuration(t *testing.T) {
	tg := &Target{X: 100, Y: 100, Radius: TargetRadius}
	tg.Break(rand.New(rand.NewSource(5)))
	first := tg.Particles[0]

	if done := tg.Animate(0.1); done {
		t.Fatal("animation finished too early")
	}
	p := tg.Particles[0]
	if math.Abs(p.X-(first.X+first.VX*0.1)) > 1e-9 {
		t.Errorf("particle should integrate in seconds, got X=%f", p.X)
	}
	if math.Abs(tg.Alpha()-(1-0.1/BreakDuration)) > 1e-9 {
		t.Errorf("unexpected alpha %f", tg.Alpha())
	}
	if done := tg.Animate(0.15); done {
		t.Fatal("animation finished too early")
	}
	if done := tg.Animate(0.06); !done {
		t.Fatal("animation should be finished at 0.3s")
	}
	if len(tg.Particles) != BurstCount {
		t.Errorf("particles must persist until respawn, got %d", len(tg.Particles))
	}
	if tg.Alpha() != 0 {
		t.Errorf("Expected alpha 0, got %f", tg.Alpha())
	}
	if math.Abs(tg.DrawRadius()-TargetRadius*1.3) > 1e-9 {
		t.Errorf("Expected draw radius %f, got %f", TargetRadius*1.3, tg.DrawRadius())
	}
}

func TestAnimateIgnoresAliveTargets(t *testing.T) {
	tg := &Target{Radius: TargetRadius}
	if tg.Animate(1) {
		t.Fatal("alive target cannot finish a break")
	}
	if tg.Alpha() != 1 || tg.DrawRadius() != TargetRadius {
		t.Fatalf("alive target should draw fully opaque at base radius")
	}
}
