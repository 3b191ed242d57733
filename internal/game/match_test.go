package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/popshot/internal/config"
	"github.com/tomz197/popshot/internal/object"
)

type recordingSound struct {
	played []config.SoundKind
}

func (r *recordingSound) Play(kind config.SoundKind) {
	r.played = append(r.played, kind)
}

type recordingSink struct {
	summaries []Summary
}

func (r *recordingSink) MatchEnded(s Summary) {
	r.summaries = append(r.summaries, s)
}

func newTestController(t *testing.T, mutate func(*config.Settings)) (*Controller, *config.Store, *recordingSound, *recordingSink) {
	t.Helper()
	s := config.DefaultSettings()
	if mutate != nil {
		mutate(&s)
	}
	store := config.NewStore(s)
	sound := &recordingSound{}
	sink := &recordingSink{}
	c := NewController(testField, store,
		WithSound(sound),
		WithSummarySink(sink),
		WithRandom(rand.New(rand.NewSource(99))),
	)
	return c, store, sound, sink
}

// place puts an alive, motionless target at slot.
func place(c *Controller, slot int, x, y float64) *object.Target {
	tg := alive(x, y)
	c.pool.targets[slot] = tg
	return tg
}

func TestStartResetsMatch(t *testing.T) {
	c, _, _, _ := newTestController(t, nil)
	if c.Phase() != PhaseIdle {
		t.Fatalf("Expected idle, got %v", c.Phase())
	}
	c.Start(0)
	if c.Phase() != PhaseRunning {
		t.Fatalf("Expected running, got %v", c.Phase())
	}
	if c.Remaining() != config.DurationStandard {
		t.Fatalf("Expected %d seconds, got %f", config.DurationStandard, c.Remaining())
	}
	if c.Stats() != NewStats() {
		t.Fatalf("Expected fresh stats, got %+v", c.Stats())
	}
	if c.Pool().Len() != NumTargets {
		t.Fatalf("Expected %d targets", NumTargets)
	}
}

func TestFrameCountsDownAndEnds(t *testing.T) {
	c, _, _, sink := newTestController(t, func(s *config.Settings) {
		s.DurationSeconds = config.DurationQuick
	})
	c.Start(1000)

	if !c.Frame(2000) {
		t.Fatal("loop should stay armed while running")
	}
	if math.Abs(c.Remaining()-29) > 1e-9 {
		t.Fatalf("Expected 29s left, got %f", c.Remaining())
	}
	if math.Abs(c.Progress()-100.0/30) > 1e-9 {
		t.Fatalf("unexpected progress %f", c.Progress())
	}

	if c.Frame(31500) {
		t.Fatal("loop should stop once time runs out")
	}
	if c.Phase() != PhaseEnded {
		t.Fatalf("Expected ended, got %v", c.Phase())
	}
	if c.Remaining() != 0 || c.Progress() != 100 {
		t.Fatalf("Expected clamped remaining/progress, got %f/%f", c.Remaining(), c.Progress())
	}
	if len(sink.summaries) != 1 {
		t.Fatalf("Expected one summary, got %d", len(sink.summaries))
	}
	if got := sink.summaries[0]; got.Accuracy != "0.0" || got.Score != 0 {
		t.Fatalf("unexpected summary %+v", got)
	}
	if c.Frame(40000) {
		t.Fatal("ended match must not rearm")
	}
	if len(sink.summaries) != 1 {
		t.Fatal("summary must be emitted once")
	}
}

func TestPauseFreezesTimeAndTargets(t *testing.T) {
	c, _, _, _ := newTestController(t, nil)
	c.Start(0)
	c.Frame(1000)

	if !c.TogglePause() {
		t.Fatal("Expected paused")
	}
	before := c.Snapshot()
	for _, now := range []float64{2000, 10000, 25000} {
		if !c.Frame(now) {
			t.Fatal("paused loop must keep rescheduling")
		}
	}
	after := c.Snapshot()
	if after.HUD.Remaining != before.HUD.Remaining {
		t.Fatalf("time elapsed while paused: %f -> %f", before.HUD.Remaining, after.HUD.Remaining)
	}
	for i := range before.Targets {
		if before.Targets[i].X != after.Targets[i].X || before.Targets[i].Y != after.Targets[i].Y {
			t.Fatalf("target %d moved while paused", i)
		}
	}

	if c.TogglePause() {
		t.Fatal("Expected running after resume")
	}
	c.Frame(25016)
	if want := 59 - 0.016; math.Abs(c.Remaining()-want) > 1e-9 {
		t.Fatalf("first frame after resume should use a short delta: remaining=%f want %f", c.Remaining(), want)
	}
}

func TestPausedDyingTargetDoesNotAnimate(t *testing.T) {
	c, _, _, _ := newTestController(t, nil)
	c.Start(0)
	tg := place(c, 0, 100, 100)
	place(c, 1, 400, 300)
	place(c, 2, 700, 500)
	c.PointerDown(100, 100)

	c.TogglePause()
	c.Frame(5000)
	if tg.AnimTime != 0 || c.pool.targets[0] != tg {
		t.Fatalf("dying target advanced while paused: anim=%f", tg.AnimTime)
	}
	p := tg.Particles[0]
	if p.X != 100 || p.Y != 100 {
		t.Fatalf("particles moved while paused: (%f, %f)", p.X, p.Y)
	}
}

func TestShotsIgnoredUnlessRunning(t *testing.T) {
	c, _, _, _ := newTestController(t, nil)
	if _, ok := c.PointerDown(10, 10); ok {
		t.Fatal("idle controller accepted a shot")
	}
	c.Start(0)
	c.TogglePause()
	if _, ok := c.PointerDown(10, 10); ok {
		t.Fatal("paused controller accepted a shot")
	}
	if c.Stats().Shots != 0 {
		t.Fatalf("Expected no shots, got %d", c.Stats().Shots)
	}
}

func TestMissCountsShot(t *testing.T) {
	c, _, sound, _ := newTestController(t, nil)
	c.Start(0)
	place(c, 0, 100, 100)
	place(c, 1, 400, 300)
	place(c, 2, 700, 500)

	out, ok := c.PointerDown(250, 250)
	if !ok || out.Hit {
		t.Fatalf("Expected applied miss, got %+v ok=%v", out, ok)
	}
	if s := c.Stats(); s.Shots != 1 || s.Hits != 0 || s.Score != 0 {
		t.Fatalf("unexpected stats after miss: %+v", s)
	}
	if len(sound.played) != 0 {
		t.Fatal("miss must not play a hit sound")
	}
}

func TestFiveHitsWithoutBreakAnimation(t *testing.T) {
	c, _, sound, _ := newTestController(t, func(s *config.Settings) {
		s.BreakAnim = false
		s.Sound = config.SoundShoot
	})
	c.Start(0)
	for i := 0; i < 5; i++ {
		tg := c.Pool().Targets()[0]
		out, ok := c.PointerDown(tg.X, tg.Y)
		if !ok || !out.Hit {
			t.Fatalf("hit %d missed: %+v", i, out)
		}
		if c.Pool().Targets()[out.Slot].Status != object.StatusAlive {
			t.Fatal("target should respawn immediately without break animation")
		}
	}
	s := c.Stats()
	if s.Combo != 5 || s.Multiplier != 2 || s.Score != 12 || s.BestCombo != 5 {
		t.Fatalf("Expected combo=5 mult=2 score=12 best=5, got %+v", s)
	}
	if len(sound.played) != 5 || sound.played[0] != config.SoundShoot {
		t.Fatalf("Expected 5 shoot sounds, got %v", sound.played)
	}
}

func TestDyingTargetCannotBeHitTwice(t *testing.T) {
	c, _, _, _ := newTestController(t, nil)
	c.Start(0)
	tg := place(c, 0, 100, 100)
	place(c, 1, 400, 300)
	place(c, 2, 700, 500)

	if out, _ := c.PointerDown(100, 100); !out.Hit || out.Slot != 0 {
		t.Fatalf("Expected hit on slot 0, got %+v", out)
	}
	if tg.Status != object.StatusDying {
		t.Fatal("Expected dying target")
	}
	c.Frame(100)
	if out, _ := c.PointerDown(100, 100); out.Hit {
		t.Fatalf("dying target was hit again: %+v", out)
	}
	if s := c.Stats(); s.Shots != 2 || s.Hits != 1 || s.Combo != 0 || s.Score != 1 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestDyingTargetRespawnsInSameSlot(t *testing.T) {
	c, _, _, _ := newTestController(t, func(s *config.Settings) { s.Moving = false })
	c.Start(0)
	place(c, 0, 100, 100)
	tg := place(c, 1, 400, 300)
	place(c, 2, 700, 500)
	c.PointerDown(400, 300)

	c.Frame(100)
	c.Frame(250)
	if c.pool.targets[1] != tg {
		t.Fatal("respawned before 0.3s")
	}
	if len(tg.Particles) != object.BurstCount {
		t.Fatalf("Expected %d particles, got %d", object.BurstCount, len(tg.Particles))
	}
	c.Frame(310)
	fresh := c.pool.targets[1]
	if fresh == tg || fresh.Status != object.StatusAlive {
		t.Fatalf("Expected a fresh alive target in slot 1, got %+v", fresh)
	}
}

func TestKeyTriggerNeedsOsuMode(t *testing.T) {
	c, store, _, _ := newTestController(t, nil)
	c.Start(0)
	place(c, 0, 100, 100)
	place(c, 1, 400, 300)
	place(c, 2, 700, 500)
	c.PointerMove(400, 300)

	if _, ok := c.KeyTrigger(); ok {
		t.Fatal("key trigger must be ignored outside osu mode")
	}
	store.ToggleOsuMode()
	out, ok := c.KeyTrigger()
	if !ok || !out.Hit || out.Slot != 1 {
		t.Fatalf("Expected key trigger hit on slot 1, got %+v ok=%v", out, ok)
	}
}

func TestRestartAfterEnd(t *testing.T) {
	c, _, _, _ := newTestController(t, nil)
	c.Start(0)
	tg := c.Pool().Targets()[0]
	c.PointerDown(tg.X, tg.Y)
	c.Frame(61000)
	if sum, ok := c.Summary(); !ok || sum.Accuracy != "100.0" || sum.Score != 2 || sum.BestCombo != 1 {
		t.Fatalf("unexpected summary %+v ok=%v", sum, ok)
	}

	c.Start(70000)
	if c.Phase() != PhaseRunning || c.Stats() != NewStats() {
		t.Fatalf("restart should reset the match, got %v %+v", c.Phase(), c.Stats())
	}
	if _, ok := c.Summary(); ok {
		t.Fatal("summary should not be available while running")
	}
	if !c.Frame(70016) {
		t.Fatal("restarted loop should be armed")
	}
}

func TestQuitStopsLoop(t *testing.T) {
	c, _, _, sink := newTestController(t, nil)
	c.Start(0)
	c.Quit()
	if c.Phase() != PhaseIdle {
		t.Fatalf("Expected idle, got %v", c.Phase())
	}
	if c.Frame(100000) {
		t.Fatal("quit must cancel the loop")
	}
	if len(sink.summaries) != 0 {
		t.Fatal("quitting is not a match end")
	}
}
