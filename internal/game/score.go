package game

import "fmt"

// comboStep is the number of consecutive hits per multiplier level.
const comboStep = 5

// Stats is the scoring state of a match. Methods return updated copies.
type Stats struct {
	Score      int
	Combo      int
	BestCombo  int
	Multiplier int
	Shots      int
	Hits       int
}

// NewStats returns the state at match start.
func NewStats() Stats {
	return Stats{Multiplier: 1}
}

// MultiplierFor returns the score multiplier earned by a combo.
func MultiplierFor(combo int) int {
	return 1 + combo/comboStep
}

// Shot counts a fired shot, hit or not.
func (s Stats) Shot() Stats {
	s.Shots++
	return s
}

// Apply scores one shot outcome. A hit extends the combo, recomputes the
// multiplier and adds 2×multiplier. A miss breaks the combo and costs one
// point, never taking the score below zero.
func (s Stats) Apply(hit bool) Stats {
	if hit {
		s.Hits++
		s.Combo++
		s.BestCombo = max(s.BestCombo, s.Combo)
		s.Multiplier = MultiplierFor(s.Combo)
		s.Score += 2 * s.Multiplier
		return s
	}
	s.Combo = 0
	s.Multiplier = 1
	s.Score = max(0, s.Score-1)
	return s
}

// AccuracyPercent is hits/shots×100, or 0 when nothing was fired.
func (s Stats) AccuracyPercent() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Shots) * 100
}

// Accuracy formats AccuracyPercent with one decimal.
func (s Stats) Accuracy() string {
	if s.Shots == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", s.AccuracyPercent())
}
