package game

// frameClock turns frame timestamps (milliseconds) into deltas. A paused
// frame only refreshes the last timestamp so no backlog builds up.
// Deltas are not clamped: a long stall yields one large step.
type frameClock struct {
	armed bool
	last  float64
}

func (c *frameClock) arm(now float64) {
	c.armed = true
	c.last = now
}

func (c *frameClock) cancel() {
	c.armed = false
}

func (c *frameClock) delta(now float64, paused bool) float64 {
	if paused {
		c.last = now
		return 0
	}
	d := now - c.last
	c.last = now
	return d
}
