// Package physics provides hit detection and boundary utilities.
package physics

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle reports whether a point lies strictly inside a circle.
// A point exactly on the rim is outside.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) < radius*radius
}

// Bounce keeps a coordinate within [lo, hi]. When the coordinate has crossed
// a bound it is clamped to it and the velocity sign is flipped.
func Bounce(pos, vel *float64, lo, hi float64) {
	if *pos < lo {
		*pos = lo
		*vel = -*vel
	}
	if *pos > hi {
		*pos = hi
		*vel = -*vel
	}
}
