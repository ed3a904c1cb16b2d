package boids

import "math"

// Torus is a W×H plane whose opposite edges are joined.
type Torus struct {
	W, H float64
}

// Delta maps a raw offset to the shortest equivalent offset on the torus.
// Each axis is corrected at most once, so |dx| must be below 1.5*W.
func (t Torus) Delta(dx, dy float64) (float64, float64) {
	if dx > t.W/2 {
		dx -= t.W
	}
	if dx < -t.W/2 {
		dx += t.W
	}
	if dy > t.H/2 {
		dy -= t.H
	}
	if dy < -t.H/2 {
		dy += t.H
	}
	return dx, dy
}

// Offset returns the shortest vector from (ax, ay) to (bx, by).
func (t Torus) Offset(ax, ay, bx, by float64) (float64, float64) {
	return t.Delta(bx-ax, by-ay)
}

// Distance returns the shortest-path distance between two points.
func (t Torus) Distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(t.Offset(ax, ay, bx, by))
}

// Wrap maps a coordinate that left the plane by less than one extent back
// into [0,W)×[0,H).
func (t Torus) Wrap(x, y float64) (float64, float64) {
	if x < 0 {
		x += t.W
	}
	if x >= t.W {
		x -= t.W
	}
	if y < 0 {
		y += t.H
	}
	if y >= t.H {
		y -= t.H
	}
	return x, y
}
