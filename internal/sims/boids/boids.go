// Package boids implements Reynolds-style flocking on a toroidal plane.
package boids

import (
	"fmt"
	"math"
	"math/rand/v2"

	"antflock/internal/core"
)

const (
	alignmentWeight  = 1.0
	cohesionWeight   = 0.6
	separationWeight = 1.5

	minInitialSpeed = 0.5
	maxInitialSpeed = 1.5
)

// Boid is a single agent with continuous position and velocity.
type Boid struct {
	X, Y   float64
	Vx, Vy float64
}

// Speed returns the velocity magnitude.
func (b Boid) Speed() float64 { return math.Hypot(b.Vx, b.Vy) }

// Flock is the fixed population updated each tick.
type Flock []Boid

// Params holds the physical constants of the flock.
type Params struct {
	NeighborDist float64
	MaxSpeed     float64
	MaxForce     float64
	Width        float64
	Height       float64
	DT           float64
}

// DefaultParams returns the standard constants.
func DefaultParams() Params {
	return Params{
		NeighborDist: 1.5,
		MaxSpeed:     2.0,
		MaxForce:     0.05,
		Width:        10.0,
		Height:       10.0,
		DT:           0.1,
	}
}

// Torus returns the plane described by the params.
func (p Params) Torus() Torus { return Torus{W: p.Width, H: p.Height} }

// Validate rejects params that would divide by zero or produce non-finite
// state, including a DT that lets one tick cross the plane.
func (p Params) Validate() error {
	if err := p.validateFields(); err != nil {
		return err
	}
	return p.validateStep(p.DT)
}

func (p Params) validateFields() error {
	fields := []struct {
		name  string
		value float64
		min   float64
		open  bool
	}{
		{"width", p.Width, 0, true},
		{"height", p.Height, 0, true},
		{"neighbor_dist", p.NeighborDist, 0, true},
		{"max_speed", p.MaxSpeed, 0, true},
		{"max_force", p.MaxForce, 0, false},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("boids: %s must be finite, got %v: %w", f.name, f.value, core.ErrInvalidArgument)
		}
		if f.value < f.min || (f.open && f.value == f.min) {
			return fmt.Errorf("boids: %s out of range, got %v: %w", f.name, f.value, core.ErrInvalidArgument)
		}
	}
	return nil
}

// validateStep checks dt and keeps one tick's displacement below the plane
// extent so a single wrap correction suffices.
func (p Params) validateStep(dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return fmt.Errorf("boids: dt must be finite and non-negative, got %v: %w", dt, core.ErrInvalidArgument)
	}
	if step := p.MaxSpeed * dt; step >= p.Width || step >= p.Height {
		return fmt.Errorf("boids: a tick may move %v, more than the %vx%v plane: %w", step, p.Width, p.Height, core.ErrInvalidArgument)
	}
	return nil
}

// Initialize creates n boids spread uniformly over the plane with a random
// heading and a speed in [0.5, 1.5).
func Initialize(n int, p Params, rng *rand.Rand) (Flock, error) {
	if n <= 0 {
		return nil, fmt.Errorf("boids: count must be positive, got %d: %w", n, core.ErrInvalidArgument)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	flock := make(Flock, n)
	for i := range flock {
		x := rng.Float64() * p.Width
		y := rng.Float64() * p.Height
		angle := rng.Float64() * 2 * math.Pi
		speed := minInitialSpeed + rng.Float64()*(maxInitialSpeed-minInitialSpeed)
		flock[i] = Boid{X: x, Y: y, Vx: math.Cos(angle) * speed, Vy: math.Sin(angle) * speed}
	}
	return flock, nil
}

// Acceleration computes the clamped steering acceleration of f[i] from its
// neighbors. Boids at distance zero are not neighbors.
func Acceleration(f Flock, i int, p Params) (float64, float64) {
	self := f[i]
	torus := p.Torus()

	var alignX, alignY, cohX, cohY, sepX, sepY float64
	total := 0
	for j, other := range f {
		if j == i {
			continue
		}
		dx, dy := torus.Offset(self.X, self.Y, other.X, other.Y)
		dist := math.Hypot(dx, dy)
		if dist >= p.NeighborDist || dist == 0 {
			continue
		}
		alignX += other.Vx
		alignY += other.Vy
		cohX += other.X
		cohY += other.Y
		sepX -= dx / (dist * dist)
		sepY -= dy / (dist * dist)
		total++
	}
	if total == 0 {
		return 0, 0
	}

	n := float64(total)
	alignX, alignY = steer(alignX/n, alignY/n, self, p.MaxSpeed)

	cohX, cohY = torus.Delta(cohX/n-self.X, cohY/n-self.Y)
	cohX, cohY = steer(cohX, cohY, self, p.MaxSpeed)

	sepX, sepY = steer(sepX, sepY, self, p.MaxSpeed)

	ax := alignX*alignmentWeight + cohX*cohesionWeight + sepX*separationWeight
	ay := alignY*alignmentWeight + cohY*cohesionWeight + sepY*separationWeight
	return limit(ax, ay, p.MaxForce)
}

// steer returns the delta from the boid's velocity to a velocity of length
// maxSpeed pointing along (x, y). A zero direction is left unnormalised.
func steer(x, y float64, b Boid, maxSpeed float64) (float64, float64) {
	mag := math.Hypot(x, y)
	if mag == 0 {
		mag = 1
	}
	return x/mag*maxSpeed - b.Vx, y/mag*maxSpeed - b.Vy
}

// limit rescales (x, y) to length ceiling when it is longer.
func limit(x, y, ceiling float64) (float64, float64) {
	mag := math.Hypot(x, y)
	if mag > ceiling {
		return x / mag * ceiling, y / mag * ceiling
	}
	return x, y
}

// Tick advances every boid by dt. Accelerations are computed from the state
// at the start of the tick so the result does not depend on flock order.
// Only the explicit dt is checked against the plane; p.DT is ignored.
func (f Flock) Tick(p Params, dt float64) error {
	if err := p.validateFields(); err != nil {
		return err
	}
	if err := p.validateStep(dt); err != nil {
		return err
	}

	acc := make([][2]float64, len(f))
	for i := range f {
		acc[i][0], acc[i][1] = Acceleration(f, i, p)
	}

	torus := p.Torus()
	for i := range f {
		b := &f[i]
		b.Vx, b.Vy = limit(b.Vx+acc[i][0], b.Vy+acc[i][1], p.MaxSpeed)
		b.X, b.Y = torus.Wrap(b.X+b.Vx*dt, b.Y+b.Vy*dt)
	}
	return nil
}
