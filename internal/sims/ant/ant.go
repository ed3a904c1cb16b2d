// Package ant implements Langton's ant on an unbounded integer lattice.
package ant

import (
	"fmt"

	"antflock/internal/core"
)

// Color is the binary state of a lattice cell.
type Color uint8

const (
	White Color = iota
	Black
)

// Heading is one of the four lattice directions.
type Heading uint8

const (
	Up Heading = iota
	Right
	Down
	Left
)

var headingVectors = [4]Point{
	Up:    {X: 0, Y: -1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
}

// Vector returns the unit step for the heading. Screen orientation: up is -y.
func (h Heading) Vector() (dx, dy int) {
	v := headingVectors[h%4]
	return v.X, v.Y
}

// TurnRight rotates the heading clockwise.
func (h Heading) TurnRight() Heading { return (h + 1) % 4 }

// TurnLeft rotates the heading counter-clockwise.
func (h Heading) TurnLeft() Heading { return (h + 3) % 4 }

// Point is a lattice coordinate.
type Point struct {
	X, Y int
}

// Grid is the sparse cell color map. Missing keys are white.
type Grid map[Point]Color

// At returns the color at p.
func (g Grid) At(p Point) Color { return g[p] }

// BlackCount returns the number of black cells.
func (g Grid) BlackCount() int {
	n := 0
	for _, c := range g {
		if c == Black {
			n++
		}
	}
	return n
}

// Trace records the ant state right after a tick.
type Trace struct {
	Step    int
	Pos     Point
	Heading Heading
}

func (t Trace) String() string {
	return fmt.Sprintf("Step %d: Position=(%d,%d), Direction=%d", t.Step, t.Pos.X, t.Pos.Y, t.Heading)
}

// TraceFunc observes every tick after the state has been mutated.
type TraceFunc func(Trace)

// Ant owns the color map and the single agent walking on it.
type Ant struct {
	cfg Config

	grid    Grid
	pos     Point
	heading Heading
	ticks   int

	observe TraceFunc
	raster  *core.ByteGrid
}

// New returns an ant whose render viewport is w×h cells.
func New(w, h int) *Ant {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns an ant configured from the provided options.
func NewWithConfig(cfg Config) *Ant {
	a := &Ant{cfg: cfg, raster: core.NewByteGrid(cfg.Width, cfg.Height)}
	a.Reset(0)
	return a
}

// Run executes steps ticks on a fresh ant and returns the final grid.
func Run(steps int, observe TraceFunc) (Grid, error) {
	a := New(DefaultConfig().Width, DefaultConfig().Height)
	a.Observe(observe)
	return a.Run(steps)
}

// Observe installs the per-tick trace observer. Nil disables tracing.
func (a *Ant) Observe(fn TraceFunc) { a.observe = fn }

// Name returns the simulation identifier.
func (a *Ant) Name() string { return "ant" }

// Size returns the render viewport dimensions.
func (a *Ant) Size() core.Size { return a.raster.Size() }

// Reset restores the empty grid with the ant at the origin facing up. The
// rule has no randomness so the seed is ignored.
func (a *Ant) Reset(int64) {
	a.grid = Grid{}
	a.pos = Point{}
	a.heading = Up
	a.ticks = 0
}

// Step advances the ant by one tick.
func (a *Ant) Step() {
	a.tick()
}

func (a *Ant) tick() Trace {
	if a.grid[a.pos] == White {
		a.heading = a.heading.TurnRight()
		a.grid[a.pos] = Black
	} else {
		a.heading = a.heading.TurnLeft()
		a.grid[a.pos] = White
	}
	dx, dy := a.heading.Vector()
	a.pos.X += dx
	a.pos.Y += dy
	a.ticks++

	tr := Trace{Step: a.ticks, Pos: a.pos, Heading: a.heading}
	if a.observe != nil {
		a.observe(tr)
	}
	return tr
}

// Run advances the ant by steps ticks and returns the grid. The returned map
// is the live grid; callers must not mutate it.
func (a *Ant) Run(steps int) (Grid, error) {
	if steps < 0 {
		return nil, fmt.Errorf("ant: steps must be non-negative, got %d: %w", steps, core.ErrInvalidArgument)
	}
	for i := 0; i < steps; i++ {
		a.tick()
	}
	return a.grid, nil
}

// Grid exposes the current color map.
func (a *Ant) Grid() Grid { return a.grid }

// Position returns the agent coordinate.
func (a *Ant) Position() Point { return a.pos }

// Heading returns the agent heading.
func (a *Ant) Heading() Heading { return a.heading }

// Ticks returns the number of ticks applied since the last reset.
func (a *Ant) Ticks() int { return a.ticks }

func init() {
	core.Register("ant", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
