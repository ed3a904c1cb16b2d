package ant

import (
	"errors"
	"maps"
	"slices"
	"testing"

	"antflock/internal/core"
)

func TestFirstStepTurnsRightAndPaintsBlack(t *testing.T) {
	a := New(9, 9)
	var traces []Trace
	a.Observe(func(tr Trace) { traces = append(traces, tr) })

	grid, err := a.Run(1)
	if err != nil {
		t.Fatalf("Run(1) returned error: %v", err)
	}
	if grid.At(Point{}) != Black {
		t.Fatalf("origin color = %d, expected black", grid.At(Point{}))
	}
	if a.Position() != (Point{X: 1, Y: 0}) {
		t.Fatalf("position = %+v, expected (1,0)", a.Position())
	}
	if a.Heading() != Right {
		t.Fatalf("heading = %d, expected %d", a.Heading(), Right)
	}
	if len(traces) != 1 || traces[0].String() != "Step 1: Position=(1,0), Direction=1" {
		t.Fatalf("unexpected trace %v", traces)
	}
}

func TestTraceSequence(t *testing.T) {
	expected := []string{
		"Step 1: Position=(1,0), Direction=1",
		"Step 2: Position=(1,1), Direction=2",
		"Step 3: Position=(0,1), Direction=3",
		"Step 4: Position=(0,0), Direction=0",
		"Step 5: Position=(-1,0), Direction=3",
		"Step 6: Position=(-1,-1), Direction=0",
	}
	var got []string
	if _, err := Run(len(expected), func(tr Trace) { got = append(got, tr.String()) }); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !slices.Equal(expected, got) {
		t.Fatalf("trace mismatch:\n got %q\nwant %q", got, expected)
	}
}

func TestRevisitedCellStaysExplicitWhite(t *testing.T) {
	grid, err := Run(5, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	// The ant returns to the origin on step 4 and flips it back on step 5.
	c, ok := grid[Point{}]
	if !ok || c != White {
		t.Fatalf("origin entry = (%d, %v), expected explicit white", c, ok)
	}
	if len(grid) != 4 || grid.BlackCount() != 3 {
		t.Fatalf("grid has %d entries / %d black, expected 4 / 3", len(grid), grid.BlackCount())
	}
}

func TestRunDeterministic(t *testing.T) {
	var first, second []Trace
	g1, err := Run(11000, func(tr Trace) { first = append(first, tr) })
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	g2, err := Run(11000, func(tr Trace) { second = append(second, tr) })
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Fatal("trace differs between identical runs")
	}
	if !maps.Equal(g1, g2) {
		t.Fatal("grid differs between identical runs")
	}
	if g1.BlackCount() != 834 || len(g1) != 1595 {
		t.Fatalf("after 11000 steps: %d black / %d visited, expected 834 / 1595", g1.BlackCount(), len(g1))
	}
	last := first[len(first)-1]
	if last.Pos != (Point{X: -34, Y: 14}) || last.Heading != Down {
		t.Fatalf("final state %v, expected (-34,14) facing down", last)
	}
	for p, c := range g1 {
		if c != White && c != Black {
			t.Fatalf("cell %+v holds %d, expected 0 or 1", p, c)
		}
	}
}

func TestRunZeroAndNegative(t *testing.T) {
	a := New(5, 5)
	grid, err := a.Run(0)
	if err != nil {
		t.Fatalf("Run(0) returned error: %v", err)
	}
	if len(grid) != 0 || a.Ticks() != 0 {
		t.Fatalf("Run(0) mutated state: %d cells, %d ticks", len(grid), a.Ticks())
	}

	if _, err := a.Run(-1); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("Run(-1) error = %v, expected ErrInvalidArgument", err)
	}
	if a.Ticks() != 0 {
		t.Fatalf("Run(-1) advanced the ant to tick %d", a.Ticks())
	}
}

func TestHeadingTurns(t *testing.T) {
	for h := Up; h <= Left; h++ {
		if h.TurnRight().TurnLeft() != h {
			t.Fatalf("heading %d: right then left did not round-trip", h)
		}
		if h.TurnRight() > Left || h.TurnLeft() > Left {
			t.Fatalf("heading %d turned out of range", h)
		}
	}
	if Up.TurnLeft() != Left || Left.TurnRight() != Up {
		t.Fatal("turns must wrap modulo 4")
	}
}

func TestResetAndCells(t *testing.T) {
	a := New(8, 8)
	a.Step()
	a.Step()
	a.Step()

	cells := a.Cells()
	if len(cells) != 64 {
		t.Fatalf("cells length = %d, expected 64", len(cells))
	}
	origin := a.Origin()
	at := func(p Point) uint8 { return cells[(p.Y-origin.Y)*8+(p.X-origin.X)] }
	if at(Point{X: 1, Y: 1}) != displayBlack {
		t.Fatal("(1,1) should render black")
	}
	if at(a.Position()) != displayAnt {
		t.Fatal("ant position should render as the ant")
	}

	a.Reset(99)
	if a.Ticks() != 0 || len(a.Grid()) != 0 || a.Position() != (Point{}) || a.Heading() != Up {
		t.Fatal("Reset did not restore the initial state")
	}
}

func TestFromMapIgnoresInvalid(t *testing.T) {
	cfg := FromMap(map[string]string{"w": "32", "h": "-4"})
	if cfg.Width != 32 || cfg.Height != DefaultConfig().Height {
		t.Fatalf("FromMap = %+v", cfg)
	}
	if p, ok := NewWithConfig(cfg).Parameters().Lookup("w"); !ok || p.Value != "32" {
		t.Fatalf("parameter w = %+v", p)
	}
}
