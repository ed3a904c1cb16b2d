package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSim struct{}

func (stubSim) Name() string   { return "stub" }
func (stubSim) Size() Size     { return Size{W: 1, H: 1} }
func (stubSim) Reset(int64)    {}
func (stubSim) Step()          {}
func (stubSim) Cells() []uint8 { return []uint8{0} }

func TestRegistryLookup(t *testing.T) {
	Register("stub", func(map[string]string) Sim { return stubSim{} })
	Register("", func(map[string]string) Sim { return stubSim{} })
	Register("nil-factory", nil)

	f, err := Lookup("stub")
	require.NoError(t, err)
	assert.Equal(t, "stub", f(nil).Name())

	_, err = Lookup("missing")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.NotContains(t, Names(), "")
	assert.NotContains(t, Names(), "nil-factory")
}

func TestByteGridBounds(t *testing.T) {
	g := NewByteGrid(4, 3)
	g.Set(3, 2, 7)
	g.Set(4, 0, 9)
	g.Set(-1, 0, 9)

	assert.Equal(t, uint8(7), g.At(3, 2))
	assert.Equal(t, uint8(0), g.At(4, 0))
	assert.Equal(t, 11, g.Index(3, 2))

	x, y := g.Wrap(-1, 5)
	assert.Equal(t, 3, x)
	assert.Equal(t, 2, y)

	g.Clear()
	for _, v := range g.Cells() {
		assert.Zero(t, v)
	}

	empty := NewByteGrid(0, -2)
	assert.Equal(t, Size{W: 1, H: 1}, empty.Size())
}

func TestFixedStepAccumulates(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	// The first poll is primed so a tick happens immediately.
	assert.True(t, fs.ShouldStep())
	assert.False(t, fs.ShouldStep())

	clock = clock.Add(50 * time.Millisecond)
	assert.False(t, fs.ShouldStep())
	clock = clock.Add(60 * time.Millisecond)
	assert.True(t, fs.ShouldStep())
	assert.Equal(t, 100*time.Millisecond, fs.Interval())
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{IntParam("n", "Count", 3)}},
		{Name: "B", Params: []Parameter{FloatParam("dt", "Time step", 0.1)}},
	}}
	p, ok := snap.Lookup("dt")
	require.True(t, ok)
	assert.Equal(t, "0.1", p.Value)
	assert.Equal(t, ParamTypeFloat, p.Type)

	_, ok = snap.Lookup("missing")
	assert.False(t, ok)
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(5)
	b := NewRNG(5)
	for i := 0; i < 16; i++ {
		v := a.Uniform(0.5, 1.5)
		assert.Equal(t, v, b.Uniform(0.5, 1.5))
		assert.GreaterOrEqual(t, v, 0.5)
		assert.Less(t, v, 1.5)
	}
}
