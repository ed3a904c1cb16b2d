package boids

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorResetDeterministic(t *testing.T) {
	sim, err := New(30)
	require.NoError(t, err)

	sim.Reset(0)
	initial := append(Flock(nil), sim.Flock()...)
	for i := 0; i < 25; i++ {
		sim.Step()
	}
	assert.Equal(t, 25, sim.Ticks())
	assert.NotEqual(t, initial, sim.Flock())

	sim.Reset(0)
	assert.Equal(t, initial, sim.Flock())
	assert.Zero(t, sim.Ticks())

	sim.Reset(99)
	assert.NotEqual(t, initial, sim.Flock())
}

func TestSimulatorCells(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 1
	cfg.CellsPerUnit = 4
	sim, err := NewWithConfig(cfg)
	require.NoError(t, err)
	sim.Flock()[0] = Boid{X: 2.6, Y: 9.99}

	size := sim.Size()
	assert.Equal(t, 40, size.W)
	assert.Equal(t, 40, size.H)

	cells := sim.Cells()
	require.Len(t, cells, 40*40)
	lit := 0
	for _, c := range cells {
		lit += int(c)
	}
	assert.Equal(t, 1, lit)
	assert.Equal(t, uint8(1), cells[39*40+10])
	assert.Equal(t, [][2]float64{{2.6, 9.99}}, sim.Positions())
}

func TestNewWithConfigRejectsEmptyFlock(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"n":             "12",
		"seed":          "5",
		"neighbor_dist": "2.5",
		"max_speed":     "-1",
		"max_force":     "bogus",
		"width":         "20",
	})
	assert.Equal(t, 12, cfg.Count)
	assert.Equal(t, int64(5), cfg.Seed)
	assert.Equal(t, 2.5, cfg.Params.NeighborDist)
	assert.Equal(t, DefaultParams().MaxSpeed, cfg.Params.MaxSpeed)
	assert.Equal(t, DefaultParams().MaxForce, cfg.Params.MaxForce)
	assert.Equal(t, 20.0, cfg.Params.Width)

	// A time step that would jump across the plane falls back to defaults.
	cfg = FromMap(map[string]string{"dt": "50", "width": "20"})
	assert.Equal(t, DefaultParams(), cfg.Params)
}

func TestParametersSnapshot(t *testing.T) {
	sim, err := New(5)
	require.NoError(t, err)
	sim.Step()

	snap := sim.Parameters()
	p, ok := snap.Lookup("ticks")
	require.True(t, ok)
	assert.Equal(t, "1", p.Value)
	p, ok = snap.Lookup("max_force")
	require.True(t, ok)
	assert.Equal(t, "0.05", p.Value)
}

func TestSetFloatParameterRejectsInvalidValues(t *testing.T) {
	sim, err := New(10)
	require.NoError(t, err)
	before := sim.Config().Params

	assert.False(t, sim.SetFloatParameter("max_speed", -1))
	assert.False(t, sim.SetFloatParameter("neighbor_dist", 0))
	// 2.0 * 50 crosses the 10x10 plane in one tick.
	assert.False(t, sim.SetFloatParameter("dt", 50))
	assert.False(t, sim.SetFloatParameter("width", 20))
	assert.Equal(t, before, sim.Config().Params)

	sim.Step()
	assert.Equal(t, 1, sim.Ticks())
}

func TestSetFloatParameterApplies(t *testing.T) {
	sim, err := New(10)
	require.NoError(t, err)

	require.True(t, sim.SetFloatParameter("max_force", 0.2))
	require.True(t, sim.SetFloatParameter("dt", 0.25))
	assert.Equal(t, 0.2, sim.Config().Params.MaxForce)
	assert.Equal(t, 0.25, sim.Config().Params.DT)

	p, ok := sim.Parameters().Lookup("dt")
	require.True(t, ok)
	assert.Equal(t, "0.25", p.Value)
}

func TestSetIntParameterResizesFlock(t *testing.T) {
	sim, err := New(10)
	require.NoError(t, err)
	sim.Step()

	require.True(t, sim.SetIntParameter("n", 25))
	assert.Len(t, sim.Flock(), 25)
	assert.Equal(t, 25, sim.Config().Count)
	assert.Zero(t, sim.Ticks())

	assert.False(t, sim.SetIntParameter("n", 0))
	assert.False(t, sim.SetIntParameter("seed", 3))
	assert.Len(t, sim.Flock(), 25)
}

func TestParameterControlsMatchSnapshot(t *testing.T) {
	sim, err := New(5)
	require.NoError(t, err)
	snap := sim.Parameters()
	for _, ctrl := range sim.ParameterControls() {
		_, ok := snap.Lookup(ctrl.Key)
		assert.True(t, ok, ctrl.Key)
	}
}

func TestStepLogsRejectedTick(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	sim, err := New(4)
	require.NoError(t, err)
	before := append(Flock(nil), sim.Flock()...)
	// Bypass the setters to reach a state only a bug could produce.
	sim.cfg.Params.DT = 50

	sim.Step()
	assert.Zero(t, sim.Ticks())
	assert.Equal(t, before, sim.Flock())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "boids tick rejected", hook.LastEntry().Message)

	sim.cfg.Count = 0
	sim.Reset(7)
	assert.Equal(t, before, sim.Flock())
	assert.Equal(t, "boids reset failed, keeping current flock", hook.LastEntry().Message)
}
