package boids

import (
	"math"

	"antflock/internal/core"

	log "github.com/sirupsen/logrus"
)

// Simulator owns a flock and ticks it at the configured time step.
type Simulator struct {
	cfg Config

	flock  Flock
	ticks  int
	raster *core.ByteGrid
}

// New returns a simulator with the given population using defaults.
func New(n int) (*Simulator, error) {
	cfg := DefaultConfig()
	cfg.Count = n
	return NewWithConfig(cfg)
}

// NewWithConfig returns a seeded simulator configured from the provided
// options.
func NewWithConfig(cfg Config) (*Simulator, error) {
	if cfg.CellsPerUnit <= 0 {
		cfg.CellsPerUnit = 1
	}
	s := &Simulator{cfg: cfg}
	flock, err := Initialize(cfg.Count, cfg.Params, core.NewRNG(cfg.Seed).Source())
	if err != nil {
		return nil, err
	}
	s.flock = flock
	w := int(math.Ceil(cfg.Params.Width * float64(cfg.CellsPerUnit)))
	h := int(math.Ceil(cfg.Params.Height * float64(cfg.CellsPerUnit)))
	s.raster = core.NewByteGrid(w, h)
	return s, nil
}

// Name returns the simulation identifier.
func (s *Simulator) Name() string { return "boids" }

// Size returns the raster dimensions.
func (s *Simulator) Size() core.Size { return s.raster.Size() }

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() Config { return s.cfg }

// Reset re-seeds the flock. A zero seed falls back to the configured seed.
func (s *Simulator) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	flock, err := Initialize(s.cfg.Count, s.cfg.Params, core.NewRNG(effective).Source())
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"boids": s.cfg.Count, "seed": effective}).Warn("boids reset failed, keeping current flock")
		return
	}
	s.flock = flock
	s.ticks = 0
}

// Step advances the flock by one tick of Params.DT.
func (s *Simulator) Step() {
	if err := s.flock.Tick(s.cfg.Params, s.cfg.Params.DT); err != nil {
		log.WithError(err).WithField("tick", s.ticks).Warn("boids tick rejected")
		return
	}
	s.ticks++
}

// Flock exposes the live flock.
func (s *Simulator) Flock() Flock { return s.flock }

// Ticks returns the number of ticks since the last reset.
func (s *Simulator) Ticks() int { return s.ticks }

// Positions copies out the (x, y) pair of every boid.
func (s *Simulator) Positions() [][2]float64 {
	out := make([][2]float64, len(s.flock))
	for i, b := range s.flock {
		out[i] = [2]float64{b.X, b.Y}
	}
	return out
}

// Bounds returns the plane extent.
func (s *Simulator) Bounds() (w, h float64) {
	return s.cfg.Params.Width, s.cfg.Params.Height
}

// Velocities copies out the (vx, vy) pair of every boid.
func (s *Simulator) Velocities() [][2]float64 {
	out := make([][2]float64, len(s.flock))
	for i, b := range s.flock {
		out[i] = [2]float64{b.Vx, b.Vy}
	}
	return out
}

// Scale returns the number of raster cells per plane unit.
func (s *Simulator) Scale() int { return s.cfg.CellsPerUnit }

// Cells rasterizes boid positions: 1 where at least one boid sits.
func (s *Simulator) Cells() []uint8 {
	s.raster.Clear()
	scale := float64(s.cfg.CellsPerUnit)
	for _, b := range s.flock {
		s.raster.Set(int(b.X*scale), int(b.Y*scale), 1)
	}
	return s.raster.Cells()
}

// Parameters describes the flock for the HUD and the stream endpoint.
func (s *Simulator) Parameters() core.ParameterSnapshot {
	p := s.cfg.Params
	var meanSpeed float64
	for _, b := range s.flock {
		meanSpeed += b.Speed()
	}
	if len(s.flock) > 0 {
		meanSpeed /= float64(len(s.flock))
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Flock",
			Params: []core.Parameter{
				core.IntParam("n", "Boids", s.cfg.Count),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
				core.IntParam("ticks", "Ticks", s.ticks),
				core.FloatParam("mean_speed", "Mean speed", meanSpeed),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				core.FloatParam("neighbor_dist", "Neighbor distance", p.NeighborDist),
				core.FloatParam("max_speed", "Max speed", p.MaxSpeed),
				core.FloatParam("max_force", "Max force", p.MaxForce),
				core.FloatParam("width", "Width", p.Width),
				core.FloatParam("height", "Height", p.Height),
				core.FloatParam("dt", "Time step", p.DT),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable flock parameters.
func (s *Simulator) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "n", Label: "Boids", Type: core.ParamTypeInt, Step: 10, Min: 1, Max: 1000, HasMin: true, HasMax: true},
		{Key: "neighbor_dist", Label: "Neighbor dist", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 5, HasMin: true, HasMax: true},
		{Key: "max_speed", Label: "Max speed", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, Max: 5, HasMin: true, HasMax: true},
		{Key: "max_force", Label: "Max force", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "dt", Label: "Time step", Type: core.ParamTypeFloat, Step: 0.01, Min: 0.01, Max: 0.5, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates the flock size and re-seeds the flock with the
// configured seed. Non-positive sizes are rejected.
func (s *Simulator) SetIntParameter(key string, value int) bool {
	if key != "n" {
		return false
	}
	flock, err := Initialize(value, s.cfg.Params, core.NewRNG(s.cfg.Seed).Source())
	if err != nil {
		log.WithError(err).WithField("boids", value).Debug("flock size rejected")
		return false
	}
	s.cfg.Count = value
	s.flock = flock
	s.ticks = 0
	return true
}

// SetFloatParameter updates one physical parameter. The change is applied
// only when the resulting Params still validate.
func (s *Simulator) SetFloatParameter(key string, value float64) bool {
	next := s.cfg.Params
	switch key {
	case "neighbor_dist":
		next.NeighborDist = value
	case "max_speed":
		next.MaxSpeed = value
	case "max_force":
		next.MaxForce = value
	case "dt":
		next.DT = value
	default:
		return false
	}
	if err := next.Validate(); err != nil {
		log.WithError(err).WithField("key", key).Debug("parameter rejected")
		return false
	}
	s.cfg.Params = next
	return true
}

func init() {
	core.Register("boids", func(cfg map[string]string) core.Sim {
		s, err := NewWithConfig(FromMap(cfg))
		if err != nil {
			// FromMap only yields valid configs.
			s, _ = NewWithConfig(DefaultConfig())
		}
		return s
	})
}
