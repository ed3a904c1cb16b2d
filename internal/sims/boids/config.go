package boids

import "strconv"

// Config controls the flock population, seeding and raster resolution.
type Config struct {
	Count        int
	Seed         int64
	CellsPerUnit int

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Count:        80,
		Seed:         1337,
		CellsPerUnit: 16,
		Params:       DefaultParams(),
	}
}

// FromMap populates a Config from a string map. Unparseable or out-of-range
// values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["n"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Count = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["cells"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.CellsPerUnit = parsed
		}
	}
	positive := []struct {
		key string
		dst *float64
	}{
		{"neighbor_dist", &c.Params.NeighborDist},
		{"max_speed", &c.Params.MaxSpeed},
		{"width", &c.Params.Width},
		{"height", &c.Params.Height},
	}
	for _, f := range positive {
		if v, ok := cfg[f.key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
				*f.dst = parsed
			}
		}
	}
	if v, ok := cfg["max_force"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.MaxForce = parsed
		}
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.DT = parsed
		}
	}
	if c.Params.Validate() != nil {
		c.Params = DefaultParams()
	}
	return c
}
