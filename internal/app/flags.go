package app

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"antflock/internal/core"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config represents the command-line parameters shared by the front ends.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	HUD      int
	LogLevel string
	Addr     string

	Overrides Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:       "boids",
		Scale:     4,
		TPS:       30,
		Seed:      42,
		HUD:       220,
		LogLevel:  "info",
		Addr:      ":8080",
		Overrides: Overrides{},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, fmt.Sprintf("simulation to run %v", core.Names()))
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUD, "hud", c.HUD, "parameter panel width in pixels (0 hides it)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address for the frame server")
	fs.Var(c.Overrides, "set", "sim option in key=value form (repeatable)")
}

// LoadEnv reads an optional .env file and applies ANTFLOCK_* variables on
// top of the current values. Flags bound afterwards still take precedence.
func (c *Config) LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}
	c.ApplyEnv(os.Getenv)
}

// ApplyEnv overrides fields from the environment lookup. Unparseable values
// are logged and ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("ANTFLOCK_SIM"); v != "" {
		c.Sim = v
	}
	if v := getenv("ANTFLOCK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("ANTFLOCK_ADDR"); v != "" {
		c.Addr = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"ANTFLOCK_SCALE", &c.Scale},
		{"ANTFLOCK_TPS", &c.TPS},
		{"ANTFLOCK_HUD", &c.HUD},
	}
	for _, f := range ints {
		v := getenv(f.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			log.WithField("key", f.key).WithField("value", v).Warn("ignoring invalid environment value")
			continue
		}
		*f.dst = parsed
	}
	if v := getenv("ANTFLOCK_SEED"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.WithField("key", "ANTFLOCK_SEED").WithField("value", v).Warn("ignoring invalid environment value")
		} else {
			c.Seed = parsed
		}
	}
}

// Overrides collects repeatable key=value flags passed to sim factories.
type Overrides map[string]string

func (o Overrides) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Set parses a single key=value pair.
func (o Overrides) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q: %w", value, core.ErrInvalidArgument)
	}
	o[key] = strings.TrimSpace(val)
	return nil
}

// SetupLogging configures the standard logrus logger for the front ends.
func SetupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, core.ErrInvalidArgument)
	}
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(lvl)
	return nil
}

// NewSim resolves the configured simulation from the registry and resets it
// with the configured seed.
func (c *Config) NewSim() (core.Sim, error) {
	factory, err := core.Lookup(c.Sim)
	if err != nil {
		return nil, err
	}
	sim := factory(c.Overrides)
	sim.Reset(c.Seed)
	log.WithFields(log.Fields{"sim": sim.Name(), "seed": c.Seed, "options": c.Overrides.String()}).Info("simulation ready")
	return sim, nil
}
