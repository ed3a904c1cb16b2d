package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a simulation's raster.
type Size struct {
	W int
	H int
}

// Sim is the contract every simulation exposes to the front ends. Step
// advances exactly one tick; Cells returns the raster of the current state
// sized Size().W*Size().H.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Factory constructs a Sim using an optional key/value configuration.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists the registered simulations in lexical order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %v): %w", name, Names(), ErrInvalidArgument)
	}
	return f, nil
}
