package ant

import (
	"fmt"
	"image/color"

	"antflock/internal/core"
)

const (
	displayWhite uint8 = iota
	displayBlack
	displayAnt
)

var antPalette = []color.RGBA{
	displayWhite: {R: 236, G: 236, B: 228, A: 255},
	displayBlack: {R: 24, G: 24, B: 28, A: 255},
	displayAnt:   {R: 220, G: 40, B: 40, A: 255},
}

// Palette exposes the colors used to render the viewport.
func (a *Ant) Palette() []color.RGBA { return antPalette }

// Origin returns the lattice coordinate drawn at raster cell (0, 0). The
// viewport is centred on the starting cell.
func (a *Ant) Origin() Point {
	return Point{X: -a.raster.W / 2, Y: -a.raster.H / 2}
}

// Cells rasterizes the viewport around the origin.
func (a *Ant) Cells() []uint8 {
	a.raster.Clear()
	origin := a.Origin()
	for p, c := range a.grid {
		if c == Black {
			a.raster.Set(p.X-origin.X, p.Y-origin.Y, displayBlack)
		}
	}
	a.raster.Set(a.pos.X-origin.X, a.pos.Y-origin.Y, displayAnt)
	return a.raster.Cells()
}

// Cursor returns the ant's raster cell and the unit vector of its heading.
func (a *Ant) Cursor() (x, y, dx, dy int) {
	origin := a.Origin()
	dx, dy = a.heading.Vector()
	return a.pos.X - origin.X, a.pos.Y - origin.Y, dx, dy
}

// Parameters describes the ant state for the HUD.
func (a *Ant) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Viewport",
			Params: []core.Parameter{
				core.IntParam("w", "Width", a.raster.W),
				core.IntParam("h", "Height", a.raster.H),
			},
		},
		{
			Name: "Ant",
			Params: []core.Parameter{
				core.IntParam("ticks", "Ticks", a.ticks),
				core.TextParam("position", "Position", fmt.Sprintf("(%d,%d)", a.pos.X, a.pos.Y)),
				core.IntParam("heading", "Direction", int(a.heading)),
				core.IntParam("black", "Black cells", a.grid.BlackCount()),
			},
		},
	}}
}
