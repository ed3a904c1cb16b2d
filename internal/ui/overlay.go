//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"antflock/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type motionProvider interface {
	Positions() [][2]float64
	Velocities() [][2]float64
	Scale() int
}

type cursorProvider interface {
	Cursor() (x, y, dx, dy int)
}

// velocityLength is the on-screen length of a max-speed boid's vector, in
// plane units per unit of speed.
const velocityLength = 0.25

var (
	vectorColor = color.RGBA{R: 255, G: 190, B: 60, A: 220}
	cursorColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Overlay draws optional debugging visuals on top of the base simulation:
// boid velocity vectors or the ant's heading.
type Overlay struct {
	sim   core.Sim
	scale int
	show  bool
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, show: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay on the V key.
func (o *Overlay) Update() {
	if o == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		o.show = !o.show
	}
}

// Draw renders the overlay for whichever provider the sim implements.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil || !o.show {
		return
	}
	if m, ok := o.sim.(motionProvider); ok {
		o.drawVelocities(screen, m)
	}
	if c, ok := o.sim.(cursorProvider); ok {
		o.drawCursor(screen, c)
	}
}

func (o *Overlay) drawVelocities(screen *ebiten.Image, m motionProvider) {
	px := float64(m.Scale() * o.scale)
	vel := m.Velocities()
	for i, p := range m.Positions() {
		if i >= len(vel) {
			break
		}
		x := p[0] * px
		y := p[1] * px
		o.drawLine(screen, x, y, x+vel[i][0]*velocityLength*px, y+vel[i][1]*velocityLength*px, 1, vectorColor)
	}
}

func (o *Overlay) drawCursor(screen *ebiten.Image, c cursorProvider) {
	x, y, dx, dy := c.Cursor()
	s := float64(o.scale)
	cx := (float64(x) + 0.5) * s
	cy := (float64(y) + 0.5) * s
	o.drawLine(screen, cx, cy, cx+float64(dx)*s*2, cy+float64(dy)*s*2, math.Max(1, s/3), cursorColor)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
