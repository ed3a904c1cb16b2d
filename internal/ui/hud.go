//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"antflock/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	lineHeight   = 16
	groupSpacing = 8
)

var (
	titleColor     = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	groupColor     = color.RGBA{R: 140, G: 170, B: 220, A: 255}
	labelColor     = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor     = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	panelColor     = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	buttonColor    = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOffColor = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonTextOff  = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

// HUD renders the parameter panel to the right of the simulation view. Sims
// that expose core.ParameterControlsProvider get +/- buttons; the rest of
// the snapshot is listed read-only below them.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	title      string

	controls     *controlPanel
	panelOffsetX int
	pixel        *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: buildTitle(sim)}
	h.controls = newControlPanel(sim, width)
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached parameter snapshot from the simulation and
// handles clicks on the control buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || h.width == 0 {
		return
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	h.controls.refresh(h.snapshot)
	h.handleInput()
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	if h.controls.click(mx-h.panelOffsetX, my) {
		// Show the accepted value on this frame rather than the next.
		h.snapshot = h.sim.(core.ParameterProvider).Parameters()
		h.controls.refresh(h.snapshot)
	}
}

// Draw paints the HUD panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)
	h.drawControls()
	h.drawSnapshot()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Parameters"
	}
	name := sim.Name()
	return fmt.Sprintf("%s%s", strings.ToUpper(name[:1]), name[1:])
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	for i := range h.controls.controls {
		state := &h.controls.controls[i]
		y := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, y, labelColor)
		valueColor := labelColor
		if !state.hasValue {
			valueColor = mutedColor
		}
		bounds := text.BoundString(face, state.value)
		text.Draw(h.panel, state.value, face, state.minusRect.Min.X-buttonGap-bounds.Dx(), y, valueColor)
		h.drawButton(state.minusRect, "-", h.controls.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", h.controls.canAdjust(state, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, labelColor
	if !enabled {
		bg, fg = buttonOffColor, buttonTextOff
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) drawSnapshot() {
	face := basicfont.Face7x13
	y := h.controls.bottom()
	if len(h.snapshot.Groups) == 0 {
		text.Draw(h.panel, "No parameters", face, panelPadding, y+lineHeight, mutedColor)
		return
	}
	for _, group := range h.snapshot.Groups {
		y += groupSpacing
		headed := false
		for _, param := range group.Params {
			if h.controls.has(param.Key) {
				continue
			}
			if !headed {
				y += lineHeight
				text.Draw(h.panel, group.Name, face, panelPadding, y, groupColor)
				headed = true
			}
			y += lineHeight
			text.Draw(h.panel, param.Label, face, panelPadding, y, labelColor)
			bounds := text.BoundString(face, param.Value)
			text.Draw(h.panel, param.Value, face, h.width-panelPadding-bounds.Dx(), y, labelColor)
		}
	}
	text.Draw(h.panel, "space pause  n step  r reset", face, panelPadding, h.lastHeight-panelPadding-lineHeight, mutedColor)
	text.Draw(h.panel, "s reseed  v vectors  q quit", face, panelPadding, h.lastHeight-panelPadding, mutedColor)
}
