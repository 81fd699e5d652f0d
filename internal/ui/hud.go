//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 8
	lineBaseline = 13
	lineSpacing  = 16
)

var (
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD renders the status panel to the right of the simulation view.
type HUD struct {
	width int
	panel *ebiten.Image
	lines []string
}

// NewHUD constructs a HUD with the provided panel width.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width}
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update replaces the text shown by the panel.
func (h *HUD) Update(lines []string) {
	if h == nil {
		return
	}
	h.lines = lines
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)
	face := basicfont.Face7x13
	for i, line := range h.lines {
		clr := textColor
		if i == 0 {
			clr = titleColor
		}
		text.Draw(h.panel, line, face, panelPadding, panelPadding+lineBaseline+i*lineSpacing, clr)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
