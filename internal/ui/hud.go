//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD paints the menu buttons and the status text.
type HUD struct {
	menu  *Menu
	pixel *ebiten.Image
	lines []string
}

// NewHUD constructs a HUD drawing the provided menu.
func NewHUD(menu *Menu) *HUD {
	h := &HUD{menu: menu}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	return h
}

// Update stores the status lines shown under the title.
func (h *HUD) Update(status []string) {
	h.lines = status
}

// Draw paints the buttons and the status text.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil {
		return
	}
	layout := h.menu.Layout()
	for i, rect := range layout.Buttons() {
		h.drawButton(screen, rect, layout.Labels[i], i == h.menu.Pressed())
	}

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(screen, "Missile Demo", face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for _, line := range h.lines {
		y += lineHeight
		text.Draw(screen, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
}

func (h *HUD) drawButton(screen *ebiten.Image, rect image.Rectangle, label string, pressed bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 220}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if pressed {
		bg = color.RGBA{R: 96, G: 110, B: 150, A: 240}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(bg.R)/255.0, float64(bg.G)/255.0, float64(bg.B)/255.0, float64(bg.A)/255.0)
	screen.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	textWidth := bounds.Dx()
	textHeight := bounds.Dy()
	x := rect.Min.X + (rect.Dx()-textWidth)/2
	y := rect.Min.Y + (rect.Dy()-textHeight)/2 + textHeight
	text.Draw(screen, label, face, x, y, fg)
}

const (
	panelPadding   = 12
	lineHeight     = 15
	headerBaseline = 12
)
