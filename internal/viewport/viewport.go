// Package viewport maps screen pixels to world meters for a pan/zoom camera.
package viewport

import (
	"missile-demo/internal/core"

	"github.com/jakecoffman/cp"
)

// Viewport is a camera looking at Center with a zoom multiplier on top of
// the base pixels-per-meter ratio. The base ratio fits WorldSizeMeters across
// the screen width. World y grows upwards, screen y downwards.
type Viewport struct {
	center          cp.Vector
	scale           float64
	worldSizeMeters float64
	screenW         float64
	screenH         float64
}

// New creates a viewport centered on the origin at scale 1.
func New(worldSizeMeters float64, screenW, screenH int) *Viewport {
	if worldSizeMeters <= 0 {
		worldSizeMeters = 1
	}
	v := &Viewport{scale: 1, worldSizeMeters: worldSizeMeters}
	v.Resize(screenW, screenH)
	return v
}

// Resize updates the screen dimensions in pixels.
func (v *Viewport) Resize(w, h int) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	v.screenW = float64(w)
	v.screenH = float64(h)
}

// ScreenSize returns the screen dimensions in pixels.
func (v *Viewport) ScreenSize() (int, int) { return int(v.screenW), int(v.screenH) }

// WorldSizeMeters returns the world width that fits the screen at scale 1.
func (v *Viewport) WorldSizeMeters() float64 { return v.worldSizeMeters }

// SetCenter moves the camera.
func (v *Viewport) SetCenter(c cp.Vector) { v.center = c }

// CenterMeters returns the world point shown at the screen center.
func (v *Viewport) CenterMeters() cp.Vector { return v.center }

// SetScale changes the zoom multiplier. Non-positive values are ignored.
func (v *Viewport) SetScale(s float64) {
	if s <= 0 {
		return
	}
	v.scale = s
}

// Scale returns the zoom multiplier.
func (v *Viewport) Scale() float64 { return v.scale }

// PixelsPerMeter returns the effective ratio including the zoom multiplier.
func (v *Viewport) PixelsPerMeter() float64 {
	return v.screenW / v.worldSizeMeters * v.scale
}

// Convert maps a screen point to world coordinates.
func (v *Viewport) Convert(p core.ScreenPoint) cp.Vector {
	ppm := v.PixelsPerMeter()
	return cp.Vector{
		X: v.center.X + (p.X-v.screenW/2)/ppm,
		Y: v.center.Y - (p.Y-v.screenH/2)/ppm,
	}
}

// ToScreen maps a world point to screen pixels. It is the inverse of Convert.
func (v *Viewport) ToScreen(w cp.Vector) core.ScreenPoint {
	ppm := v.PixelsPerMeter()
	return core.ScreenPoint{
		X: v.screenW/2 + (w.X-v.center.X)*ppm,
		Y: v.screenH/2 - (w.Y-v.center.Y)*ppm,
	}
}

// MetersToPixels converts a world length to a screen length.
func (v *Viewport) MetersToPixels(m float64) float64 { return m * v.PixelsPerMeter() }
