//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"missile-demo/internal/core"
	"missile-demo/internal/viewport"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// BodySource lists the rigid bodies to outline.
type BodySource interface {
	EachBody(fn func(label string, body *cp.Body, outline []cp.Vector))
}

// PointSource provides the pointer markers of the debug overlay.
type PointSource interface {
	DebugPoints() []core.ScreenPoint
}

// Overlay draws the debug visuals on top of the scene: path segments, the
// body outlines and the touch markers.
type Overlay struct {
	lines  *DebugLines
	bodies BodySource
	points PointSource
	vp     *viewport.Viewport

	pixel *ebiten.Image
	// scratch holds an outline transformed to screen space.
	scratch []core.ScreenPoint
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(lines *DebugLines, bodies BodySource, points PointSource, vp *viewport.Viewport) *Overlay {
	o := &Overlay{lines: lines, bodies: bodies, points: points, vp: vp}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update ages the debug lines.
func (o *Overlay) Update() {
	o.lines.Tick()
}

// Draw renders the overlay onto the provided screen. The entity outline is
// always drawn; the debug toggle adds velocity and heading markers.
func (o *Overlay) Draw(screen *ebiten.Image) {
	alpha := o.lines.Alpha()
	pathCol := color.RGBA{R: 255, G: 220, B: 90, A: uint8(math.Round(255 * alpha))}
	for _, l := range o.lines.Lines() {
		o.drawLine(screen, l.Start.X, l.Start.Y, l.End.X, l.End.Y, 2, pathCol)
	}

	o.bodies.EachBody(func(label string, body *cp.Body, outline []cp.Vector) {
		o.drawOutline(screen, body, outline, color.RGBA{R: 120, G: 220, B: 255, A: 255})
		if o.lines.ShowBodies() {
			o.drawBodyDebug(screen, body)
		}
	})

	for _, p := range o.points.DebugPoints() {
		o.drawPoint(screen, p.X, p.Y, 14, color.RGBA{R: 255, G: 80, B: 80, A: 160})
	}
}

func (o *Overlay) drawOutline(screen *ebiten.Image, body *cp.Body, outline []cp.Vector, col color.RGBA) {
	if len(outline) < 2 {
		return
	}
	rot := cp.ForAngle(body.Angle())
	pos := body.Position()
	o.scratch = o.scratch[:0]
	for _, v := range outline {
		o.scratch = append(o.scratch, o.vp.ToScreen(pos.Add(v.Rotate(rot))))
	}
	for i := range o.scratch {
		a := o.scratch[i]
		b := o.scratch[(i+1)%len(o.scratch)]
		o.drawLine(screen, a.X, a.Y, b.X, b.Y, 1.5, col)
	}
}

func (o *Overlay) drawBodyDebug(screen *ebiten.Image, body *cp.Body) {
	pos := body.Position()
	center := o.vp.ToScreen(pos)
	o.drawPoint(screen, center.X, center.Y, 4, color.RGBA{R: 255, G: 255, B: 255, A: 220})

	// Velocity over one second.
	vel := o.vp.ToScreen(pos.Add(body.Velocity()))
	o.drawLine(screen, center.X, center.Y, vel.X, vel.Y, 1, color.RGBA{R: 90, G: 255, B: 120, A: 200})

	heading := o.vp.ToScreen(pos.Add(cp.ForAngle(body.Angle()).Mult(3)))
	o.drawLine(screen, center.X, center.Y, heading.X, heading.Y, 1, color.RGBA{R: 255, G: 120, B: 200, A: 200})
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
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
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
