//go:build ebiten

package render

import (
	"image/color"

	"missile-demo/internal/viewport"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Background clears the screen and draws the world grid.
type Background struct {
	vp    *viewport.Viewport
	fill  color.Color
	minor color.Color
	major color.Color
}

// NewBackground constructs a background drawn through vp.
func NewBackground(vp *viewport.Viewport) *Background {
	return &Background{
		vp:    vp,
		fill:  color.RGBA{R: 12, G: 14, B: 22, A: 255},
		minor: color.RGBA{R: 34, G: 40, B: 56, A: 255},
		major: color.RGBA{R: 70, G: 80, B: 110, A: 255},
	}
}

// Draw paints the background onto screen.
func (b *Background) Draw(screen *ebiten.Image) {
	screen.Fill(b.fill)
	for _, s := range GridSegments(b.vp) {
		col := b.minor
		if s.Major {
			col = b.major
		}
		vector.StrokeLine(screen, float32(s.From.X), float32(s.From.Y), float32(s.To.X), float32(s.To.Y), 1, col, false)
	}
}
