package render

import (
	"math"

	"missile-demo/internal/core"
	"missile-demo/internal/viewport"

	"github.com/jakecoffman/cp"
)

// GridSpacingMeters is the distance between grid lines.
const GridSpacingMeters = 10.0

// Segment is a line in screen pixels. Major marks the world axes.
type Segment struct {
	From, To core.ScreenPoint
	Major    bool
}

// GridSegments returns the grid lines covering the world extent, centred on
// the origin, as seen through vp. Lines that fall entirely off screen are
// skipped.
func GridSegments(vp *viewport.Viewport) []Segment {
	half := vp.WorldSizeMeters() / 2
	w, h := vp.ScreenSize()
	n := int(math.Floor(half / GridSpacingMeters))
	segs := make([]Segment, 0, 4*n+2)
	for i := -n; i <= n; i++ {
		m := float64(i) * GridSpacingMeters
		vertical := Segment{
			From:  vp.ToScreen(cp.Vector{X: m, Y: -half}),
			To:    vp.ToScreen(cp.Vector{X: m, Y: half}),
			Major: i == 0,
		}
		if vertical.From.X >= 0 && vertical.From.X <= float64(w) {
			segs = append(segs, vertical)
		}
		horizontal := Segment{
			From:  vp.ToScreen(cp.Vector{X: -half, Y: m}),
			To:    vp.ToScreen(cp.Vector{X: half, Y: m}),
			Major: i == 0,
		}
		if horizontal.From.Y >= 0 && horizontal.From.Y <= float64(h) {
			segs = append(segs, horizontal)
		}
	}
	return segs
}
