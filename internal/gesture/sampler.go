//go:build ebiten

package gesture

import (
	"missile-demo/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// MousePointerID is the pointer ID used for the left mouse button. Touch IDs
// from ebiten are non-negative.
const MousePointerID = -1

// Sampler reads the pressed mouse button and touches from ebiten.
type Sampler struct {
	touchIDs []ebiten.TouchID
	buf      []Pointer
}

// Sample returns the pointers pressed this frame. The returned slice is
// reused by the next call.
func (s *Sampler) Sample() []Pointer {
	s.buf = s.buf[:0]
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.buf = append(s.buf, Pointer{ID: MousePointerID, Pos: core.ScreenPoint{X: float64(x), Y: float64(y)}})
	}
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	for _, id := range s.touchIDs {
		x, y := ebiten.TouchPosition(id)
		s.buf = append(s.buf, Pointer{ID: int(id), Pos: core.ScreenPoint{X: float64(x), Y: float64(y)}})
	}
	return s.buf
}
