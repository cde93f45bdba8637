package scene

import (
	"fmt"

	"missile-demo/internal/core"
	"missile-demo/internal/notify"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// Menu choices, in button order.
const (
	MenuDebug = iota
	MenuZoomIn
	MenuNormalView
	MenuZoomOut
	MenuTrack
	MenuSeek
	MenuPath
	MenuNextType
)

// MenuLabels are the button captions, indexed by menu choice.
var MenuLabels = []string{
	"Debug",
	"Zoom In",
	"Normal View",
	"Zoom Out",
	"Cmd: Track",
	"Cmd: Seek",
	"Cmd: Path",
	"Next Type",
}

// HandleMenuChoice runs the action bound to a menu button. Every action but
// a plain drag mode change restarts the debug draw cycle. Choices outside the
// menu are a programming error.
func (s *Scene) HandleMenuChoice(choice int) {
	s.logger.Debug("menu choice", zap.Int("choice", choice))
	switch choice {
	case MenuDebug:
		s.resetDrawCycle()
		s.bus.Notify(notify.EventDebugToggleVisibility, nil)
	case MenuZoomIn:
		s.resetDrawCycle()
		s.setZoom(0.5)
	case MenuNormalView:
		s.resetDrawCycle()
		s.setZoom(1.0)
	case MenuZoomOut:
		s.resetDrawCycle()
		s.setZoom(1.5)
	case MenuTrack:
		s.dragMode = core.DragTrack
	case MenuSeek:
		s.dragMode = core.DragSeek
	case MenuPath:
		s.dragMode = core.DragPath
	case MenuNextType:
		s.resetDrawCycle()
		s.kind = s.kind.Next()
		s.createEntity()
		// Put the new entity on the path the old one was following. Seek and
		// track leave it idle.
		switch s.dragMode {
		case core.DragPath:
			s.entity.CommandFollowPath(s.path)
		case core.DragSeek, core.DragTrack:
		}
	default:
		panic(fmt.Sprintf("scene: unknown menu choice %d", choice))
	}
}

func (s *Scene) setZoom(scale float64) {
	s.vp.SetScale(scale)
	s.vp.SetCenter(cp.Vector{})
}
