package gui

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/pixmorph/internal/morph"
)

// rlSurface draws cells straight into the current raylib frame.
type rlSurface struct{}

func (rlSurface) Clear(c color.RGBA) {
	rl.ClearBackground(c)
}

func (rlSurface) FillCell(x, y, size int, c color.RGBA) {
	rl.DrawRectangle(int32(x), int32(y), int32(size), int32(size), c)
}

// StatusText is the line printed under the canvas.
func StatusText(s *morph.Session, recording bool, frames int) string {
	text := string(s.Status())
	if s.Phase() != morph.PhaseIdle {
		text += fmt.Sprintf("  t=%.2f", s.State().T)
	}
	if recording {
		text += fmt.Sprintf("  REC %d", frames)
	}
	return text
}

// StatusColor maps a status to its text colour.
func StatusColor(st morph.Status) color.RGBA {
	switch st {
	case morph.StatusTargetError, morph.StatusSourceError:
		return ColError
	case morph.StatusRunning, morph.StatusFinished:
		return ColText
	default:
		return ColTextDim
	}
}

func (a *App) drawStatus() {
	p := a.Session.Params()
	y := int32(p.CanvasSize()) + (statusBarHeight-statusFontSize)/2
	text := StatusText(a.Session, a.recording, a.recorder.Len())
	rl.DrawText(text, 6, y, statusFontSize, StatusColor(a.Session.Status()))
	if a.note != "" {
		w := rl.MeasureText(a.note, statusFontSize-4)
		rl.DrawText(a.note, int32(p.CanvasSize())-w-6, y+2, statusFontSize-4, ColTextDim)
	}
	if a.recording {
		rl.DrawCircle(int32(p.CanvasSize())-10, 10, 5, ColRec)
	}
}
