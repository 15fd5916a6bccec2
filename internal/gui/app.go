package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/pixmorph/internal/export"
	"github.com/san-kum/pixmorph/internal/morph"
	"github.com/sirupsen/logrus"
)

const (
	statusBarHeight = 28
	statusFontSize  = 16
	windowTitle     = "pixmorph"
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColText    = rl.NewColor(180, 180, 180, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
	ColError   = rl.NewColor(230, 70, 70, 255)
	ColRec     = rl.NewColor(255, 60, 60, 255)
)

// Options configures the window beyond the session itself.
type Options struct {
	GIFPath      string
	SnapshotPath string
	RecordEvery  int
	Log          logrus.FieldLogger
}

// App hosts a morph session in a raylib window. Dropping an image file on
// the window loads it as the source.
type App struct {
	Session  *morph.Session
	Opts     Options
	surface  *rlSurface
	capture  *morph.ImageSurface
	recorder *export.GIFRecorder

	frames    int
	recording bool
	note      string
}

func NewApp(session *morph.Session, opts Options) *App {
	p := session.Params()
	if opts.RecordEvery < 1 {
		opts.RecordEvery = 1
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "pixmorph.gif"
	}
	if opts.SnapshotPath == "" {
		opts.SnapshotPath = "pixmorph.png"
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &App{
		Session:  session,
		Opts:     opts,
		surface:  &rlSurface{},
		capture:  morph.NewImageSurface(p.CanvasSize()),
		recorder: export.NewGIFRecorder(p.RefreshRate, opts.RecordEvery),
	}
}

// WindowSize is the canvas plus the status bar below it.
func WindowSize(p morph.Params) (w, h int32) {
	size := int32(p.CanvasSize())
	return size, size + statusBarHeight
}

// Run opens the window and blocks until it is closed.
func Run(session *morph.Session, opts Options) {
	app := NewApp(session, opts)
	p := session.Params()
	w, h := WindowSize(p)
	rl.InitWindow(w, h, windowTitle)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(p.RefreshRate))
	rl.SetExitKey(0)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			break
		}
		a.Draw()
	}
	a.Close()
}

// Close ends the window session: a running recording is written and the
// morph session is stopped.
func (a *App) Close() {
	if a.recording {
		a.saveRecording()
		a.recording = false
	}
	a.Session.Stop()
}

// Update handles input and advances the session one frame. It reports
// whether the user asked to quit.
func (a *App) Update() bool {
	if rl.IsFileDropped() {
		files := rl.LoadDroppedFiles()
		if len(files) > 0 {
			a.loadSource(files[0])
		}
		rl.UnloadDroppedFiles()
	}

	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.Session.Replay(); err != nil {
			a.note = err.Error()
		} else {
			a.note = ""
		}
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.toggleRecording()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.snapshot()
	}

	a.Session.Frame()
	a.frames++
	if a.recording && a.frames%a.Opts.RecordEvery == 0 {
		a.Session.Render(a.capture)
		a.recorder.Capture(a.capture.Img)
	}
	return false
}

func (a *App) loadSource(path string) {
	if err := a.Session.LoadSourceFile(path); err != nil {
		a.note = err.Error()
		return
	}
	a.note = ""
}

func (a *App) toggleRecording() {
	if a.recording {
		a.saveRecording()
		a.recording = false
		return
	}
	a.recorder.Reset()
	a.recording = true
}

func (a *App) saveRecording() {
	n := a.recorder.Len()
	if err := a.recorder.WriteFile(a.Opts.GIFPath); err != nil {
		a.note = err.Error()
		a.Opts.Log.WithError(err).Warn("gif not written")
		return
	}
	a.note = fmt.Sprintf("saved %s", a.Opts.GIFPath)
	a.Opts.Log.WithFields(logrus.Fields{"path": a.Opts.GIFPath, "frames": n}).Info("gif written")
	a.recorder.Reset()
}

func (a *App) snapshot() {
	a.Session.Render(a.capture)
	if err := export.WritePNG(a.Opts.SnapshotPath, a.capture.Img); err != nil {
		a.note = err.Error()
		return
	}
	a.note = fmt.Sprintf("saved %s", a.Opts.SnapshotPath)
	a.Opts.Log.WithField("path", a.Opts.SnapshotPath).Info("snapshot written")
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.Session.Render(a.surface)
	a.drawStatus()
	rl.EndDrawing()
}
