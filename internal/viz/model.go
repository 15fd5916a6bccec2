package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/pixmorph/internal/export"
	"github.com/san-kum/pixmorph/internal/morph"
)

// DefaultGIFPath is where recordings land when no path is configured.
const DefaultGIFPath = "pixmorph.gif"

// Options configures a Model beyond its session.
type Options struct {
	SourcePath  string
	GIFPath     string
	RecordEvery int
}

type frameMsg struct{ gen int }

type sourceMsg struct {
	path string
	data []byte
	err  error
}

// Model shows a morph session in the terminal, one pixel per half block.
type Model struct {
	session  *morph.Session
	surface  *TermSurface
	capture  *morph.ImageSurface
	recorder *export.GIFRecorder
	opts     Options
	interval time.Duration

	gen       int
	frames    int
	paused    bool
	recording bool
	showHelp  bool
	note      string
}

// NewModel wraps session. Frames are scheduled at the session's refresh rate.
func NewModel(session *morph.Session, opts Options) Model {
	p := session.Params()
	size := p.CanvasSize()
	if opts.GIFPath == "" {
		opts.GIFPath = DefaultGIFPath
	}
	if opts.RecordEvery < 1 {
		opts.RecordEvery = 1
	}
	return Model{
		session:  session,
		surface:  NewTermSurface(size, size),
		capture:  morph.NewImageSurface(size),
		recorder: export.NewGIFRecorder(p.RefreshRate, opts.RecordEvery),
		opts:     opts,
		interval: time.Duration(float64(time.Second) / p.RefreshRate),
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.opts.SourcePath != "" {
		cmds = append(cmds, readSource(m.opts.SourcePath))
	}
	return tea.Batch(cmds...)
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return frameMsg{gen: gen} })
}

func readSource(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return sourceMsg{path: path, data: data, err: err}
	}
}

// Update handles keys, source loads and frame ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case sourceMsg:
		if msg.err != nil {
			err := m.session.FailSource(&morph.LoadError{Role: "source", Path: msg.path, Wrapped: msg.err})
			m.note = err.Error()
			return m, nil
		}
		if err := m.session.LoadSourceBytes(msg.data); err != nil {
			m.note = err.Error()
		}
		return m, nil
	case frameMsg:
		if msg.gen != m.gen || m.paused {
			return m, nil
		}
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.saveRecording()
		}
		m.session.Stop()
		m.gen++
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
		m.gen++
		if !m.paused {
			return m, m.tick()
		}
	case "r":
		if err := m.session.Replay(); err != nil {
			m.note = err.Error()
		} else {
			m.note = ""
		}
	case "g":
		if m.recording {
			m.saveRecording()
			m.recording = false
		} else {
			m.recorder.Reset()
			m.recording = true
			m.note = "recording"
		}
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// step advances the session one frame and redraws.
func (m *Model) step() {
	m.session.Frame()
	m.session.Render(m.surface)
	m.frames++
	if m.recording && m.frames%m.opts.RecordEvery == 0 {
		m.session.Render(m.capture)
		m.recorder.Capture(m.capture.Img)
	}
}

func (m *Model) saveRecording() {
	if err := m.recorder.WriteFile(m.opts.GIFPath); err != nil {
		m.note = err.Error()
		return
	}
	m.note = fmt.Sprintf("saved %d frames to %s", m.recorder.Len(), m.opts.GIFPath)
	m.recorder.Reset()
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.surface.String())

	st := m.session.State()
	var s strings.Builder
	s.WriteString(titleStyle().Render("PIXMORPH") + "\n")
	s.WriteString(StatusStyle(m.session.Status()).Render(string(m.session.Status())) + "\n\n")
	s.WriteString(ProgressBar(st.T, 24) + "\n")
	s.WriteString(labelStyle().Render("t") + valueStyle().Render(fmt.Sprintf("%.3f", st.T)) + "\n")
	s.WriteString(labelStyle().Render("tick") + valueStyle().Render(fmt.Sprintf("%d", st.Tick)) + "\n")
	s.WriteString(labelStyle().Render("points") + valueStyle().Render(fmt.Sprintf("%d", len(m.session.Points()))) + "\n")
	s.WriteString(labelStyle().Render("frames") + valueStyle().Render(fmt.Sprintf("%d", m.session.TotalFrames())) + "\n")
	if m.paused {
		s.WriteString("\n" + valueStyle().Render("PAUSED") + "\n")
	}
	if m.recording {
		s.WriteString("\n" + StatusStyle(morph.StatusTargetError).Render(fmt.Sprintf("● REC %d", m.recorder.Len())) + "\n")
	}
	if m.note != "" {
		s.WriteString("\n" + hintStyle().Render(m.note) + "\n")
	}
	s.WriteString("\n" + hintStyle().Render("SP:Pause R:Replay G:Record\nT:Theme ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))
	if m.showHelp {
		return helpBox.Render(helpText) + "\n" + mainView
	}
	return mainView
}

const helpText = `Space  pause or resume
R      replay with fresh wobble once finished
G      start or stop GIF recording
T      cycle themes
?      toggle this help
Q      quit`
