package viz

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Half blocks: each character cell shows two vertical pixels, the upper one
// as foreground and the lower one as background.
const upperHalf = "▀"

// TermSurface is a colour pixel canvas printed with half-block characters.
type TermSurface struct {
	Width, Height int
	Pix           []color.RGBA
	styles        map[[2]color.RGBA]lipgloss.Style
}

// NewTermSurface creates a w×h pixel canvas. Odd heights are padded by one
// row so every character holds two pixels.
func NewTermSurface(w, h int) *TermSurface {
	if h%2 == 1 {
		h++
	}
	return &TermSurface{
		Width:  w,
		Height: h,
		Pix:    make([]color.RGBA, w*h),
		styles: make(map[[2]color.RGBA]lipgloss.Style),
	}
}

func (c *TermSurface) Clear(col color.RGBA) {
	for i := range c.Pix {
		c.Pix[i] = col
	}
}

func (c *TermSurface) FillCell(x, y, size int, col color.RGBA) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+size, c.Width), min(y+size, c.Height)
	for py := y0; py < y1; py++ {
		row := py * c.Width
		for px := x0; px < x1; px++ {
			c.Pix[row+px] = col
		}
	}
}

func (c *TermSurface) At(x, y int) color.RGBA {
	return c.Pix[y*c.Width+x]
}

func (c *TermSurface) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row += 2 {
		for x := 0; x < c.Width; x++ {
			top, bottom := c.At(x, row), c.At(x, row+1)
			b.WriteString(c.style(top, bottom).Render(upperHalf))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *TermSurface) style(top, bottom color.RGBA) lipgloss.Style {
	key := [2]color.RGBA{top, bottom}
	if s, ok := c.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexOf(top))).
		Background(lipgloss.Color(hexOf(bottom)))
	c.styles[key] = s
	return s
}

func hexOf(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
