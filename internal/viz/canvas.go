package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const brailleBlank = 0x2800

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel canvas of Width x Height cells, that is
// (Width*2) x (Height*4) dots. Each cell remembers the pen of the last dot
// drawn into it so it can be colored on output.
type Canvas struct {
	Width, Height int
	Pen           uint8
	cells         []rune
	pens          []uint8
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		cells:  make([]rune, w*h),
		pens:   make([]uint8, w*h),
	}
	c.Clear()
	return c
}

// PixelSize returns the canvas size in dots.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Set turns on the dot at (x, y) using the current pen. Dots outside the
// canvas are ignored.
func (c *Canvas) Set(x, y int) {
	i, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.cells[i] |= bit
	c.pens[i] = c.Pen
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	i, bit, ok := c.locate(x, y)
	return ok && c.cells[i]&bit != 0
}

func (c *Canvas) locate(x, y int) (int, rune, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row*c.Width + col, pixelMap[y%4][x%2], true
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBlank
		c.pens[i] = 0
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width : (row+1)*c.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}

// Styled renders the canvas with each non-blank cell colored by the style
// of its pen. Runs of equal pens share one style call.
func (c *Canvas) Styled(style func(pen uint8) lipgloss.Style) string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		line := c.cells[row*c.Width : (row+1)*c.Width]
		pens := c.pens[row*c.Width : (row+1)*c.Width]
		start := 0
		for i := 1; i <= len(line); i++ {
			if i < len(line) && pens[i] == pens[start] && (line[i] == brailleBlank) == (line[start] == brailleBlank) {
				continue
			}
			run := string(line[start:i])
			if line[start] == brailleBlank {
				b.WriteString(run)
			} else {
				b.WriteString(style(pens[start]).Render(run))
			}
			start = i
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
