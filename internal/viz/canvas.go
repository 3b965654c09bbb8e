package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells. Each cell remembers the color of the
// last dot drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]string
	pen           string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]string, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]string, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// PixelSize is the canvas size in dots.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// SetPen selects the hex color used by subsequent drawing. An empty pen
// leaves cells uncolored.
func (c *Canvas) SetPen(hex string) { c.pen = hex }

// Set turns on the dot at (x, y), in dot coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if c.pen != "" {
		c.Colors[row][col] = c.pen
	}
}

// Unset clears the dot at (x, y).
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] == blank {
		c.Colors[row][col] = ""
	}
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = ""
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
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

// DrawCircle outlines a circle of radius r around (cx, cy) with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y, d := r, 0, 1-r
	for x >= y {
		for _, p := range [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// String renders the canvas without colors.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the canvas with each cell in its recorded color, falling back to fg.
func (c *Canvas) Render(fg lipgloss.Color) string {
	styles := map[string]lipgloss.Style{}
	style := func(hex string) lipgloss.Style {
		if hex == "" {
			hex = string(fg)
		}
		s, ok := styles[hex]
		if !ok {
			s = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
			styles[hex] = s
		}
		return s
	}

	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if r == blank {
				b.WriteRune(r)
				continue
			}
			b.WriteString(style(c.Colors[i][j]).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Overlay copies src over c with its top-left cell at (col, row). Cells
// falling outside c are dropped.
func (c *Canvas) Overlay(src *Canvas, col, row int) {
	for i := range src.Grid {
		y := row + i
		if y < 0 || y >= c.Height {
			continue
		}
		for j := range src.Grid[i] {
			x := col + j
			if x < 0 || x >= c.Width {
				continue
			}
			c.Grid[y][x] = src.Grid[i][j]
			c.Colors[y][x] = src.Colors[i][j]
		}
	}
}

// Frame outlines the canvas edge in dots.
func (c *Canvas) Frame() {
	w, h := c.PixelSize()
	c.DrawLine(0, 0, w-1, 0)
	c.DrawLine(w-1, 0, w-1, h-1)
	c.DrawLine(w-1, h-1, 0, h-1)
	c.DrawLine(0, h-1, 0, 0)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
