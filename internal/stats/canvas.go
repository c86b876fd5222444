package stats

import "math"

// canvas is a grid of braille cells; each cell holds 2x4 dots.
type canvas struct {
	width  int
	height int
	cells  [][]uint8
}

func newCanvas(width, height int) *canvas {
	cells := make([][]uint8, height)
	for i := range cells {
		cells[i] = make([]uint8, width)
	}
	return &canvas{width: width, height: height, cells: cells}
}

func (c *canvas) dotWidth() int  { return c.width * 2 }
func (c *canvas) dotHeight() int { return c.height * 4 }

// row maps v within [lo, hi] to a dot row, top row being hi.
func (c *canvas) row(v, lo, hi float64) int {
	rows := c.dotHeight()
	if rows <= 1 || hi <= lo {
		return rows - 1
	}
	pos := (v - lo) / (hi - lo)
	r := int(math.Round((1 - pos) * float64(rows-1)))
	return clamp(r, 0, rows-1)
}

// col maps v within [lo, hi] to a dot column, leftmost being lo.
func (c *canvas) col(v, lo, hi float64) int {
	cols := c.dotWidth()
	if cols <= 1 || hi <= lo {
		return 0
	}
	pos := (v - lo) / (hi - lo)
	return clamp(int(math.Round(pos*float64(cols-1))), 0, cols-1)
}

func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cy, cx := y/4, x/2
	if cy >= c.height || cx >= c.width {
		return
	}
	c.cells[cy][cx] |= dotMask(x%2, y%4)
}

func (c *canvas) mask(x, y int) uint8 {
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return 0
	}
	return c.cells[y][x]
}

// line draws a Bresenham line between two dots with the given dash pattern.
func (c *canvas) line(x0, y0, x1, y1 int, style lineStyle) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if style.shouldPlot(x0) {
			c.set(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

// rows renders the canvas as plain braille strings.
func (c *canvas) rows() []string {
	out := make([]string, c.height)
	for y := range c.cells {
		line := make([]rune, c.width)
		for x, m := range c.cells[y] {
			line[x] = brailleFromMask(m)
		}
		out[y] = string(line)
	}
	return out
}

var dotMasks = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func dotMask(x, y int) uint8 {
	if x < 0 || x > 1 || y < 0 || y > 3 {
		return 0
	}
	return dotMasks[x][y]
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
