package report

import (
	"math"
	"strings"
)

// Braille cells pack 2x4 dots per rune, code points from 0x2800.
// Dot layout within a cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotMask = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// canvas is a braille surface of cols x rows terminal cells, addressable
// at (2*cols) x (4*rows) dot resolution.
type canvas struct {
	cols, rows int
	cells      [][]rune
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, cells: make([][]rune, rows)}
	for i := range c.cells {
		c.cells[i] = make([]rune, cols)
		for j := range c.cells[i] {
			c.cells[i][j] = 0x2800
		}
	}
	return c
}

func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] |= dotMask[y%4][x%2]
}

// line steps with Bresenham so traces stay connected between samples.
func (c *canvas) line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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

func (c *canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
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

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Trace draws ys against xs at braille resolution, joining consecutive
// samples so orbits render as curves rather than dust. Non-finite
// samples lift the pen. Returns "" when fewer than two drawable points
// remain.
func Trace(xs, ys []float64, cols, rows int) string {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if cols < 1 || rows < 1 {
		return ""
	}

	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	drawable := 0
	for i := 0; i < n; i++ {
		if !finite(xs[i]) || !finite(ys[i]) {
			continue
		}
		drawable++
		xmin = math.Min(xmin, xs[i])
		xmax = math.Max(xmax, xs[i])
		ymin = math.Min(ymin, ys[i])
		ymax = math.Max(ymax, ys[i])
	}
	if drawable < 2 {
		return ""
	}
	if xmax == xmin {
		xmax = xmin + 1
	}
	if ymax == ymin {
		ymax = ymin + 1
	}

	w := float64(2*cols - 1)
	h := float64(4*rows - 1)
	px := func(v float64) int { return int(math.Round((v - xmin) / (xmax - xmin) * w)) }
	py := func(v float64) int { return int(math.Round((ymax - v) / (ymax - ymin) * h)) }

	c := newCanvas(cols, rows)
	penDown := false
	var lastX, lastY int
	for i := 0; i < n; i++ {
		if !finite(xs[i]) || !finite(ys[i]) {
			penDown = false
			continue
		}
		x, y := px(xs[i]), py(ys[i])
		if penDown {
			c.line(lastX, lastY, x, y)
		} else {
			c.set(x, y)
		}
		lastX, lastY = x, y
		penDown = true
	}
	return c.String()
}
