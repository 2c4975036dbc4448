package render

import (
	"image/color"
	"math"
	"strings"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Braille is a dot grid backed by braille characters. Dot coordinates run
// from (0, 0) to (2*Cols-1, 4*Rows-1). Each cell also remembers the Pen
// colour of the last dot set in it; a zero Ink entry means no colour.
type Braille struct {
	Cols, Rows int
	Grid       [][]rune
	Ink        [][]color.RGBA
	Pen        color.RGBA
}

func NewBraille(cols, rows int) *Braille {
	b := &Braille{
		Cols: cols,
		Rows: rows,
		Grid: make([][]rune, rows),
		Ink:  make([][]color.RGBA, rows),
	}
	for i := range b.Grid {
		b.Grid[i] = make([]rune, cols)
		b.Ink[i] = make([]color.RGBA, cols)
	}
	b.Clear()
	return b
}

// DotWidth is the horizontal resolution in dots.
func (b *Braille) DotWidth() int { return b.Cols * 2 }

// DotHeight is the vertical resolution in dots.
func (b *Braille) DotHeight() int { return b.Rows * 4 }

// Set turns on the dot at (x, y). Out of range dots are ignored.
func (b *Braille) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= b.Cols || row >= b.Rows {
		return
	}
	b.Grid[row][col] |= dotBits[y%4][x%2]
	b.Ink[row][col] = b.Pen
}

// IsSet reports whether the dot at (x, y) is on.
func (b *Braille) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= b.Cols || y/4 >= b.Rows {
		return false
	}
	return b.Grid[y/4][x/2]&dotBits[y%4][x%2] != 0
}

func (b *Braille) Clear() {
	for i := range b.Grid {
		for j := range b.Grid[i] {
			b.Grid[i][j] = brailleBlank
			b.Ink[i][j] = color.RGBA{}
		}
	}
}

// Line draws a segment in dot space with Bresenham's algorithm after
// clipping it to the grid.
func (b *Braille) Line(x0, y0, x1, y1 float64) {
	x0, y0, x1, y1, ok := clipLine(x0, y0, x1, y1, 0, 0, float64(b.DotWidth()-1), float64(b.DotHeight()-1))
	if !ok {
		return
	}
	ax, ay := int(math.Round(x0)), int(math.Round(y0))
	bx, by := int(math.Round(x1)), int(math.Round(y1))

	dx, dy := absInt(bx-ax), absInt(by-ay)
	sx, sy := -1, -1
	if ax < bx {
		sx = 1
	}
	if ay < by {
		sy = 1
	}
	err := dx - dy
	for {
		b.Set(ax, ay)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ax += sx
		}
		if e2 < dx {
			err += dx
			ay += sy
		}
	}
}

// Polygon draws the closed outline through pts.
func (b *Braille) Polygon(pts []Point) {
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		b.Line(p.X, p.Y, q.X, q.Y)
	}
}

func (b *Braille) String() string {
	var sb strings.Builder
	sb.Grow(b.Rows * (b.Cols*3 + 1))
	for i, row := range b.Grid {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

const (
	outLeft = 1 << iota
	outRight
	outBottom
	outTop
)

func outcode(x, y, xmin, ymin, xmax, ymax float64) int {
	code := 0
	switch {
	case x < xmin:
		code |= outLeft
	case x > xmax:
		code |= outRight
	}
	switch {
	case y < ymin:
		code |= outTop
	case y > ymax:
		code |= outBottom
	}
	return code
}

// clipLine is Cohen-Sutherland clipping against an axis aligned rectangle.
// Projected ground corners land far outside the surface, so segments are
// clipped before rasterising.
func clipLine(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	c0 := outcode(x0, y0, xmin, ymin, xmax, ymax)
	c1 := outcode(x1, y1, xmin, ymin, xmax, ymax)
	for {
		switch {
		case c0|c1 == 0:
			return x0, y0, x1, y1, true
		case c0&c1 != 0:
			return 0, 0, 0, 0, false
		}
		out := c0
		if out == 0 {
			out = c1
		}
		var x, y float64
		switch {
		case out&outBottom != 0:
			x, y = x0+(x1-x0)*(ymax-y0)/(y1-y0), ymax
		case out&outTop != 0:
			x, y = x0+(x1-x0)*(ymin-y0)/(y1-y0), ymin
		case out&outRight != 0:
			x, y = xmax, y0+(y1-y0)*(xmax-x0)/(x1-x0)
		default:
			x, y = xmin, y0+(y1-y0)*(xmin-x0)/(x1-x0)
		}
		if out == c0 {
			x0, y0 = x, y
			c0 = outcode(x0, y0, xmin, ymin, xmax, ymax)
		} else {
			x1, y1 = x, y
			c1 = outcode(x1, y1, xmin, ymin, xmax, ymax)
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
