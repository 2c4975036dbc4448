package render

import (
	"sync"

	"github.com/san-kum/postviz/internal/scene"
)

// Canvas renders polygon outlines onto a braille grid sized in terminal
// cells. Frames are built off to the side and swapped in, so String and
// Snapshot may be called while a render is in flight.
type Canvas struct {
	mu    sync.RWMutex
	cols  int
	rows  int
	clear scene.Color
	last  *Braille
	frame Frame
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.SetSize(cols, rows)
	return c
}

// SetSize sets the surface size in terminal cells.
func (c *Canvas) SetSize(cols, rows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cols, c.rows = max(cols, 1), max(rows, 1)
	c.last = NewBraille(c.cols, c.rows)
}

func (c *Canvas) SetClearColor(col scene.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear = col
}

func (c *Canvas) Render(sc *scene.Scene, cam *scene.PerspectiveCamera) error {
	c.mu.RLock()
	cols, rows, bg := c.cols, c.rows, c.clear
	c.mu.RUnlock()

	b := NewBraille(cols, rows)
	f := Project(sc, cam, b.DotWidth(), b.DotHeight(), bg)
	for _, p := range f.Polygons {
		b.Pen = p.Fill.RGBA8()
		b.Polygon(p.Points)
	}

	c.mu.Lock()
	c.last, c.frame = b, f
	c.mu.Unlock()
	return nil
}

// String returns the last rendered frame as rows of braille characters.
func (c *Canvas) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last.String()
}

// Snapshot returns a copy of the last rendered grid.
func (c *Canvas) Snapshot() *Braille {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := NewBraille(c.last.Cols, c.last.Rows)
	for i := range c.last.Grid {
		copy(out.Grid[i], c.last.Grid[i])
		copy(out.Ink[i], c.last.Ink[i])
	}
	return out
}

// LastFrame returns the projection of the last render.
func (c *Canvas) LastFrame() Frame {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frame
}
