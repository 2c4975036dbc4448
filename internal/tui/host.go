package tui

import (
	"errors"
	"sync"

	"github.com/san-kum/postviz/internal/render"
	"github.com/san-kum/postviz/internal/viewer"
)

// ErrNotCanvas is returned when a renderer other than *render.Canvas is
// attached to a terminal host.
var ErrNotCanvas = errors.New("tui: terminal host needs a canvas renderer")

// Host is the terminal region the 3D view draws into, sized in cells.
type Host struct {
	mu     sync.Mutex
	cols   int
	rows   int
	canvas *render.Canvas
}

func NewHost(cols, rows int) *Host {
	return &Host{cols: cols, rows: rows}
}

func (h *Host) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cols, h.rows
}

func (h *Host) Attach(r viewer.Renderer) error {
	c, ok := r.(*render.Canvas)
	if !ok {
		return ErrNotCanvas
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.canvas = c
	return nil
}

func (h *Host) Detach(r viewer.Renderer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := r.(*render.Canvas); ok && c == h.canvas {
		h.canvas = nil
	}
}

// Resize records a new cell size. The caller resizes the view.
func (h *Host) Resize(cols, rows int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cols, h.rows = cols, rows
}

// Canvas returns the attached canvas, or nil.
func (h *Host) Canvas() *render.Canvas {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.canvas
}
