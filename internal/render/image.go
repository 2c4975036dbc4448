package render

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/gogpu/gg"

	"github.com/san-kum/postviz/internal/scene"
)

// ErrClosed is returned by an Image used after Close.
var ErrClosed = errors.New("render: image renderer closed")

// Image rasterises filled, shaded polygons with the gg software context.
type Image struct {
	mu     sync.Mutex
	dc     *gg.Context
	width  int
	height int
	clear  scene.Color
	closed bool

	resize func(width, height int) error
}

func NewImage(width, height int) *Image {
	width, height = max(width, 1), max(height, 1)
	r := &Image{
		dc:     gg.NewContext(width, height),
		width:  width,
		height: height,
		clear:  scene.RGB(1, 1, 1),
	}
	r.resize = r.dc.Resize
	return r
}

func (r *Image) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || width <= 0 || height <= 0 {
		return
	}
	if err := r.resize(width, height); err != nil {
		Logger().Warn("image resize failed", "width", width, "height", height,
			"kept_width", r.width, "kept_height", r.height, "err", err)
		return
	}
	r.width, r.height = width, height
}

func (r *Image) SetClearColor(c scene.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clear = c
}

func (r *Image) Render(sc *scene.Scene, cam *scene.PerspectiveCamera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	f := Project(sc, cam, r.width, r.height, r.clear)
	r.dc.ClearWithColor(gg.FromColor(f.Clear.RGBA8()))
	for _, p := range f.Polygons {
		r.dc.SetColor(p.Fill.RGBA8())
		r.dc.MoveTo(p.Points[0].X, p.Points[0].Y)
		for _, pt := range p.Points[1:] {
			r.dc.LineTo(pt.X, pt.Y)
		}
		r.dc.ClosePath()
		if err := r.dc.Fill(); err != nil {
			return fmt.Errorf("render: fill %s: %w", p.Mesh, err)
		}
	}
	return nil
}

// Image returns the last rendered frame.
func (r *Image) Image() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dc.Image()
}

func (r *Image) SavePNG(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	return r.dc.SavePNG(path)
}

func (r *Image) EncodePNG(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	return r.dc.EncodePNG(w)
}

// Close releases the drawing context. It is safe to call more than once.
func (r *Image) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.dc.Close()
}
