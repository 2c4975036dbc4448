package gui

import (
	"errors"
	"sync"

	"github.com/san-kum/postviz/internal/render"
	"github.com/san-kum/postviz/internal/scene"
	"github.com/san-kum/postviz/internal/viewer"
)

var ErrForeignRenderer = errors.New("gui: surface can only attach itself")

// Surface is the window region the view draws into. It is both the view's
// host and its renderer: Render runs on the view's loop and records a
// projected frame, which the window thread replays with raylib.
type Surface struct {
	mu       sync.Mutex
	width    int
	height   int
	bg       scene.Color
	frame    render.Frame
	attached bool
}

func NewSurface(width, height int) *Surface {
	return &Surface{width: width, height: height}
}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *Surface) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = max(width, 1), max(height, 1)
}

func (s *Surface) SetClearColor(c scene.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bg = c
}

func (s *Surface) Render(sc *scene.Scene, cam *scene.PerspectiveCamera) error {
	s.mu.Lock()
	w, h, bg := s.width, s.height, s.bg
	s.mu.Unlock()

	f := render.Project(sc, cam, w, h, bg)

	s.mu.Lock()
	s.frame = f
	s.mu.Unlock()
	return nil
}

func (s *Surface) Attach(r viewer.Renderer) error {
	if r != viewer.Renderer(s) {
		return ErrForeignRenderer
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = true
	return nil
}

func (s *Surface) Detach(r viewer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r == viewer.Renderer(s) {
		s.attached = false
		s.frame = render.Frame{}
	}
}

func (s *Surface) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

// Frame returns the last recorded frame.
func (s *Surface) Frame() render.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Triangle is one screen triangle, wound the way raylib fills it.
type Triangle [3]render.Point

// Triangles fans a convex polygon into triangles. Screen space has y
// pointing down, so raylib's counter-clockwise order has a negative cross
// product here; triangles are flipped into that order and degenerate ones
// dropped.
func Triangles(points []render.Point) []Triangle {
	if len(points) < 3 {
		return nil
	}
	out := make([]Triangle, 0, len(points)-2)
	for i := 1; i < len(points)-1; i++ {
		t := Triangle{points[0], points[i], points[i+1]}
		switch c := cross(t); {
		case c > 0:
			t[1], t[2] = t[2], t[1]
		case c == 0:
			continue
		}
		out = append(out, t)
	}
	return out
}

func cross(t Triangle) float64 {
	ax, ay := t[1].X-t[0].X, t[1].Y-t[0].Y
	bx, by := t[2].X-t[0].X, t[2].Y-t[0].Y
	return ax*by - ay*bx
}
