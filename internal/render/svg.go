package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/san-kum/postviz/internal/scene"
)

// SVG renders filled polygons as an SVG document.
type SVG struct {
	mu     sync.Mutex
	width  int
	height int
	clear  scene.Color
	doc    string
}

func NewSVG(width, height int) *SVG {
	return &SVG{width: max(width, 1), height: max(height, 1), clear: scene.RGB(1, 1, 1)}
}

func (r *SVG) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width > 0 && height > 0 {
		r.width, r.height = width, height
	}
}

func (r *SVG) SetClearColor(c scene.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clear = c
}

func (r *SVG) Render(sc *scene.Scene, cam *scene.PerspectiveCamera) error {
	r.mu.Lock()
	w, h, bg := r.width, r.height, r.clear
	r.mu.Unlock()

	doc := FrameToSVG(Project(sc, cam, w, h, bg))

	r.mu.Lock()
	r.doc = doc
	r.mu.Unlock()
	return nil
}

// String returns the last rendered document, or "" before the first render.
func (r *SVG) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc
}

func (r *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// FrameToSVG converts a projected frame to an SVG document. Polygons keep
// the frame's far to near order.
func FrameToSVG(f Frame) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, f.Width, f.Height, f.Width, f.Height, f.Clear.Hex())

	for _, p := range f.Polygons {
		sb.WriteString(`<polygon data-mesh="`)
		sb.WriteString(p.Mesh)
		sb.WriteString(`" fill="`)
		sb.WriteString(p.Fill.Hex())
		sb.WriteString(`" points="`)
		for i, pt := range p.Points {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", pt.X, pt.Y)
		}
		sb.WriteString(`"/>
`)
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}
