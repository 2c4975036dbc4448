package viewer_test

import (
	"errors"
	"sync"

	"github.com/san-kum/postviz/internal/scene"
	"github.com/san-kum/postviz/internal/viewer"
)

type fakeRenderer struct {
	mu           sync.Mutex
	width        int
	height       int
	clear        scene.Color
	frames       int
	lastChildren int
	err          error
}

func (r *fakeRenderer) SetSize(w, h int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = w, h
}

func (r *fakeRenderer) SetClearColor(c scene.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clear = c
}

func (r *fakeRenderer) Render(sc *scene.Scene, _ *scene.PerspectiveCamera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.frames++
	r.lastChildren = sc.NumChildren()
	return nil
}

func (r *fakeRenderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *fakeRenderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

var errAttach = errors.New("attach refused")

type fakeHost struct {
	width, height int
	refuse        bool
	attached      []viewer.Renderer
	detached      []viewer.Renderer
}

func (h *fakeHost) Size() (int, int) { return h.width, h.height }

func (h *fakeHost) Attach(r viewer.Renderer) error {
	if h.refuse {
		return errAttach
	}
	h.attached = append(h.attached, r)
	return nil
}

func (h *fakeHost) Detach(r viewer.Renderer) { h.detached = append(h.detached, r) }

func meshes(n *scene.Node) []*scene.Mesh {
	var out []*scene.Mesh
	for _, c := range n.Children() {
		if m, ok := c.(scene.Renderable); ok {
			out = append(out, m.AsMesh())
		}
	}
	return out
}
