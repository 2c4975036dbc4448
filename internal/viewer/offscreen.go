package viewer

import (
	"github.com/san-kum/postviz/internal/layout"
)

// Offscreen is a fixed-size host for renderers that draw into memory.
type Offscreen struct {
	Width, Height int
	attached      Renderer
}

func (o *Offscreen) Size() (int, int)       { return o.Width, o.Height }
func (o *Offscreen) Attach(r Renderer) error { o.attached = r; return nil }

func (o *Offscreen) Detach(r Renderer) {
	if o.attached == r {
		o.attached = nil
	}
}

// Still draws one frame of snap with r on a width x height surface and
// releases the view again.
func Still(r Renderer, width, height int, opts Options, snap layout.Snapshot) error {
	v := NewView(r, opts)
	v.OnSnapshotChanged(snap)
	if err := v.OnMount(&Offscreen{Width: width, Height: height}); err != nil {
		return err
	}
	defer v.OnUnmount()
	return v.Frame()
}
