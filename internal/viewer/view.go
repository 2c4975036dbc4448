// Package viewer turns post layout snapshots into a live 3D scene.
//
// A [View] owns one [Viewport] and one container node. Hosts drive it
// through three entry points:
//
//   - [View.OnMount] builds the viewport, attaches the renderer to the host
//     and starts the render [Loop].
//   - [View.OnSnapshotChanged] replaces every primitive in the container.
//   - [View.OnUnmount] stops the loop and releases everything.
//
// The loop and the entry points share one lock, so a frame never sees a
// container halfway through a rebuild.
package viewer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/postviz/internal/layout"
	"github.com/san-kum/postviz/internal/metrics"
	"github.com/san-kum/postviz/internal/scene"
)

const containerName = "layout"

// Stats is a point-in-time view of the view's counters.
type Stats struct {
	Mounted    bool
	Primitives int
	Rebuilds   int
	Frames     int
	FPS        float64
	LastError  error
}

type View struct {
	mu       sync.Mutex
	renderer Renderer
	opts     Options

	host     Host
	viewport *Viewport
	sync     *Synchronizer
	loop     *Loop
	mounted  bool

	snapshot layout.Snapshot

	frames    *metrics.FrameRate
	rebuilds  *metrics.Counter
	lastError error
}

func NewView(r Renderer, opts Options) *View {
	return &View{
		renderer: r,
		opts:     opts,
		frames:   metrics.NewFrameRate(time.Second),
		rebuilds: metrics.NewCounter("rebuilds"),
	}
}

// OnMount builds the viewport for host, attaches the renderer, draws the
// latest snapshot and starts the render loop. On error nothing stays
// acquired.
func (v *View) OnMount(host Host) (err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mounted {
		return ErrAlreadyMounted
	}
	w, h := host.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyHost, w, h)
	}

	vp := Bootstrap(w, h, v.opts)
	defer func() {
		if err != nil {
			vp.Release()
		}
	}()

	v.renderer.SetSize(w, h)
	v.renderer.SetClearColor(v.opts.ClearColor)
	if err := host.Attach(v.renderer); err != nil {
		return fmt.Errorf("viewer: attach renderer: %w", err)
	}

	container := scene.NewNode(containerName)
	vp.Scene.Add(container)

	v.host = host
	v.viewport = vp
	v.sync = NewSynchronizer(container)
	v.mounted = true
	v.rebuild(v.snapshot)

	v.loop = StartLoop(context.Background(), v.opts.frameInterval(), v.tick)

	Logger().Info("view mounted", "width", w, "height", h, "fps", v.opts.FPS)
	return nil
}

// OnSnapshotChanged replaces the drawn layout with snap. Before mount the
// snapshot is kept and drawn on mount.
func (v *View) OnSnapshotChanged(snap layout.Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snapshot = snap.Clone()
	if !v.mounted {
		return
	}
	if v.sync.Apply(v.snapshot) {
		v.rebuilds.Inc()
	}
}

// OnUnmount stops the loop, disposes every primitive and the viewport, and
// detaches the renderer. It is a no-op on an unmounted view.
func (v *View) OnUnmount() {
	v.mu.Lock()
	loop := v.loop
	v.loop = nil
	v.mu.Unlock()

	// the loop's frame takes v.mu, so it must be stopped without holding it
	if loop != nil {
		loop.Stop()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}

	released := v.sync.Clear()
	released += v.viewport.Release()
	v.host.Detach(v.renderer)

	v.host, v.viewport, v.sync = nil, nil, nil
	v.mounted = false

	Logger().Info("view unmounted", "released", released, "live_resources", scene.LiveResources())
}

// Frame renders immediately, outside the loop's schedule.
func (v *View) Frame() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return ErrNotMounted
	}
	return v.draw(time.Now())
}

// Resize updates the camera aspect and the renderer surface.
func (v *View) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted || width <= 0 || height <= 0 {
		return
	}
	v.viewport.Camera.SetAspect(width, height)
	v.renderer.SetSize(width, height)
}

// Orbit runs fn with the camera controls under the view lock and applies the
// result. It reports false when the view is not mounted.
func (v *View) Orbit(fn func(*scene.OrbitControls)) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return false
	}
	fn(v.viewport.Controls)
	v.viewport.Controls.Update()
	return true
}

// ResetCamera puts the camera back where the options place it.
func (v *View) ResetCamera() bool {
	return v.Orbit(func(c *scene.OrbitControls) {
		c.Target = v.opts.CameraTarget
		c.Camera.Position = v.opts.CameraPosition
		c.Sync()
	})
}

// Inspect runs fn with the container under the view lock. It is meant for
// tests and diagnostics; fn must not keep references to the primitives.
func (v *View) Inspect(fn func(container *scene.Node, vp *Viewport)) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return false
	}
	fn(v.sync.Container(), v.viewport)
	return true
}

func (v *View) Stats() Stats {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := Stats{
		Mounted:   v.mounted,
		Rebuilds:  int(v.rebuilds.Value()),
		Frames:    v.frames.Total(),
		FPS:       v.frames.Value(),
		LastError: v.lastError,
	}
	if v.mounted {
		s.Primitives = v.sync.Container().NumChildren()
	}
	return s
}

func (v *View) rebuild(snap layout.Snapshot) {
	v.sync.Rebuild(snap)
	v.rebuilds.Inc()
}

func (v *View) tick(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return
	}
	if err := v.draw(now); err != nil {
		Logger().Warn("frame failed", "err", err)
	}
}

func (v *View) draw(now time.Time) error {
	err := v.renderer.Render(v.viewport.Scene, v.viewport.Camera)
	v.lastError = err
	if err != nil {
		return err
	}
	v.frames.Observe(now)
	return nil
}
