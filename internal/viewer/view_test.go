package viewer_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/postviz/internal/layout"
	"github.com/san-kum/postviz/internal/scene"
	"github.com/san-kum/postviz/internal/viewer"
)

var _ = Describe("View", func() {
	var (
		renderer *fakeRenderer
		host     *fakeHost
		view     *viewer.View
		baseline int64
	)

	BeforeEach(func() {
		baseline = scene.LiveResources()
		renderer = &fakeRenderer{}
		host = &fakeHost{width: 800, height: 600}
		opts := viewer.DefaultOptions()
		opts.FPS = 200
		view = viewer.NewView(renderer, opts)
		DeferCleanup(func() {
			view.OnUnmount()
			Expect(scene.LiveResources()).To(Equal(baseline))
		})
	})

	Describe("mounting", func() {
		It("sizes the renderer and attaches it to the host", func() {
			Expect(view.OnMount(host)).To(Succeed())
			w, h := renderer.Size()
			Expect(w).To(Equal(800))
			Expect(h).To(Equal(600))
			Expect(renderer.clear.Hex()).To(Equal("#ffffff"))
			Expect(host.attached).To(ConsistOf(renderer))
		})

		It("builds the camera, lights and ground", func() {
			Expect(view.OnMount(host)).To(Succeed())
			view.Inspect(func(_ *scene.Node, vp *viewer.Viewport) {
				Expect(vp.Camera.FOV).To(Equal(60.0))
				Expect(vp.Camera.Aspect).To(BeNumerically("~", 800.0/600.0))
				Expect(vp.Camera.Position.Sub(scene.V3(50, 50, 500)).Length()).To(BeNumerically("<", 1e-9))
				Expect(vp.Camera.Target()).To(Equal(scene.V3(50, 24, 0)))
				Expect(vp.Light.Position).To(Equal(scene.V3(0, 0, 900)))
				Expect(vp.Ground.Material().Props().Side).To(Equal(scene.DoubleSide))
				Expect(vp.Scene.FindByName("layout")).NotTo(BeNil())
			})
		})

		It("renders frames from the loop", func() {
			Expect(view.OnMount(host)).To(Succeed())
			Eventually(renderer.Frames).WithTimeout(2 * time.Second).Should(BeNumerically(">=", 3))
		})

		It("refuses a second mount", func() {
			Expect(view.OnMount(host)).To(Succeed())
			Expect(view.OnMount(host)).To(MatchError(viewer.ErrAlreadyMounted))
		})

		It("refuses a host without area", func() {
			host.height = 0
			Expect(view.OnMount(host)).To(MatchError(viewer.ErrEmptyHost))
			Expect(view.Stats().Mounted).To(BeFalse())
		})

		It("releases the viewport when the host refuses the renderer", func() {
			host.refuse = true
			err := view.OnMount(host)
			Expect(errors.Is(err, errAttach)).To(BeTrue())
			Expect(scene.LiveResources()).To(Equal(baseline))
			Expect(view.Stats().Mounted).To(BeFalse())
		})
	})

	Describe("snapshots", func() {
		It("draws a snapshot received before mount", func() {
			view.OnSnapshotChanged(sampleSnapshot())
			Expect(view.OnMount(host)).To(Succeed())
			Expect(view.Stats().Primitives).To(Equal(4))
		})

		It("replaces the layout on change", func() {
			Expect(view.OnMount(host)).To(Succeed())
			view.OnSnapshotChanged(sampleSnapshot())
			Expect(view.Stats().Primitives).To(Equal(4))

			view.OnSnapshotChanged(layout.Snapshot{})
			Expect(view.Stats().Primitives).To(BeZero())
			Expect(scene.LiveResources() - baseline).To(Equal(int64(2)))
		})

		It("ignores an unchanged snapshot", func() {
			Expect(view.OnMount(host)).To(Succeed())
			view.OnSnapshotChanged(sampleSnapshot())
			before := view.Stats().Rebuilds
			view.OnSnapshotChanged(sampleSnapshot())
			Expect(view.Stats().Rebuilds).To(Equal(before))
		})

		It("survives changes while the loop is rendering", func() {
			Expect(view.OnMount(host)).To(Succeed())
			for i := 0; i < 50; i++ {
				if i%2 == 0 {
					view.OnSnapshotChanged(sampleSnapshot())
				} else {
					view.OnSnapshotChanged(layout.Snapshot{})
				}
			}
			Expect(view.Stats().Primitives).To(BeZero())
		})
	})

	Describe("unmounting", func() {
		It("stops rendering and releases everything", func() {
			Expect(view.OnMount(host)).To(Succeed())
			view.OnSnapshotChanged(sampleSnapshot())
			Eventually(renderer.Frames).WithTimeout(2 * time.Second).Should(BeNumerically(">", 0))

			view.OnUnmount()
			Expect(host.detached).To(ConsistOf(renderer))
			Expect(scene.LiveResources()).To(Equal(baseline))

			frames := renderer.Frames()
			Consistently(renderer.Frames).WithTimeout(50 * time.Millisecond).Should(Equal(frames))
			Expect(view.Frame()).To(MatchError(viewer.ErrNotMounted))
		})

		It("is a no-op when not mounted", func() {
			view.OnUnmount()
			view.OnUnmount()
			Expect(host.detached).To(BeEmpty())
		})

		It("can mount again after unmounting", func() {
			view.OnSnapshotChanged(sampleSnapshot())
			Expect(view.OnMount(host)).To(Succeed())
			view.OnUnmount()
			Expect(view.OnMount(host)).To(Succeed())
			Expect(view.Stats().Primitives).To(Equal(4))
		})
	})

	It("records render failures", func() {
		Expect(view.OnMount(host)).To(Succeed())
		renderer.mu.Lock()
		renderer.err = errors.New("lost context")
		renderer.mu.Unlock()
		Expect(view.Frame()).To(MatchError("lost context"))
		Expect(view.Stats().LastError).To(HaveOccurred())
	})

	It("orbits the camera around the target", func() {
		Expect(view.OnMount(host)).To(Succeed())
		var before scene.Vec3
		view.Inspect(func(_ *scene.Node, vp *viewer.Viewport) { before = vp.Camera.Position })
		Expect(view.Orbit(func(c *scene.OrbitControls) { c.Rotate(0.3, 0) })).To(BeTrue())
		view.Inspect(func(_ *scene.Node, vp *viewer.Viewport) {
			Expect(vp.Camera.Position).NotTo(Equal(before))
			Expect(vp.Camera.Target()).To(Equal(scene.V3(50, 24, 0)))
		})
	})
})
