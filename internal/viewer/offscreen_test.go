package viewer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/postviz/internal/layout"
	"github.com/san-kum/postviz/internal/scene"
	"github.com/san-kum/postviz/internal/viewer"
)

var _ = Describe("Still", func() {
	It("draws one frame and releases everything", func() {
		baseline := scene.LiveResources()
		r := &fakeRenderer{}
		snap := layout.Snapshot{PostPositions: []float64{0, 48}, PostSize: 3.5}

		Expect(viewer.Still(r, 640, 480, viewer.DefaultOptions(), snap)).To(Succeed())

		Expect(r.Frames()).To(BeNumerically(">=", 1))
		w, h := r.Size()
		Expect(w).To(Equal(640))
		Expect(h).To(Equal(480))
		Expect(scene.LiveResources()).To(Equal(baseline))
	})

	It("refuses an empty surface", func() {
		err := viewer.Still(&fakeRenderer{}, 0, 480, viewer.DefaultOptions(), layout.Snapshot{})
		Expect(err).To(MatchError(viewer.ErrEmptyHost))
	})

	It("returns the render error", func() {
		r := &fakeRenderer{err: errAttach}
		Expect(viewer.Still(r, 10, 10, viewer.DefaultOptions(), layout.Snapshot{})).To(MatchError(errAttach))
	})
})
