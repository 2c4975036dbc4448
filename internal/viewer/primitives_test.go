package viewer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/postviz/internal/layout"
	"github.com/san-kum/postviz/internal/scene"
	"github.com/san-kum/postviz/internal/viewer"
)

var _ = Describe("Primitives", func() {
	It("stands a post on the ground at its run position", func() {
		m := viewer.PostPrimitive(96, 3.5, 2)
		DeferCleanup(func() { m.Geometry.Dispose(); m.Material().Dispose() })

		Expect(m.Name).To(Equal("post-3"))
		Expect(m.Position).To(Equal(scene.V3(96, 24, 0)))
		box, ok := m.Geometry.(*scene.BoxGeometry)
		Expect(ok).To(BeTrue())
		Expect(box.Width).To(Equal(3.5))
		Expect(box.Height).To(Equal(viewer.PostHeight))
		Expect(box.Depth).To(Equal(3.5))
		Expect(m.Material().Props().Color).To(Equal(viewer.PostColor))
	})

	It("lays an obstruction as a thin disk just above the ground", func() {
		m := viewer.ObstructionPrimitive(24, 6, layout.MustAvoid, 0)
		DeferCleanup(func() { m.Geometry.Dispose(); m.Material().Dispose() })

		Expect(m.Name).To(Equal("obstruction-1"))
		Expect(m.Position).To(Equal(scene.V3(24, 0.5, 0)))
		disk, ok := m.Geometry.(*scene.CylinderGeometry)
		Expect(ok).To(BeTrue())
		Expect(disk.RadiusTop).To(Equal(3.0))
		Expect(disk.RadiusBottom).To(Equal(3.0))
		Expect(disk.Height).To(Equal(viewer.ObstructionThickness))
		Expect(m.Material().Props().Color.Hex()).To(Equal("#990000"))
	})

	DescribeTable("colours every category",
		func(t layout.ObstructionType, hex string) {
			Expect(viewer.ObstructionColor(t).Hex()).To(Equal(hex))
		},
		Entry("place post", layout.PlacePost, "#80ff00"),
		Entry("try to avoid", layout.TryToAvoid, "#ff8000"),
		Entry("must avoid", layout.MustAvoid, "#990000"),
	)

	It("covers every declared category", func() {
		for _, t := range layout.ObstructionTypes() {
			Expect(func() { viewer.ObstructionColor(t) }).NotTo(Panic())
		}
	})

	It("panics on an unknown category without allocating", func() {
		before := scene.LiveResources()
		Expect(func() { viewer.ObstructionPrimitive(0, 1, layout.ObstructionType(0), 0) }).To(Panic())
		Expect(scene.LiveResources()).To(Equal(before))
	})
})
