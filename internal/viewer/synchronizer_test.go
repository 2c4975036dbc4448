package viewer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/postviz/internal/layout"
	"github.com/san-kum/postviz/internal/scene"
	"github.com/san-kum/postviz/internal/viewer"
)

func sampleSnapshot() layout.Snapshot {
	return layout.NewSnapshot(
		&layout.Option{PostLocations: []float64{0, 48, 96}},
		[]layout.Obstruction{{Size: 6, Location: 24, Type: layout.MustAvoid}},
		3.5,
	)
}

var _ = Describe("Synchronizer", func() {
	var (
		container *scene.Node
		sync      *viewer.Synchronizer
		baseline  int64
	)

	BeforeEach(func() {
		baseline = scene.LiveResources()
		container = scene.NewNode("layout")
		sync = viewer.NewSynchronizer(container)
		DeferCleanup(func() {
			sync.Clear()
			Expect(scene.LiveResources()).To(Equal(baseline))
		})
	})

	It("maps posts and obstructions to named primitives in order", func() {
		stats := sync.Rebuild(sampleSnapshot())
		Expect(stats).To(Equal(viewer.RebuildStats{Released: 0, Posts: 3, Obstructions: 1}))

		ms := meshes(container)
		Expect(ms).To(HaveLen(4))

		for i, x := range []float64{0, 48, 96} {
			Expect(ms[i].Name).To(Equal(viewer.PostName(i)))
			Expect(ms[i].Position).To(Equal(scene.V3(x, 24, 0)))
		}
		Expect(ms[3].Name).To(Equal("obstruction-1"))
		Expect(ms[3].Position).To(Equal(scene.V3(24, 0.5, 0)))
		Expect(ms[3].Material().Props().Color).To(Equal(viewer.ObstructionColor(layout.MustAvoid)))
	})

	It("sizes posts with the default when the snapshot has no post size", func() {
		sync.Rebuild(layout.Snapshot{
			PostPositions: []float64{0, 48, 96},
			Obstructions:  []layout.Obstruction{{Size: 6, Location: 24, Type: layout.MustAvoid}},
		})

		ms := meshes(container)
		Expect(ms).To(HaveLen(4))
		for _, m := range ms[:3] {
			box, ok := m.Geometry.(*scene.BoxGeometry)
			Expect(ok).To(BeTrue())
			Expect(box.Width).To(Equal(layout.DefaultPostSize))
			Expect(box.Depth).To(Equal(layout.DefaultPostSize))
			Expect(box.Height).To(Equal(viewer.PostHeight))
		}
	})

	It("releases every primitive when switching to an empty snapshot", func() {
		sync.Rebuild(sampleSnapshot())
		old := meshes(container)

		stats := sync.Rebuild(layout.Snapshot{})
		Expect(stats.Released).To(Equal(8))
		Expect(container.NumChildren()).To(BeZero())
		for _, m := range old {
			Expect(m.Geometry.Released()).To(BeTrue())
			Expect(m.Material().Released()).To(BeTrue())
			Expect(m.Parent()).To(BeNil())
		}
	})

	It("keeps one primitive per post and obstruction across rebuilds", func() {
		snaps := []layout.Snapshot{
			sampleSnapshot(),
			layout.NewSnapshot(&layout.Option{PostLocations: []float64{0, 50}}, nil, 4),
			layout.NewSnapshot(nil, []layout.Obstruction{
				{Size: 2, Location: 10, Type: layout.PlacePost},
				{Size: 3, Location: 20, Type: layout.TryToAvoid},
			}, 0),
			sampleSnapshot(),
		}
		for _, s := range snaps {
			sync.Rebuild(s)
			Expect(container.NumChildren()).To(Equal(s.Len()))
			Expect(scene.LiveResources() - baseline).To(Equal(int64(2 * s.Len())))
		}
	})

	It("is a no-op rebuild for an empty snapshot on an empty container", func() {
		stats := sync.Rebuild(layout.Snapshot{})
		Expect(stats).To(Equal(viewer.RebuildStats{}))
		Expect(container.NumChildren()).To(BeZero())
	})

	It("builds the same scene for the same snapshot", func() {
		sync.Rebuild(sampleSnapshot())
		first := describeScene(container)
		sync.Rebuild(sampleSnapshot())
		Expect(describeScene(container)).To(Equal(first))
	})

	It("skips snapshots equal to the current one", func() {
		Expect(sync.Apply(sampleSnapshot())).To(BeTrue())
		before := meshes(container)
		Expect(sync.Apply(sampleSnapshot())).To(BeFalse())
		Expect(meshes(container)).To(Equal(before))
		Expect(sync.Rebuilds()).To(Equal(1))
	})

	It("applies the first snapshot even when it is empty", func() {
		Expect(sync.Apply(layout.Snapshot{})).To(BeTrue())
		Expect(sync.Apply(layout.Snapshot{})).To(BeFalse())
	})

	It("returns to idle after a rebuild", func() {
		sync.Rebuild(sampleSnapshot())
		Expect(sync.State()).To(Equal(viewer.Idle))
		Expect(sync.State().String()).To(Equal("idle"))
	})

	It("does not alias the caller's slices", func() {
		snap := sampleSnapshot()
		sync.Rebuild(snap)
		snap.PostPositions[0] = 1000
		Expect(sync.Current().PostPositions[0]).To(Equal(0.0))
	})
})

type primitive struct {
	Name     string
	Position scene.Vec3
	Color    string
}

func describeScene(n *scene.Node) []primitive {
	var out []primitive
	for _, m := range meshes(n) {
		out = append(out, primitive{m.Name, m.Position, m.Material().Props().Color.Hex()})
	}
	return out
}
