package viewer

import (
	"github.com/san-kum/postviz/internal/layout"
	"github.com/san-kum/postviz/internal/scene"
)

// SyncState is the synchronizer's position in a rebuild cycle.
type SyncState int

const (
	Idle SyncState = iota
	Rebuilding
)

func (s SyncState) String() string {
	if s == Rebuilding {
		return "rebuilding"
	}
	return "idle"
}

// RebuildStats reports what one rebuild did.
type RebuildStats struct {
	Released     int
	Posts        int
	Obstructions int
}

// Synchronizer keeps a container node equal to the primitives of the current
// snapshot. It owns every primitive it attaches.
type Synchronizer struct {
	container *scene.Node
	state     SyncState
	current   layout.Snapshot
	applied   bool
	rebuilds  int
}

func NewSynchronizer(container *scene.Node) *Synchronizer {
	return &Synchronizer{container: container}
}

func (s *Synchronizer) Container() *scene.Node   { return s.container }
func (s *Synchronizer) State() SyncState         { return s.state }
func (s *Synchronizer) Current() layout.Snapshot { return s.current }
func (s *Synchronizer) Rebuilds() int            { return s.rebuilds }

// Apply rebuilds when snap differs from the last applied snapshot, or when
// nothing has been applied yet. It reports whether a rebuild happened.
func (s *Synchronizer) Apply(snap layout.Snapshot) bool {
	if s.applied && s.current.Equal(snap) {
		return false
	}
	s.Rebuild(snap)
	return true
}

// Rebuild disposes every child of the container and attaches fresh
// primitives for snap: posts first, then obstructions, each in order. Posts
// use layout.DefaultPostSize when snap carries no positive size.
func (s *Synchronizer) Rebuild(snap layout.Snapshot) RebuildStats {
	s.state = Rebuilding
	defer func() { s.state = Idle }()

	size := snap.PostSize
	if !(size > 0) {
		size = layout.DefaultPostSize
	}

	stats := RebuildStats{Released: scene.Dispose(s.container)}
	for i, p := range snap.PostPositions {
		s.container.Add(PostPrimitive(p, size, i))
		stats.Posts++
	}
	for i, o := range snap.Obstructions {
		s.container.Add(ObstructionPrimitive(o.Location, o.Size, o.Type, i))
		stats.Obstructions++
	}

	s.current = snap.Clone()
	s.applied = true
	s.rebuilds++

	Logger().Debug("scene rebuilt",
		"posts", stats.Posts,
		"obstructions", stats.Obstructions,
		"released", stats.Released,
		"live_resources", scene.LiveResources())
	return stats
}

// Clear disposes every primitive and forgets the current snapshot.
func (s *Synchronizer) Clear() int {
	n := scene.Dispose(s.container)
	s.current = layout.Snapshot{}
	s.applied = false
	return n
}
