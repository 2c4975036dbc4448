// Package layout holds the post layout domain: solver input, the options a
// solver returns, and the immutable snapshot the 3D view renders.
package layout

import "slices"

// Snapshot is everything the view needs to draw one layout. Build it with
// NewSnapshot; the slices are private copies and must not be modified.
type Snapshot struct {
	PostPositions []float64
	PostSize      float64
	Obstructions  []Obstruction
}

// NewSnapshot copies the selected option's post locations and the
// obstructions. A nil option yields no posts; a non-positive post size falls
// back to DefaultPostSize.
func NewSnapshot(option *Option, obstructions []Obstruction, postSize float64) Snapshot {
	if !(postSize > 0) {
		postSize = DefaultPostSize
	}
	s := Snapshot{PostSize: postSize, Obstructions: slices.Clone(obstructions)}
	if option != nil {
		s.PostPositions = slices.Clone(option.PostLocations)
	}
	return s
}

// Empty reports whether the snapshot has nothing to draw.
func (s Snapshot) Empty() bool { return len(s.PostPositions) == 0 && len(s.Obstructions) == 0 }

// Len is the number of primitives the snapshot maps to.
func (s Snapshot) Len() int { return len(s.PostPositions) + len(s.Obstructions) }

// Equal compares by value. Nil and empty slices are equal.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.PostSize == o.PostSize &&
		slices.Equal(s.PostPositions, o.PostPositions) &&
		slices.Equal(s.Obstructions, o.Obstructions)
}

// Clone returns a snapshot that shares no memory with s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		PostPositions: slices.Clone(s.PostPositions),
		PostSize:      s.PostSize,
		Obstructions:  slices.Clone(s.Obstructions),
	}
}
