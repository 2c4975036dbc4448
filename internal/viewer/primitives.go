package viewer

import (
	"fmt"

	"github.com/san-kum/postviz/internal/layout"
	"github.com/san-kum/postviz/internal/scene"
)

const (
	// PostHeight is the fixed height of every post.
	PostHeight = 48.0

	// ObstructionThickness is the height of an obstruction disk.
	ObstructionThickness = 1.0

	// ObstructionLift raises obstruction disks off the ground plane so the
	// two surfaces never share a depth.
	ObstructionLift = 0.5

	diskSegments = 48
)

var (
	PostColor = scene.MustHex("#4b3f3c")

	obstructionColors = map[layout.ObstructionType]scene.Color{
		layout.PlacePost:  scene.MustHex("#80ff00"),
		layout.TryToAvoid: scene.MustHex("#ff8000"),
		layout.MustAvoid:  scene.MustHex("#990000"),
	}
)

// ObstructionColor returns the render colour of a category. Every category
// has an entry; a missing one is a programming error and panics.
func ObstructionColor(t layout.ObstructionType) scene.Color {
	c, ok := obstructionColors[t]
	if !ok {
		panic(fmt.Sprintf("viewer: no colour for obstruction type %v", t))
	}
	return c
}

// PostName is the scene name of the post at index i.
func PostName(i int) string { return fmt.Sprintf("post-%d", i+1) }

// ObstructionName is the scene name of the obstruction at index i.
func ObstructionName(i int) string { return fmt.Sprintf("obstruction-%d", i+1) }

// PostPrimitive builds a size x PostHeight x size box standing on the ground
// at position along the run. The caller owns the returned mesh's resources.
func PostPrimitive(position, size float64, index int) *scene.Mesh {
	m := scene.NewMesh(PostName(index),
		scene.NewBoxGeometry(size, PostHeight, size),
		scene.NewPhongMaterial(PostColor),
	)
	m.Position = scene.V3(position, PostHeight/2, 0)
	return m
}

// ObstructionPrimitive builds a flat disk of diameter size just above the
// ground at position, coloured by category.
func ObstructionPrimitive(position, size float64, category layout.ObstructionType, index int) *scene.Mesh {
	color := ObstructionColor(category)
	m := scene.NewMesh(ObstructionName(index),
		scene.NewCylinderGeometry(size/2, size/2, ObstructionThickness, diskSegments),
		scene.NewPhongMaterial(color),
	)
	m.Position = scene.V3(position, ObstructionLift, 0)
	return m
}
