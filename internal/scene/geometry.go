package scene

import "math"

// Face is a planar convex polygon in the local space of its geometry.
// Vertices wind counter-clockwise when seen from the side Normal points to.
type Face struct {
	Vertices []Vec3
	Normal   Vec3
}

// Geometry is the shape of a mesh. Faces returns a shared slice that
// callers must not modify.
type Geometry interface {
	Faces() []Face
	Dispose()
	Released() bool
}

// BoxGeometry is an axis aligned box centred on the origin.
type BoxGeometry struct {
	Resource
	Width, Height, Depth float64
	faces                []Face
}

func NewBoxGeometry(width, height, depth float64) *BoxGeometry {
	g := &BoxGeometry{Width: width, Height: height, Depth: depth}
	g.faces = boxFaces(width/2, height/2, depth/2)
	g.track()
	return g
}

func (g *BoxGeometry) Faces() []Face { return g.faces }

func boxFaces(x, y, z float64) []Face {
	v := [8]Vec3{
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
	}
	quad := func(n Vec3, a, b, c, d int) Face {
		return Face{Vertices: []Vec3{v[a], v[b], v[c], v[d]}, Normal: n}
	}
	return []Face{
		quad(Vec3{0, 0, 1}, 4, 5, 6, 7),
		quad(Vec3{0, 0, -1}, 1, 0, 3, 2),
		quad(Vec3{1, 0, 0}, 5, 1, 2, 6),
		quad(Vec3{-1, 0, 0}, 0, 4, 7, 3),
		quad(Vec3{0, 1, 0}, 7, 6, 2, 3),
		quad(Vec3{0, -1, 0}, 0, 1, 5, 4),
	}
}

// CylinderGeometry is a capped cylinder along the Y axis, centred on the
// origin.
type CylinderGeometry struct {
	Resource
	RadiusTop, RadiusBottom float64
	Height                  float64
	RadialSegments          int
	faces                   []Face
}

const minRadialSegments = 3

func NewCylinderGeometry(radiusTop, radiusBottom, height float64, radialSegments int) *CylinderGeometry {
	if radialSegments < minRadialSegments {
		radialSegments = minRadialSegments
	}
	g := &CylinderGeometry{
		RadiusTop:      radiusTop,
		RadiusBottom:   radiusBottom,
		Height:         height,
		RadialSegments: radialSegments,
	}
	g.faces = cylinderFaces(radiusTop, radiusBottom, height/2, radialSegments)
	g.track()
	return g
}

func (g *CylinderGeometry) Faces() []Face { return g.faces }

func cylinderFaces(rt, rb, hy float64, segs int) []Face {
	top := make([]Vec3, segs)
	bottom := make([]Vec3, segs)
	for i := 0; i < segs; i++ {
		a := 2 * math.Pi * float64(i) / float64(segs)
		s, c := math.Sin(a), math.Cos(a)
		top[i] = Vec3{rt * s, hy, rt * c}
		bottom[i] = Vec3{rb * s, -hy, rb * c}
	}

	faces := make([]Face, 0, segs+2)
	faces = append(faces, Face{Vertices: top, Normal: Vec3{0, 1, 0}})

	rev := make([]Vec3, segs)
	for i := range bottom {
		rev[i] = bottom[segs-1-i]
	}
	faces = append(faces, Face{Vertices: rev, Normal: Vec3{0, -1, 0}})

	slope := (rb - rt) / (2 * hy)
	for i := 0; i < segs; i++ {
		j := (i + 1) % segs
		mid := 2 * math.Pi * (float64(i) + 0.5) / float64(segs)
		n := Vec3{math.Sin(mid), slope, math.Cos(mid)}.Normalize()
		faces = append(faces, Face{
			Vertices: []Vec3{bottom[i], bottom[j], top[j], top[i]},
			Normal:   n,
		})
	}
	return faces
}

// PlaneGeometry is a rectangle in the XY plane facing +Z.
type PlaneGeometry struct {
	Resource
	Width, Height float64
	faces         []Face
}

func NewPlaneGeometry(width, height float64) *PlaneGeometry {
	x, y := width/2, height/2
	g := &PlaneGeometry{Width: width, Height: height}
	g.faces = []Face{{
		Vertices: []Vec3{{-x, -y, 0}, {x, -y, 0}, {x, y, 0}, {-x, y, 0}},
		Normal:   Vec3{0, 0, 1},
	}}
	g.track()
	return g
}

func (g *PlaneGeometry) Faces() []Face { return g.faces }
