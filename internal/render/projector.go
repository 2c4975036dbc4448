// Package render draws a scene graph through a perspective camera onto 2D
// surfaces: a braille terminal canvas, a raster image and an SVG document.
//
// All renderers share one projection pass. Faces are flat shaded and sorted
// back to front (painter's algorithm); there is no depth buffer.
package render

import (
	"sort"

	"github.com/san-kum/postviz/internal/scene"
)

// Point is a screen position with the origin at the top left.
type Point struct{ X, Y float64 }

// Polygon is one projected, shaded face.
type Polygon struct {
	Mesh   string
	Points []Point
	Depth  float64
	Fill   scene.Color
}

// Frame is a projected scene ready to be painted.
type Frame struct {
	Width, Height int
	Clear         scene.Color
	Polygons      []Polygon
}

type lighting struct {
	ambient scene.Color
	points  []pointLight
}

type pointLight struct {
	position scene.Vec3
	color    scene.Color
}

// Project flattens every visible mesh of sc into screen polygons for a
// width x height surface, ordered far to near.
func Project(sc *scene.Scene, cam *scene.PerspectiveCamera, width, height int, bg scene.Color) Frame {
	f := Frame{Width: width, Height: height, Clear: bg}
	if sc == nil || cam == nil || width <= 0 || height <= 0 {
		return f
	}

	lights := collectLights(sc)
	v := newView(cam, width, height)

	scene.Traverse(sc, func(o scene.Object) bool {
		if !o.Base().Visible {
			return false
		}
		r, ok := o.(scene.Renderable)
		if !ok {
			return true
		}
		m := r.AsMesh()
		mat := m.Material()
		if m.Geometry == nil || mat == nil || m.Geometry.Released() || mat.Released() {
			return true
		}
		for _, face := range m.Geometry.Faces() {
			if p, ok := v.face(m, face, mat, lights); ok {
				f.Polygons = append(f.Polygons, p)
			}
		}
		return true
	})

	sort.SliceStable(f.Polygons, func(i, j int) bool {
		return f.Polygons[i].Depth > f.Polygons[j].Depth
	})
	return f
}

func collectLights(sc *scene.Scene) lighting {
	var l lighting
	scene.Traverse(sc, func(o scene.Object) bool {
		if !o.Base().Visible {
			return false
		}
		switch light := o.(type) {
		case *scene.AmbientLight:
			l.ambient = l.ambient.Add(light.Color.Mul(light.Intensity))
		case *scene.PointLight:
			l.points = append(l.points, pointLight{
				position: light.WorldPosition(),
				color:    light.Color.Mul(light.Intensity),
			})
		}
		return true
	})
	return l
}

func (l lighting) shade(base scene.Color, at, normal scene.Vec3) scene.Color {
	light := l.ambient
	for _, p := range l.points {
		dir := p.position.Sub(at).Normalize()
		if k := normal.Dot(dir); k > 0 {
			light = light.Add(p.color.Mul(k))
		}
	}
	return base.Modulate(light)
}

// view holds the camera basis for one frame.
type view struct {
	eye                scene.Vec3
	right, up, forward scene.Vec3
	near               float64
	focal, aspect      float64
	width, height      float64
}

func newView(cam *scene.PerspectiveCamera, width, height int) *view {
	right, up, forward := cam.Basis()
	// the surface decides the aspect; terminal hosts size cameras in cells
	aspect := float64(width) / float64(height)
	return &view{
		eye:     cam.WorldPosition(),
		right:   right,
		up:      up,
		forward: forward,
		near:    cam.Near,
		focal:   cam.FocalLength(),
		aspect:  aspect,
		width:   float64(width),
		height:  float64(height),
	}
}

// camera space: x right, y up, z depth along the view direction.
func (v *view) toCamera(p scene.Vec3) scene.Vec3 {
	d := p.Sub(v.eye)
	return scene.V3(d.Dot(v.right), d.Dot(v.up), d.Dot(v.forward))
}

func (v *view) toScreen(c scene.Vec3) Point {
	ndcX := c.X * v.focal / (c.Z * v.aspect)
	ndcY := c.Y * v.focal / c.Z
	return Point{
		X: (ndcX + 1) * v.width / 2,
		Y: (1 - ndcY) * v.height / 2,
	}
}

func (v *view) face(m *scene.Mesh, face scene.Face, mat scene.Material, lights lighting) (Polygon, bool) {
	world := make([]scene.Vec3, len(face.Vertices))
	var centre scene.Vec3
	for i, p := range face.Vertices {
		world[i] = m.LocalToWorld(p)
		centre = centre.Add(world[i])
	}
	centre = centre.Scale(1 / float64(len(world)))

	origin := m.LocalToWorld(scene.Vec3{})
	normal := m.LocalToWorld(face.Normal).Sub(origin).Normalize()

	props := mat.Props()
	toEye := v.eye.Sub(centre)
	if normal.Dot(toEye) <= 0 {
		if props.Side != scene.DoubleSide {
			return Polygon{}, false
		}
		normal = normal.Scale(-1)
	}

	cam := make([]scene.Vec3, len(world))
	for i, p := range world {
		cam[i] = v.toCamera(p)
	}
	cam = clipNear(cam, v.near)
	if len(cam) < 3 {
		return Polygon{}, false
	}

	poly := Polygon{Mesh: m.Name, Points: make([]Point, len(cam))}
	for i, c := range cam {
		poly.Points[i] = v.toScreen(c)
		poly.Depth += c.Z
	}
	poly.Depth /= float64(len(cam))

	switch mat.(type) {
	case *scene.BasicMaterial:
		poly.Fill = props.Color
	default:
		poly.Fill = lights.shade(props.Color, centre, normal)
	}
	return poly, true
}

// clipNear cuts a camera space polygon against the plane z = near
// (Sutherland-Hodgman with a single edge).
func clipNear(poly []scene.Vec3, near float64) []scene.Vec3 {
	out := make([]scene.Vec3, 0, len(poly)+2)
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		curIn, prevIn := cur.Z >= near, prev.Z >= near
		if curIn != prevIn {
			t := (near - prev.Z) / (cur.Z - prev.Z)
			out = append(out, prev.Add(cur.Sub(prev).Scale(t)))
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}
