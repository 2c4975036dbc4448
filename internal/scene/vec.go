package scene

import "math"

type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(o Vec3) Vec3      { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Euler is a rotation in radians applied in XYZ order.
type Euler struct {
	X, Y, Z float64
}

// Rotate applies the rotation to p. The combined matrix is Rx*Ry*Rz, so the
// Z rotation is applied to the point first.
func (e Euler) Rotate(p Vec3) Vec3 {
	if e.Z != 0 {
		cz, sz := math.Cos(e.Z), math.Sin(e.Z)
		p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	}
	if e.Y != 0 {
		cy, sy := math.Cos(e.Y), math.Sin(e.Y)
		p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	}
	if e.X != 0 {
		cx, sx := math.Cos(e.X), math.Sin(e.X)
		p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	}
	return p
}
