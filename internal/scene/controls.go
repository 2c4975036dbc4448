package scene

import "math"

const polarEpsilon = 1e-6

// OrbitControls moves a camera around a target point. Only the camera is
// ever modified.
type OrbitControls struct {
	Camera      *PerspectiveCamera
	Target      Vec3
	MinDistance float64
	MaxDistance float64
	MinPolar    float64
	MaxPolar    float64

	azimuth, polar, radius float64
}

func NewOrbitControls(cam *PerspectiveCamera) *OrbitControls {
	o := &OrbitControls{
		Camera:      cam,
		Target:      cam.Target(),
		MinDistance: 1,
		MaxDistance: math.Inf(1),
		MinPolar:    0,
		MaxPolar:    math.Pi,
	}
	o.Sync()
	return o
}

// Sync reads the spherical offset from the current camera position.
func (o *OrbitControls) Sync() {
	off := o.Camera.Position.Sub(o.Target)
	o.radius = off.Length()
	if o.radius == 0 {
		o.azimuth, o.polar = 0, math.Pi/2
		return
	}
	o.azimuth = math.Atan2(off.X, off.Z)
	o.polar = math.Acos(math.Max(-1, math.Min(1, off.Y/o.radius)))
}

// Spherical returns azimuth, polar angle and distance of the camera relative
// to the target.
func (o *OrbitControls) Spherical() (azimuth, polar, radius float64) {
	return o.azimuth, o.polar, o.radius
}

func (o *OrbitControls) Rotate(dAzimuth, dPolar float64) {
	o.azimuth += dAzimuth
	o.polar += dPolar
}

// Zoom multiplies the camera distance by scale; values below one move the
// camera closer.
func (o *OrbitControls) Zoom(scale float64) {
	if scale > 0 {
		o.radius *= scale
	}
}

// Pan shifts camera and target along the camera's right and up axes.
func (o *OrbitControls) Pan(dx, dy float64) {
	right, up, _ := o.Camera.Basis()
	o.Target = o.Target.Add(right.Scale(dx)).Add(up.Scale(dy))
}

// Update clamps the spherical offset and writes the camera position.
func (o *OrbitControls) Update() {
	lo := math.Max(o.MinPolar, polarEpsilon)
	hi := math.Min(o.MaxPolar, math.Pi-polarEpsilon)
	o.polar = math.Max(lo, math.Min(hi, o.polar))
	o.radius = math.Max(o.MinDistance, math.Min(o.MaxDistance, o.radius))

	sp := math.Sin(o.polar)
	off := Vec3{
		X: o.radius * sp * math.Sin(o.azimuth),
		Y: o.radius * math.Cos(o.polar),
		Z: o.radius * sp * math.Cos(o.azimuth),
	}
	o.Camera.Position = o.Target.Add(off)
	o.Camera.LookAt(o.Target)
}
