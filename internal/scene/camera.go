package scene

import "math"

// PerspectiveCamera projects world space onto a screen with a fixed vertical
// field of view.
type PerspectiveCamera struct {
	Node
	FOV    float64 // vertical, degrees
	Aspect float64
	Near   float64
	Far    float64
	Up     Vec3

	target Vec3
}

func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{FOV: fov, Aspect: aspect, Near: near, Far: far, Up: Vec3{0, 1, 0}}
	c.init("camera")
	c.target = Vec3{0, 0, -1}
	return c
}

// LookAt points the camera at t.
func (c *PerspectiveCamera) LookAt(t Vec3) { c.target = t }

func (c *PerspectiveCamera) Target() Vec3 { return c.target }

func (c *PerspectiveCamera) SetAspect(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float64(width) / float64(height)
	}
}

// FocalLength is the projection scale for the vertical field of view:
// cot(FOV/2).
func (c *PerspectiveCamera) FocalLength() float64 {
	return 1 / math.Tan(c.FOV*math.Pi/360)
}

// Basis returns the camera's right, up and forward unit vectors in world
// space.
func (c *PerspectiveCamera) Basis() (right, up, forward Vec3) {
	eye := c.WorldPosition()
	forward = c.target.Sub(eye).Normalize()
	if forward.IsZero() {
		forward = Vec3{0, 0, -1}
	}
	right = forward.Cross(c.Up).Normalize()
	if right.IsZero() {
		right = Vec3{1, 0, 0}
	}
	up = right.Cross(forward)
	return right, up, forward
}

// Project converts world coordinates to screen coordinates for a w by h
// surface with the origin at the top left. depth is the distance along the
// view direction; ok is false when p lies outside the near/far range.
func (c *PerspectiveCamera) Project(p Vec3, w, h int) (x, y, depth float64, ok bool) {
	right, up, forward := c.Basis()
	d := p.Sub(c.WorldPosition())
	depth = d.Dot(forward)
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	f := c.FocalLength()
	ndcX := d.Dot(right) * f / (depth * aspect)
	ndcY := d.Dot(up) * f / depth
	x = (ndcX + 1) * float64(w) / 2
	y = (1 - ndcY) * float64(h) / 2
	return x, y, depth, true
}
