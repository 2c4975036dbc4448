// Package scene is a small retained-mode 3D scene graph.
//
// A scene is a tree of [Object] values rooted at a [Scene]. Renderable
// leaves are [Mesh] values that own a [Geometry] and one or more
// [Material] values. Geometries and materials stand in for GPU-backed
// buffers: each one is counted while alive and must be released through
// [Dispose] (or its own Dispose method) once its mesh leaves the scene.
package scene

// Object is anything that can live in the scene graph.
type Object interface {
	// Base returns the embedded node that carries the transform and the
	// parent/child links of the object.
	Base() *Node
}

// Node is a transform with an ordered list of children.
type Node struct {
	Name     string
	Position Vec3
	Rotation Euler
	Scale    Vec3
	Visible  bool

	parent   *Node
	children []Object
}

// NewNode returns a visible node with unit scale.
func NewNode(name string) *Node {
	n := &Node{}
	n.init(name)
	return n
}

func (n *Node) init(name string) {
	n.Name = name
	n.Scale = Vec3{1, 1, 1}
	n.Visible = true
}

func (n *Node) Base() *Node { return n }

// Parent returns the node this node is attached to, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []Object {
	out := make([]Object, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) NumChildren() int { return len(n.children) }

// Add attaches objects as the last children of n. An object that already
// has a parent is detached from it first.
func (n *Node) Add(objs ...Object) {
	for _, o := range objs {
		if o == nil {
			continue
		}
		b := o.Base()
		if b == n {
			continue
		}
		if b.parent != nil {
			b.parent.Remove(o)
		}
		b.parent = n
		n.children = append(n.children, o)
	}
}

// Remove detaches the given objects if they are children of n.
func (n *Node) Remove(objs ...Object) {
	for _, o := range objs {
		if o == nil {
			continue
		}
		b := o.Base()
		for i, c := range n.children {
			if c.Base() == b {
				n.children = append(n.children[:i], n.children[i+1:]...)
				b.parent = nil
				break
			}
		}
	}
}

// Clear detaches every child.
func (n *Node) Clear() {
	for _, c := range n.children {
		c.Base().parent = nil
	}
	n.children = nil
}

// FindByName returns the first descendant with the given name, depth first.
func (n *Node) FindByName(name string) Object {
	for _, c := range n.children {
		var found Object
		Traverse(c, func(o Object) bool {
			if found == nil && o.Base().Name == name {
				found = o
			}
			return found == nil
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// LocalToWorld maps a point from this node's local space to world space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	for cur := n; cur != nil; cur = cur.parent {
		p = cur.Rotation.Rotate(p.Mul(cur.Scale)).Add(cur.Position)
	}
	return p
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() Vec3 { return n.LocalToWorld(Vec3{}) }

// Traverse visits o and then its descendants depth first. Returning false
// from fn skips the descendants of the visited object.
func Traverse(o Object, fn func(Object) bool) {
	if o == nil {
		return
	}
	if !fn(o) {
		return
	}
	for _, c := range o.Base().children {
		Traverse(c, fn)
	}
}

// Scene is the root of a scene graph.
type Scene struct {
	Node
}

func NewScene() *Scene {
	s := &Scene{}
	s.init("scene")
	return s
}
