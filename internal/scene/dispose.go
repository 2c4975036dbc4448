package scene

import "reflect"

// Dispose releases the geometry and every material of each mesh below root
// and then detaches root's children. Meshes without geometry or material,
// including typed nil pointers, are tolerated. It returns the number of
// resources released by this call.
func Dispose(root Object) int {
	if root == nil {
		return 0
	}
	n := root.Base()
	released := 0
	for _, child := range n.children {
		Traverse(child, func(o Object) bool {
			r, ok := o.(Renderable)
			if !ok {
				return true
			}
			m := r.AsMesh()
			if m == nil {
				return true
			}
			if !isNil(m.Geometry) && !m.Geometry.Released() {
				m.Geometry.Dispose()
				released++
			}
			for _, mat := range m.Materials {
				if !isNil(mat) && !mat.Released() {
					mat.Dispose()
					released++
				}
			}
			return true
		})
	}
	n.Clear()
	return released
}

// isNil reports whether v is nil or a nil pointer held in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
