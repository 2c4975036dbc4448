package scene

// Mesh is a renderable object: a geometry drawn with one or more materials.
// Either field may be empty; such a mesh is skipped by renderers.
type Mesh struct {
	Node
	Geometry  Geometry
	Materials []Material
}

func NewMesh(name string, geometry Geometry, materials ...Material) *Mesh {
	m := &Mesh{Geometry: geometry, Materials: materials}
	m.init(name)
	return m
}

// Renderable is implemented by objects that carry mesh data.
type Renderable interface {
	Object
	AsMesh() *Mesh
}

func (m *Mesh) AsMesh() *Mesh { return m }

// Material returns the first material, or nil.
func (m *Mesh) Material() Material {
	if len(m.Materials) == 0 {
		return nil
	}
	return m.Materials[0]
}
