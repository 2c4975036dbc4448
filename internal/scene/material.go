package scene

// Side selects which faces of a mesh are drawn.
type Side int

const (
	FrontSide Side = iota
	DoubleSide
)

// Material describes how a mesh surface is coloured.
type Material interface {
	Props() *MaterialProps
	Dispose()
	Released() bool
}

// MaterialProps holds the properties shared by all materials.
type MaterialProps struct {
	Resource
	Color Color
	Side  Side
}

func (m *MaterialProps) Props() *MaterialProps { return m }

// PhongMaterial is shaded by the scene lights.
type PhongMaterial struct {
	MaterialProps
	Shininess float64
}

func NewPhongMaterial(c Color) *PhongMaterial {
	m := &PhongMaterial{MaterialProps: MaterialProps{Color: c}, Shininess: 30}
	m.track()
	return m
}

// BasicMaterial ignores lighting.
type BasicMaterial struct {
	MaterialProps
}

func NewBasicMaterial(c Color, side Side) *BasicMaterial {
	m := &BasicMaterial{MaterialProps: MaterialProps{Color: c, Side: side}}
	m.track()
	return m
}
