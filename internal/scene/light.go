package scene

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Node
	Color     Color
	Intensity float64
}

func NewAmbientLight(c Color, intensity float64) *AmbientLight {
	l := &AmbientLight{Color: c, Intensity: intensity}
	l.init("ambient-light")
	return l
}

// PointLight shines from its world position in all directions.
type PointLight struct {
	Node
	Color     Color
	Intensity float64
}

func NewPointLight(c Color, intensity float64) *PointLight {
	l := &PointLight{Color: c, Intensity: intensity}
	l.init("point-light")
	return l
}
