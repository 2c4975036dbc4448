package layout

import "fmt"

// DefaultPostSize is the post width used when none is supplied.
const DefaultPostSize = 3.5

// Input is what the solver needs to propose post layouts for one run.
type Input struct {
	PostSize       float64       `json:"postSize" yaml:"post_size"`
	PanelMaxLength float64       `json:"panelMaxLength" yaml:"panel_max_length"`
	RunHorLength   float64       `json:"runHorLength" yaml:"run_hor_length"`
	Obstructions   []Obstruction `json:"obstructions" yaml:"obstructions"`
}

// Validate checks that every number is positive and every obstruction has a
// known category. All failures are reported together.
func (in Input) Validate() error {
	var fields []FieldError
	positive := func(name string, v float64) {
		if !(v > 0) {
			fields = append(fields, FieldError{Field: name, Reason: "must be positive"})
		}
	}
	positive("postSize", in.PostSize)
	positive("panelMaxLength", in.PanelMaxLength)
	positive("runHorLength", in.RunHorLength)
	for i, o := range in.Obstructions {
		prefix := fmt.Sprintf("obstructions[%d].", i)
		positive(prefix+"size", o.Size)
		positive(prefix+"location", o.Location)
		if !o.Type.Valid() {
			fields = append(fields, FieldError{Field: prefix + "type", Reason: "must be one of MUST_AVOID, TRY_TO_AVOID, PLACE_POST"})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
