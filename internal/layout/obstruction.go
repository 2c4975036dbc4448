package layout

import (
	"fmt"
	"strings"
)

// ObstructionType says how the solver must treat ground under an obstruction.
type ObstructionType int

// The zero value is not a category; it marks a missing type.
const (
	MustAvoid ObstructionType = iota + 1
	TryToAvoid
	PlacePost

	numObstructionTypes
)

var obstructionTypeNames = [numObstructionTypes]string{
	MustAvoid:  "MUST_AVOID",
	TryToAvoid: "TRY_TO_AVOID",
	PlacePost:  "PLACE_POST",
}

var obstructionTypeLabels = [numObstructionTypes]string{
	MustAvoid:  "Must avoid",
	TryToAvoid: "Try to avoid",
	PlacePost:  "Place post here",
}

// ObstructionTypes lists every category in declaration order.
func ObstructionTypes() []ObstructionType {
	out := make([]ObstructionType, 0, numObstructionTypes)
	for t := MustAvoid; t < numObstructionTypes; t++ {
		out = append(out, t)
	}
	return out
}

func (t ObstructionType) Valid() bool { return t >= MustAvoid && t < numObstructionTypes }

func (t ObstructionType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ObstructionType(%d)", int(t))
	}
	return obstructionTypeNames[t]
}

// Label is the human readable name of the category.
func (t ObstructionType) Label() string {
	if !t.Valid() {
		return t.String()
	}
	return obstructionTypeLabels[t]
}

// ParseObstructionType accepts the wire name, case insensitively.
func ParseObstructionType(s string) (ObstructionType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range obstructionTypeNames {
		if name != "" && name == s {
			return ObstructionType(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownObstructionType, s)
}

func (t ObstructionType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownObstructionType, int(t))
	}
	return []byte(obstructionTypeNames[t]), nil
}

func (t *ObstructionType) UnmarshalText(b []byte) error {
	v, err := ParseObstructionType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Obstruction is a marker on the run. Location and Size are in run units,
// Size being the diameter.
type Obstruction struct {
	Size     float64         `json:"size" yaml:"size"`
	Location float64         `json:"location" yaml:"location"`
	Type     ObstructionType `json:"type" yaml:"type"`
}
