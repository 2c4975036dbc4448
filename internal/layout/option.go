package layout

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Option is one layout proposed by the solver.
type Option struct {
	PostLocations []float64   `json:"postLocations" yaml:"post_locations"`
	Description   Description `json:"description" yaml:"description"`
}

// Description scores an option.
type Description struct {
	AdditionalPosts       int     `json:"additionalPosts" yaml:"additional_posts"`
	EvenLayout            float64 `json:"evenLayout" yaml:"even_layout"`
	PostsFallOnTryToAvoid int     `json:"postsFallOnTryToAvoid" yaml:"posts_fall_on_try_to_avoid"`
	PostsFallOnMustAvoid  int     `json:"postsFallOnMustAvoid" yaml:"posts_fall_on_must_avoid"`
}

// CenterToCenter returns the distance between consecutive posts rounded to
// one decimal place.
func (o Option) CenterToCenter() []float64 {
	if len(o.PostLocations) < 2 {
		return nil
	}
	out := make([]float64, 0, len(o.PostLocations)-1)
	for i := 1; i < len(o.PostLocations); i++ {
		out = append(out, math.Round((o.PostLocations[i]-o.PostLocations[i-1])*10)/10)
	}
	return out
}

// Summary renders the option description; idx is zero based.
func (o Option) Summary(idx int) string {
	d := o.Description
	return fmt.Sprintf("Option %d: even layout: %v; extra posts: %d; try avoid: %d; must avoid: %d",
		idx+1, d.EvenLayout, d.AdditionalPosts, d.PostsFallOnTryToAvoid, d.PostsFallOnMustAvoid)
}

// SpacingStats describes the centre to centre spacing of an option.
type SpacingStats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Spacing summarises the unrounded gaps between consecutive posts.
func Spacing(o Option) SpacingStats {
	if len(o.PostLocations) < 2 {
		return SpacingStats{}
	}
	gaps := make([]float64, 0, len(o.PostLocations)-1)
	for i := 1; i < len(o.PostLocations); i++ {
		gaps = append(gaps, o.PostLocations[i]-o.PostLocations[i-1])
	}
	s := SpacingStats{Count: len(gaps), Min: gaps[0], Max: gaps[0]}
	for _, g := range gaps[1:] {
		s.Min = math.Min(s.Min, g)
		s.Max = math.Max(s.Max, g)
	}
	if len(gaps) == 1 {
		s.Mean = gaps[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(gaps, nil)
	return s
}
