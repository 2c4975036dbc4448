// Package state holds the selected layout: solver options, obstructions,
// post size and the index of the option being viewed. Changes go through
// actions applied by a reducer; subscribers receive the derived snapshot.
package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/san-kum/postviz/internal/layout"
)

var (
	ErrUnknownAction    = errors.New("state: unknown action")
	ErrOptionOutOfRange = errors.New("state: option index out of range")
)

// Action is a state transition.
type Action interface {
	action()
}

// SetOption selects the option at Index.
type SetOption struct {
	Index int
}

// Rebuild replaces the whole state with a fresh solver result. The first
// option is selected when there is one.
type Rebuild struct {
	PostSize     float64
	Options      []layout.Option
	Obstructions []layout.Obstruction
}

func (SetOption) action() {}
func (Rebuild) action()   {}

// State is an immutable value; reducers return a new one.
type State struct {
	PostSize     float64
	Options      []layout.Option
	Obstructions []layout.Obstruction
	Selected     int
}

// Empty is the state before any solver result: no options, nothing selected.
func Empty() State {
	return New(0, nil, nil)
}

// New builds a state selecting the first option, or -1 without options. A
// non-positive post size falls back to layout.DefaultPostSize.
func New(postSize float64, options []layout.Option, obstructions []layout.Obstruction) State {
	if !(postSize > 0) {
		postSize = layout.DefaultPostSize
	}
	s := State{
		PostSize:     postSize,
		Options:      slices.Clone(options),
		Obstructions: slices.Clone(obstructions),
		Selected:     -1,
	}
	if len(s.Options) > 0 {
		s.Selected = 0
	}
	return s
}

// Reduce applies a to s.
func Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case SetOption:
		if a.Index < 0 || a.Index >= len(s.Options) {
			return s, fmt.Errorf("%w: %d of %d", ErrOptionOutOfRange, a.Index, len(s.Options))
		}
		s.Selected = a.Index
		return s, nil
	case Rebuild:
		return New(a.PostSize, a.Options, a.Obstructions), nil
	default:
		return s, fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}
}

// Option returns the selected option, or nil.
func (s State) Option() *layout.Option {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return nil
	}
	return &s.Options[s.Selected]
}

func (s State) HasNext() bool { return s.Selected >= 0 && s.Selected < len(s.Options)-1 }
func (s State) HasPrev() bool { return s.Selected > 0 }

// Snapshot derives what the 3D view draws for the selected option.
func (s State) Snapshot() layout.Snapshot {
	return layout.NewSnapshot(s.Option(), s.Obstructions, s.PostSize)
}
