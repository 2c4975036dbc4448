package config

import (
	"sort"

	"github.com/san-kum/postviz/internal/layout"
)

// Presets are sample solver inputs grouped by kind of run.
var Presets = map[string]map[string]layout.Input{
	"fence": {
		"short": {
			PostSize: 3.5, PanelMaxLength: 96, RunHorLength: 240,
		},
		"long": {
			PostSize: 3.5, PanelMaxLength: 96, RunHorLength: 960,
			Obstructions: []layout.Obstruction{
				{Size: 12, Location: 300, Type: layout.TryToAvoid},
			},
		},
		"gate": {
			PostSize: 5.5, PanelMaxLength: 72, RunHorLength: 480,
			Obstructions: []layout.Obstruction{
				{Size: 4, Location: 200, Type: layout.PlacePost},
				{Size: 4, Location: 248, Type: layout.PlacePost},
			},
		},
	},
	"yard": {
		"tree": {
			PostSize: 3.5, PanelMaxLength: 96, RunHorLength: 480,
			Obstructions: []layout.Obstruction{
				{Size: 24, Location: 150, Type: layout.MustAvoid},
			},
		},
		"utilities": {
			PostSize: 3.5, PanelMaxLength: 96, RunHorLength: 720,
			Obstructions: []layout.Obstruction{
				{Size: 6, Location: 24, Type: layout.MustAvoid},
				{Size: 18, Location: 400, Type: layout.TryToAvoid},
				{Size: 4, Location: 600, Type: layout.PlacePost},
			},
		},
	},
}

// GetPreset returns a copy of the preset, or nil.
func GetPreset(group, preset string) *layout.Input {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	in, ok := groupPresets[preset]
	if !ok {
		return nil
	}
	in.Obstructions = append([]layout.Obstruction(nil), in.Obstructions...)
	return &in
}

// ListPresets returns the sorted preset names of group.
func ListPresets(group string) []string {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(groupPresets))
	for name := range groupPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetGroups returns the sorted group names.
func PresetGroups() []string {
	groups := make([]string, 0, len(Presets))
	for g := range Presets {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}
