package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/postviz/internal/layout"
)

// ExportData is the self-contained JSON form of a run.
type ExportData struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	PostSize     float64              `json:"postSize"`
	RunLength    float64              `json:"runLength"`
	PanelMax     float64              `json:"panelMaxLength"`
	Obstructions []layout.Obstruction `json:"obstructions"`
	Options      []ExportOption       `json:"options"`
}

type ExportOption struct {
	layout.Option
	CenterToCenter []float64           `json:"centerToCenter"`
	Spacing        layout.SpacingStats `json:"spacing"`
}

func NewExportData(run *Run) ExportData {
	data := ExportData{
		ID:           run.Meta.ID,
		Name:         run.Meta.Name,
		PostSize:     run.Input.PostSize,
		RunLength:    run.Input.RunHorLength,
		PanelMax:     run.Input.PanelMaxLength,
		Obstructions: run.Input.Obstructions,
		Options:      make([]ExportOption, len(run.Options)),
	}
	for i, o := range run.Options {
		data.Options[i] = ExportOption{
			Option:         o,
			CenterToCenter: o.CenterToCenter(),
			Spacing:        layout.Spacing(o),
		}
	}
	return data
}

func ExportJSON(path string, run *Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, run)
}

func WriteJSON(w io.Writer, run *Run) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(run))
}
