package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/postviz/internal/render"
	"github.com/san-kum/postviz/internal/state"
	"github.com/san-kum/postviz/internal/viewer"
)

// Run shows store's selected layout in the terminal until the user quits or
// ctx ends.
func Run(ctx context.Context, store *state.Store, opts viewer.Options, title string) error {
	host := NewHost(defaultCols, defaultRows)
	canvas := render.NewCanvas(defaultCols, defaultRows)
	view := viewer.NewView(canvas, opts)

	view.OnSnapshotChanged(store.Snapshot())
	unsubscribe := store.Subscribe(view.OnSnapshotChanged)
	defer unsubscribe()

	if err := view.OnMount(host); err != nil {
		return fmt.Errorf("tui: mount view: %w", err)
	}
	defer view.OnUnmount()

	p := tea.NewProgram(NewModel(store, view, host, title), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
