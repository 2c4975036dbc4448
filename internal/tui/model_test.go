package tui

import (
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/postviz/internal/layout"
	"github.com/san-kum/postviz/internal/render"
	"github.com/san-kum/postviz/internal/scene"
	"github.com/san-kum/postviz/internal/state"
	"github.com/san-kum/postviz/internal/viewer"
)

func newTestModel(t *testing.T) (Model, *state.Store, *viewer.View) {
	t.Helper()
	store := state.NewStore()
	err := store.Dispatch(state.Rebuild{
		Options: []layout.Option{
			{PostLocations: []float64{0, 48, 96}, Description: layout.Description{EvenLayout: 1}},
			{PostLocations: []float64{0, 50}, Description: layout.Description{PostsFallOnMustAvoid: 1}},
		},
		Obstructions: []layout.Obstruction{{Size: 6, Location: 24, Type: layout.MustAvoid}},
	})
	if err != nil {
		t.Fatal(err)
	}

	host := NewHost(40, 12)
	view := viewer.NewView(render.NewCanvas(40, 12), viewer.DefaultOptions())
	view.OnSnapshotChanged(store.Snapshot())
	unsub := store.Subscribe(view.OnSnapshotChanged)
	if err := view.OnMount(host); err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	t.Cleanup(func() {
		unsub()
		view.OnUnmount()
	})
	return NewModel(store, view, host, "test run"), store, view
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOptionNavigation(t *testing.T) {
	m, store, view := newTestModel(t)

	if view.Stats().Primitives != 4 {
		t.Fatalf("expected 4 primitives, got %d", view.Stats().Primitives)
	}

	next, _ := m.Update(key("right"))
	m = next.(Model)
	if store.State().Selected != 1 {
		t.Errorf("expected option 2 selected, got %d", store.State().Selected+1)
	}
	if view.Stats().Primitives != 3 {
		t.Errorf("expected the view to follow the store, got %d primitives", view.Stats().Primitives)
	}
	if !strings.Contains(m.View(), "Option 2 of 2") {
		t.Error("expected the panel to show option 2")
	}

	m.Update(key("right"))
	if store.State().Selected != 1 {
		t.Error("expected to stay on the last option")
	}

	m.Update(key("left"))
	if store.State().Selected != 0 {
		t.Errorf("expected option 1 selected, got %d", store.State().Selected+1)
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestWindowResize(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 150, Height: 40})
	cols, rows := m.host.Size()
	if cols != 150-panelWidth-4 || rows != 39 {
		t.Errorf("expected %dx39, got %dx%d", 150-panelWidth-4, cols, rows)
	}

	m.Update(tea.WindowSizeMsg{Width: 10, Height: 2})
	cols, rows = m.host.Size()
	if cols != minCols || rows != minRows {
		t.Errorf("expected the minimum size, got %dx%d", cols, rows)
	}
}

func TestThemeCycle(t *testing.T) {
	m, _, _ := newTestModel(t)
	next, _ := m.Update(key("t"))
	if got := next.(Model).theme.Name; got != Themes[1].Name {
		t.Errorf("expected theme %s, got %s", Themes[1].Name, got)
	}
	if NextTheme(Themes[len(Themes)-1]).Name != Themes[0].Name {
		t.Error("expected themes to wrap around")
	}
}

func TestCameraKeys(t *testing.T) {
	m, _, view := newTestModel(t)
	if !view.ResetCamera() {
		t.Fatal("expected reset on a mounted view")
	}
	m.Update(key("d"))
	m.Update(key("r"))
	if !view.Inspect(func(_ *scene.Node, vp *viewer.Viewport) {
		if d := vp.Camera.Position.Sub(viewer.DefaultOptions().CameraPosition).Length(); d > 1e-6 {
			t.Errorf("expected the camera back home, got %v", vp.Camera.Position)
		}
	}) {
		t.Fatal("expected a mounted view")
	}
}

func TestHostAttach(t *testing.T) {
	h := NewHost(10, 10)
	if err := h.Attach(render.NewSVG(10, 10)); err != ErrNotCanvas {
		t.Errorf("expected ErrNotCanvas, got %v", err)
	}
	c := render.NewCanvas(10, 10)
	if err := h.Attach(c); err != nil {
		t.Fatal(err)
	}
	h.Detach(c)
	if h.Canvas() != nil {
		t.Error("expected detach to clear the canvas")
	}
}

func TestWrapFloats(t *testing.T) {
	got := wrapFloats([]float64{48, 48.5, 96}, 9)
	if got != "48, 48.5,\n96" {
		t.Errorf("unexpected wrap %q", got)
	}
}

func TestColorize(t *testing.T) {
	b := render.NewBraille(3, 1)
	b.Pen = color.RGBA{R: 255, A: 255}
	b.Set(0, 0)
	out := colorize(b)
	if !strings.Contains(out, string(rune(0x2801))) {
		t.Errorf("expected the set dot in %q", out)
	}
	if strings.Count(out, string(rune(0x2800))) != 2 {
		t.Errorf("expected two blank cells in %q", out)
	}
}
