package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/postviz/internal/layout"
	"github.com/san-kum/postviz/internal/render"
	"github.com/san-kum/postviz/internal/scene"
	"github.com/san-kum/postviz/internal/viewer"
)

func toColor(c scene.Color) rl.Color {
	rgba := c.RGBA8()
	return rl.NewColor(rgba.R, rgba.G, rgba.B, rgba.A)
}

func toVector(p render.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

// DrawFrame fills every polygon of f in order, far to near.
func DrawFrame(f render.Frame) {
	for _, p := range f.Polygons {
		col := toColor(p.Fill)
		for _, t := range Triangles(p.Points) {
			rl.DrawTriangle(toVector(t[0]), toVector(t[1]), toVector(t[2]), col)
		}
	}
}

func (a *App) DrawHUD() {
	st := a.store.State()
	stats := a.view.Stats()

	rl.DrawRectangle(20, 20, 320, 250, ColPanel)
	a.drawText(a.title, 30, 30, 24, ColSelect)

	y := 64
	row := func(label, value string, col rl.Color) {
		a.drawText(label, 30, y, 16, ColText)
		a.drawText(value, 200, y, 16, col)
		y += 22
	}

	opt := st.Option()
	if opt == nil {
		a.drawText("no layout options", 30, y, 16, ColTextDim)
		y += 22
	} else {
		a.drawText(fmt.Sprintf("option %d of %d", st.Selected+1, len(st.Options)), 30, y, 18, ColAccent)
		y += 28
		d := opt.Description
		row("even layout", fmt.Sprintf("%v", d.EvenLayout), ColAccent)
		row("extra posts", fmt.Sprintf("%d", d.AdditionalPosts), ColAccent)
		row("try to avoid", fmt.Sprintf("%d", d.PostsFallOnTryToAvoid), ColAccent)
		mustCol := ColAccent
		if d.PostsFallOnMustAvoid > 0 {
			mustCol = ColWarn
		}
		row("must avoid", fmt.Sprintf("%d", d.PostsFallOnMustAvoid), mustCol)
		if c2c := opt.CenterToCenter(); len(c2c) > 0 {
			sp := layout.Spacing(*opt)
			row("spacing", fmt.Sprintf("%.1f +/- %.1f", sp.Mean, sp.StdDev), ColAccent)
		}
	}

	a.drawLegend(30, y+8)

	h := int(rl.GetScreenHeight())
	w := int(rl.GetScreenWidth())
	a.drawText(fmt.Sprintf("%d FPS  %d primitives  %d rebuilds", int32(rl.GetFPS()), stats.Primitives, stats.Rebuilds), 30, h-40, 14, ColTextDim)
	a.drawText("[<-/->] OPTION  [DRAG] ORBIT  [WHEEL] ZOOM  [R] RESET  [?] HELP  [Q] QUIT", w-620, h-40, 14, ColTextDim)
	if stats.LastError != nil {
		a.drawText(stats.LastError.Error(), 30, h-64, 14, ColWarn)
	}
}

func (a *App) drawLegend(x, y int) {
	entries := []struct {
		label string
		color scene.Color
	}{{"post", viewer.PostColor}}
	for _, t := range layout.ObstructionTypes() {
		entries = append(entries, struct {
			label string
			color scene.Color
		}{strings.ToLower(t.Label()), viewer.ObstructionColor(t)})
	}
	for i, e := range entries {
		rl.DrawRectangle(int32(x+i*76), int32(y+3), 10, 10, toColor(e.color))
		a.drawText(e.label, x+i*76+14, y, 12, ColText)
	}
}

const helpText = `left / h     previous option
right / l    next option
left drag    orbit
right drag   pan
wheel        zoom
r            reset camera
?            toggle help
q / esc      quit`

func (a *App) drawHelp() {
	w := int32(rl.GetScreenWidth())
	rl.DrawRectangle(w-360, 20, 340, 200, ColPanel)
	for i, line := range strings.Split(helpText, "\n") {
		a.drawText(line, int(w)-345, 34+i*22, 16, ColAccent)
	}
}
