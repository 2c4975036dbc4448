// Package gui hosts the 3D layout view in a raylib window.
//
// raylib must be driven from the thread that opened the window, so the view
// renders into a [Surface] on its own loop and the window thread only
// replays the latest recorded frame.
package gui

import (
	"context"
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/postviz/internal/scene"
	"github.com/san-kum/postviz/internal/state"
	"github.com/san-kum/postviz/internal/viewer"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	orbitSpeed   = 0.005
	panSpeed     = 0.5
	zoomStep     = 1.1
)

var (
	ColPanel   = rl.NewColor(10, 10, 10, 200)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
	ColWarn    = rl.NewColor(255, 128, 0, 255)
)

type App struct {
	store    *state.Store
	view     *viewer.View
	surface  *Surface
	title    string
	font     rl.Font
	showHelp bool
	quit     bool
}

func initWindow(title string, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, title)
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when it is installed and falls back to
// raylib's built-in font.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(store *state.Store, opts viewer.Options, title string) *App {
	surface := NewSurface(windowWidth, windowHeight)
	return &App{
		store:   store,
		view:    viewer.NewView(surface, opts),
		surface: surface,
		title:   title,
	}
}

// Run opens a window showing store's selected layout and blocks until the
// window is closed, Q is pressed or ctx ends.
func Run(ctx context.Context, store *state.Store, opts viewer.Options, title string) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	initWindow(title, opts.FPS)
	defer rl.CloseWindow()

	app := NewApp(store, opts, title)
	app.font = loadFont()

	app.view.OnSnapshotChanged(store.Snapshot())
	unsubscribe := store.Subscribe(app.view.OnSnapshotChanged)
	defer unsubscribe()

	if err := app.view.OnMount(app.surface); err != nil {
		return fmt.Errorf("gui: mount view: %w", err)
	}
	defer app.view.OnUnmount()

	app.RunLoop(ctx)
	return nil
}

func (a *App) RunLoop(ctx context.Context) {
	for !rl.WindowShouldClose() && !a.quit && ctx.Err() == nil {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		a.view.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}

	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
		a.store.Next()
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
		a.store.Prev()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.view.ResetCamera()
	}
	if rl.IsKeyPressed(rl.KeySlash) || rl.IsKeyPressed(rl.KeyF1) {
		a.showHelp = !a.showHelp
	}

	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		d := rl.GetMouseDelta()
		if d.X != 0 || d.Y != 0 {
			a.view.Orbit(func(c *scene.OrbitControls) {
				c.Rotate(-float64(d.X)*orbitSpeed, -float64(d.Y)*orbitSpeed)
			})
		}
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		d := rl.GetMouseDelta()
		if d.X != 0 || d.Y != 0 {
			a.view.Orbit(func(c *scene.OrbitControls) {
				c.Pan(-float64(d.X)*panSpeed, float64(d.Y)*panSpeed)
			})
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		scale := zoomStep
		if wheel > 0 {
			scale = 1 / zoomStep
		}
		a.view.Orbit(func(c *scene.OrbitControls) { c.Zoom(scale) })
	}
}

func (a *App) Draw() {
	f := a.surface.Frame()

	rl.BeginDrawing()
	rl.ClearBackground(toColor(f.Clear))
	DrawFrame(f)
	a.DrawHUD()
	if a.showHelp {
		a.drawHelp()
	}
	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
