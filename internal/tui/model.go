// Package tui hosts the 3D layout view in the terminal with bubbletea. The
// scene is drawn onto a braille canvas next to a panel describing the
// selected option.
package tui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/postviz/internal/layout"
	"github.com/san-kum/postviz/internal/render"
	"github.com/san-kum/postviz/internal/scene"
	"github.com/san-kum/postviz/internal/state"
	"github.com/san-kum/postviz/internal/viewer"
)

const (
	panelWidth  = 46
	defaultCols = 80
	defaultRows = 24
	minCols     = 10
	minRows     = 5
	tickRate    = time.Second / 30
	orbitStep   = 0.08
	zoomStep    = 1.1
	panStep     = 10.0
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the bubbletea model around a mounted view.
type Model struct {
	store    *state.Store
	view     *viewer.View
	host     *Host
	title    string
	theme    Theme
	styles   styles
	showHelp bool
}

func NewModel(store *state.Store, view *viewer.View, host *Host, title string) Model {
	return Model{
		store:  store,
		view:   view,
		host:   host,
		title:  title,
		theme:  Themes[0],
		styles: newStyles(Themes[0]),
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "[":
			m.store.Prev()
		case "right", "l", "]":
			m.store.Next()
		case "a":
			m.orbit(func(c *scene.OrbitControls) { c.Rotate(-orbitStep, 0) })
		case "d":
			m.orbit(func(c *scene.OrbitControls) { c.Rotate(orbitStep, 0) })
		case "w":
			m.orbit(func(c *scene.OrbitControls) { c.Rotate(0, -orbitStep) })
		case "s":
			m.orbit(func(c *scene.OrbitControls) { c.Rotate(0, orbitStep) })
		case "+", "=":
			m.orbit(func(c *scene.OrbitControls) { c.Zoom(1 / zoomStep) })
		case "-", "_":
			m.orbit(func(c *scene.OrbitControls) { c.Zoom(zoomStep) })
		case "up", "k":
			m.orbit(func(c *scene.OrbitControls) { c.Pan(0, panStep) })
		case "down", "j":
			m.orbit(func(c *scene.OrbitControls) { c.Pan(0, -panStep) })
		case "H":
			m.orbit(func(c *scene.OrbitControls) { c.Pan(-panStep, 0) })
		case "L":
			m.orbit(func(c *scene.OrbitControls) { c.Pan(panStep, 0) })
		case "r":
			m.view.ResetCamera()
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		cols := max(msg.Width-panelWidth-4, minCols)
		rows := max(msg.Height-1, minRows)
		m.host.Resize(cols, rows)
		m.view.Resize(cols, rows)
	case TickMsg:
		return m, tick()
	}
	return m, nil
}

func (m Model) orbit(fn func(*scene.OrbitControls)) {
	m.view.Orbit(fn)
}

func (m Model) View() string {
	canvas := ""
	if c := m.host.Canvas(); c != nil {
		canvas = colorize(c.Snapshot())
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.styles.canvas.Render(canvas), m.styles.panel.Render(m.panel()))
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

func (m Model) panel() string {
	st := m.store.State()
	sty := m.styles
	var s strings.Builder

	s.WriteString(sty.header.Render(strings.ToUpper(m.title)) + "\n")

	opt := st.Option()
	if opt == nil {
		s.WriteString(sty.muted.Render("no layout options") + "\n")
	} else {
		s.WriteString(sty.value.Render(fmt.Sprintf("Option %d of %d", st.Selected+1, len(st.Options))) + "\n\n")
		d := opt.Description
		row := func(label, value string) {
			s.WriteString(sty.label.Render(label) + sty.value.Render(value) + "\n")
		}
		row("Even layout", fmt.Sprintf("%v", d.EvenLayout))
		row("Extra posts", fmt.Sprintf("%d", d.AdditionalPosts))
		row("Try to avoid", fmt.Sprintf("%d", d.PostsFallOnTryToAvoid))
		if d.PostsFallOnMustAvoid > 0 {
			s.WriteString(sty.label.Render("Must avoid") + sty.warn.Render(fmt.Sprintf("%d", d.PostsFallOnMustAvoid)) + "\n")
		} else {
			row("Must avoid", "0")
		}
		row("Posts", fmt.Sprintf("%d", len(opt.PostLocations)))

		if c2c := opt.CenterToCenter(); len(c2c) > 0 {
			s.WriteString("\n" + sty.muted.Render("centre to centre") + "\n")
			s.WriteString(sty.value.Render(wrapFloats(c2c, panelWidth-6)) + "\n")
			if len(c2c) > 1 {
				chart := asciigraph.Plot(c2c, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Spacing"))
				s.WriteString(sty.graph.Render(chart) + "\n")
			}
			sp := layout.Spacing(*opt)
			row("Mean spacing", fmt.Sprintf("%.1f ± %.1f", sp.Mean, sp.StdDev))
		}
	}

	stats := m.view.Stats()
	s.WriteString("\n")
	s.WriteString(sty.label.Render("FPS") + sty.value.Render(fmt.Sprintf("%.0f", stats.FPS)) + "\n")
	s.WriteString(sty.label.Render("Primitives") + sty.value.Render(fmt.Sprintf("%d", stats.Primitives)) + "\n")
	s.WriteString(sty.label.Render("Rebuilds") + sty.value.Render(fmt.Sprintf("%d", stats.Rebuilds)) + "\n")
	if stats.LastError != nil {
		s.WriteString(sty.warn.Render(stats.LastError.Error()) + "\n")
	}

	s.WriteString("\n" + legend() + "\n")
	s.WriteString(sty.muted.Render("\n←→:Option  WASD:Orbit  +-:Zoom\nR:Reset  T:Theme  ?:Help  Q:Quit"))
	return s.String()
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  ← / h     - Previous option         ║
║  → / l     - Next option             ║
║  a / d     - Orbit left / right      ║
║  w / s     - Orbit up / down         ║
║  ↑↓ / H L  - Pan                     ║
║  + / -     - Zoom in / out           ║
║  r         - Reset camera            ║
║  t         - Cycle themes            ║
║  ?         - Toggle this help        ║
║  q         - Quit                    ║
╚══════════════════════════════════════╝`

func legend() string {
	swatch := func(c scene.Color, label string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("■") + " " + label
	}
	lines := []string{swatch(viewer.PostColor, "Post")}
	for _, t := range layout.ObstructionTypes() {
		lines = append(lines, swatch(viewer.ObstructionColor(t), t.Label()))
	}
	return strings.Join(lines, "\n")
}

func wrapFloats(vals []float64, width int) string {
	var b strings.Builder
	line := 0
	for i, v := range vals {
		s := fmt.Sprintf("%g", v)
		if i > 0 {
			if line+len(s)+2 > width {
				b.WriteString(",\n")
				line = 0
			} else {
				b.WriteString(", ")
				line += 2
			}
		}
		b.WriteString(s)
		line += len(s)
	}
	return b.String()
}

// colorize renders the braille grid with each cell in its ink colour,
// batching runs of equal colour into one styled span.
func colorize(b *render.Braille) string {
	var out strings.Builder
	for i, row := range b.Grid {
		if i > 0 {
			out.WriteByte('\n')
		}
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && b.Ink[i][j] == b.Ink[i][start] {
				continue
			}
			out.WriteString(paint(b.Ink[i][start], string(row[start:j])))
			start = j
		}
	}
	return out.String()
}

func paint(ink color.RGBA, s string) string {
	if ink.A == 0 {
		return s
	}
	hex := fmt.Sprintf("#%02x%02x%02x", ink.R, ink.G, ink.B)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(s)
}
