package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/postviz/internal/config"
	"github.com/san-kum/postviz/internal/gui"
	"github.com/san-kum/postviz/internal/layout"
	"github.com/san-kum/postviz/internal/render"
	"github.com/san-kum/postviz/internal/state"
	"github.com/san-kum/postviz/internal/storage"
	"github.com/san-kum/postviz/internal/tui"
	"github.com/san-kum/postviz/internal/viewer"
)

const logFile = "postviz.log"

var (
	configFile string
	dataDir    string
	logLevel   string
	preset     string
	runName    string
	openView   bool
	option     int
	snapOut    string
	exportOut  string
	width      int
	height     int

	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "postviz",
		Short:             "post layout planner with a 3D view",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the newest run in the terminal view
			return viewRun(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "postviz.yaml", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	calcCmd := &cobra.Command{
		Use:   "calc [input.yaml]",
		Short: "ask the solver for post layouts and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  calculate,
	}
	calcCmd.Flags().StringVar(&preset, "preset", "", "use a preset input (group/name)")
	calcCmd.Flags().StringVar(&runName, "name", "", "run name")
	calcCmd.Flags().BoolVar(&openView, "view", false, "open the result in the terminal view")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	describeCmd := &cobra.Command{
		Use:   "describe [run_id]",
		Short: "print the options of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  describeRun,
	}

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "show a run in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  viewRun,
	}
	viewCmd.Flags().IntVar(&option, "option", 1, "option to open (1-based)")

	guiCmd := &cobra.Command{
		Use:   "gui [run_id]",
		Short: "show a run in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  guiRun,
	}
	guiCmd.Flags().IntVar(&option, "option", 1, "option to open (1-based)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "render one option to a PNG or SVG file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().IntVar(&option, "option", 1, "option to render (1-based)")
	snapshotCmd.Flags().StringVarP(&snapOut, "out", "o", "layout.png", "output file (.png or .svg)")
	snapshotCmd.Flags().IntVar(&width, "width", 0, "image width (defaults to config)")
	snapshotCmd.Flags().IntVar(&height, "height", 0, "image height (defaults to config)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (stdout when empty)")

	presetsCmd := &cobra.Command{
		Use:   "presets [group]",
		Short: "list preset inputs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := config.PresetGroups()
			if len(args) > 0 {
				groups = args
			}
			for _, g := range groups {
				names := config.ListPresets(g)
				if len(names) == 0 {
					fmt.Printf("no presets for group: %s\n", g)
					continue
				}
				fmt.Printf("%s:\n", g)
				for _, n := range names {
					fmt.Printf("  %s/%s\n", g, n)
				}
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(configFile); err == nil {
				return fmt.Errorf("%s already exists", configFile)
			}
			if err := config.Save(configFile, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", configFile)
			return nil
		},
	}

	rootCmd.AddCommand(calcCmd, listCmd, describeCmd, viewCmd, guiCmd, snapshotCmd, exportCmd, presetsCmd, initCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "init" {
		return nil
	}
	c, err := config.LoadOrDefault(configFile)
	if err != nil {
		return err
	}
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if logLevel != "" {
		c.LogLevel = logLevel
		if err := c.Validate(); err != nil {
			return err
		}
	}
	cfg = c
	return setupLogging(os.Stderr)
}

// setupLogging sends viewer and render log records to w at the configured
// level.
func setupLogging(w io.Writer) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	viewer.SetLogger(logger)
	render.SetLogger(logger)
	return nil
}

// logToFile redirects logging into the data directory while a full screen
// view owns the terminal.
func logToFile() (func(), error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(filepath.Join(cfg.DataDir, logFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	if err := setupLogging(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		_ = setupLogging(os.Stderr)
		f.Close()
	}, nil
}

func readInput(args []string) (layout.Input, string, error) {
	var in layout.Input
	switch {
	case preset != "":
		group, name, ok := strings.Cut(preset, "/")
		p := config.GetPreset(group, name)
		if !ok || p == nil {
			return in, "", fmt.Errorf("unknown preset: %s (groups: %v)", preset, config.PresetGroups())
		}
		return *p, preset, nil
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return in, "", err
		}
		if err := yaml.Unmarshal(data, &in); err != nil {
			return in, "", fmt.Errorf("%s: %w", args[0], err)
		}
		return in, strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])), nil
	default:
		return in, "", errors.New("give an input file or --preset")
	}
}

func calculate(cmd *cobra.Command, args []string) error {
	in, name, err := readInput(args)
	if err != nil {
		return err
	}
	if in.PostSize == 0 {
		in.PostSize = cfg.PostSize
	}
	if runName != "" {
		name = runName
	}

	client := cfg.SolverClient()
	slog.Info("requesting layouts", "solver", client.BaseURL, "run_length", in.RunHorLength, "obstructions", len(in.Obstructions))
	options, err := client.Calculate(cmd.Context(), in)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(name, client.BaseURL, in, options)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("options: %d\n", len(options))
	for i, o := range options {
		fmt.Printf("  %s\n", o.Summary(i))
	}

	if openView {
		return viewRun(cmd, []string{runID})
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tLENGTH\tPOST\tOBST\tOPTIONS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.1f\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.RunLength,
			run.PostSize,
			run.Obstructions,
			run.Options,
		)
	}

	return w.Flush()
}

func loadRun(args []string) (*storage.Run, error) {
	st := storage.New(cfg.DataDir)
	if len(args) == 0 {
		run, err := st.Latest()
		if errors.Is(err, storage.ErrRunNotFound) {
			return nil, fmt.Errorf("no runs in %s; try 'postviz calc --preset fence/short'", cfg.DataDir)
		}
		return run, err
	}
	return st.Load(args[0])
}

// newStore loads run into a state store with option n (1-based) selected.
func newStore(run *storage.Run, n int) (*state.Store, error) {
	st := state.NewStore()
	if err := st.Dispatch(state.Rebuild{
		PostSize:     run.Input.PostSize,
		Options:      run.Options,
		Obstructions: run.Input.Obstructions,
	}); err != nil {
		return nil, err
	}
	if n > 1 {
		if err := st.Dispatch(state.SetOption{Index: n - 1}); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func title(run *storage.Run) string {
	if run.Meta.Name != "" {
		return run.Meta.Name
	}
	return run.Meta.ID
}

func describeRun(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", run.Meta.ID)
	fmt.Printf("name: %s\n", run.Meta.Name)
	fmt.Printf("run length: %.1f  panel max: %.1f  post size: %.1f\n",
		run.Input.RunHorLength, run.Input.PanelMaxLength, run.Input.PostSize)
	fmt.Printf("obstructions: %d\n", len(run.Input.Obstructions))
	for i, o := range run.Input.Obstructions {
		fmt.Printf("  %d. %-14s at %.1f, size %.1f\n", i+1, o.Type.Label(), o.Location, o.Size)
	}
	fmt.Println()

	for i, o := range run.Options {
		fmt.Println(o.Summary(i))
		c2c := o.CenterToCenter()
		if len(c2c) == 0 {
			fmt.Println()
			continue
		}
		sp := layout.Spacing(o)
		fmt.Printf("  centre to centre: %v\n", c2c)
		fmt.Printf("  spacing: mean %.1f, std %.1f, min %.1f, max %.1f\n", sp.Mean, sp.StdDev, sp.Min, sp.Max)
		if len(c2c) > 1 {
			graph := asciigraph.Plot(c2c,
				asciigraph.Height(6),
				asciigraph.Width(60),
				asciigraph.Caption(fmt.Sprintf("option %d spacing", i+1)),
			)
			fmt.Println(graph)
		}
		fmt.Println()
	}
	return nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args)
	if err != nil {
		return err
	}
	st, err := newStore(run, option)
	if err != nil {
		return err
	}
	restore, err := logToFile()
	if err != nil {
		return err
	}
	defer restore()
	return tui.Run(cmd.Context(), st, cfg.ViewOptions(), title(run))
}

func guiRun(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args)
	if err != nil {
		return err
	}
	st, err := newStore(run, option)
	if err != nil {
		return err
	}
	return gui.Run(cmd.Context(), st, cfg.ViewOptions(), title(run))
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args)
	if err != nil {
		return err
	}
	st, err := newStore(run, option)
	if err != nil {
		return err
	}
	w, h := width, height
	if w <= 0 {
		w = cfg.View.Width
	}
	if h <= 0 {
		h = cfg.View.Height
	}
	opts := cfg.ViewOptions()
	snap := st.Snapshot()

	switch strings.ToLower(filepath.Ext(snapOut)) {
	case ".svg":
		r := render.NewSVG(w, h)
		if err := viewer.Still(r, w, h, opts, snap); err != nil {
			return err
		}
		f, err := os.Create(snapOut)
		if err != nil {
			return err
		}
		if _, err := r.WriteTo(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	case ".png":
		r := render.NewImage(w, h)
		defer r.Close()
		if err := viewer.Still(r, w, h, opts, snap); err != nil {
			return err
		}
		if err := r.SavePNG(snapOut); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output %q: use .png or .svg", snapOut)
	}

	fmt.Printf("wrote %s (%dx%d, option %d of %d)\n", snapOut, w, h, st.State().Selected+1, len(run.Options))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args)
	if err != nil {
		return err
	}
	if exportOut == "" {
		return storage.WriteJSON(os.Stdout, run)
	}
	if err := storage.ExportJSON(exportOut, run); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", exportOut)
	return nil
}
