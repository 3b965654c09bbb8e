package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/hopfviz/internal/app"
	"github.com/san-kum/hopfviz/internal/automation"
	"github.com/san-kum/hopfviz/internal/config"
	"github.com/san-kum/hopfviz/internal/export"
	"github.com/san-kum/hopfviz/internal/gui"
	"github.com/san-kum/hopfviz/internal/hopf"
	"github.com/san-kum/hopfviz/internal/storage"
	"github.com/san-kum/hopfviz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir      string
	configFile   string
	preset       string
	steps        int
	theme        string
	clearPending bool
	scenarioFile string
	outFile      string
	gifFile      string
	mode         string
	width        int
	height       int
	every        int
	name         string
	jsonFile     string
	thetaMin     float64
	thetaMax     float64
	sweepSteps   int
)

// main registers the hopfviz commands and executes the root command, which
// opens the terminal preset menu when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "hopfviz",
		Short: "interactive hopf fibration explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if preset != "" {
				return viz.Run(cfg, gifFile)
			}
			return viz.RunInteractive(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hopfviz", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a preset (family/name)")
	rootCmd.PersistentFlags().IntVar(&steps, "steps", config.DefaultSteps, "samples per fiber")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "midnight", "terminal theme")
	rootCmd.PersistentFlags().BoolVar(&clearPending, "clear-cancels-pending", false, "clearing also drops fibers still scheduled")
	rootCmd.Flags().StringVar(&gifFile, "gif", "hopf.gif", "GIF recording path")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg, gifFile)
		},
	}
	tuiCmd.Flags().StringVar(&gifFile, "gif", "hopf.gif", "GIF recording path")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "windowed view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			return gui.Run(ctx, cfg)
		},
	}
	guiCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width")
	guiCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height")

	sampleCmd := &cobra.Command{
		Use:   "sample [x] [y] [z]",
		Short: "print the projected fiber over a point of the sphere",
		Args:  cobra.ExactArgs(3),
		RunE:  sampleFiber,
	}
	sampleCmd.Flags().IntVar(&every, "every", 100, "print every nth sample")

	colorCmd := &cobra.Command{
		Use:   "color [x] [y] [z]",
		Short: "print the color of the fiber over a point",
		Args:  cobra.ExactArgs(3),
		RunE:  fiberColor,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "replay a scenario or preset headless and write an SVG",
		RunE:  renderSVG,
	}
	renderCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file (yaml)")
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "hopf.svg", "output file")
	renderCmd.Flags().StringVar(&mode, "mode", "paths", "paths or canvas")
	renderCmd.Flags().IntVar(&width, "width", 800, "image width")
	renderCmd.Flags().IntVar(&height, "height", 600, "image height")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "replay a scenario or preset headless and store its fibers",
		RunE:  exportFibers,
	}
	exportCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file (yaml)")
	exportCmd.Flags().StringVar(&name, "name", "session", "export name")
	exportCmd.Flags().StringVar(&jsonFile, "json", "", "also write every sample as JSON (- for stdout)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list exports",
		RunE:  listExports,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [export_id]",
		Short: "plot the fiber radii of an export",
		Args:  cobra.ExactArgs(1),
		RunE:  plotExport,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "measure fibers along a meridian of the sphere",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&thetaMin, "from", 0, "first polar angle")
	sweepCmd.Flags().Float64Var(&thetaMax, "to", 3, "last polar angle")
	sweepCmd.Flags().IntVar(&sweepSteps, "n", 60, "number of fibers")

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, sampleCmd, colorCmd, presetsCmd, renderCmd, exportCmd, listCmd, plotCmd, sweepCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration: defaults, then the preset,
// then the config file. Flags override both only when set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, err := lookupPreset(preset)
		if err != nil {
			return nil, err
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if preset != "" && len(loaded.Seed) == 0 {
			loaded.Seed = cfg.Seed
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("clear-cancels-pending") {
		cfg.ClearCancelsPending = clearPending
	}
	if cmd.Name() == "gui" && flags.Changed("width") {
		cfg.Window.Width = width
	}
	if cmd.Name() == "gui" && flags.Changed("height") {
		cfg.Window.Height = height
	}
	return cfg, cfg.Validate()
}

func lookupPreset(s string) (*config.Config, error) {
	family, presetName, ok := strings.Cut(s, "/")
	if !ok {
		return nil, fmt.Errorf("preset must be family/name, got %q (families: %v)", s, config.Families())
	}
	cfg := config.GetPreset(family, presetName)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", s, config.ListPresets(family))
	}
	return cfg, nil
}

func parsePoint(args []string) (hopf.Point3, error) {
	var v [3]float64
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return hopf.Point3{}, fmt.Errorf("coordinate %d: %w", i+1, err)
		}
		v[i] = f
	}
	p := hopf.Point3{X: v[0], Y: v[1], Z: v[2]}
	if p.Length() == 0 {
		return p, fmt.Errorf("point must not be the origin: %w", hopf.ErrInvalidInput)
	}
	return p.Normalize(), nil
}

func sampleFiber(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := parsePoint(args)
	if err != nil {
		return err
	}
	fiber, err := hopf.FiberFromPoint(p, cfg.Steps)
	if err != nil {
		return err
	}

	fmt.Printf("base: (%.6f, %.6f, %.6f)\n", p.X, p.Y, p.Z)
	fmt.Printf("color: %s (hue %d)\n", fiber.Color.Hex(), fiber.Color.Hue)
	if r, ok := hopf.FiberRadius(fiber.Points); ok {
		fmt.Printf("radius: %.6f\n", r)
	} else {
		fmt.Println("radius: unbounded")
	}
	fmt.Printf("samples: %d\n\n", len(fiber.Points))

	n := max(1, every)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "I\tX\tY\tZ")
	for i := 0; i < len(fiber.Points); i += n {
		q := fiber.Points[i]
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%.6f\n", i, q.X, q.Y, q.Z)
	}
	return w.Flush()
}

func fiberColor(cmd *cobra.Command, args []string) error {
	p, err := parsePoint(args)
	if err != nil {
		return err
	}
	c := hopf.ColorOf(p)
	r, g, b := c.RGB255()
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("      ")
	fmt.Printf("%s  hue %d  %s  rgb(%d, %d, %d)\n", swatch, c.Hue, c.Hex(), r, g, b)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	families := config.Families()
	if len(args) == 1 {
		families = args
	}
	for _, family := range families {
		presets := config.ListPresets(family)
		if len(presets) == 0 {
			fmt.Printf("no presets for family: %s\n", family)
			continue
		}
		fmt.Printf("presets for %s:\n", family)
		for _, p := range presets {
			fmt.Printf("  %s/%s\n", family, p)
		}
	}
	return nil
}

// headless replays the scenario, if any, against a fresh session and waits
// for every scheduled fiber to land.
func headless(cmd *cobra.Command) (*app.Controller, error) {
	var scenario *automation.Scenario
	if scenarioFile != "" {
		var err error
		if scenario, err = automation.LoadScenario(scenarioFile); err != nil {
			return nil, err
		}
		if scenario.Preset != "" && preset == "" {
			preset = scenario.Preset
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	ctrl, err := app.NewController(cfg)
	if err != nil {
		return nil, err
	}
	if scenario == nil {
		return ctrl, nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// JSON on stdout must not be mixed with progress lines.
	log := os.Stdout
	if jsonFile == "-" {
		log, scenario.Quiet = os.Stderr, true
	}
	fmt.Fprintf(log, "running scenario %s...\n", scenario.Name)
	start := time.Now()
	scenario.Settle = true
	res, err := automation.RunScenario(ctx, scenario, ctrl, start)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(log, "completed in %v (%v simulated)\n", time.Since(start), res.Elapsed)
	fmt.Fprintf(log, "fibers: %d\n", res.Fibers)
	return ctrl, nil
}

func sessionFibers(ctrl *app.Controller) []hopf.Fiber {
	entries := ctrl.State.Fibers.Entries()
	out := make([]hopf.Fiber, len(entries))
	for i, e := range entries {
		out[i] = e.Fiber
	}
	return out
}

func renderSVG(cmd *cobra.Command, args []string) error {
	ctrl, err := headless(cmd)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	cam := *ctrl.State.MainCamera
	cam.SetAspect(float64(width), float64(height))

	var svg string
	switch mode {
	case "paths":
		svg = export.FibersToSVG(sessionFibers(ctrl), &cam, width, height)
	case "canvas":
		c := viz.NewCanvas(max(1, width/8), max(1, height/16))
		cam.SetAspect(float64(c.Width*2), float64(c.Height*4))
		t := viz.GetTheme(theme)
		viz.RenderScene(c, ctrl.State.Main, &cam, t)
		svg = export.CanvasToSVG(c, 4, string(t.Text))
	default:
		return fmt.Errorf("unknown mode %q (paths, canvas)", mode)
	}

	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func exportFibers(cmd *cobra.Command, args []string) error {
	ctrl, err := headless(cmd)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	fibers := sessionFibers(ctrl)
	switch jsonFile {
	case "":
	case "-":
		return storage.ExportJSONStdout(name, fibers)
	default:
		if err := storage.ExportJSON(jsonFile, name, fibers); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonFile)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(name, fibers)
	if err != nil {
		return err
	}
	fmt.Printf("export id: %s\n", id)
	return nil
}

func listExports(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	exports, err := st.List()
	if err != nil {
		return err
	}

	if len(exports) == 0 {
		fmt.Println("no exports found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tFIBERS\tSTEPS")
	for _, e := range exports {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			e.ID,
			e.Name,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Count,
			e.Steps,
		)
	}
	return w.Flush()
}

func plotExport(cmd *cobra.Command, args []string) error {
	exportID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(exportID)
	if err != nil {
		return err
	}
	curves, err := st.LoadFibers(exportID)
	if err != nil {
		return err
	}

	var radii []float64
	for _, points := range curves {
		if r, ok := hopf.FiberRadius(points); ok {
			radii = append(radii, r)
		}
	}
	if len(radii) < 2 {
		return fmt.Errorf("not enough bounded fibers to plot")
	}

	fmt.Printf("export: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("fibers: %d\n\n", len(curves))
	fmt.Println(asciigraph.Plot(radii,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("projected fiber radius"),
	))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.MeridianSweep{
		ThetaMin: thetaMin,
		ThetaMax: thetaMax,
		NumSteps: sweepSteps,
		Samples:  cfg.Steps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THETA\tHUE\tRADIUS")
	for _, r := range results {
		radius := fmt.Sprintf("%.4f", r.Radius)
		if r.Line {
			radius = "line"
		}
		fmt.Fprintf(w, "%.4f\t%d\t%s\n", r.Theta, r.Hue, radius)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if radii := automation.Radii(results); len(radii) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(radii, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("radius along the meridian")))
	}
	return nil
}
