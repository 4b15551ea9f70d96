package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/arbor/internal/config"
	"github.com/san-kum/arbor/internal/export"
	"github.com/san-kum/arbor/internal/grow"
	"github.com/san-kum/arbor/internal/mesh"
	"github.com/san-kum/arbor/internal/metrics"
	"github.com/san-kum/arbor/internal/optim"
	"github.com/san-kum/arbor/internal/storage"
	"github.com/san-kum/arbor/internal/viz"
	"github.com/spf13/cobra"
)

func growTree(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	gc, err := cfg.GrowConfig()
	if err != nil {
		return err
	}

	tree, err := grow.New(gc)
	if err != nil {
		return err
	}
	rec := grow.NewRecorder()
	tree.AddObserver(rec)

	start := time.Now()
	chains := tree.StartGrowth()
	elapsed := time.Since(start)
	slog.Info("growth finished", "seed", gc.Seed, "cycles", gc.Cycles, "chains", len(chains), "segments", tree.Segments(), "elapsed", elapsed)

	opts := mesh.DefaultRibbonOptions()
	opts.RingVertices = cfg.RingVertices
	scene, err := mesh.BuildTree(chains, tree.Leaves(), opts, mesh.NewPalette(cfg.TreeType, gc.Seed))
	if err != nil {
		return fmt.Errorf("build mesh: %w", err)
	}
	vertices, triangles := scene.Stats()
	results := metrics.Evaluate(chains, metrics.Default()...)

	fmt.Printf("seed:      %d\n", gc.Seed)
	fmt.Printf("chains:    %d\n", len(chains))
	fmt.Printf("segments:  %d\n", tree.Segments())
	fmt.Printf("leaves:    %d\n", len(tree.Leaves()))
	fmt.Printf("live buds: %d\n", len(tree.Buds()))
	fmt.Printf("mesh:      %d vertices, %d triangles\n", vertices, triangles)
	printMetrics(results)

	if plot {
		buds := rec.Series(func(s grow.CycleStats) int { return s.LiveBuds })
		if len(buds) > 1 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(buds, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("live buds per cycle")))
		}
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(runMetadata(cfg, gc, results), chains, tree.Leaves())
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		slog.Info("run saved", "id", runID, "dir", dataDir)
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func runMetadata(cfg *config.Config, gc grow.Config, results map[string]float64) storage.RunMetadata {
	return storage.RunMetadata{
		Preset:     preset,
		TreeType:   cfg.TreeType,
		Seed:       gc.Seed,
		Cycles:     gc.Cycles,
		InitCycles: gc.InitCycles,
		Orders:     gc.Orders[:],
		Metrics:    results,
	}
}

func printMetrics(results map[string]float64) {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, results[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTYPE\tTIME\tSEED\tCYCLES\tSEGMENTS\tLEAVES")
	for _, run := range runs {
		name := run.Preset
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			name,
			run.TreeType,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Cycles,
			run.Segments,
			run.Leaves,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.Run, error) {
	run, err := storage.New(dataDir).LoadRun(runID)
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}
	slog.Debug("run loaded", "id", runID, "chains", len(run.Chains), "leaves", len(run.Leaves))
	return run, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args[0])
	if err != nil {
		return err
	}
	viz.SetTheme(theme)
	canvas := viz.RenderTree(run.Chains, run.Leaves, viewWidth, viewHeight)
	fmt.Print(canvas.Styled(viz.CurrentTheme.PenStyle))
	fmt.Printf("%s  seed %d  %d segments  %d leaves\n", run.Meta.ID, run.Meta.Seed, run.Meta.Segments, run.Meta.Leaves)
	return nil
}

func exportOBJ(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args[0])
	if err != nil {
		return err
	}

	opts := mesh.DefaultRibbonOptions()
	opts.RingVertices = rings
	scene, err := mesh.BuildTree(run.Chains, run.Leaves, opts, mesh.NewPalette(run.Meta.TreeType, run.Meta.Seed))
	if err != nil {
		return fmt.Errorf("build mesh: %w", err)
	}

	mtlPath := strings.TrimSuffix(objOutput, filepath.Ext(objOutput)) + ".mtl"
	if err := writeFile(objOutput, func(f *os.File) error {
		return mesh.WriteOBJ(f, scene, filepath.Base(mtlPath))
	}); err != nil {
		return err
	}
	if err := writeFile(mtlPath, func(f *os.File) error {
		return mesh.WriteMTL(f, scene)
	}); err != nil {
		return err
	}

	vertices, triangles := scene.Stats()
	slog.Info("export written", "obj", objOutput, "mtl", mtlPath, "vertices", vertices, "triangles", triangles)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args[0])
	if err != nil {
		return err
	}

	opts := export.DefaultSVGOptions()
	opts.Yaw = yaw
	svg := export.TreeToSVG(run.Chains, run.Leaves, mesh.NewPalette(run.Meta.TreeType, run.Meta.Seed), opts)
	if err := os.WriteFile(svgOutput, []byte(svg), 0644); err != nil {
		return err
	}
	slog.Info("export written", "svg", svgOutput)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	run, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, run.Meta.Seed, run.Chains, run.Leaves)
}

func growForest(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	gc, err := cfg.GrowConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	forest := grow.NewForest(gc, treeCount)
	if workers > 0 {
		forest.SetWorkers(workers)
	}

	start := time.Now()
	trees, err := forest.Grow(ctx)
	if err != nil {
		return fmt.Errorf("grow forest: %w", err)
	}
	slog.Info("forest grown", "trees", len(trees), "base_seed", gc.Seed, "elapsed", time.Since(start))

	var st *storage.Store
	if save {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	ms := metrics.Default()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "SEED\tCHAINS\tSEGMENTS\tLEAVES"
	for _, m := range ms {
		header += "\t" + strings.ToUpper(m.Name())
	}
	if save {
		header += "\tRUN"
	}
	fmt.Fprintln(w, header)

	for _, t := range trees {
		tc := t.Config()
		results := metrics.Evaluate(t.Chains(), ms...)
		row := fmt.Sprintf("%d\t%d\t%d\t%d", tc.Seed, len(t.Chains()), t.Segments(), len(t.Leaves()))
		for _, m := range ms {
			row += fmt.Sprintf("\t%.3f", results[m.Name()])
		}
		if st != nil {
			runID, err := st.Save(runMetadata(cfg, tc, results), t.Chains(), t.Leaves())
			if err != nil {
				return fmt.Errorf("save run: %w", err)
			}
			slog.Debug("run saved", "id", runID)
			row += "\t" + runID
		}
		fmt.Fprintln(w, row)
	}
	return w.Flush()
}

func tuneParams(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	gc, err := cfg.GrowConfig()
	if err != nil {
		return err
	}

	parsed := make([]optim.Axis, 0, len(axes))
	for _, a := range axes {
		axis, err := optim.ParseAxis(a)
		if err != nil {
			return err
		}
		parsed = append(parsed, axis)
	}

	m, err := metrics.ByName(metricName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gs := optim.NewGridSearch(parsed)
	gs.Samples = samples
	gs.Workers = workers

	start := time.Now()
	res, err := gs.Search(ctx, gc, optim.TargetMetric(m, target))
	if err != nil {
		return fmt.Errorf("tune: %w", err)
	}
	slog.Info("search finished", "combinations", res.Evaluated, "samples", samples, "elapsed", time.Since(start))

	fmt.Printf("best %s distance from %.3f: %.4f\n", m.Name(), target, res.Score)
	for _, a := range parsed {
		fmt.Printf("  %s = %.4f\n", a.Name, res.Params[a.Name])
	}
	return nil
}

// growthFlags are the flags that shape a single tree. Naming any of them
// skips the preset picker.
var growthFlags = []string{"preset", "config", "cycles", "init-cycles", "type"}

func runLive(cmd *cobra.Command, args []string) error {
	viz.SetTheme(theme)
	m, err := liveModel(cmd)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

// liveModel opens the viewer on the resolved config when a growth flag was
// set, and the preset picker otherwise.
func liveModel(cmd *cobra.Command) (tea.Model, error) {
	direct := false
	for _, name := range growthFlags {
		if cmd.Flags().Changed(name) {
			direct = true
		}
	}

	if direct {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return nil, err
		}
		gc, err := cfg.GrowConfig()
		if err != nil {
			return nil, err
		}
		title := preset
		switch {
		case title != "":
		case configFile != "":
			title = filepath.Base(configFile)
		default:
			title = config.TreeTypeNames[cfg.TreeType]
		}
		return viz.NewModel(gc, title), nil
	}

	names := config.ListPresets()
	choices := make([]viz.Choice, 0, len(names))
	for _, name := range names {
		p, err := config.GetPreset(name)
		if err != nil {
			return nil, err
		}
		if cmd.Flags().Changed("seed") || p.Seed == 0 {
			p.Seed = seed
		}
		gc, err := p.GrowConfig()
		if err != nil {
			return nil, err
		}
		choices = append(choices, viz.Choice{Name: name, Config: gc})
	}
	return viz.NewPicker(choices), nil
}

func writeFile(path string, fill func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
