package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/san-kum/arbor/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	seed       int64
	cycles     int
	initCycles int
	treeType   int
	rings      int
	configFile string
	preset     string
	plot       bool
	save       bool
	objOutput  string
	svgOutput  string
	theme      string
	viewWidth  int
	viewHeight int
	yaw        float32
	treeCount  int
	samples    int
	workers    int
	axes       []string
	metricName string
	target     float64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd registers the arbor commands. Without a subcommand the root
// opens the preset picker.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "procedural tree growth",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		RunE:          runLive,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".arbor", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	growCmd := &cobra.Command{
		Use:   "grow",
		Short: "grow a tree and print a summary",
		Args:  cobra.NoArgs,
		RunE:  growTree,
	}
	addGrowthFlags(growCmd)
	growCmd.Flags().IntVar(&rings, "rings", config.DefaultRingVertices, "vertices per branch ring")
	growCmd.Flags().BoolVar(&plot, "plot", false, "plot live buds per cycle")
	growCmd.Flags().BoolVar(&save, "save", false, "save the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "render a saved run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringVar(&theme, "theme", "forest", "color theme")
	showCmd.Flags().IntVar(&viewWidth, "width", 60, "canvas width in cells")
	showCmd.Flags().IntVar(&viewHeight, "height", 30, "canvas height in cells")

	exportOBJCmd := &cobra.Command{
		Use:   "export-obj [run_id]",
		Short: "export a saved run as OBJ + MTL",
		Args:  cobra.ExactArgs(1),
		RunE:  exportOBJ,
	}
	exportOBJCmd.Flags().StringVarP(&objOutput, "output", "o", "tree.obj", "output file")
	exportOBJCmd.Flags().IntVar(&rings, "rings", config.DefaultRingVertices, "vertices per branch ring")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a saved run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOutput, "output", "o", "tree.svg", "output file")
	exportSVGCmd.Flags().Float32Var(&yaw, "yaw", 0, "view rotation about the vertical axis (degrees)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a saved run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	forestCmd := &cobra.Command{
		Use:   "forest",
		Short: "grow consecutive seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  growForest,
	}
	addGrowthFlags(forestCmd)
	forestCmd.Flags().IntVarP(&treeCount, "count", "n", 8, "number of trees")
	forestCmd.Flags().IntVar(&workers, "workers", 0, "parallel growers (0 = GOMAXPROCS)")
	forestCmd.Flags().BoolVar(&save, "save", false, "save every tree")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list tree presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Printf("  %-10s type %-9s %2d cycles, %d init\n", name, config.TreeTypeNames[p.TreeType], p.Cycles, p.InitCycles)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a tree grow",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addGrowthFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "forest", "color theme")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search growth parameters toward a metric target",
		Args:  cobra.NoArgs,
		RunE:  tuneParams,
	}
	addGrowthFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&axes, "param", nil, "searched parameter as name=from:to:steps (repeatable)")
	tuneCmd.Flags().StringVar(&metricName, "metric", "height", "metric to steer")
	tuneCmd.Flags().Float64Var(&target, "target", 10, "metric target value")
	tuneCmd.Flags().IntVarP(&samples, "samples", "n", 4, "seeds averaged per combination")
	tuneCmd.Flags().IntVar(&workers, "workers", 0, "parallel growers (0 = GOMAXPROCS)")
	tuneCmd.MarkFlagRequired("param")

	rootCmd.AddCommand(growCmd, listCmd, showCmd, exportOBJCmd, exportSVGCmd, exportJSONCmd, forestCmd, presetsCmd, liveCmd, tuneCmd)
	return rootCmd
}

func addGrowthFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&cycles, "cycles", config.DefaultCycles, "growth cycles")
	cmd.Flags().IntVar(&initCycles, "init-cycles", config.DefaultInitCycles, "initial trunk cycles")
	cmd.Flags().IntVar(&treeType, "type", 0, "tree type (0 classic, 1 sparse, 2 dense, 3 explosion)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig starts from the config file, the preset or the defaults, in
// that order, then applies every flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	case preset != "":
		c, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = c
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("cycles") {
		cfg.Cycles = cycles
	}
	if flags.Changed("init-cycles") {
		cfg.InitCycles = initCycles
	}
	if flags.Changed("type") {
		cfg.TreeType = treeType
		cfg.Orders = nil
	}
	if flags.Changed("rings") {
		cfg.RingVertices = rings
	}
	if _, err := config.TreeTypeParams(cfg.TreeType); err != nil && len(cfg.Orders) == 0 {
		return nil, err
	}

	slog.Debug("config resolved", "seed", cfg.Seed, "type", cfg.TreeType, "cycles", cfg.Cycles, "init_cycles", cfg.InitCycles, "preset", preset, "file", configFile)
	return cfg, nil
}
