package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/arbor/internal/grow"
)

// treeTypes holds the per-order tables, in slot order growth, death,
// branch, leaf, length, thickness, variation, branch angle. Biases come from
// the config.
var treeTypes = [][grow.MaxOrder]grow.Params{
	// classic: strong trunk, no 4th order
	{
		{GrowthChance: 0.7, DeathChance: 0.00, BranchChance: 0.8, LeafChance: 0.0, Length: 1.0, Thickness: 0.8, Variation: 5, BranchAngle: 60},
		{GrowthChance: 0.8, DeathChance: 0.10, BranchChance: 0.3, LeafChance: 0.3, Length: 1.0, Thickness: 0.5, Variation: 15, BranchAngle: 30},
		{GrowthChance: 0.4, DeathChance: 0.20, BranchChance: 0.0, LeafChance: 0.8, Length: 1.0, Thickness: 0.2, Variation: 20, BranchAngle: 60},
		{},
	},
	// sparse: thin grey limbs, no 4th order
	{
		{GrowthChance: 0.5, DeathChance: 0.05, BranchChance: 0.8, LeafChance: 0.0, Length: 1.0, Thickness: 0.7, Variation: 10, BranchAngle: 45},
		{GrowthChance: 0.7, DeathChance: 0.10, BranchChance: 0.6, LeafChance: 0.5, Length: 0.8, Thickness: 0.4, Variation: 15, BranchAngle: 30},
		{GrowthChance: 0.7, DeathChance: 0.20, BranchChance: 0.0, LeafChance: 1.0, Length: 0.5, Thickness: 0.2, Variation: 15, BranchAngle: 0},
		{},
	},
	// dense: thick trunk, 4th order mostly for leaves
	{
		{GrowthChance: 1.0, DeathChance: 0.0, BranchChance: 0.8, LeafChance: 0.0, Length: 1.5, Thickness: 1.5, Variation: 3, BranchAngle: 45},
		{GrowthChance: 0.9, DeathChance: 0.1, BranchChance: 0.5, LeafChance: 0.5, Length: 1.0, Thickness: 0.9, Variation: 10, BranchAngle: 30},
		{GrowthChance: 0.6, DeathChance: 0.2, BranchChance: 0.5, LeafChance: 0.9, Length: 0.8, Thickness: 0.6, Variation: 20, BranchAngle: 60},
		{GrowthChance: 0.1, DeathChance: 0.1, BranchChance: 0.0, LeafChance: 1.0, Length: 0.5, Thickness: 0.3, Variation: 30, BranchAngle: 0},
	},
	// explosion: every order branches and leafs
	{
		{GrowthChance: 0.8, DeathChance: 0.20, BranchChance: 0.5, LeafChance: 0.8, Length: 1.0, Thickness: 1.0, Variation: 5, BranchAngle: 10},
		{GrowthChance: 0.8, DeathChance: 0.10, BranchChance: 0.5, LeafChance: 0.8, Length: 1.0, Thickness: 0.7, Variation: 15, BranchAngle: 10},
		{GrowthChance: 0.8, DeathChance: 0.20, BranchChance: 0.5, LeafChance: 0.8, Length: 1.0, Thickness: 0.5, Variation: 30, BranchAngle: 30},
		{GrowthChance: 0.7, DeathChance: 0.30, BranchChance: 0.5, LeafChance: 0.8, Length: 1.0, Thickness: 0.2, Variation: 45, BranchAngle: 0},
	},
}

// TreeTypeNames maps each tree type to its preset name.
var TreeTypeNames = []string{"classic", "sparse", "dense", "explosion"}

// TreeTypeParams returns the parameter table of a tree type, without biases.
func TreeTypeParams(treeType int) ([grow.MaxOrder]grow.Params, error) {
	if treeType < 0 || treeType >= len(treeTypes) {
		return [grow.MaxOrder]grow.Params{}, fmt.Errorf("%w: %d (0-%d)", ErrUnknownTreeType, treeType, len(treeTypes)-1)
	}
	return treeTypes[treeType], nil
}

func fromType(treeType, cycles, initCycles int) *Config {
	cfg := DefaultConfig()
	cfg.TreeType = treeType
	cfg.Cycles = cycles
	cfg.InitCycles = initCycles
	return cfg
}

var Presets = map[string]*Config{
	"classic":   fromType(0, 10, 3),
	"sparse":    fromType(1, 10, 3),
	"dense":     fromType(2, 8, 3),
	"explosion": fromType(3, 7, 2),
	"sapling":   fromType(0, 4, 2),
	"bush": func() *Config {
		cfg := fromType(1, 8, 0)
		cfg.Bias = []BiasConfig{{Side: 0.3}, {Side: 0.3}, {Side: 0.2}, {Side: 0.2}}
		return cfg
	}(),
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
