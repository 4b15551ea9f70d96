package grow

import "fmt"

const (
	// ParamCount is the number of slots in a serialized parameter set.
	ParamCount = 10

	// MaxOrder is the highest branch order; deeper branching reuses its parameters.
	MaxOrder = 4
)

// Params holds the per-order growth parameters of a bud. Chances are
// probabilities in [0, 1]; Variation and BranchAngle are in degrees.
// GrowthChance and DeathChance are exclusive outcomes of the same roll, so
// their sum should not exceed 1. BranchChance only applies to buds that grew.
type Params struct {
	GrowthChance float32 `json:"growth_chance" yaml:"growth"`
	DeathChance  float32 `json:"death_chance" yaml:"death"`
	BranchChance float32 `json:"branch_chance" yaml:"branch"`
	LeafChance   float32 `json:"leaf_chance" yaml:"leaf"`
	Length       float32 `json:"length" yaml:"length"`
	Thickness    float32 `json:"thickness" yaml:"thickness"`
	Variation    float32 `json:"variation" yaml:"variation"`
	BranchAngle  float32 `json:"branch_angle" yaml:"branch_angle"`
	UpBias       float32 `json:"up_bias" yaml:"up_bias"`
	SideBias     float32 `json:"side_bias" yaml:"side_bias"`
}

// ParamsFromSlice reads a parameter set in slot order: growth, death, branch,
// leaf, length, thickness, variation, branch angle, up bias, side bias.
func ParamsFromSlice(v []float32) (Params, error) {
	if len(v) != ParamCount {
		return Params{}, fmt.Errorf("%w: got %d", ErrParamCount, len(v))
	}
	return Params{
		GrowthChance: v[0],
		DeathChance:  v[1],
		BranchChance: v[2],
		LeafChance:   v[3],
		Length:       v[4],
		Thickness:    v[5],
		Variation:    v[6],
		BranchAngle:  v[7],
		UpBias:       v[8],
		SideBias:     v[9],
	}, nil
}

// Slice returns the parameters in slot order.
func (p Params) Slice() []float32 {
	return []float32{
		p.GrowthChance, p.DeathChance, p.BranchChance, p.LeafChance,
		p.Length, p.Thickness, p.Variation, p.BranchAngle,
		p.UpBias, p.SideBias,
	}
}

// paramsForChild returns the parameter set index a child of a bud with the
// given order receives.
func paramsForChild(parentOrder int) int {
	if parentOrder >= MaxOrder-1 {
		return MaxOrder - 1
	}
	if parentOrder < 1 {
		return 1
	}
	return parentOrder
}
