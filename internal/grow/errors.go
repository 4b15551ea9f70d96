package grow

import "errors"

var (
	// ErrParamCount indicates a parameter slice that does not hold exactly ParamCount values.
	ErrParamCount = errors.New("grow: parameter set must have exactly 10 values")

	// ErrNegativeCycles indicates a negative cycle or init cycle count.
	ErrNegativeCycles = errors.New("grow: cycle counts must be non-negative")
)
