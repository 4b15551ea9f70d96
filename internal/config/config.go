package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/arbor/internal/grow"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCycles       = 10
	DefaultInitCycles   = 3
	DefaultRingVertices = 8
	DefaultUpBias       = 0.1
)

var (
	ErrUnknownTreeType = errors.New("config: unknown tree type")
	ErrUnknownPreset   = errors.New("config: unknown preset")
	ErrOrderCount      = errors.New("config: orders must list exactly 4 parameter sets")
)

type Config struct {
	Seed         int64         `yaml:"seed"`
	TreeType     int           `yaml:"tree_type"`
	Cycles       int           `yaml:"cycles"`
	InitCycles   int           `yaml:"init_cycles"`
	RingVertices int           `yaml:"ring_vertices"`
	Bias         []BiasConfig  `yaml:"bias,omitempty"`
	Orders       []grow.Params `yaml:"orders,omitempty"`
}

// BiasConfig overrides the directional pull of one order; entry i applies
// to order i+1.
type BiasConfig struct {
	Up   float32 `yaml:"up"`
	Side float32 `yaml:"side"`
}

func DefaultConfig() *Config {
	bias := make([]BiasConfig, grow.MaxOrder)
	for i := range bias {
		bias[i] = BiasConfig{Up: DefaultUpBias}
	}
	return &Config{
		TreeType:     0,
		Cycles:       DefaultCycles,
		InitCycles:   DefaultInitCycles,
		RingVertices: DefaultRingVertices,
		Bias:         bias,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// OrderParams resolves the four per-order parameter sets. An explicit
// Orders list is used as is, biases included. Otherwise the TreeType table
// is used with the Bias entries applied on top.
func (c *Config) OrderParams() ([grow.MaxOrder]grow.Params, error) {
	var orders [grow.MaxOrder]grow.Params
	if len(c.Orders) > 0 {
		if len(c.Orders) != grow.MaxOrder {
			return orders, fmt.Errorf("%w: got %d", ErrOrderCount, len(c.Orders))
		}
		copy(orders[:], c.Orders)
		return orders, nil
	}

	t, err := TreeTypeParams(c.TreeType)
	if err != nil {
		return orders, err
	}
	orders = t

	for i, b := range c.Bias {
		if i >= grow.MaxOrder {
			break
		}
		orders[i].UpBias = b.Up
		orders[i].SideBias = b.Side
	}
	return orders, nil
}

func (c *Config) GrowConfig() (grow.Config, error) {
	orders, err := c.OrderParams()
	if err != nil {
		return grow.Config{}, err
	}
	return grow.Config{
		Seed:       c.Seed,
		Cycles:     c.Cycles,
		InitCycles: c.InitCycles,
		Orders:     orders,
	}, nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Bias = append([]BiasConfig(nil), c.Bias...)
	out.Orders = append([]grow.Params(nil), c.Orders...)
	return &out
}
