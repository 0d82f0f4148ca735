// Package config provides configuration loading and access for the
// lattice gas simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/myousefi2016/lgca/model"
	"github.com/myousefi2016/lgca/simerr"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every externally supplied simulation parameter
// (spec.md §6's "Configuration inputs"), plus the ambient concerns
// (telemetry output, logging) an external driver needs.
type Config struct {
	Lattice   LatticeConfig   `yaml:"lattice"`
	BodyForce BodyForceConfig `yaml:"body_force"`
	Run       RunConfig       `yaml:"run"`
	TestCase  TestCaseConfig  `yaml:"test_case"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// LatticeConfig holds the model and geometry parameters.
type LatticeConfig struct {
	Model        string  `yaml:"model"`
	DimX         int     `yaml:"dim_x"`
	DimY         int     `yaml:"dim_y"`
	Reynolds     float64 `yaml:"reynolds"`
	MachSpeed    float64 `yaml:"mach_speed"`
	CoarseRadius int     `yaml:"coarse_graining_radius"`
}

// BodyForceConfig holds the body-force operator's parameters.
// Dir is "x", "y", or "" to disable the operator entirely.
type BodyForceConfig struct {
	Dir       string `yaml:"dir"`
	Intensity int    `yaml:"intensity"`
}

// RunConfig holds the driver-level run parameters.
type RunConfig struct {
	Steps int   `yaml:"steps"`
	Seed  int64 `yaml:"seed"`
}

// TestCaseConfig names the initial geometry/seeding generator and its
// parameters, consumed by the testcase package.
type TestCaseConfig struct {
	Name            string  `yaml:"name"`
	InitialDensity  float64 `yaml:"initial_density"`
	NoiseScale      float64 `yaml:"noise_scale"`
	ChannelHalfGap  int     `yaml:"channel_half_gap"`
	ObstacleRadius  int     `yaml:"obstacle_radius"`
}

// TelemetryConfig holds output parameters for the telemetry package.
type TelemetryConfig struct {
	OutputDir   string `yaml:"output_dir"`
	LogInterval int    `yaml:"log_interval"`
	StatsWindow int    `yaml:"stats_window"`
}

// LoggingConfig holds log/slog setup parameters.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DerivedConfig holds values computed once after loading, so hot
// paths never recompute them.
type DerivedConfig struct {
	ModelKind model.Kind
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate re-runs the same checks Load applies and recomputes derived
// values, so a driver that mutates a loaded Config (e.g. applying CLI
// flag overrides) can re-validate before using it.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// validate rejects configuration spec.md §7 calls a fatal
// configuration error: an unknown model name, non-positive
// dimensions, odd DIM_Y for a triangular model, or a negative coarse
// radius.
func (c *Config) validate() error {
	kind, err := model.ParseKind(c.Lattice.Model)
	if err != nil {
		return simerr.NewConfigError("lattice.model", err.Error())
	}
	if c.Lattice.DimX <= 0 || c.Lattice.DimY <= 0 {
		return simerr.NewConfigError("lattice.dim_x/dim_y", "must be positive")
	}
	if kind.IsTriangular() && c.Lattice.DimY%2 != 0 {
		return simerr.NewConfigError("lattice.dim_y", "must be even for a triangular (FHP) model")
	}
	if c.Lattice.CoarseRadius < 0 {
		return simerr.NewConfigError("lattice.coarse_graining_radius", "must be non-negative")
	}
	switch c.BodyForce.Dir {
	case "", "x", "y":
	default:
		return simerr.NewConfigError("body_force.dir", "must be \"x\", \"y\", or empty")
	}
	return nil
}

// computeDerived resolves the model name into its Kind once, so
// callers never re-parse it.
func (c *Config) computeDerived() {
	c.Derived.ModelKind, _ = model.ParseKind(c.Lattice.Model)
}

// WriteYAML marshals the configuration back to YAML and writes it to
// path, letting a run's telemetry directory carry a record of exactly
// what parameters produced it.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
