// Command lgca runs a headless lattice gas simulation: load a
// configuration, run it for a fixed number of steps, and write
// telemetry and a config snapshot to the output directory.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/myousefi2016/lgca/config"
	"github.com/myousefi2016/lgca/sim"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = embedded defaults)")
	model := flag.String("model", "", "Override lattice.model (HPP, FHP-I, FHP-II, FHP-III)")
	dimX := flag.Int("dimx", 0, "Override lattice.dim_x (0 = use config)")
	dimY := flag.Int("dimy", 0, "Override lattice.dim_y (0 = use config)")
	steps := flag.Int("steps", 0, "Override run.steps (0 = use config)")
	seed := flag.Int64("seed", 0, "Override run.seed (0 = use config)")
	testCase := flag.String("testcase", "", "Override test_case.name")
	bodyForceDir := flag.String("bodyforce-dir", "", "Override body_force.dir (\"\", \"x\", \"y\")")
	bodyForceIntensity := flag.Int("bodyforce-intensity", 0, "Override body_force.intensity (0 = use config)")
	outputDir := flag.String("output", "", "Override telemetry.output_dir")
	logInterval := flag.Int("log-interval", 0, "Override telemetry.log_interval (0 = use config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("lgca: loading config: %v", err)
	}

	applyOverrides(cfg, *model, *dimX, *dimY, *steps, *seed, *testCase, *bodyForceDir, *bodyForceIntensity, *outputDir, *logInterval)

	slog.SetDefault(slog.New(newHandler(cfg.Logging)))

	s, err := sim.New(cfg)
	if err != nil {
		log.Fatalf("lgca: %v", err)
	}
	defer s.Close()

	slog.Info("simulation starting",
		"model", cfg.Lattice.Model,
		"dim_x", cfg.Lattice.DimX,
		"dim_y", cfg.Lattice.DimY,
		"steps", cfg.Run.Steps,
		"seed", cfg.Run.Seed,
	)

	if err := s.Run(cfg.Run.Steps); err != nil {
		log.Fatalf("lgca: run failed: %v", err)
	}
	if err := s.Flush(); err != nil {
		log.Fatalf("lgca: final flush failed: %v", err)
	}

	slog.Info("simulation finished", "steps", cfg.Run.Steps)
}

func applyOverrides(cfg *config.Config, model string, dimX, dimY, steps int, seed int64, testCase, bfDir string, bfIntensity int, outputDir string, logInterval int) {
	if model != "" {
		cfg.Lattice.Model = model
	}
	if dimX != 0 {
		cfg.Lattice.DimX = dimX
	}
	if dimY != 0 {
		cfg.Lattice.DimY = dimY
	}
	if steps != 0 {
		cfg.Run.Steps = steps
	}
	if seed != 0 {
		cfg.Run.Seed = seed
	}
	if testCase != "" {
		cfg.TestCase.Name = testCase
	}
	if bfDir != "" {
		cfg.BodyForce.Dir = bfDir
	}
	if bfIntensity != 0 {
		cfg.BodyForce.Intensity = bfIntensity
	}
	if outputDir != "" {
		cfg.Telemetry.OutputDir = outputDir
	}
	if logInterval != 0 {
		cfg.Telemetry.LogInterval = logInterval
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("lgca: invalid configuration after overrides: %v", err)
	}
}

func newHandler(lc config.LoggingConfig) slog.Handler {
	level := slog.LevelInfo
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.JSON {
		return slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.NewTextHandler(os.Stdout, opts)
}
