// Package sim wires the lattice, kernels, test-case geometry, and
// telemetry into one driver loop: the orchestration layer a headless
// runner or a viewer sits on top of.
package sim

import (
	"fmt"
	"log/slog"

	"golang.org/x/exp/rand"

	"github.com/myousefi2016/lgca/config"
	"github.com/myousefi2016/lgca/kernel"
	"github.com/myousefi2016/lgca/lattice"
	"github.com/myousefi2016/lgca/telemetry"
	"github.com/myousefi2016/lgca/testcase"
)

// Simulation owns one running lattice plus the PRNGs and telemetry
// sink that drive it. Every method advances the lattice by whole
// steps; there is no partial-step state for a caller to observe.
type Simulation struct {
	cfg *config.Config

	Lattice *lattice.Lattice

	stepRNG  *rand.Rand
	forceRNG *rand.Rand

	bodyForceAxis    kernel.Axis
	bodyForceEnabled bool

	output *telemetry.OutputManager

	Tick    int
	swaps   int
	swapAcc int
}

// New builds a Simulation from a loaded configuration: it allocates
// the lattice, seeds the named test case, and opens telemetry output
// if configured.
func New(cfg *config.Config) (*Simulation, error) {
	l, err := lattice.New(cfg.Derived.ModelKind, cfg.Lattice.DimX, cfg.Lattice.DimY, cfg.Lattice.CoarseRadius)
	if err != nil {
		return nil, fmt.Errorf("sim: building lattice: %w", err)
	}

	seedRNG := rand.New(rand.NewSource(uint64(cfg.Run.Seed)))
	params := testcase.Params{
		InitialDensity: cfg.TestCase.InitialDensity,
		NoiseScale:     cfg.TestCase.NoiseScale,
		ChannelHalfGap: cfg.TestCase.ChannelHalfGap,
		ObstacleRadius: cfg.TestCase.ObstacleRadius,
	}
	if err := testcase.Build(cfg.TestCase.Name, l, seedRNG, params); err != nil {
		return nil, fmt.Errorf("sim: building test case: %w", err)
	}

	out, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("sim: opening telemetry output: %w", err)
	}
	if err := out.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("sim: writing config snapshot: %w", err)
	}

	s := &Simulation{
		cfg:      cfg,
		Lattice:  l,
		stepRNG:  rand.New(rand.NewSource(uint64(cfg.Run.Seed) ^ 0x9e3779b97f4a7c15)),
		forceRNG: rand.New(rand.NewSource(uint64(cfg.Run.Seed) ^ 0xff51afd7ed558ccd)),
		output:   out,
	}

	switch cfg.BodyForce.Dir {
	case "x":
		s.bodyForceEnabled = true
		s.bodyForceAxis = kernel.AxisX
	case "y":
		s.bodyForceEnabled = true
		s.bodyForceAxis = kernel.AxisY
	}

	return s, nil
}

// SetBodyForce enables or disables the body-force operator and, when
// enabling, selects its axis. A driver can call this mid-run (e.g.
// from a UI toggle) without rebuilding the Simulation.
func (s *Simulation) SetBodyForce(enabled bool, axis kernel.Axis) {
	s.bodyForceEnabled = enabled
	s.bodyForceAxis = axis
}

// BodyForceEnabled reports whether the body-force operator currently
// runs each step.
func (s *Simulation) BodyForceEnabled() bool {
	return s.bodyForceEnabled
}

// Step advances the lattice by exactly one propagate+collide step,
// the optional body-force operator, and post-processing, in that
// fixed order. It does not flush telemetry; call Flush or Run for
// that.
func (s *Simulation) Step() {
	s.Lattice.RefreshRandomPool(s.stepRNG)
	kernel.Step(s.Lattice)

	if s.bodyForceEnabled {
		n := kernel.BodyForce(s.Lattice, s.forceRNG, s.bodyForceAxis, s.cfg.BodyForce.Intensity)
		s.swaps = n
		s.swapAcc += n
		if n < s.cfg.BodyForce.Intensity {
			slog.Warn("body force saturated before reaching its intensity",
				"swaps", n, "intensity", s.cfg.BodyForce.Intensity)
		}
	} else {
		s.swaps = 0
	}

	kernel.PrepareSource(s.Lattice, kernel.SourceCurrent)
	kernel.PerCellPass(s.Lattice)
	kernel.CoarseGrainPass(s.Lattice)

	s.Tick++
}

// Run advances the simulation by steps total steps, flushing
// telemetry every cfg.Telemetry.LogInterval steps along the way.
// Returns the first error encountered building a telemetry record;
// the lattice itself never errors mid-run.
func (s *Simulation) Run(steps int) error {
	interval := s.cfg.Telemetry.LogInterval
	for i := 0; i < steps; i++ {
		s.Step()
		if interval > 0 && s.Tick%interval == 0 {
			if err := s.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush computes the global mean velocity, writes one WindowStats
// record to telemetry output (if enabled), and logs it at info level.
// It also resets the accumulated body-force swap counter.
func (s *Simulation) Flush() error {
	meanVel, err := kernel.GlobalMeanVelocity(s.Lattice)
	if err != nil {
		return fmt.Errorf("sim: computing mean velocity: %w", err)
	}

	stats := telemetry.WindowStats{
		Step:           s.Tick,
		TotalMass:      s.Lattice.TotalPopcount(),
		MeanDensity:    meanDensity(s.Lattice),
		MeanVelocityX:  meanVel.X,
		MeanVelocityY:  meanVel.Y,
		BodyForceSwaps: s.swapAcc,
	}
	s.swapAcc = 0

	slog.Info("window flushed", "stats", stats)

	if err := s.output.WriteTelemetry(stats); err != nil {
		return fmt.Errorf("sim: writing telemetry: %w", err)
	}
	return nil
}

// Close releases the simulation's telemetry output.
func (s *Simulation) Close() error {
	return s.output.Close()
}

func meanDensity(l *lattice.Lattice) float64 {
	if l.N == 0 {
		return 0
	}
	var total float64
	count := 0
	for c := 0; c < l.N; c++ {
		total += l.Density[c]
		count++
	}
	return total / float64(count)
}
