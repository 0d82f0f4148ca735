// Package testcase builds the initial cell-type geometry and seed
// node-state occupancy for a named scenario. spec.md treats the test
// case as an opaque input the core only consumes (§6); this package
// is the external collaborator that produces it.
package testcase

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"
	"golang.org/x/exp/rand"

	"github.com/myousefi2016/lgca/lattice"
)

// Build dispatches to the named generator. Unknown names are a
// configuration error, left to the caller to wrap appropriately.
func Build(name string, l *lattice.Lattice, rng *rand.Rand, params Params) error {
	switch name {
	case "", "empty":
		Empty(l, params.InitialDensity, rng)
	case "channel":
		Channel(l, params.ChannelHalfGap, params.InitialDensity, rng)
	case "karman", "karman_vortex":
		KarmanVortex(l, params.ChannelHalfGap, params.ObstacleRadius, params.InitialDensity, rng)
	case "diffusion":
		Diffusion(l, params.NoiseScale, rng)
	default:
		return fmt.Errorf("testcase: unknown test case %q", name)
	}
	return nil
}

// Params bundles the per-test-case tuning knobs sourced from
// config.TestCaseConfig, kept here rather than importing config
// directly so this package has no dependency on the driver layer.
type Params struct {
	InitialDensity float64
	NoiseScale     float64
	ChannelHalfGap int
	ObstacleRadius int
}

// seedUniform fills every FLUID cell's pattern independently at
// random, each direction occupied with probability density.
func seedUniform(l *lattice.Lattice, density float64, rng *rand.Rand) {
	numDir := l.Model.NumDir
	for c := 0; c < l.N; c++ {
		if l.CellType[c] != lattice.Fluid {
			continue
		}
		var pattern uint16
		for d := 0; d < numDir; d++ {
			if rng.Float64() < density {
				pattern |= 1 << uint(d)
			}
		}
		l.SetPattern(l.Current(), c, pattern)
	}
}

// Empty seeds every cell FLUID with uniform random occupancy at the
// given density; no walls.
func Empty(l *lattice.Lattice, density float64, rng *rand.Rand) {
	seedUniform(l, density, rng)
}

// Channel walls off every row outside [centerY-halfGap,
// centerY+halfGap), where centerY is DimY/2, as SOLID_NO_SLIP,
// leaving a horizontal pipe of 2*halfGap fluid rows seeded at the given density — the minimal geometry
// S3/S4 bounce off of, generalized to arbitrary wall thickness.
func Channel(l *lattice.Lattice, halfGap int, density float64, rng *rand.Rand) {
	centerY := l.DimY / 2
	for y := 0; y < l.DimY; y++ {
		wall := y < centerY-halfGap || y >= centerY+halfGap
		for x := 0; x < l.DimX; x++ {
			c := y*l.DimX + x
			if wall {
				l.CellType[c] = lattice.SolidNoSlip
			}
		}
	}
	seedUniform(l, density, rng)
}

// KarmanVortex builds a Channel geometry plus a circular SOLID_NO_SLIP
// obstacle one quarter of the way along the channel, the classic setup
// for observing vortex shedding once a body force drives flow past it.
func KarmanVortex(l *lattice.Lattice, halfGap, obstacleRadius int, density float64, rng *rand.Rand) {
	Channel(l, halfGap, density, rng)

	cx := l.DimX / 4
	cy := l.DimY / 2
	r2 := obstacleRadius * obstacleRadius
	for y := 0; y < l.DimY; y++ {
		dy := y - cy
		for x := 0; x < l.DimX; x++ {
			dx := x - cx
			if dx*dx+dy*dy <= r2 {
				l.CellType[y*l.DimX+x] = lattice.SolidNoSlip
			}
		}
	}
}

// Diffusion seeds a smooth, noise-shaped density field rather than
// uniform random occupancy: opensimplex noise (grounded in the same
// noise-driven seeding idiom used for smooth scalar fields elsewhere
// in this codebase's ancestry) gives a spatially correlated initial
// blob, useful for watching density spread and equilibrate under pure
// collision with no walls or forcing.
func Diffusion(l *lattice.Lattice, noiseScale float64, rng *rand.Rand) {
	noise := opensimplex.New(rng.Int63())
	numDir := l.Model.NumDir

	for y := 0; y < l.DimY; y++ {
		for x := 0; x < l.DimX; x++ {
			c := y*l.DimX + x
			n := (noise.Eval2(float64(x)*noiseScale, float64(y)*noiseScale) + 1) * 0.5
			var pattern uint16
			for d := 0; d < numDir; d++ {
				if rng.Float64() < n {
					pattern |= 1 << uint(d)
				}
			}
			l.SetPattern(l.Current(), c, pattern)
		}
	}
}
