package kernel

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/myousefi2016/lgca/lattice"
	"github.com/myousefi2016/lgca/simerr"
)

// Source selects which node-state buffer the post-process kernel
// reads, resolving spec.md's open question on the post-process input
// buffer: the driver decides explicitly rather than the core picking
// silently.
type Source int

const (
	// SourceCurrent post-processes the state just produced by Step.
	SourceCurrent Source = iota
	// SourceSnapshot post-processes a buffer frozen at the last
	// SnapshotOutput call, independent of how many steps have run
	// since.
	SourceSnapshot
)

// PrepareSource points the lattice's Output buffer according to src.
func PrepareSource(l *lattice.Lattice, src Source) {
	switch src {
	case SourceSnapshot:
		l.SnapshotOutput()
	default:
		l.UseCurrentOutput()
	}
}

const epsilon = 1e-6

// PerCellPass computes per-cell density and momentum from
// l.Output, parallel over cells, never mutating node state.
func PerCellPass(l *lattice.Lattice) {
	basisX, basisY := l.Model.BasisX, l.Model.BasisY
	numDir := l.Model.NumDir
	out := l.Output

	forEachChunk(l.N, func(lo, hi int) {
		for c := lo; c < hi; c++ {
			pattern := l.Pattern(out, c)
			var dens float64
			var mx, my float64
			for d := 0; d < numDir; d++ {
				if pattern&(1<<uint(d)) != 0 {
					dens++
					mx += basisX[d]
					my += basisY[d]
				}
			}
			l.Density[c] = dens
			l.Momentum[c] = lattice.Vec2{X: mx, Y: my}
		}
	})
}

// CoarseGrainPass computes the windowed average of density and
// momentum into the coarse grid. Must run after PerCellPass.
//
// The window for coarse cell C starts at its bottom-left fine cell c0
// and spans (2r+1) columns and rows; columns or rows that would run
// past the grid edge are simply dropped rather than wrapped, so a
// coarse cell near the east or north edge of a non-evenly-divisible
// grid averages over fewer than (2r+1)^2 fine cells. This is the
// chosen resolution of an ambiguity in how the window's edge
// contributions are filtered; see DESIGN.md.
func CoarseGrainPass(l *lattice.Lattice) {
	r := l.CoarseR
	window := 2*r + 1

	forEachChunk(l.CoarseW*l.CoarseH, func(lo, hi int) {
		dens := make([]float64, 0, window*window)
		mx := make([]float64, 0, window*window)
		my := make([]float64, 0, window*window)

		for ci := lo; ci < hi; ci++ {
			cx := ci % l.CoarseW
			cy := ci / l.CoarseW
			c0x := cx * window
			c0y := cy * window

			dens, mx, my = dens[:0], mx[:0], my[:0]
			for yy := 0; yy <= 2*r; yy++ {
				ny := c0y + yy
				if ny >= l.DimY {
					continue
				}
				for xx := 0; xx <= 2*r; xx++ {
					nx := c0x + xx
					if nx >= l.DimX {
						continue
					}
					idx := ny*l.DimX + nx
					dens = append(dens, l.Density[idx])
					mx = append(mx, l.Momentum[idx].X)
					my = append(my, l.Momentum[idx].Y)
				}
			}
			count := len(dens)
			if count == 0 {
				continue
			}
			n := float64(count)
			l.MeanDensity[ci] = floats.Sum(dens) / n
			l.MeanMomentum[ci] = lattice.Vec2{X: floats.Sum(mx) / n, Y: floats.Sum(my) / n}
		}
	})
}

// GlobalMeanVelocity reduces momentum/density over every FLUID cell
// with density above epsilon, returning the mean velocity vector.
// Negative density is a data-corruption bug, not a recoverable
// condition, and is reported as an InvariantError (spec.md §7).
func GlobalMeanVelocity(l *lattice.Lattice) (lattice.Vec2, error) {
	vx := make([]float64, 0, l.N)
	vy := make([]float64, 0, l.N)

	for c := 0; c < l.N; c++ {
		if l.CellType[c] != lattice.Fluid {
			continue
		}
		dens := l.Density[c]
		if dens < 0 {
			return lattice.Vec2{}, simerr.NewInvariantError(
				"negative cell density", "mean-velocity reduction observed density < 0")
		}
		if dens <= epsilon {
			continue
		}
		vx = append(vx, l.Momentum[c].X/dens)
		vy = append(vy, l.Momentum[c].Y/dens)
	}
	if len(vx) == 0 {
		return lattice.Vec2{}, nil
	}
	return lattice.Vec2{X: stat.Mean(vx, nil), Y: stat.Mean(vy, nil)}, nil
}
