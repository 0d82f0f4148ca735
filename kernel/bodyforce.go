package kernel

import (
	"golang.org/x/exp/rand"

	"github.com/myousefi2016/lgca/lattice"
)

// Axis names a body-force direction.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// BodyForce repeatedly samples a random FLUID cell and reverses one
// suitable direction pair to inject momentum along axis, stopping once
// forcing swaps have succeeded or 2*N samples have been drawn,
// whichever comes first. It reports the number of swaps actually
// performed; fewer than forcing indicates the lattice saturated and
// the iteration bound was hit, a non-fatal, logged condition rather
// than an error (spec.md §7).
func BodyForce(l *lattice.Lattice, rng *rand.Rand, axis Axis, forcing int) int {
	done := 0
	limit := 2 * l.N
	triangular := l.Model.IsTriangular()

	for iter := 0; iter < limit && done < forcing; iter++ {
		c := rng.Intn(l.N)
		if l.CellType[c] != lattice.Fluid {
			continue
		}

		p := l.Pattern(l.Current(), c)
		switch {
		case !triangular && axis == AxisX:
			if p, ok := swapIfClearSet(p, 0, 2); ok {
				l.SetPattern(l.Current(), c, p)
				done++
			}
		case !triangular && axis == AxisY:
			if p, ok := swapIfSetClear(p, 1, 3); ok {
				l.SetPattern(l.Current(), c, p)
				done++
			}
		case triangular && axis == AxisX:
			if p, ok := swapIfClearSet(p, 0, 3); ok {
				l.SetPattern(l.Current(), c, p)
				done++
			}
		case triangular && axis == AxisY:
			out := p
			if np, ok := swapIfSetClear(out, 1, 5); ok {
				out = np
				done++
			}
			if np, ok := swapIfSetClear(out, 2, 4); ok {
				out = np
				done++
			}
			if out != p {
				l.SetPattern(l.Current(), c, out)
			}
		}
	}
	return done
}

// swapIfClearSet swaps bits a and b when a is clear and b is set
// ("direction-a unoccupied and direction-b occupied"): it moves the
// particle occupying b to a.
func swapIfClearSet(p uint16, a, b int) (uint16, bool) {
	am, bm := uint16(1)<<uint(a), uint16(1)<<uint(b)
	if p&am == 0 && p&bm != 0 {
		return (p &^ bm) | am, true
	}
	return p, false
}

// swapIfSetClear swaps bits a and b when a is set and b is clear
// ("direction-a occupied and direction-b unoccupied"): it moves the
// particle occupying a to b.
func swapIfSetClear(p uint16, a, b int) (uint16, bool) {
	am, bm := uint16(1)<<uint(a), uint16(1)<<uint(b)
	if p&am != 0 && p&bm == 0 {
		return (p &^ am) | bm, true
	}
	return p, false
}
