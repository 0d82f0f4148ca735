package kernel

import (
	"testing"

	"github.com/myousefi2016/lgca/lattice"
	"github.com/myousefi2016/lgca/model"
)

// TestHPPHeadOnPairMergesAndRotates exercises the collision LUT
// entry validated in isolation by the model package, but end to end
// through gather + collide: two particles launched toward each other
// across a one-cell gap converge onto the cell between them as a
// genuine head-on pair, which the HPP collision rule then rotates
// onto the north-south axis, all within a single fused
// propagate+collide step.
func TestHPPHeadOnPairMergesAndRotates(t *testing.T) {
	l, err := lattice.New(model.HPP, 4, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	// cell 0 carries an E-moving particle, cell 2 a W-moving particle;
	// both converge on cell 1 after one step.
	l.SetPattern(l.Current(), 0, 1<<0)
	l.SetPattern(l.Current(), 2, 1<<2)

	Step(l)

	got := l.Pattern(l.Current(), 1)
	want := uint16(1<<1 | 1<<3) // N + S
	if got != want {
		t.Fatalf("meeting cell pattern = %04b, want %04b", got, want)
	}
}

// TestMassConservedOverManySteps is the kernel-level form of S2: on
// an all-FLUID periodic lattice, total popcount is unchanged by any
// number of propagate+collide steps.
func TestMassConservedOverManySteps(t *testing.T) {
	l, err := lattice.New(model.FHP1, 16, 16, 0)
	if err != nil {
		t.Fatal(err)
	}
	rng := newTestRand(1)
	for c := 0; c < l.N; c++ {
		pattern := uint16(0)
		for d := 0; d < l.Model.NumDir; d++ {
			if rng.Float64() < 0.3 {
				pattern |= 1 << uint(d)
			}
		}
		l.SetPattern(l.Current(), c, pattern)
	}

	before := l.TotalPopcount()
	for step := 0; step < 50; step++ {
		l.RefreshRandomPool(rng)
		Step(l)
		if got := l.TotalPopcount(); got != before {
			t.Fatalf("step %d: total popcount = %d, want %d", step, got, before)
		}
	}
}

// TestBounceBackWallPeriod validates S3: a single particle launched
// north from the fluid row against a SOLID_NO_SLIP wall returns to its
// starting cell and direction after exactly 14 steps on an 8-row
// grid (6 fluid rows sandwiched between two solid rows).
func TestBounceBackWallPeriod(t *testing.T) {
	l, err := lattice.New(model.HPP, 1, 8, 0)
	if err != nil {
		t.Fatal(err)
	}
	l.CellType[0] = lattice.SolidNoSlip // y=0
	l.CellType[7] = lattice.SolidNoSlip // y=7

	const start = 6 // fluid row directly below the top wall
	l.SetPattern(l.Current(), start, 1<<1) // moving north

	Step(l)
	if got := l.Pattern(l.Current(), 7); got != 1<<3 {
		t.Fatalf("step 1: wall cell pattern = %04b, want south-only %04b", got, uint16(1<<3))
	}

	for step := 2; step <= 14; step++ {
		Step(l)
	}
	if got := l.Pattern(l.Current(), start); got != 1<<1 {
		t.Fatalf("after 14 steps: cell %d pattern = %04b, want north-only %04b", start, got, uint16(1<<1))
	}
	for c := 0; c < l.N; c++ {
		if c == start {
			continue
		}
		if p := l.Pattern(l.Current(), c); p != 0 {
			t.Fatalf("after 14 steps: unexpected occupancy %04b at cell %d, want empty", p, c)
		}
	}
}

// TestSpecularSlipWallReflectsNEToSE validates S4: a particle moving
// northeast against a SOLID_SLIP wall reflects to southeast,
// conserving its x-component (BF_X_LUT mirrors across the x-axis).
func TestSpecularSlipWallReflectsNEToSE(t *testing.T) {
	l, err := lattice.New(model.FHP1, 4, 8, 0)
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 4; x++ {
		l.CellType[0*4+x] = lattice.SolidSlip // y=0
		l.CellType[7*4+x] = lattice.SolidSlip // y=7
	}

	const x = 1
	const yBelowWall = 6
	src := yBelowWall*4 + x
	l.SetPattern(l.Current(), src, 1<<1) // NE

	Step(l)

	wall := 7*4 + x
	if got := l.Pattern(l.Current(), wall); got != 1<<5 {
		t.Fatalf("wall cell pattern = %06b, want SE-only %06b", got, uint16(1<<5))
	}
}
