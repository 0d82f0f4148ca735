package model

import "math"

// sqrt3 is used to convert the exact integer FHP basis (see
// fhpIntBasis) into physical float64 coordinates. Keeping LUT
// construction in integer arithmetic and only converting to float64
// for the public basis avoids floating-point epsilon comparisons when
// deciding whether a pattern's momentum is exactly zero.
var sqrt3 = math.Sqrt(3)

// hppIntBasis holds the four HPP unit vectors (E, N, W, S) already in
// integer units; no irrational scale factor is needed on a square
// lattice.
var hppIntBasis = [][2]int{
	{1, 0},  // E
	{0, 1},  // N
	{-1, 0}, // W
	{0, -1}, // S
}

// fhpIntBasis holds the six FHP unit vectors at 60 degree spacing
// (E, NE, NW, W, SW, SE), represented as (a, b) with the physical
// vector equal to (a/2, b*sqrt(3)/2). Every component is then an
// integer, so momentum sums can be compared for exact equality to
// zero without floating-point tolerance.
var fhpIntBasis = [][2]int{
	{2, 0},   // E,   0 deg
	{1, 1},   // NE,  60 deg
	{-1, 1},  // NW, 120 deg
	{-2, 0},  // W,  180 deg
	{-1, -1}, // SW, 240 deg
	{1, -1},  // SE, 300 deg
}

// buildBasis returns the public float64 basis vectors, length numDir
// (spec.r rotational directions followed by numDir-r rest directions,
// each (0, 0)).
func buildBasis(spec directionSpec) (x, y []float64) {
	x = make([]float64, spec.numDir)
	y = make([]float64, spec.numDir)
	for d := 0; d < spec.r; d++ {
		a, b := spec.intBasis[d][0], spec.intBasis[d][1]
		x[d] = float64(a) * spec.scaleX
		y[d] = float64(b) * spec.scaleY
	}
	// Rest directions default to the zero value already set by make.
	return x, y
}
