package model

// buildCollisionLUT constructs the collision LUT by a general
// rotation-orbit argument rather than transcribing a fixed rule table:
//
// Rotating a pattern's moving bits by k steps rotates its momentum
// vector by the same k*(360/R) degrees (rotation is linear and the
// basis vectors are evenly spaced). A rotated pattern therefore
// conserves momentum if and only if the original momentum is a fixed
// point of that rotation. The only vector fixed by every nontrivial
// rotation in a finite cyclic group is the zero vector, so:
//
//   - patterns with nonzero total momentum have no available
//     collision partner and map to themselves (identity) for every
//     random bit;
//   - patterns with exactly zero total momentum (head-on pairs,
//     symmetric triples, ...) may rotate freely among every other
//     member of their rotation orbit while still conserving both mass
//     (rotation is a bit permutation) and momentum (trivially, since
//     rotating the zero vector gives the zero vector).
//
// Within a zero-momentum orbit, `rotatePattern(p, 1+b, r)` is applied
// directly: since rotate-by-1 generates the whole orbit (orbit-
// stabilizer), this is itself a cyclic permutation of the orbit for
// each fixed b, hence bijective, and by construction always lands on
// a momentum-conserving pattern. For an orbit with only one available
// alternative (b doesn't change anything, e.g. a 3-particle FHP
// symmetric triple, which has a unique complementary triple), both
// random bits necessarily select the same physically correct output.
func buildCollisionLUT(spec directionSpec) [][2]uint16 {
	size := 1 << uint(spec.numDir)
	lut := make([][2]uint16, size)

	for p := 0; p < size; p++ {
		pat := uint16(p)
		if !isZeroMomentum(pat, spec) {
			lut[p] = [2]uint16{pat, pat}
			continue
		}

		orbitSize := rotationPeriod(pat, spec.r)
		if orbitSize <= 1 {
			lut[p] = [2]uint16{pat, pat}
			continue
		}

		alt := orbitSize - 1 // number of reachable, distinct alternatives
		shift0 := 1 + (0 % alt)
		shift1 := 1 + (1 % alt)
		lut[p] = [2]uint16{
			rotatePattern(pat, shift0, spec.r),
			rotatePattern(pat, shift1, spec.r),
		}
	}
	return lut
}

// isZeroMomentum reports whether pattern p's rotational bits sum to
// the exact zero vector, using the integer (a, b) lattice basis so the
// comparison never suffers floating-point error.
func isZeroMomentum(p uint16, spec directionSpec) bool {
	var sumA, sumB int
	for d := 0; d < spec.r; d++ {
		if p&(1<<uint(d)) != 0 {
			sumA += spec.intBasis[d][0]
			sumB += spec.intBasis[d][1]
		}
	}
	return sumA == 0 && sumB == 0
}

// rotationPeriod returns the smallest t > 0 such that rotating p's
// moving bits by t steps reproduces p, i.e. the size of p's orbit
// under the cyclic rotation group generated by rotate-by-1.
func rotationPeriod(p uint16, r int) int {
	for k := 1; k <= r; k++ {
		if rotatePattern(p, k, r) == p {
			return k
		}
	}
	return r // unreachable: k == r always rotates back to p
}
