// Package model holds the per-model compile-time constants for the
// lattice gas automaton: direction counts, lattice basis vectors, and
// the collision/bounce-back/bounce-forward lookup tables.
package model

import "fmt"

// Kind identifies one of the four supported particle-velocity models.
type Kind uint8

const (
	HPP Kind = iota
	FHP1
	FHP2
	FHP3
)

// String returns the conventional short name of the model.
func (k Kind) String() string {
	switch k {
	case HPP:
		return "HPP"
	case FHP1:
		return "FHP-I"
	case FHP2:
		return "FHP-II"
	case FHP3:
		return "FHP-III"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsTriangular reports whether the model is stored on the staggered
// triangular lattice (odd rows shifted half a cell east).
func (k Kind) IsTriangular() bool {
	return k != HPP
}

// ParseKind resolves a model name as accepted from configuration
// (case-sensitive on the canonical short names, plus a couple of
// common spellings).
func ParseKind(s string) (Kind, error) {
	switch s {
	case "HPP", "hpp":
		return HPP, nil
	case "FHP-I", "FHP1", "fhp1", "fhp-i":
		return FHP1, nil
	case "FHP-II", "FHP2", "fhp2", "fhp-ii":
		return FHP2, nil
	case "FHP-III", "FHP3", "fhp3", "fhp-iii":
		return FHP3, nil
	default:
		return 0, fmt.Errorf("unknown model %q", s)
	}
}

// Descriptor is the resolved, immutable record of a model's
// directions, basis vectors, and permutation LUTs. Construction is a
// one-time offline step (run at New, never touched by the hot kernel).
type Descriptor struct {
	Kind Kind

	// NumDir is the total bit width of a cell's node pattern,
	// including any rest directions.
	NumDir int

	// R is the count of rotational (moving) directions: 4 for HPP, 6
	// for every FHP variant. Rest directions, if any, occupy indices
	// [R, NumDir) and are fixed points of every rotation.
	R int

	// BasisX, BasisY are the floating-point unit lattice vectors per
	// direction, length NumDir. Rest directions carry (0, 0).
	BasisX []float64
	BasisY []float64

	// InvDir[d] is the direction opposite d (180 degree rotation).
	// Rest directions map to themselves.
	InvDir []uint8

	// MirX[d], MirY[d] are the directions obtained by mirroring d
	// across the x- and y-axis respectively.
	MirX []uint8
	MirY []uint8

	// CollisionLUT[pattern][b] is the post-collision pattern for a
	// fluid cell with node pattern `pattern` and tie-break bit b.
	CollisionLUT [][2]uint16

	// BBLUT is the bounce-back (no-slip) permutation: BBLUT[pattern]
	// reverses every occupied direction.
	BBLUT []uint16

	// BFXLUT, BFYLUT are the bounce-forward (free-slip) permutations
	// for walls normal to y (north/south edges) and x (east/west
	// edges) respectively.
	BFXLUT []uint16
	BFYLUT []uint16
}

// New builds the descriptor for the given model kind.
func New(k Kind) (*Descriptor, error) {
	spec, ok := directionSpecs[k]
	if !ok {
		return nil, fmt.Errorf("model: unknown kind %v", k)
	}

	d := &Descriptor{
		Kind:   k,
		NumDir: spec.numDir,
		R:      spec.r,
	}
	d.BasisX, d.BasisY = buildBasis(spec)
	d.InvDir = buildInvDir(spec)
	d.MirX, d.MirY = buildMirrors(spec)
	d.CollisionLUT = buildCollisionLUT(spec)
	d.BBLUT = buildPermutationLUT(spec.numDir, d.InvDir)
	d.BFXLUT = buildPermutationLUT(spec.numDir, d.MirX)
	d.BFYLUT = buildPermutationLUT(spec.numDir, d.MirY)
	return d, nil
}

// directionSpec is the small set of numbers that determine everything
// else about a model: its rotational direction count, its total
// direction count (rotational + rest), and the exact integer lattice
// vectors used to build LUTs without floating-point error.
type directionSpec struct {
	numDir int
	r      int
	// intBasis holds exact integer-scaled basis vectors for the R
	// rotational directions only; rest directions are always (0, 0)
	// and are appended separately. See basis.go for the scale
	// convention (unit integers for HPP, the (a, b) sqrt(3) convention
	// for FHP).
	intBasis [][2]int
	// scaleX, scaleY convert intBasis units to physical float64
	// units: physical = (a*scaleX, b*scaleY).
	scaleX, scaleY float64
}

var directionSpecs = map[Kind]directionSpec{
	HPP:  {numDir: 4, r: 4, intBasis: hppIntBasis, scaleX: 1, scaleY: 1},
	FHP1: {numDir: 6, r: 6, intBasis: fhpIntBasis, scaleX: 0.5, scaleY: sqrt3 / 2},
	FHP2: {numDir: 7, r: 6, intBasis: fhpIntBasis, scaleX: 0.5, scaleY: sqrt3 / 2},
	FHP3: {numDir: 8, r: 6, intBasis: fhpIntBasis, scaleX: 0.5, scaleY: sqrt3 / 2},
}
