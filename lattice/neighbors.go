package lattice

import "github.com/myousefi2016/lgca/model"

// Edge identifies one of the four grid boundaries a cell may sit on.
type Edge int

const (
	EdgeN Edge = iota
	EdgeS
	EdgeE
	EdgeW
	numEdges
)

// parity selects the row-parity-dependent offset variant a triangular
// lattice needs; HPP models use parityEven unconditionally.
type parity int

const (
	parityEven parity = iota
	parityOdd
	numParities
)

// NeighborTable holds the precomputed, model- and geometry-specific
// signed index offsets described in spec.md §4.2: a base per-
// direction, per-parity offset, plus a per-edge correction added
// whenever the source cell sits on that edge, implementing periodic
// (wrap-around) indexing without branching in the hot kernel.
type NeighborTable struct {
	dimX, dimY, n int
	numDir        int
	// offset[parity][dir] is the linear-index delta to the neighbor in
	// direction dir, assuming no boundary is crossed.
	offset [numParities][]int
	// corr[edge][parity][dir] is added to offset when the source cell
	// lies on that edge.
	corr [numEdges][numParities][]int
}

// gridStep returns the (dx, dy) row-major grid displacement for
// direction d under the given row parity, for the given model kind.
// This is a storage-grid addressing concern, distinct from the
// model package's physical basis vectors used for momentum: on the
// staggered FHP grid, the step taken to reach a diagonal neighbor
// differs between even and odd rows, even though both rows share one
// physical lattice geometry.
func gridStep(k model.Kind, d int, p parity) (dx, dy int) {
	if k == model.HPP {
		switch d {
		case 0:
			return 1, 0 // E
		case 1:
			return 0, 1 // N
		case 2:
			return -1, 0 // W
		case 3:
			return 0, -1 // S
		default:
			return 0, 0
		}
	}

	// FHP: directions 0..5 are E, NE, NW, W, SW, SE; 6/7 are rest
	// particles with no displacement. Even and odd rows disagree on
	// which column the diagonal neighbors sit in, per the half-cell
	// east shift of odd rows (spec.md §3).
	if p == parityEven {
		switch d {
		case 0:
			return 1, 0 // E
		case 1:
			return 0, 1 // NE
		case 2:
			return -1, 1 // NW
		case 3:
			return -1, 0 // W
		case 4:
			return -1, -1 // SW
		case 5:
			return 0, -1 // SE
		default:
			return 0, 0
		}
	}
	switch d {
	case 0:
		return 1, 0 // E
	case 1:
		return 1, 1 // NE
	case 2:
		return 0, 1 // NW
	case 3:
		return -1, 0 // W
	case 4:
		return 0, -1 // SW
	case 5:
		return 1, -1 // SE
	default:
		return 0, 0
	}
}

// buildNeighborTable constructs the offset and edge-correction tables
// for the given model and grid dimensions.
func buildNeighborTable(k model.Kind, numDir, dimX, dimY int) *NeighborTable {
	nt := &NeighborTable{dimX: dimX, dimY: dimY, n: dimX * dimY, numDir: numDir}
	n := nt.n

	for p := parity(0); p < numParities; p++ {
		nt.offset[p] = make([]int, numDir)
		for d := 0; d < numDir; d++ {
			dx, dy := gridStep(k, d, p)
			nt.offset[p][d] = dy*dimX + dx
		}
		for e := Edge(0); e < numEdges; e++ {
			nt.corr[e][p] = make([]int, numDir)
			for d := 0; d < numDir; d++ {
				dx, dy := gridStep(k, d, p)
				var c int
				switch e {
				case EdgeE:
					if dx > 0 {
						c = -dimX
					}
				case EdgeW:
					if dx < 0 {
						c = dimX
					}
				case EdgeN:
					if dy > 0 {
						c = -n
					}
				case EdgeS:
					if dy < 0 {
						c = n
					}
				}
				nt.corr[e][p][d] = c
			}
		}
	}
	return nt
}

// rowParity returns the storage parity of the row containing linear
// index c; HPP ignores parity (gridStep never branches on it) but we
// still compute it uniformly.
func (nt *NeighborTable) rowParity(c int) parity {
	y := c / nt.dimX
	if y%2 == 0 {
		return parityEven
	}
	return parityOdd
}

// Neighbor returns the linear index of the neighbor of cell c in
// direction d, applying whichever edge corrections apply so that the
// grid behaves as a torus.
func (nt *NeighborTable) Neighbor(c, d int) int {
	x := c % nt.dimX
	y := c / nt.dimX
	p := nt.rowParity(c)

	idx := c + nt.offset[p][d]
	if x == nt.dimX-1 {
		idx += nt.corr[EdgeE][p][d]
	}
	if x == 0 {
		idx += nt.corr[EdgeW][p][d]
	}
	if y == nt.dimY-1 {
		idx += nt.corr[EdgeN][p][d]
	}
	if y == 0 {
		idx += nt.corr[EdgeS][p][d]
	}
	return idx
}

// OnEdge reports whether cell c sits on grid edge e, the same test
// Neighbor uses internally to decide whether a correction applies. The
// propagate+collide kernel uses this to decide whether a SOLID_SLIP
// cell needs BF_X_LUT and/or BF_Y_LUT applied.
func (nt *NeighborTable) OnEdge(c int, e Edge) bool {
	x := c % nt.dimX
	y := c / nt.dimX
	switch e {
	case EdgeE:
		return x == nt.dimX-1
	case EdgeW:
		return x == 0
	case EdgeN:
		return y == nt.dimY-1
	case EdgeS:
		return y == 0
	}
	return false
}
