// Package lattice owns the bit-packed node-state buffers, cell-type
// map, neighbor-offset tables, and derived density/momentum fields for
// one simulated grid, and the ping-pong swap between step buffers.
package lattice

import (
	"golang.org/x/exp/rand"

	"github.com/myousefi2016/lgca/bitset"
	"github.com/myousefi2016/lgca/model"
	"github.com/myousefi2016/lgca/simerr"
)

// Stride is the per-cell bit alignment: NUM_DIR is at most 8 (FHP-III),
// so an 8-bit stride keeps every cell's pattern inside one byte-
// aligned span and leaves room for future models without repacking.
const Stride = 8

// Vec2 is a 2-component real vector, used for momentum and velocity.
type Vec2 struct{ X, Y float64 }

// Lattice owns one simulated grid: its model, dimensions, cell types,
// the current/next node-state ping-pong pair, the per-step random-bit
// pool, and the derived fields written by the post-process kernel.
type Lattice struct {
	Model *model.Descriptor

	DimX, DimY int
	N          int
	CoarseR    int
	CoarseW    int
	CoarseH    int

	Neighbors *NeighborTable

	CellType []CellType

	cur, next *bitset.BitSet
	// Output is the buffer the post-process kernel reads from. Per
	// SPEC_FULL.md's resolution of the post-process-input open
	// question, it defaults to aliasing cur (SourceCurrent) and is
	// only repointed at an explicit snapshot when the driver asks for
	// SourceSnapshot semantics.
	Output *bitset.BitSet

	Random *bitset.BitSet

	Density  []float64
	Momentum []Vec2

	MeanDensity  []float64
	MeanMomentum []Vec2
	windowCount  []int
}

// New validates dims/model/coarse radius and allocates a fully zeroed
// lattice: all cells FLUID, all node state empty. Callers seed cell
// types and initial occupancy afterward (the core treats the initial
// geometry as an input, per spec.md §6).
func New(kind model.Kind, dimX, dimY, coarseR int) (*Lattice, error) {
	if dimX <= 0 || dimY <= 0 {
		return nil, simerr.NewConfigError("dims", "DIM_X and DIM_Y must be positive")
	}
	desc, err := model.New(kind)
	if err != nil {
		return nil, simerr.NewConfigError("model", err.Error())
	}
	if desc.IsTriangular() && dimY%2 != 0 {
		return nil, simerr.NewConfigError("DIM_Y", "must be even for a triangular (FHP) model")
	}
	if coarseR < 0 {
		return nil, simerr.NewConfigError("coarse_graining_radius", "must be non-negative")
	}

	n := dimX * dimY
	window := 2*coarseR + 1
	cw := (dimX + window - 1) / window
	ch := (dimY + window - 1) / window

	l := &Lattice{
		Model:     desc,
		DimX:      dimX,
		DimY:      dimY,
		N:         n,
		CoarseR:   coarseR,
		CoarseW:   cw,
		CoarseH:   ch,
		Neighbors: buildNeighborTable(kind, desc.NumDir, dimX, dimY),

		CellType: make([]CellType, n),

		cur:  bitset.New(n * Stride),
		next: bitset.New(n * Stride),

		Random: bitset.New(n),

		Density:  make([]float64, n),
		Momentum: make([]Vec2, n),

		MeanDensity:  make([]float64, cw*ch),
		MeanMomentum: make([]Vec2, cw*ch),
		windowCount:  make([]int, cw*ch),
	}
	l.Output = l.cur
	return l, nil
}

// Current returns the node-state buffer the kernel should read from
// this step.
func (l *Lattice) Current() *bitset.BitSet { return l.cur }

// Next returns the scratch node-state buffer the kernel should write
// to this step.
func (l *Lattice) Next() *bitset.BitSet { return l.next }

// Pattern reads cell c's full NUM_DIR-bit occupancy from buf.
func (l *Lattice) Pattern(buf *bitset.BitSet, c int) uint16 {
	return buf.GetRange(c*Stride, l.Model.NumDir)
}

// SetPattern writes cell c's NUM_DIR-bit occupancy into buf.
func (l *Lattice) SetPattern(buf *bitset.BitSet, c int, pattern uint16) {
	buf.SetRange(c*Stride, l.Model.NumDir, pattern)
}

// Swap exchanges the current and next buffers, the sequential,
// driver-owned act that establishes the happens-before boundary
// between steps (spec.md §5). SourceCurrent post-processing tracks
// the swap automatically since Output aliases cur; an Output pointing
// at a snapshot is left in place.
func (l *Lattice) Swap() {
	tracking := l.Output == l.cur
	l.cur, l.next = l.next, l.cur
	if tracking {
		l.Output = l.cur
	}
}

// SnapshotOutput copies cur into a dedicated buffer and points Output
// at it, implementing the SourceSnapshot post-process policy: later
// steps keep mutating cur/next without disturbing what post-process
// sees until the driver snapshots again.
func (l *Lattice) SnapshotOutput() {
	snap := bitset.New(l.N * Stride)
	snap.CopyFrom(l.cur)
	l.Output = snap
}

// UseCurrentOutput reverts to the SourceCurrent policy, aliasing
// Output back onto cur.
func (l *Lattice) UseCurrentOutput() {
	l.Output = l.cur
}

// RefreshRandomPool redraws one tie-break bit per cell. Must be called
// before each step; the body-force operator uses its own explicit
// *rand.Rand and does not consume this pool (spec.md's open question
// on body-force determinism is resolved by never sharing a PRNG
// between the two operators).
func (l *Lattice) RefreshRandomPool(rng *rand.Rand) {
	for c := 0; c < l.N; c++ {
		l.Random.Set(c, rng.Intn(2) == 1)
	}
}

// TotalPopcount returns the sum of set bits across the NumDir
// direction bits of every cell in the current buffer, i.e. total
// particle mass. Used by mass
// conservation tests and invariant checks.
func (l *Lattice) TotalPopcount() int {
	total := 0
	for c := 0; c < l.N; c++ {
		total += popcount(l.Pattern(l.cur, c))
	}
	return total
}

func popcount(p uint16) int {
	n := 0
	for p != 0 {
		n += int(p & 1)
		p >>= 1
	}
	return n
}
